package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/petejkim/cipher-ethereum/internal/keyGenerator/localKeyGenerator"
	"github.com/petejkim/cipher-ethereum/pkg/address"
	"github.com/petejkim/cipher-ethereum/pkg/config"
	"github.com/petejkim/cipher-ethereum/pkg/logger"
	"github.com/petejkim/cipher-ethereum/pkg/message"
	"github.com/petejkim/cipher-ethereum/pkg/transaction"
	"github.com/petejkim/cipher-ethereum/pkg/transactionSigner"
	"github.com/petejkim/cipher-ethereum/pkg/units"
	"github.com/petejkim/cipher-ethereum/pkg/util"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func newLogger(c *cli.Context) (*zap.Logger, error) {
	l, err := logger.NewLogger(&logger.LoggerConfig{Debug: c.Bool("verbose")})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return l, nil
}

func readMessage(c *cli.Context) ([]byte, error) {
	if !c.Bool("hex") {
		return []byte(c.String("message")), nil
	}
	payload, err := util.HexToBuffer(c.String("message"))
	if err != nil {
		return nil, fmt.Errorf("invalid hex message: %w", err)
	}
	return payload, nil
}

func newSigner(c *cli.Context, l *zap.Logger) (transactionSigner.ITransactionSigner, error) {
	chainId, err := config.ParseChainId(c.String("chain-id"))
	if err != nil {
		return nil, err
	}
	return transactionSigner.NewTransactionSigner(&config.SignerConfig{
		PrivateKey: c.String("private-key"),
		ChainId:    chainId,
	}, l)
}

func checksumCommand(c *cli.Context) error {
	checksummed, err := address.ChecksumAddress(c.String("address"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, checksummed)
	return nil
}

func validateCommand(c *cli.Context) error {
	fmt.Fprintln(c.App.Writer, address.IsValid(c.String("address")))
	return nil
}

func addressCommand(c *cli.Context) error {
	pub, err := util.HexToBuffer(c.String("public-key"))
	if err != nil {
		return err
	}
	a, err := address.From(pub)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, a.Hex())
	return nil
}

func hashMessageCommand(c *cli.Context) error {
	payload, err := readMessage(c)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, message.New(payload).Hash().Hex())
	return nil
}

func signMessageCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	payload, err := readMessage(c)
	if err != nil {
		return err
	}
	signer, err := newSigner(c, l)
	if err != nil {
		return err
	}
	signed, err := signer.SignMessage(payload)
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "address:   %s\n", signer.GetFromAddress())
	fmt.Fprintf(w, "hash:      %s\n", signed.Hash.Hex())
	fmt.Fprintf(w, "signature: %s\n", hexutil.Encode(signed.Signature))
	return nil
}

func recoverCommand(c *cli.Context) error {
	payload, err := readMessage(c)
	if err != nil {
		return err
	}
	sig, err := util.HexToBuffer(c.String("signature"))
	if err != nil {
		return err
	}
	signer, err := message.New(payload).EcRecover(sig)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, signer)
	return nil
}

func parseInteger(name, s string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, fmt.Errorf("invalid %s %q", name, s)
	}
	return n, nil
}

func parseAmount(c *cli.Context, amountFlag, unitFlag string) (*big.Int, error) {
	unit, err := units.ParseDenomination(c.String(unitFlag))
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", unitFlag, err)
	}
	wei, err := units.ToWei(c.String(amountFlag), unit)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s: %w", amountFlag, err)
	}
	return wei, nil
}

func signTxCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	gasPrice, err := parseAmount(c, "gas-price", "gas-price-unit")
	if err != nil {
		return err
	}
	value, err := parseAmount(c, "value", "value-unit")
	if err != nil {
		return err
	}
	gasLimit, err := parseInteger("gas limit", c.String("gas-limit"))
	if err != nil {
		return err
	}

	signer, err := newSigner(c, l)
	if err != nil {
		return err
	}
	signed, err := signer.SignTransaction(&transaction.Params{
		Nonce:       c.Uint64("nonce"),
		GasPriceWei: gasPrice,
		GasLimit:    gasLimit,
		To:          c.String("to"),
		ValueWei:    value,
		Data:        c.String("data"),
	})
	if err != nil {
		return err
	}

	raw, err := signed.RLP()
	if err != nil {
		return err
	}
	hash, err := signed.Hash()
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "from: %s\n", signer.GetFromAddress())
	fmt.Fprintf(w, "hash: %s\n", hash.Hex())
	fmt.Fprintf(w, "raw:  %s\n", hexutil.Encode(raw))
	return nil
}

func decodeTxCommand(c *cli.Context) error {
	raw, err := util.HexToBuffer(c.String("raw"))
	if err != nil {
		return err
	}
	tx, err := transaction.Decode(raw)
	if err != nil {
		return err
	}
	hash, err := tx.Hash()
	if err != nil {
		return err
	}

	names := []string{"nonce", "gasPrice", "gasLimit", "to", "value", "data", "v", "r", "s"}
	w := c.App.Writer
	fmt.Fprintf(w, "hash:     %s\n", hash.Hex())
	fmt.Fprintf(w, "chainId:  %d\n", tx.ChainId())
	for i, f := range tx.Fields() {
		fmt.Fprintf(w, "%-9s 0x%s\n", names[i]+":", hex.EncodeToString(f))
	}

	sender, err := tx.Sender()
	if err != nil {
		fmt.Fprintf(w, "sender:   unknown (%v)\n", err)
		return nil
	}
	fmt.Fprintf(w, "sender:   %s\n", sender)
	return nil
}

func keygenCommand(c *cli.Context) error {
	l, err := newLogger(c)
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()

	generator := localKeyGenerator.NewLocalKeyGenerator(0, l)
	key, err := generator.GenerateKey(context.Background(), c.String("name"), "")
	if err != nil {
		return err
	}
	pub, err := key.GetCompressedPublicKeyHex()
	if err != nil {
		return err
	}
	uncompressedPub, err := key.GetPublicKeyHex()
	if err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "keyId:      %s\n", key.KeyId)
	fmt.Fprintf(w, "address:    %s\n", key.Address)
	fmt.Fprintf(w, "publicKey:  %s\n", pub)
	fmt.Fprintf(w, "uncompressedPublicKey: %s\n", uncompressedPub)
	if c.Bool("show-private-key") {
		privateKey, err := generator.ExportPrivateKey(key.KeyId)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "privateKey: %s\n", hexutil.Encode(privateKey))
	}
	l.Sugar().Infow("Generated key", "keyId", key.KeyId, "address", key.Address)
	return nil
}
