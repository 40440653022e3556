package main

import (
	"fmt"
	"log"
	"os"

	"github.com/petejkim/cipher-ethereum/pkg/config"
	"github.com/petejkim/cipher-ethereum/pkg/units"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func messageFlags(extra ...cli.Flag) []cli.Flag {
	return append([]cli.Flag{
		&cli.StringFlag{
			Name:     "message",
			Aliases:  []string{"m"},
			Usage:    "Message payload",
			Required: true,
		},
		&cli.BoolFlag{
			Name:  "hex",
			Usage: "Treat --message as hex encoded bytes",
		},
	}, extra...)
}

func privateKeyFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "private-key",
		Aliases:  []string{"key"},
		Usage:    "secp256k1 private key (hex string)",
		EnvVars:  []string{config.EnvPrivateKey},
		Required: true,
	}
}

func chainIdFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "chain-id",
		Aliases: []string{"chain"},
		Usage:   fmt.Sprintf("EIP-155 chain ID or name, empty for none: %s", config.GetSupportedChainIDsString()),
		EnvVars: []string{config.EnvChainID},
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ethsign",
		Usage: "Offline Ethereum message and transaction signing",
		Description: `Encodes, hashes and signs Ethereum legacy transactions and personal messages without a network connection.

- EIP-55 checksummed addresses
- EIP-191 personal message signing and recovery
- EIP-155 replay protected transaction signing and decoding`,
		Version: "1.0.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "Enable verbose logging",
				EnvVars: []string{config.EnvVerbose},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "checksum",
				Usage: "Render an address in EIP-55 checksummed form",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Usage: "Hex address", Required: true},
				},
				Action: checksumCommand,
			},
			{
				Name:  "validate",
				Usage: "Check that an address is well formed and its checksum matches",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "address", Aliases: []string{"a"}, Usage: "Hex address", Required: true},
				},
				Action: validateCommand,
			},
			{
				Name:  "address",
				Usage: "Derive the address of a public key",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "public-key", Aliases: []string{"pub"}, Usage: "33 or 65 byte public key (hex string)", Required: true},
				},
				Action: addressCommand,
			},
			{
				Name:   "hash-message",
				Usage:  "Compute the personal message hash of a payload",
				Flags:  messageFlags(),
				Action: hashMessageCommand,
			},
			{
				Name:   "sign-message",
				Usage:  "Sign a payload as a personal message",
				Flags:  messageFlags(privateKeyFlag()),
				Action: signMessageCommand,
			},
			{
				Name:  "recover",
				Usage: "Recover the signer address of a personal message signature",
				Flags: messageFlags(
					&cli.StringFlag{Name: "signature", Aliases: []string{"sig"}, Usage: "65 byte signature (hex string)", Required: true},
				),
				Action: recoverCommand,
			},
			{
				Name:  "sign-tx",
				Usage: "Sign a legacy transaction",
				Flags: []cli.Flag{
					privateKeyFlag(),
					chainIdFlag(),
					&cli.Uint64Flag{Name: "nonce", Usage: "Sender nonce"},
					&cli.StringFlag{Name: "gas-price", Usage: "Gas price in --gas-price-unit", Value: "0"},
					&cli.StringFlag{Name: "gas-price-unit", Usage: "wei, gwei or ether", Value: units.Gwei.String()},
					&cli.StringFlag{Name: "gas-limit", Usage: "Gas limit", Value: "21000"},
					&cli.StringFlag{Name: "to", Usage: "Recipient address, empty for contract creation"},
					&cli.StringFlag{Name: "value", Usage: "Value in --value-unit", Value: "0"},
					&cli.StringFlag{Name: "value-unit", Usage: "wei, gwei or ether", Value: units.Ether.String()},
					&cli.StringFlag{Name: "data", Usage: "Call data (hex string)"},
				},
				Action: signTxCommand,
			},
			{
				Name:  "decode-tx",
				Usage: "Decode a signed legacy transaction and recover its sender",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "raw", Usage: "RLP encoded transaction (hex string)", Required: true},
				},
				Action: decodeTxCommand,
			},
			{
				Name:  "keygen",
				Usage: "Generate a new secp256k1 key",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Usage: "Key name"},
					&cli.BoolFlag{Name: "show-private-key", Usage: "Print the private key"},
				},
				Action: keygenCommand,
			},
		},
	}
}
