package transactionSigner

import (
	"fmt"

	"github.com/petejkim/cipher-ethereum/pkg/address"
	"github.com/petejkim/cipher-ethereum/pkg/crypto"
	"github.com/petejkim/cipher-ethereum/pkg/message"
	"github.com/petejkim/cipher-ethereum/pkg/transaction"
	"go.uber.org/zap"
)

// PrivateKeySigner holds a raw secp256k1 key in memory.
type PrivateKeySigner struct {
	privateKey  []byte
	fromAddress string
	chainId     uint64
	logger      *zap.Logger
}

func NewPrivateKeySigner(privateKey []byte, chainId uint64, logger *zap.Logger) (*PrivateKeySigner, error) {
	pub, err := crypto.S256().PublicKey(privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load private key: %w", err)
	}
	from, err := address.From(pub)
	if err != nil {
		return nil, fmt.Errorf("failed to derive address: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Sugar().Debugw("Loaded private key signer",
		"address", from.Hex(),
		"chainId", chainId,
	)

	return &PrivateKeySigner{
		privateKey:  append([]byte{}, privateKey...),
		fromAddress: from.Hex(),
		chainId:     chainId,
		logger:      logger,
	}, nil
}

func (pks *PrivateKeySigner) GetFromAddress() string {
	return pks.fromAddress
}

func (pks *PrivateKeySigner) GetChainId() uint64 {
	return pks.chainId
}

func (pks *PrivateKeySigner) SignMessage(payload []byte) (*SignedMessage, error) {
	m := message.New(payload)
	sig, err := m.Sign(pks.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message: %w", err)
	}

	pks.logger.Debug("Signed message",
		zap.String("from", pks.fromAddress),
		zap.String("hash", m.Hash().Hex()),
		zap.Int("payloadLength", len(payload)),
	)

	return &SignedMessage{
		Payload:   m.Payload(),
		Hash:      m.Hash(),
		Signature: sig,
	}, nil
}

// SignTransaction binds the signer's chain id when params carry none.
func (pks *PrivateKeySigner) SignTransaction(params *transaction.Params) (*transaction.SignedTransaction, error) {
	if params == nil {
		return nil, fmt.Errorf("transaction params cannot be nil")
	}
	p := *params
	if p.ChainId == 0 {
		p.ChainId = pks.chainId
	}

	tx, err := transaction.New(&p)
	if err != nil {
		return nil, fmt.Errorf("failed to build transaction: %w", err)
	}
	signed, err := tx.Sign(pks.privateKey)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction: %w", err)
	}

	hash, err := signed.Hash()
	if err != nil {
		return nil, fmt.Errorf("failed to hash signed transaction: %w", err)
	}
	pks.logger.Info("Signed transaction",
		zap.String("from", pks.fromAddress),
		zap.String("hash", hash.Hex()),
		zap.Uint64("nonce", p.Nonce),
		zap.Uint64("chainId", signed.ChainId()),
	)
	return signed, nil
}
