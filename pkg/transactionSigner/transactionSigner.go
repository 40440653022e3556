package transactionSigner

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/petejkim/cipher-ethereum/pkg/config"
	"github.com/petejkim/cipher-ethereum/pkg/transaction"
	"go.uber.org/zap"
)

// SignedMessage is a personal message together with its signature.
type SignedMessage struct {
	Payload   []byte      `json:"payload"`
	Hash      common.Hash `json:"hash"`      // keccak256 of the prefixed payload
	Signature []byte      `json:"signature"` // r || s || v
}

// ITransactionSigner signs messages and transactions with a single key
type ITransactionSigner interface {
	// GetFromAddress returns the checksummed address of the signing key
	GetFromAddress() string

	// GetChainId returns the chain id bound into transactions that carry none
	GetChainId() uint64

	// SignMessage signs payload as an EIP-191 personal message
	SignMessage(payload []byte) (*SignedMessage, error)

	// SignTransaction builds and signs a transaction from params
	SignTransaction(params *transaction.Params) (*transaction.SignedTransaction, error)
}

func NewTransactionSigner(cfg *config.SignerConfig, logger *zap.Logger) (ITransactionSigner, error) {
	if cfg == nil || cfg.PrivateKey == "" {
		return nil, fmt.Errorf("private key cannot be empty")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid signer config: %w", err)
	}

	privateKey, err := cfg.PrivateKeyBytes()
	if err != nil {
		return nil, err
	}
	return NewPrivateKeySigner(privateKey, uint64(cfg.ChainId), logger)
}
