package keyGenerator

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/petejkim/cipher-ethereum/pkg/crypto"
	"github.com/petejkim/cipher-ethereum/pkg/transaction"
)

type GeneratedKey struct {
	PublicKey []byte // 65-byte uncompressed
	Address   string
	KeyId     string
}

func (gk *GeneratedKey) GetPublicKeyBytes() ([]byte, error) {
	if len(gk.PublicKey) == 0 {
		return nil, fmt.Errorf("public key is nil")
	}
	return append([]byte{}, gk.PublicKey...), nil
}

func (gk *GeneratedKey) GetPublicKeyHex() (string, error) {
	pubKeyBytes, err := gk.GetPublicKeyBytes()
	if err != nil {
		return "", fmt.Errorf("failed to get public key bytes: %w", err)
	}
	return hexutil.Encode(pubKeyBytes), nil
}

// GetCompressedPublicKeyHex returns the 33-byte 0x02/0x03 form
func (gk *GeneratedKey) GetCompressedPublicKeyHex() (string, error) {
	pubKeyBytes, err := gk.GetPublicKeyBytes()
	if err != nil {
		return "", err
	}
	compressed, err := crypto.S256().CompressPublicKey(pubKeyBytes)
	if err != nil {
		return "", fmt.Errorf("failed to compress public key: %w", err)
	}
	return hexutil.Encode(compressed), nil
}

// GetPublicKeyBytesUnprefixed returns the public key without the 0x04 prefix (64 bytes)
func (gk *GeneratedKey) GetPublicKeyBytesUnprefixed() ([]byte, error) {
	pubKeyBytes, err := gk.GetPublicKeyBytes()
	if err != nil {
		return nil, err
	}
	if len(pubKeyBytes) == crypto.UncompressedPublicKeyLength && pubKeyBytes[0] == 0x04 {
		return pubKeyBytes[1:], nil
	}
	return nil, fmt.Errorf("unexpected public key length: %d", len(pubKeyBytes))
}

type IKeyGenerator interface {
	GenerateKey(ctx context.Context, keyName string, aliasName string) (*GeneratedKey, error)
	GetKeyById(ctx context.Context, keyId string) (*GeneratedKey, error)
	// SignMessage returns the 65-byte personal message signature of payload
	SignMessage(ctx context.Context, keyId string, payload []byte) ([]byte, error)
	SignTransaction(ctx context.Context, keyId string, params *transaction.Params) (*transaction.SignedTransaction, error)
}
