package localKeyGenerator

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/petejkim/cipher-ethereum/internal/keyGenerator"
	"github.com/petejkim/cipher-ethereum/pkg/crypto"
	"github.com/petejkim/cipher-ethereum/pkg/transaction"
	"github.com/petejkim/cipher-ethereum/pkg/transactionSigner"
	"github.com/petejkim/cipher-ethereum/pkg/util"
	"go.uber.org/zap"
)

// keyEntry stores the signer and metadata for a key
type keyEntry struct {
	signer     *transactionSigner.PrivateKeySigner
	privateKey []byte
	publicKey  []byte
	keyName    string
	aliasName  string
}

type LocalKeyGenerator struct {
	logger   *zap.Logger
	chainId  uint64
	keyStore map[string]*keyEntry // keyId -> keyEntry
	mu       sync.RWMutex
}

// NewLocalKeyGenerator keeps keys in memory only. chainId is bound into
// transactions signed with params that carry none.
func NewLocalKeyGenerator(chainId uint64, logger *zap.Logger) *LocalKeyGenerator {
	return &LocalKeyGenerator{
		logger:   logger,
		chainId:  chainId,
		keyStore: make(map[string]*keyEntry),
	}
}

func newKeyId() string {
	return fmt.Sprintf("local-key-%s", uuid.New().String())
}

func (l *LocalKeyGenerator) newEntry(privateKey []byte, keyName string, aliasName string) (*keyEntry, error) {
	publicKey, err := crypto.S256().PublicKey(privateKey)
	if err != nil {
		return nil, err
	}
	signer, err := transactionSigner.NewPrivateKeySigner(privateKey, l.chainId, l.logger)
	if err != nil {
		return nil, err
	}
	return &keyEntry{
		signer:     signer,
		privateKey: append([]byte{}, privateKey...),
		publicKey:  publicKey,
		keyName:    keyName,
		aliasName:  aliasName,
	}, nil
}

func (l *LocalKeyGenerator) GenerateKey(ctx context.Context, keyName string, aliasName string) (*keyGenerator.GeneratedKey, error) {
	privateKey, err := crypto.GeneratePrivateKey()
	if err != nil {
		return nil, fmt.Errorf("failed to generate secp256k1 key: %w", err)
	}

	entry, err := l.newEntry(privateKey, keyName, aliasName)
	if err != nil {
		return nil, fmt.Errorf("failed to derive Ethereum address from public key: %w", err)
	}

	keyId := newKeyId()

	l.mu.Lock()
	l.keyStore[keyId] = entry
	l.mu.Unlock()

	l.logger.Info("Generated local key",
		zap.String("keyName", keyName),
		zap.String("aliasName", aliasName),
		zap.String("keyId", keyId),
		zap.String("address", entry.signer.GetFromAddress()),
	)

	return &keyGenerator.GeneratedKey{
		PublicKey: append([]byte{}, entry.publicKey...),
		Address:   entry.signer.GetFromAddress(),
		KeyId:     keyId,
	}, nil
}

func (l *LocalKeyGenerator) getEntry(keyId string) (*keyEntry, error) {
	l.mu.RLock()
	entry, exists := l.keyStore[keyId]
	l.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("key with ID %s not found", keyId)
	}
	return entry, nil
}

func (l *LocalKeyGenerator) GetKeyById(ctx context.Context, keyId string) (*keyGenerator.GeneratedKey, error) {
	entry, err := l.getEntry(keyId)
	if err != nil {
		return nil, err
	}

	l.logger.Debug("Retrieved key by ID",
		zap.String("keyId", keyId),
		zap.String("address", entry.signer.GetFromAddress()),
	)

	return &keyGenerator.GeneratedKey{
		PublicKey: append([]byte{}, entry.publicKey...),
		Address:   entry.signer.GetFromAddress(),
		KeyId:     keyId,
	}, nil
}

func (l *LocalKeyGenerator) SignMessage(ctx context.Context, keyId string, payload []byte) ([]byte, error) {
	entry, err := l.getEntry(keyId)
	if err != nil {
		return nil, err
	}

	signed, err := entry.signer.SignMessage(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to sign message with key %s: %w", keyId, err)
	}

	l.logger.Debug("Signed message with key",
		zap.String("keyId", keyId),
		zap.Int("payloadLen", len(payload)),
		zap.Int("signatureLen", len(signed.Signature)),
	)
	return signed.Signature, nil
}

func (l *LocalKeyGenerator) SignTransaction(ctx context.Context, keyId string, params *transaction.Params) (*transaction.SignedTransaction, error) {
	entry, err := l.getEntry(keyId)
	if err != nil {
		return nil, err
	}

	signed, err := entry.signer.SignTransaction(params)
	if err != nil {
		return nil, fmt.Errorf("failed to sign transaction with key %s: %w", keyId, err)
	}
	return signed, nil
}

// Helper functions for testing

// LoadPrivateKey loads a pre-existing 32-byte private key into the key store.
func (l *LocalKeyGenerator) LoadPrivateKey(keyId string, privateKey []byte, keyName string, aliasName string) error {
	if len(privateKey) == 0 {
		return fmt.Errorf("private key cannot be nil")
	}

	entry, err := l.newEntry(privateKey, keyName, aliasName)
	if err != nil {
		return fmt.Errorf("failed to derive Ethereum address from private key: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.keyStore[keyId]; exists {
		return fmt.Errorf("key with ID %s already exists", keyId)
	}
	l.keyStore[keyId] = entry

	l.logger.Info("Loaded private key into store",
		zap.String("keyId", keyId),
		zap.String("keyName", keyName),
		zap.String("aliasName", aliasName),
		zap.String("address", entry.signer.GetFromAddress()),
	)

	return nil
}

// LoadPrivateKeyFromHex loads a private key from a hex string into the key store.
// The hex string can optionally start with "0x" or "0X".
func (l *LocalKeyGenerator) LoadPrivateKeyFromHex(keyId string, privateKeyHex string, keyName string, aliasName string) error {
	privateKey, err := hexutil.Decode("0x" + util.Strip0x(privateKeyHex))
	if err != nil {
		return fmt.Errorf("failed to parse private key from hex: %w", err)
	}

	return l.LoadPrivateKey(keyId, privateKey, keyName, aliasName)
}

// GenerateAndLoadKey generates a new key and returns its key ID and private key.
func (l *LocalKeyGenerator) GenerateAndLoadKey(keyName string, aliasName string) (string, []byte, error) {
	privateKey, err := crypto.GeneratePrivateKey()
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate secp256k1 key: %w", err)
	}

	keyId := newKeyId()
	if err := l.LoadPrivateKey(keyId, privateKey, keyName, aliasName); err != nil {
		return "", nil, err
	}
	return keyId, privateKey, nil
}

// ExportPrivateKey returns a copy of the private key stored under keyId.
func (l *LocalKeyGenerator) ExportPrivateKey(keyId string) ([]byte, error) {
	entry, err := l.getEntry(keyId)
	if err != nil {
		return nil, err
	}
	return append([]byte{}, entry.privateKey...), nil
}

// GetKeyCount returns the number of keys in the store.
func (l *LocalKeyGenerator) GetKeyCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.keyStore)
}

// ClearKeys removes all keys from the store.
func (l *LocalKeyGenerator) ClearKeys() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keyStore = make(map[string]*keyEntry)
	l.logger.Info("Cleared all keys from store")
}

func (l *LocalKeyGenerator) KeyExists(keyId string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	_, exists := l.keyStore[keyId]
	return exists
}

// GetKeyIdByAlias returns the id of the first key with the given alias.
func (l *LocalKeyGenerator) GetKeyIdByAlias(alias string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for keyId, entry := range l.keyStore {
		if entry.aliasName == alias {
			return keyId, true
		}
	}
	return "", false
}
