package crypto

import (
	"math/big"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/ethereum/go-ethereum/common"
	"github.com/pkg/errors"
)

const (
	// PrivateKeyLength is the size of a secp256k1 private scalar.
	PrivateKeyLength = 32

	// CompressedPublicKeyLength is the size of a 0x02/0x03 prefixed point.
	CompressedPublicKeyLength = 33

	// UncompressedPublicKeyLength is the size of a 0x04 prefixed point.
	UncompressedPublicKeyLength = 65

	// compactRecoveryOffset is the magic offset of a compact signature's
	// leading recovery code.
	compactRecoveryOffset = 27

	// maxRecoveryParam allows the two x-overflow variants on top of 0 and 1.
	maxRecoveryParam = 3
)

// Signature is a recoverable ECDSA signature.
type Signature struct {
	R *big.Int
	S *big.Int

	// RecoveryParam selects which candidate point is the signer's key.
	RecoveryParam byte
}

// Curve is the elliptic-curve capability consumed by address derivation,
// message signing and transaction signing. Every method has exactly one
// input and output encoding.
type Curve interface {
	// PublicKey derives the 65-byte uncompressed public key of a 32-byte
	// private scalar.
	PublicKey(privateKey []byte) ([]byte, error)

	// Sign produces a deterministic (RFC 6979), canonical low-s signature
	// over a 32-byte digest.
	Sign(privateKey []byte, digest common.Hash) (*Signature, error)

	// RecoverPublicKey returns the 33-byte compressed public key that
	// produced r and s over digest.
	RecoverPublicKey(digest common.Hash, r, s []byte, recoveryParam byte) ([]byte, error)

	// DecompressPublicKey accepts a 33 or 65 byte public key and returns its
	// 65-byte uncompressed form.
	DecompressPublicKey(publicKey []byte) ([]byte, error)

	// CompressPublicKey accepts a 33 or 65 byte public key and returns its
	// 33-byte compressed form.
	CompressPublicKey(publicKey []byte) ([]byte, error)
}

type secp256k1Curve struct{}

var s256 Curve = secp256k1Curve{}

// S256 returns the shared secp256k1 capability. It holds no mutable state
// and is safe for concurrent use.
func S256() Curve {
	return s256
}

// GeneratePrivateKey returns a fresh random 32-byte secp256k1 private key.
func GeneratePrivateKey() ([]byte, error) {
	key, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate secp256k1 key")
	}
	return key.Serialize(), nil
}

func parsePrivateKey(privateKey []byte) (*secp256k1.PrivateKey, error) {
	if len(privateKey) != PrivateKeyLength {
		return nil, errors.Wrapf(ErrInvalidPrivateKey, "expected %d bytes, got %d", PrivateKeyLength, len(privateKey))
	}
	var k secp256k1.ModNScalar
	if overflow := k.SetByteSlice(privateKey); overflow {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "scalar >= group order")
	}
	if k.IsZero() {
		return nil, errors.Wrap(ErrInvalidPrivateKey, "scalar is zero")
	}
	return secp256k1.NewPrivateKey(&k), nil
}

func parsePublicKey(publicKey []byte) (*secp256k1.PublicKey, error) {
	if len(publicKey) != CompressedPublicKeyLength && len(publicKey) != UncompressedPublicKeyLength {
		return nil, errors.Wrapf(ErrInvalidKey, "unexpected length %d", len(publicKey))
	}
	switch publicKey[0] {
	case secp256k1.PubKeyFormatCompressedEven, secp256k1.PubKeyFormatCompressedOdd, secp256k1.PubKeyFormatUncompressed:
	default:
		return nil, errors.Wrapf(ErrInvalidKey, "unsupported format byte 0x%02x", publicKey[0])
	}
	key, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidKey, err.Error())
	}
	return key, nil
}

func (secp256k1Curve) PublicKey(privateKey []byte) ([]byte, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	defer key.Zero()
	return key.PubKey().SerializeUncompressed(), nil
}

func (secp256k1Curve) Sign(privateKey []byte, digest common.Hash) (*Signature, error) {
	key, err := parsePrivateKey(privateKey)
	if err != nil {
		return nil, err
	}
	defer key.Zero()

	// <recovery code><32-byte R><32-byte S>, s already normalized to the
	// lower half of the group order.
	compact := dcrecdsa.SignCompact(key, digest[:], false)
	return &Signature{
		R:             new(big.Int).SetBytes(compact[1:33]),
		S:             new(big.Int).SetBytes(compact[33:65]),
		RecoveryParam: compact[0] - compactRecoveryOffset,
	}, nil
}

func (secp256k1Curve) RecoverPublicKey(digest common.Hash, r, s []byte, recoveryParam byte) ([]byte, error) {
	if recoveryParam > maxRecoveryParam {
		return nil, errors.Wrapf(ErrRecovery, "recovery parameter %d out of range", recoveryParam)
	}
	if len(r) > 32 || len(s) > 32 {
		return nil, errors.Wrap(ErrRecovery, "signature component exceeds 32 bytes")
	}

	compact := make([]byte, 65)
	compact[0] = compactRecoveryOffset + recoveryParam
	copy(compact[33-len(r):33], r)
	copy(compact[65-len(s):65], s)

	key, _, err := dcrecdsa.RecoverCompact(compact, digest[:])
	if err != nil {
		return nil, errors.Wrap(ErrRecovery, err.Error())
	}
	return key.SerializeCompressed(), nil
}

func (secp256k1Curve) DecompressPublicKey(publicKey []byte) ([]byte, error) {
	key, err := parsePublicKey(publicKey)
	if err != nil {
		return nil, err
	}
	return key.SerializeUncompressed(), nil
}

func (secp256k1Curve) CompressPublicKey(publicKey []byte) ([]byte, error) {
	key, err := parsePublicKey(publicKey)
	if err != nil {
		return nil, err
	}
	return key.SerializeCompressed(), nil
}
