// Package message implements EIP-191 personal messages: the
// "\x19Ethereum Signed Message:\n<len>" prefixed hash, signing into a 65-byte
// r || s || v signature, and signer recovery.
package message

import (
	"strconv"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/petejkim/cipher-ethereum/pkg/address"
	"github.com/petejkim/cipher-ethereum/pkg/crypto"
	"github.com/pkg/errors"
)

const (
	// SignedMessagePrefix precedes the decimal payload length in the hash preimage.
	SignedMessagePrefix = "\x19Ethereum Signed Message:\n"

	// SignatureLength is the size of an r || s || v signature.
	SignatureLength = 65

	// recoveryOffset is added to the recovery parameter to form v.
	recoveryOffset = 27
)

// Message is an immutable byte payload with a lazily computed signing hash.
type Message struct {
	payload []byte
	hash    func() common.Hash
}

// New wraps payload. The payload is copied.
func New(payload []byte) *Message {
	m := &Message{payload: append([]byte{}, payload...)}
	m.hash = sync.OnceValue(func() common.Hash {
		prefix := SignedMessagePrefix + strconv.Itoa(len(m.payload))
		return crypto.Keccak256([]byte(prefix), m.payload)
	})
	return m
}

// Payload returns a copy of the wrapped bytes.
func (m *Message) Payload() []byte {
	return append([]byte{}, m.payload...)
}

// Hash returns keccak256(prefix || len(payload) || payload).
func (m *Message) Hash() common.Hash {
	return m.hash()
}

// Sign signs the message hash with a 32-byte private key and returns
// r (32 bytes) || s (32 bytes) || v (recovery parameter + 27).
func (m *Message) Sign(privateKey []byte) ([]byte, error) {
	sig, err := crypto.S256().Sign(privateKey, m.Hash())
	if err != nil {
		return nil, err
	}

	out := make([]byte, SignatureLength)
	sig.R.FillBytes(out[0:32])
	sig.S.FillBytes(out[32:64])
	out[64] = sig.RecoveryParam + recoveryOffset
	return out, nil
}

// EcRecover returns the checksummed address of the key that produced
// signature over this message.
func (m *Message) EcRecover(signature []byte) (string, error) {
	if len(signature) != SignatureLength {
		return "", errors.Wrapf(crypto.ErrInvalidSignature, "expected %d bytes, got %d", SignatureLength, len(signature))
	}
	v := signature[64]
	if v < recoveryOffset {
		return "", errors.Wrapf(crypto.ErrRecovery, "v %d below %d", v, recoveryOffset)
	}

	pub, err := crypto.S256().RecoverPublicKey(m.Hash(), signature[0:32], signature[32:64], v-recoveryOffset)
	if err != nil {
		return "", err
	}
	a, err := address.From(pub)
	if err != nil {
		return "", err
	}
	return a.Hex(), nil
}
