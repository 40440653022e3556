package crypto

import (
	"encoding/hex"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"
)

func TestKeccak256(t *testing.T) {
	tests := []struct {
		name     string
		input    []byte
		expected string
	}{
		{"empty", []byte{}, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{"test", []byte("test"), "9c22ff5f21f0b81b113e63f7db6da94fedef11b2119b4088b89664fb9a3cb658"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := Keccak256(tt.input)
			require.Equal(t, tt.expected, hex.EncodeToString(h[:]))
		})
	}
}

func TestKeccak256_ConcatenatesInputs(t *testing.T) {
	require.Equal(t, Keccak256([]byte("hello world")), Keccak256([]byte("hello"), []byte(" "), []byte("world")))
}

func TestKeccak256_MatchesGoEthereum(t *testing.T) {
	for _, in := range []string{"", "a", "hello world", "\x19Ethereum Signed Message:\n0"} {
		require.Equal(t, ethcrypto.Keccak256Hash([]byte(in)), Keccak256([]byte(in)), in)
	}
}
