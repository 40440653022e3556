package transaction

import (
	"encoding/hex"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/petejkim/cipher-ethereum/pkg/util"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustDecodeHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestDecode(t *testing.T) {
	t.Run("Should decode an EIP-155 signed transaction", func(t *testing.T) {
		tx, err := Decode(mustDecodeHex(t, signedRLPChainOne))
		require.NoError(t, err)

		assert.Equal(t, uint64(1), tx.ChainId())
		assert.Equal(t, uint64(37), tx.V())
		assert.Equal(t, signedRLPChainOne, mustRLP(t, tx.RLP))
		assert.Equal(t, signedHashChainOne, mustHash(t, tx.Hash))
		assert.Equal(t, hashForSigningChainOne, mustHash(t, tx.HashForSigning))

		sender, err := tx.Sender()
		require.NoError(t, err)
		assert.Equal(t, testAddress, sender)
	})

	t.Run("Should decode a legacy signed transaction", func(t *testing.T) {
		tx, err := Decode(mustDecodeHex(t, signedRLPNoChain))
		require.NoError(t, err)

		assert.Equal(t, uint64(0), tx.ChainId())
		assert.Equal(t, uint64(27), tx.V())
		assert.Equal(t, signedRLPNoChain, mustRLP(t, tx.RLP))

		sender, err := tx.Sender()
		require.NoError(t, err)
		assert.Equal(t, testAddress, sender)
	})

	t.Run("Should decode an unsigned transaction", func(t *testing.T) {
		raw := mustRLP(t, mustNew(t, testParams()).RLP)
		tx, err := Decode(mustDecodeHex(t, raw))
		require.NoError(t, err)
		assert.Equal(t, unsignedHash, mustHash(t, tx.Hash))
		assert.Equal(t, hashForSigningNoChain, mustHash(t, tx.HashForSigning))
	})

	t.Run("Should re-sign a decoded transaction identically", func(t *testing.T) {
		tx, err := Decode(mustDecodeHex(t, signedRLPChainOne))
		require.NoError(t, err)
		signed, err := tx.Sign(testPrivateKey(t))
		require.NoError(t, err)
		assert.Equal(t, signedRLPChainOne, mustRLP(t, signed.RLP))
	})

	encode := func(items ...[]byte) []byte {
		b, err := rlp.EncodeToBytes(items)
		require.NoError(t, err)
		return b
	}
	nine := func() [][]byte {
		return [][]byte{{0x1b}, {0x01}, {0x52, 0x08}, {}, {}, {}, {0x1c}, {}, {}}
	}

	errorCases := []struct {
		name string
		raw  []byte
	}{
		{"empty input", []byte{}},
		{"byte string instead of list", []byte{0x83, 0x01, 0x02, 0x03}},
		{"truncated list", mustDecodeHex(t, signedRLPChainOne)[:40]},
		{"too few fields", encode(nine()[:6]...)},
		{"too many fields", encode(append(nine(), []byte{})...)},
		{"leading zero nonce", func() []byte { f := nine(); f[0] = []byte{0x00, 0x1b}; return encode(f...) }()},
		{"leading zero value", func() []byte { f := nine(); f[4] = []byte{0x00, 0x01}; return encode(f...) }()},
		{"nonce overflows", func() []byte { f := nine(); f[0] = mustDecodeHex(t, "010000000000000000"); return encode(f...) }()},
		{"short to address", func() []byte { f := nine(); f[3] = []byte{0xc5, 0x89}; return encode(f...) }()},
		{"oversized r", func() []byte { f := nine(); f[7] = make([]byte, 33); f[7][0] = 1; return encode(f...) }()},
	}
	for _, c := range errorCases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(c.raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, util.ErrFormat))
		})
	}

	t.Run("Should reject nested lists", func(t *testing.T) {
		nested, err := rlp.EncodeToBytes([]interface{}{[]byte{0x1b}, [][]byte{{0x01}}})
		require.NoError(t, err)
		_, err = Decode(nested)
		assert.True(t, errors.Is(err, util.ErrFormat))
	})
}
