package address

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
	"github.com/petejkim/cipher-ethereum/pkg/crypto"
	"github.com/petejkim/cipher-ethereum/pkg/util"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPrivateKeyHex = "18aed7b31dea5e7d7e50c868b72efcb10e4e5b8060e9bb3cf30b6e2ca6b8471c"
	testPublicKeyHex  = "03c2cf95f0cce3e633427a7c26037ad3b028a91d6d7da52799adcaea18c13b9d7d"
	testAddress       = "0x3411cd4C838A3FEda31f0d24A958C801C4dB7d36"
)

// Mixed-case vectors published with EIP-55.
var checksummedVectors = []string{
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	"0xC589aC793Af309DB9690D819aBC9AAb37D169F6a",
	testAddress,
}

func TestFrom(t *testing.T) {
	compressed, err := hex.DecodeString(testPublicKeyHex)
	require.NoError(t, err)

	t.Run("Should derive address from compressed key", func(t *testing.T) {
		a, err := From(compressed)
		require.NoError(t, err)
		assert.Equal(t, testAddress, a.Hex())
		assert.Equal(t, testAddress, a.String())
		assert.Len(t, a.PublicKey(), 65)
		assert.Equal(t, byte(0x04), a.PublicKey()[0])
		assert.Equal(t, strings.ToLower(util.Strip0x(testAddress)), hex.EncodeToString(a.RawAddress()))
	})

	t.Run("Should derive the same address from the uncompressed key", func(t *testing.T) {
		uncompressed, err := crypto.S256().DecompressPublicKey(compressed)
		require.NoError(t, err)

		a, err := From(uncompressed)
		require.NoError(t, err)
		assert.Equal(t, testAddress, a.Hex())
		assert.Equal(t, uncompressed, a.PublicKey())
	})

	t.Run("Should match go-ethereum", func(t *testing.T) {
		privateKey, err := hex.DecodeString(testPrivateKeyHex)
		require.NoError(t, err)
		ethKey, err := ethcrypto.ToECDSA(privateKey)
		require.NoError(t, err)

		a, err := From(ethcrypto.FromECDSAPub(&ethKey.PublicKey))
		require.NoError(t, err)
		assert.Equal(t, ethcrypto.PubkeyToAddress(ethKey.PublicKey).Hex(), a.Hex())
	})

	t.Run("Should be deterministic", func(t *testing.T) {
		a1, err := From(compressed)
		require.NoError(t, err)
		a2, err := From(compressed)
		require.NoError(t, err)
		assert.Equal(t, a1.Hex(), a1.Hex())
		assert.Equal(t, a1.Hex(), a2.Hex())
		assert.Equal(t, a1.RawAddress(), a2.RawAddress())
	})

	t.Run("Should not expose internal buffers", func(t *testing.T) {
		a, err := From(compressed)
		require.NoError(t, err)
		raw := a.RawAddress()
		raw[0] ^= 0xff
		assert.NotEqual(t, raw, a.RawAddress())
	})

	t.Run("Should reject invalid keys", func(t *testing.T) {
		for _, key := range [][]byte{
			nil,
			compressed[:20],
			append([]byte{0x05}, compressed[1:]...),
			append([]byte{0x02}, make([]byte, 32)...),
		} {
			_, err := From(key)
			require.True(t, errors.Is(err, crypto.ErrInvalidKey), hex.EncodeToString(key))
		}
	})
}

func TestChecksumAddress(t *testing.T) {
	for _, vector := range checksummedVectors {
		t.Run(vector, func(t *testing.T) {
			lower := strings.ToLower(vector)

			got, err := ChecksumAddress(lower)
			require.NoError(t, err)
			assert.Equal(t, vector, got)

			got, err = ChecksumAddress(strings.ToUpper(util.Strip0x(vector)))
			require.NoError(t, err)
			assert.Equal(t, vector, got)

			assert.Equal(t, common.HexToAddress(lower).Hex(), got)
		})
	}

	t.Run("Should reject malformed input", func(t *testing.T) {
		for _, in := range []string{
			"",
			"0x",
			"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAe",
			"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAedd",
			"0xgaAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		} {
			_, err := ChecksumAddress(in)
			require.True(t, errors.Is(err, util.ErrFormat), in)
		}
	})
}

func TestIsValid(t *testing.T) {
	t.Run("Should accept checksummed addresses", func(t *testing.T) {
		for _, vector := range checksummedVectors {
			assert.True(t, IsValid(vector), vector)
			assert.True(t, IsValid(util.Strip0x(vector)), vector)
		}
	})

	t.Run("Should accept single-case addresses", func(t *testing.T) {
		for _, vector := range []string{
			"0x52908400098527886E0F7030069857D2E4169EE7",
			"0x8617E340B3D01FA5F11F306F4090FD50E238070D",
			"0xde709f2102306220921060314715629080e2fb77",
			"0x27b1fdb04752bbc536007a920d24acb045561c26",
			"0X27B1FDB04752BBC536007A920D24ACB045561C26",
			"0x0000000000000000000000000000000000000000",
		} {
			assert.True(t, IsValid(vector), vector)
		}
		for _, vector := range checksummedVectors {
			assert.True(t, IsValid(strings.ToLower(vector)), vector)
			assert.True(t, IsValid("0x"+strings.ToUpper(util.Strip0x(vector))), vector)
		}
	})

	t.Run("Should reject a single flipped case", func(t *testing.T) {
		for _, vector := range checksummedVectors {
			addr := []byte(vector)
			for i := 2; i < len(addr); i++ {
				c := addr[i]
				switch {
				case c >= 'a' && c <= 'f':
					addr[i] = c - ('a' - 'A')
				case c >= 'A' && c <= 'F':
					addr[i] = c + ('a' - 'A')
				default:
					continue
				}
				flipped := string(addr)
				addr[i] = c

				if flipped == strings.ToLower(flipped) || "0x"+strings.ToUpper(flipped[2:]) == flipped {
					continue
				}
				assert.False(t, IsValid(flipped), flipped)
			}
		}
	})

	t.Run("Should reject malformed input without panicking", func(t *testing.T) {
		for _, in := range []string{
			"",
			"0x",
			"0x1234",
			"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAedff",
			"0xZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZZ",
			"0xzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz",
			"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeG",
			"5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed  ",
		} {
			assert.False(t, IsValid(in), in)
		}
	})
}
