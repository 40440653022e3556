package address

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func FuzzChecksumRoundTrip(f *testing.F) {
	f.Add(make([]byte, 20))
	f.Add([]byte("01234567890123456789"))

	f.Fuzz(func(t *testing.T, b []byte) {
		if len(b) < 20 {
			return
		}
		lower := hex.EncodeToString(b[:20])

		checksummed, err := ChecksumAddress(lower)
		require.NoError(t, err)
		require.True(t, IsValid(checksummed))
		require.True(t, IsValid(lower))
		require.True(t, IsValid(strings.ToUpper(lower)))
		require.Equal(t, "0x"+lower, strings.ToLower(checksummed))
	})
}

func FuzzIsValidNeverPanics(f *testing.F) {
	f.Add("")
	f.Add("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	f.Add("0xzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzzz")

	f.Fuzz(func(t *testing.T, s string) {
		_ = IsValid(s)
	})
}
