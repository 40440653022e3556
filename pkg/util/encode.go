package util

import (
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// NumberToBuffer returns the minimal big-endian encoding of n.
// Zero encodes to an empty slice, never to a single 0x00 byte.
func NumberToBuffer(n uint64) []byte {
	return BigNumberToBuffer(new(big.Int).SetUint64(n))
}

// BigNumberToBuffer returns the minimal big-endian encoding of the absolute
// value of n. A nil or zero value encodes to an empty slice.
func BigNumberToBuffer(n *big.Int) []byte {
	if n == nil || n.Sign() == 0 {
		return []byte{}
	}
	return n.Bytes()
}

// HexToBuffer decodes a hex string with an optional 0x prefix. Odd-length
// input is left-padded with a single zero nibble.
func HexToBuffer(s string) ([]byte, error) {
	h := HexToEvenLengthHex(s)
	if h == "" {
		return []byte{}, nil
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return nil, errors.Wrapf(ErrFormat, "invalid hex string %q", s)
	}
	return b, nil
}

// HexToEvenLengthHex lowercases s, strips any 0x prefix and pads it to an
// even number of digits.
func HexToEvenLengthHex(s string) string {
	h := strings.ToLower(Strip0x(s))
	if len(h)%2 == 1 {
		h = "0" + h
	}
	return h
}

// Strip0x removes a leading 0x or 0X.
func Strip0x(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

// BufferToUint64 decodes a minimal big-endian integer of at most 8 bytes.
// A leading zero byte is rejected because it has no canonical form.
func BufferToUint64(b []byte) (uint64, error) {
	if len(b) > 8 {
		return 0, errors.Wrapf(ErrFormat, "integer of %d bytes overflows uint64", len(b))
	}
	if len(b) > 0 && b[0] == 0 {
		return 0, errors.Wrap(ErrFormat, "integer has leading zero byte")
	}
	return new(big.Int).SetBytes(b).Uint64(), nil
}
