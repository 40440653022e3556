// Package address derives Ethereum account addresses from secp256k1 public
// keys and renders them in EIP-55 mixed-case checksum form.
package address

import (
	"encoding/hex"
	"strings"
	"sync"

	"github.com/petejkim/cipher-ethereum/pkg/crypto"
	"github.com/petejkim/cipher-ethereum/pkg/util"
	"github.com/pkg/errors"
)

// HexLength is the number of hex digits in an address without its prefix.
const HexLength = 40

// Address is an account identifier derived from a public key. It is
// immutable; the raw and checksummed forms are computed once on first use.
type Address struct {
	publicKey []byte

	rawAddress func() []byte
	address    func() string
}

// From builds an Address from a 33-byte compressed or 65-byte uncompressed
// public key. The key is stored uncompressed.
func From(publicKey []byte) (*Address, error) {
	pub, err := crypto.S256().DecompressPublicKey(publicKey)
	if err != nil {
		return nil, err
	}

	a := &Address{publicKey: pub}
	a.rawAddress = sync.OnceValue(func() []byte {
		h := crypto.Keccak256(a.publicKey[1:])
		return h[len(h)-20:]
	})
	a.address = sync.OnceValue(func() string {
		return "0x" + checksum(hex.EncodeToString(a.rawAddress()))
	})
	return a, nil
}

// PublicKey returns the 65-byte uncompressed public key.
func (a *Address) PublicKey() []byte {
	return append([]byte(nil), a.publicKey...)
}

// RawAddress returns the low 20 bytes of keccak256(X || Y).
func (a *Address) RawAddress() []byte {
	return append([]byte(nil), a.rawAddress()...)
}

// Hex returns the 0x-prefixed EIP-55 checksummed address.
func (a *Address) Hex() string {
	return a.address()
}

func (a *Address) String() string {
	return a.Hex()
}

// ChecksumAddress renders a 40 digit hex address, with or without 0x and in
// any case, in EIP-55 checksum form.
func ChecksumAddress(address string) (string, error) {
	lower, err := parseHexAddress(address)
	if err != nil {
		return "", err
	}
	return "0x" + checksum(lower), nil
}

// IsValid reports whether address is 40 hex digits (optionally 0x
// prefixed) that are either single-case or correctly checksummed.
func IsValid(address string) bool {
	addr := util.Strip0x(address)
	if len(addr) != HexLength {
		return false
	}
	if addr == strings.ToLower(addr) || addr == strings.ToUpper(addr) {
		_, err := parseHexAddress(addr)
		return err == nil
	}

	lower, err := parseHexAddress(addr)
	if err != nil {
		return false
	}
	return addr == checksum(lower)
}

// parseHexAddress strips the prefix and lowercases the address, failing on
// a wrong length or non-hex digits.
func parseHexAddress(address string) (string, error) {
	addr := strings.ToLower(util.Strip0x(address))
	if len(addr) != HexLength {
		return "", errors.Wrapf(util.ErrFormat, "address %q must have %d hex digits", address, HexLength)
	}
	if _, err := hex.DecodeString(addr); err != nil {
		return "", errors.Wrapf(util.ErrFormat, "address %q is not hex", address)
	}
	return addr, nil
}

// checksum uppercases every digit of lowerHex whose matching nibble of
// keccak256(lowerHex) has its high bit set. Digits 0-9 are unaffected.
func checksum(lowerHex string) string {
	h := crypto.Keccak256([]byte(lowerHex))
	digest := hex.EncodeToString(h[:])

	out := []byte(lowerHex)
	for i := range out {
		if digest[i] >= '8' && out[i] >= 'a' {
			out[i] -= 'a' - 'A'
		}
	}
	return string(out)
}
