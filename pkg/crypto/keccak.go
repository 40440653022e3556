package crypto

import (
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// Keccak256 calculates the legacy Keccak-256 digest (not NIST SHA3-256) of
// the concatenation of data.
func Keccak256(data ...[]byte) common.Hash {
	var h common.Hash
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	d.Sum(h[:0])
	return h
}
