package transaction

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/petejkim/cipher-ethereum/pkg/util"
	"github.com/pkg/errors"
)

// Decode parses a 9-item legacy transaction list. The chain id is inferred
// from v as (v-35)/2 when v >= 35.
func Decode(raw []byte) (*Transaction, error) {
	var items [][]byte
	if err := rlp.DecodeBytes(raw, &items); err != nil {
		return nil, errors.Wrapf(util.ErrFormat, "not an rlp list of byte strings: %s", err)
	}
	if len(items) != FieldCount {
		return nil, errors.Wrapf(util.ErrFormat, "expected %d fields, got %d", FieldCount, len(items))
	}

	names := []string{"nonce", "gas price", "gas limit", "to", "value", "data", "v", "r", "s"}
	for i, item := range items {
		// to and data are byte strings, everything else is an integer.
		if i == 3 || i == 5 {
			continue
		}
		if len(item) > 0 && item[0] == 0 {
			return nil, errors.Wrapf(util.ErrFormat, "%s has a leading zero byte", names[i])
		}
	}

	nonce, err := util.BufferToUint64(items[0])
	if err != nil {
		return nil, errors.Wrap(err, "nonce")
	}
	if len(items[3]) != 0 && len(items[3]) != common.AddressLength {
		return nil, errors.Wrapf(util.ErrFormat, "to address must be %d bytes, got %d", common.AddressLength, len(items[3]))
	}
	v, err := util.BufferToUint64(items[6])
	if err != nil {
		return nil, errors.Wrap(err, "v")
	}
	if len(items[7]) > 32 || len(items[8]) > 32 {
		return nil, errors.Wrap(util.ErrFormat, "signature component exceeds 32 bytes")
	}

	var chainId uint64
	if v >= eip155VOffset {
		chainId = (v - eip155VOffset) / 2
	}

	return &Transaction{
		nonce:    util.NumberToBuffer(nonce),
		gasPrice: util.BigNumberToBuffer(new(big.Int).SetBytes(items[1])),
		gasLimit: util.BigNumberToBuffer(new(big.Int).SetBytes(items[2])),
		to:       clone(items[3]),
		value:    util.BigNumberToBuffer(new(big.Int).SetBytes(items[4])),
		data:     clone(items[5]),
		chainId:  chainId,
		v:        v,
		r:        clone(items[7]),
		s:        clone(items[8]),
	}, nil
}
