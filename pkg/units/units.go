// Package units converts decimal ether denominations into wei.
package units

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
	"github.com/petejkim/cipher-ethereum/pkg/util"
	"github.com/pkg/errors"
)

type Denomination string

const (
	Wei   Denomination = "wei"
	Gwei  Denomination = "gwei"
	Ether Denomination = "ether"
)

func (d Denomination) String() string {
	return string(d)
}

var multipliers = map[Denomination]int64{
	Wei:   params.Wei,
	Gwei:  params.GWei,
	Ether: params.Ether,
}

// Multiplier returns the number of wei in one unit of d.
func (d Denomination) Multiplier() (*big.Int, error) {
	m, ok := multipliers[d]
	if !ok {
		return nil, errors.Wrapf(util.ErrFormat, "unknown denomination %q", string(d))
	}
	return big.NewInt(m), nil
}

// ParseDenomination accepts wei, gwei and ether in any case.
func ParseDenomination(s string) (Denomination, error) {
	d := Denomination(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := multipliers[d]; !ok {
		return "", errors.Wrapf(util.ErrFormat, "unknown denomination %q", s)
	}
	return d, nil
}

// ToWei converts a decimal amount such as "1.5" in unit to wei. Negative
// amounts and results with a fractional wei are rejected.
func ToWei(amount string, unit Denomination) (*big.Int, error) {
	m, err := unit.Multiplier()
	if err != nil {
		return nil, err
	}

	amount = strings.TrimSpace(amount)
	if amount == "" || strings.ContainsAny(amount, "/eE") {
		return nil, errors.Wrapf(util.ErrFormat, "invalid amount %q", amount)
	}
	r, ok := new(big.Rat).SetString(amount)
	if !ok {
		return nil, errors.Wrapf(util.ErrFormat, "invalid amount %q", amount)
	}
	if r.Sign() < 0 {
		return nil, errors.Wrapf(util.ErrFormat, "amount %q is negative", amount)
	}

	r.Mul(r, new(big.Rat).SetInt(m))
	if !r.IsInt() {
		return nil, errors.Wrapf(util.ErrFormat, "amount %q %s is not a whole number of wei", amount, unit)
	}
	return new(big.Int).Set(r.Num()), nil
}
