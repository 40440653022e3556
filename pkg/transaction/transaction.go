// Package transaction builds, hashes and signs legacy Ethereum transactions,
// including the EIP-155 chain id extension.
package transaction

import (
	"math"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/petejkim/cipher-ethereum/pkg/address"
	"github.com/petejkim/cipher-ethereum/pkg/crypto"
	"github.com/petejkim/cipher-ethereum/pkg/util"
	"github.com/pkg/errors"
)

const (
	// DefaultV is the v value of a transaction that carries no signature.
	DefaultV = 28

	// FieldCount is the number of fields in an encoded legacy transaction.
	FieldCount = 9

	// MaxChainId is the largest chain id whose EIP-155 v still fits a uint64.
	MaxChainId = (math.MaxUint64 - 36) / 2

	legacyVOffset = 27
	eip155VOffset = 35
)

// Params are the typed inputs of a transaction. Nil amounts are zero.
type Params struct {
	Nonce       uint64
	GasPriceWei *big.Int
	GasLimit    *big.Int
	// To is a hex address with optional 0x prefix. Empty means contract creation.
	To       string
	ValueWei *big.Int
	// Data is a hex payload with optional 0x prefix.
	Data string
	// ChainId binds the signature to a chain (EIP-155). Zero means no chain id.
	ChainId uint64

	// V, R and S carry an existing signature. V of zero means DefaultV.
	V uint64
	R string
	S string
}

// Transaction is an immutable legacy transaction whose fields are held as
// minimal big-endian byte strings.
type Transaction struct {
	nonce    []byte
	gasPrice []byte
	gasLimit []byte
	to       []byte
	value    []byte
	data     []byte
	chainId  uint64

	v uint64
	r []byte
	s []byte
}

// New validates params and derives every byte field once.
func New(params *Params) (*Transaction, error) {
	if params == nil {
		params = &Params{}
	}

	if params.ChainId > MaxChainId {
		return nil, errors.Wrapf(util.ErrFormat, "chain id %d exceeds %d", params.ChainId, uint64(MaxChainId))
	}

	gasPrice, err := amountToBuffer("gas price", params.GasPriceWei)
	if err != nil {
		return nil, err
	}
	gasLimit, err := amountToBuffer("gas limit", params.GasLimit)
	if err != nil {
		return nil, err
	}
	value, err := amountToBuffer("value", params.ValueWei)
	if err != nil {
		return nil, err
	}

	to, err := util.HexToBuffer(params.To)
	if err != nil {
		return nil, err
	}
	if len(to) != 0 && len(to) != common.AddressLength {
		return nil, errors.Wrapf(util.ErrFormat, "to address must be %d bytes, got %d", common.AddressLength, len(to))
	}

	data, err := util.HexToBuffer(params.Data)
	if err != nil {
		return nil, err
	}

	r, err := scalarToBuffer("r", params.R)
	if err != nil {
		return nil, err
	}
	s, err := scalarToBuffer("s", params.S)
	if err != nil {
		return nil, err
	}

	v := params.V
	if v == 0 {
		v = DefaultV
	}

	return &Transaction{
		nonce:    util.NumberToBuffer(params.Nonce),
		gasPrice: gasPrice,
		gasLimit: gasLimit,
		to:       to,
		value:    value,
		data:     data,
		chainId:  params.ChainId,
		v:        v,
		r:        r,
		s:        s,
	}, nil
}

func amountToBuffer(name string, n *big.Int) ([]byte, error) {
	if n != nil && n.Sign() < 0 {
		return nil, errors.Wrapf(util.ErrFormat, "%s must not be negative", name)
	}
	return util.BigNumberToBuffer(n), nil
}

func scalarToBuffer(name, h string) ([]byte, error) {
	b, err := util.HexToBuffer(h)
	if err != nil {
		return nil, err
	}
	if len(b) > 32 {
		return nil, errors.Wrapf(util.ErrFormat, "%s exceeds 32 bytes", name)
	}
	return util.BigNumberToBuffer(new(big.Int).SetBytes(b)), nil
}

// ChainId returns the bound chain id, or zero when none is bound.
func (tx *Transaction) ChainId() uint64 {
	return tx.chainId
}

// V returns the signature's v value.
func (tx *Transaction) V() uint64 {
	return tx.v
}

// R returns the signature's r component.
func (tx *Transaction) R() *big.Int {
	return new(big.Int).SetBytes(tx.r)
}

// S returns the signature's s component.
func (tx *Transaction) S() *big.Int {
	return new(big.Int).SetBytes(tx.s)
}

// Fields returns [nonce, gasPrice, gasLimit, to, value, data, v, r, s].
func (tx *Transaction) Fields() [][]byte {
	return [][]byte{
		clone(tx.nonce),
		clone(tx.gasPrice),
		clone(tx.gasLimit),
		clone(tx.to),
		clone(tx.value),
		clone(tx.data),
		util.NumberToBuffer(tx.v),
		clone(tx.r),
		clone(tx.s),
	}
}

// FieldsForSigning returns the first six fields, followed by
// [chainId, "", ""] when a chain id is bound.
func (tx *Transaction) FieldsForSigning() [][]byte {
	fields := tx.Fields()[:6]
	if tx.chainId == 0 {
		return fields
	}
	return append(fields, util.NumberToBuffer(tx.chainId), []byte{}, []byte{})
}

// RLP returns the encoding of Fields, valid whether signed or not.
func (tx *Transaction) RLP() ([]byte, error) {
	return encode(tx.Fields())
}

// Hash returns keccak256 of RLP. It covers the current signature fields.
func (tx *Transaction) Hash() (common.Hash, error) {
	b, err := tx.RLP()
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256(b), nil
}

// HashForSigning returns keccak256 of the encoded FieldsForSigning. It never
// depends on v, r or s.
func (tx *Transaction) HashForSigning() (common.Hash, error) {
	b, err := encode(tx.FieldsForSigning())
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256(b), nil
}

// Sign signs HashForSigning with a 32-byte private key and returns a new
// signed transaction. The receiver is left unchanged.
func (tx *Transaction) Sign(privateKey []byte) (*SignedTransaction, error) {
	digest, err := tx.HashForSigning()
	if err != nil {
		return nil, err
	}
	sig, err := crypto.S256().Sign(privateKey, digest)
	if err != nil {
		return nil, err
	}

	v := uint64(sig.RecoveryParam) + legacyVOffset
	if tx.chainId != 0 {
		v += tx.chainId*2 + 8
	}

	signed := *tx
	signed.v = v
	signed.r = util.BigNumberToBuffer(sig.R)
	signed.s = util.BigNumberToBuffer(sig.S)
	return &SignedTransaction{tx: &signed}, nil
}

// Sender recovers the checksummed address that signed the transaction.
func (tx *Transaction) Sender() (string, error) {
	recoveryParam, err := tx.recoveryParam()
	if err != nil {
		return "", err
	}
	digest, err := tx.HashForSigning()
	if err != nil {
		return "", err
	}
	pub, err := crypto.S256().RecoverPublicKey(digest, tx.r, tx.s, recoveryParam)
	if err != nil {
		return "", err
	}
	a, err := address.From(pub)
	if err != nil {
		return "", err
	}
	return a.Hex(), nil
}

func (tx *Transaction) recoveryParam() (byte, error) {
	offset := uint64(legacyVOffset)
	if tx.chainId != 0 {
		offset = eip155VOffset + tx.chainId*2
	}
	if tx.v < offset || tx.v-offset > 3 {
		return 0, errors.Wrapf(crypto.ErrRecovery, "v %d does not encode a recovery parameter for chain id %d", tx.v, tx.chainId)
	}
	return byte(tx.v - offset), nil
}

// SignedTransaction is a transaction produced by Sign.
type SignedTransaction struct {
	tx *Transaction
}

// Transaction returns the signed field set. Signing it again derives a fresh
// signature from the same fields.
func (st *SignedTransaction) Transaction() *Transaction {
	return st.tx
}

func (st *SignedTransaction) ChainId() uint64 { return st.tx.ChainId() }
func (st *SignedTransaction) V() uint64 { return st.tx.V() }
func (st *SignedTransaction) R() *big.Int { return st.tx.R() }
func (st *SignedTransaction) S() *big.Int { return st.tx.S() }
func (st *SignedTransaction) Fields() [][]byte { return st.tx.Fields() }
func (st *SignedTransaction) FieldsForSigning() [][]byte { return st.tx.FieldsForSigning() }
func (st *SignedTransaction) RLP() ([]byte, error) { return st.tx.RLP() }
func (st *SignedTransaction) Hash() (common.Hash, error) { return st.tx.Hash() }
func (st *SignedTransaction) HashForSigning() (common.Hash, error) { return st.tx.HashForSigning() }
func (st *SignedTransaction) Sender() (string, error) { return st.tx.Sender() }

func encode(fields [][]byte) ([]byte, error) {
	b, err := rlp.EncodeToBytes(fields)
	if err != nil {
		return nil, errors.Wrap(err, "failed to rlp encode transaction fields")
	}
	return b, nil
}

func clone(b []byte) []byte {
	return append([]byte{}, b...)
}
