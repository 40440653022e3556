package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/petejkim/cipher-ethereum/pkg/crypto"
	"github.com/petejkim/cipher-ethereum/pkg/transaction"
	"k8s.io/apimachinery/pkg/util/validation/field"
)

// Environment variable names for the ethsign CLI
const (
	EnvPrivateKey = "ETHSIGN_PRIVATE_KEY"
	EnvChainID    = "ETHSIGN_CHAIN_ID"
	EnvVerbose    = "ETHSIGN_VERBOSE"
)

type ChainId uint64

const (
	ChainId_None            ChainId = 0
	ChainId_EthereumMainnet ChainId = 1
	ChainId_EthereumSepolia ChainId = 11155111
	ChainId_EthereumAnvil   ChainId = 31337
)

type ChainName string

const (
	ChainName_EthereumMainnet ChainName = "mainnet"
	ChainName_EthereumSepolia ChainName = "sepolia"
	ChainName_EthereumAnvil   ChainName = "devnet"
)

var ChainIdToName = map[ChainId]ChainName{
	ChainId_EthereumMainnet: ChainName_EthereumMainnet,
	ChainId_EthereumSepolia: ChainName_EthereumSepolia,
	ChainId_EthereumAnvil:   ChainName_EthereumAnvil,
}
var ChainNameToId = map[ChainName]ChainId{
	ChainName_EthereumMainnet: ChainId_EthereumMainnet,
	ChainName_EthereumSepolia: ChainId_EthereumSepolia,
	ChainName_EthereumAnvil:   ChainId_EthereumAnvil,
}

// ParseChainId accepts a decimal chain id or a well-known chain name.
// An empty string means no chain id.
func ParseChainId(s string) (ChainId, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return ChainId_None, nil
	}
	if id, ok := ChainNameToId[ChainName(strings.ToLower(s))]; ok {
		return id, nil
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %q: expected a number or one of %s", s, GetSupportedChainIDsString())
	}
	if id > transaction.MaxChainId {
		return 0, fmt.Errorf("chain id %d exceeds %d", id, uint64(transaction.MaxChainId))
	}
	return ChainId(id), nil
}

// GetSupportedChainIDsString returns well-known chain IDs as strings for CLI help
func GetSupportedChainIDsString() string {
	return fmt.Sprintf("%d (mainnet), %d (sepolia), %d (devnet)",
		ChainId_EthereumMainnet, ChainId_EthereumSepolia, ChainId_EthereumAnvil)
}

// SignerConfig holds the key and chain a signer signs for. ChainId 0 signs
// without EIP-155 replay protection.
type SignerConfig struct {
	PrivateKey string  `json:"privateKey" yaml:"privateKey"`
	ChainId    ChainId `json:"chainId" yaml:"chainId"`
}

func (sc *SignerConfig) Validate() error {
	var allErrors field.ErrorList
	if sc.PrivateKey == "" {
		allErrors = append(allErrors, field.Required(field.NewPath("privateKey"), "privateKey is required"))
	} else if _, err := sc.PrivateKeyBytes(); err != nil {
		allErrors = append(allErrors, field.Invalid(field.NewPath("privateKey"), "<redacted>", err.Error()))
	}
	if len(allErrors) > 0 {
		return allErrors.ToAggregate()
	}
	return nil
}

// PrivateKeyBytes decodes PrivateKey, with or without 0x prefix, and checks
// it is a valid secp256k1 scalar.
func (sc *SignerConfig) PrivateKeyBytes() ([]byte, error) {
	key := sc.PrivateKey
	if !strings.HasPrefix(key, "0x") && !strings.HasPrefix(key, "0X") {
		key = "0x" + key
	}
	b, err := hexutil.Decode(key)
	if err != nil {
		return nil, fmt.Errorf("private key is not valid hex: %w", err)
	}
	if _, err := crypto.S256().PublicKey(b); err != nil {
		return nil, err
	}
	return b, nil
}
