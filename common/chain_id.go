package common

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// ChainID is the numeric chain id used in quotes and status responses.
type ChainID uint64

const (
	ChainIDEthereum  = ChainID(1)
	ChainIDOptimism  = ChainID(10)
	ChainIDBSC       = ChainID(56)
	ChainIDPolygon   = ChainID(137)
	ChainIDBase      = ChainID(8453)
	ChainIDArbitrum  = ChainID(42161)
	ChainIDAvalanche = ChainID(43114)
	ChainIDLinea     = ChainID(59144)
	ChainIDSolana    = ChainID(1151111081099710)

	caipNamespaceEVM    = "eip155"
	caipNamespaceSolana = "solana"

	SolanaMainnetCaipReference = "5eykt4UsFv8P8NJdTREpY1vzqKqZKvdp"
)

func (c ChainID) ToHex() string {
	return hexutil.EncodeUint64(uint64(c))
}

func (c ChainID) ToCaip() string {
	if c.IsSolana() {
		return caipNamespaceSolana + ":" + SolanaMainnetCaipReference
	}

	return fmt.Sprintf("%s:%d", caipNamespaceEVM, uint64(c))
}

func (c ChainID) IsSolana() bool {
	return c == ChainIDSolana
}

func (c ChainID) String() string {
	return strconv.FormatUint(uint64(c), 10)
}

// ParseChainID accepts decimal ("137"), hex ("0x89") and CAIP-2 ("eip155:137", "solana:<ref>") chain ids.
func ParseChainID(value string) (ChainID, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty chain id")
	}

	if namespace, reference, found := strings.Cut(value, ":"); found {
		switch namespace {
		case caipNamespaceEVM:
			return ParseChainID(reference)
		case caipNamespaceSolana:
			if reference != SolanaMainnetCaipReference {
				return 0, fmt.Errorf("unsupported solana chain reference: %s", reference)
			}

			return ChainIDSolana, nil
		default:
			return 0, fmt.Errorf("unsupported chain namespace: %s", namespace)
		}
	}

	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		num, err := hexutil.DecodeUint64(strings.ToLower(value))
		if err != nil {
			return 0, fmt.Errorf("invalid hex chain id %s: %w", value, err)
		}

		return ChainID(num), nil
	}

	num, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid chain id %s: %w", value, err)
	}

	return ChainID(num), nil
}

// NormalizeHexChainID converts any supported chain id representation to the hex form used by network clients.
func NormalizeHexChainID(value string) (string, error) {
	chainID, err := ParseChainID(value)
	if err != nil {
		return "", err
	}

	return chainID.ToHex(), nil
}

func (c *ChainID) UnmarshalJSON(data []byte) error {
	var num uint64
	if err := json.Unmarshal(data, &num); err == nil {
		*c = ChainID(num)

		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return fmt.Errorf("chain id must be a number or a string: %w", err)
	}

	chainID, err := ParseChainID(str)
	if err != nil {
		return err
	}

	*c = chainID

	return nil
}
