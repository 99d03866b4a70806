package common

import (
	"fmt"
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/gagliardetto/solana-go"
)

// NormalizeTxHash validates a source or destination transaction hash for the given chain.
// EVM hashes are returned as lower case 0x prefixed hex, solana signatures are returned as base58.
func NormalizeTxHash(chainID ChainID, txHash string) (string, error) {
	txHash = strings.TrimSpace(txHash)
	if txHash == "" {
		return "", fmt.Errorf("empty tx hash")
	}

	if chainID.IsSolana() {
		sig, err := solana.SignatureFromBase58(txHash)
		if err != nil {
			return "", fmt.Errorf("invalid solana signature %s: %w", txHash, err)
		}

		return sig.String(), nil
	}

	if !strings.HasPrefix(txHash, "0x") && !strings.HasPrefix(txHash, "0X") {
		txHash = "0x" + txHash
	}

	bytes, err := hexutil.Decode(strings.ToLower(txHash))
	if err != nil {
		return "", fmt.Errorf("invalid tx hash %s: %w", txHash, err)
	}

	if len(bytes) != ethcommon.HashLength {
		return "", fmt.Errorf("invalid tx hash length %d for %s", len(bytes), txHash)
	}

	return ethcommon.BytesToHash(bytes).Hex(), nil
}
