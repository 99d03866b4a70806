package common

import (
	"net/url"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

func IsValidURL(input string) bool {
	_, err := url.ParseRequestURI(input)
	return err == nil
}

// NormalizeAccount returns the checksummed form of EVM addresses, other addresses are returned trimmed
func NormalizeAccount(s string) string {
	s = strings.TrimSpace(s)
	if common.IsHexAddress(s) {
		return common.HexToAddress(s).Hex()
	}

	return s
}

func IsSameAccount(a, b string) bool {
	return NormalizeAccount(a) == NormalizeAccount(b)
}
