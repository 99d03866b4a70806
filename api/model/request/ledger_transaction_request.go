package request

import "github.com/Ethernal-Tech/bridge-status-tracker/common"

type LedgerTransactionRequest struct {
	ItemID  string         `json:"itemId"`
	ChainID common.ChainID `json:"chainId"`
	TxHash  string         `json:"txHash"`
} // @name LedgerTransactionRequest

type SelectIdentityRequest struct {
	Account         string `json:"account"`
	NetworkClientID string `json:"networkClientId"`
} // @name SelectIdentityRequest
