package request

import (
	"fmt"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
)

type StartTrackingRequest struct {
	ItemID                     string                  `json:"itemId"`
	Kind                       common.ItemKind         `json:"kind"`
	Account                    string                  `json:"account"`
	Quote                      common.Quote            `json:"quote"`
	SrcTxHash                  string                  `json:"srcTxHash"`
	Bridge                     *common.BridgeDetails   `json:"bridge"`
	Swap                       *common.SwapDetails     `json:"swap"`
	StartTime                  *time.Time              `json:"startTime"`
	EstimatedProcessingTimeSec uint64                  `json:"estimatedProcessingTimeInSeconds"`
	Pricing                    *common.PricingSnapshot `json:"pricing"`
	HasApprovalTx              bool                    `json:"hasApprovalTx"`
} // @name StartTrackingRequest

func (r StartTrackingRequest) ToHistoryRecord(now time.Time) (common.HistoryRecord, error) {
	record := common.HistoryRecord{
		ItemID:    r.ItemID,
		Account:   common.NormalizeAccount(r.Account),
		Quote:     r.Quote,
		StartTime: now,
		Status: common.StatusEnvelope{
			Status: common.StatusPending,
			SrcChain: common.ChainStatus{
				ChainID: r.Quote.SrcChainID,
			},
		},
		EstimatedProcessingTimeSec: r.EstimatedProcessingTimeSec,
		Pricing:                    r.Pricing,
		HasApprovalTx:              r.HasApprovalTx,
	}

	if r.StartTime != nil {
		record.StartTime = *r.StartTime
	}

	switch r.Kind {
	case common.ItemKindBridge:
		if r.Swap != nil {
			return record, fmt.Errorf("swap details provided for bridge item %s", r.ItemID)
		}

		details := common.BridgeDetails{}
		if r.Bridge != nil {
			details = *r.Bridge
		}

		record.Details = details
	case common.ItemKindSwap:
		if r.Bridge != nil {
			return record, fmt.Errorf("bridge details provided for swap item %s", r.ItemID)
		}

		details := common.SwapDetails{}
		if r.Swap != nil {
			details = *r.Swap
		}

		record.Details = details
	default:
		return record, fmt.Errorf("unknown item kind: %s", r.Kind)
	}

	if r.SrcTxHash != "" {
		txHash, err := common.NormalizeTxHash(r.Quote.SrcChainID, r.SrcTxHash)
		if err != nil {
			return record, err
		}

		record.Status.SrcChain.TxHash = txHash
	}

	return record, record.Validate()
}
