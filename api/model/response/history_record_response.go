package response

import (
	"sort"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
)

type HistoryRecordResponse struct {
	ItemID         string                  `json:"itemId"`
	Kind           common.ItemKind         `json:"kind"`
	Account        string                  `json:"account"`
	Status         common.StatusValue      `json:"status"`
	IsTerminal     bool                    `json:"isTerminal"`
	SrcChainID     common.ChainID          `json:"srcChainId"`
	SrcTxHash      string                  `json:"srcTxHash,omitempty"`
	DestChainID    common.ChainID          `json:"destChainId"`
	DestTxHash     string                  `json:"destTxHash,omitempty"`
	StartTime      time.Time               `json:"startTime"`
	CompletionTime *time.Time              `json:"completionTime,omitempty"`
	Quote          common.Quote            `json:"quote"`
	Bridge         *common.BridgeDetails   `json:"bridge,omitempty"`
	Swap           *common.SwapDetails     `json:"swap,omitempty"`
	Pricing        *common.PricingSnapshot `json:"pricing,omitempty"`

	EstimatedProcessingTimeSec uint64 `json:"estimatedProcessingTimeInSeconds,omitempty"`
	HasApprovalTx              bool   `json:"hasApprovalTx,omitempty"`
} // @name HistoryRecordResponse

func NewHistoryRecordResponse(record common.HistoryRecord) *HistoryRecordResponse {
	result := &HistoryRecordResponse{
		ItemID:                     record.ItemID,
		Kind:                       record.Kind(),
		Account:                    record.Account,
		Status:                     record.Status.Status,
		IsTerminal:                 record.IsTerminal(),
		SrcChainID:                 record.Quote.SrcChainID,
		SrcTxHash:                  record.Status.SrcChain.TxHash,
		DestChainID:                record.Quote.DestChainID,
		StartTime:                  record.StartTime,
		CompletionTime:             record.CompletionTime,
		Quote:                      record.Quote,
		Pricing:                    record.Pricing,
		EstimatedProcessingTimeSec: record.EstimatedProcessingTimeSec,
		HasApprovalTx:              record.HasApprovalTx,
	}

	if record.Status.DestChain != nil {
		result.DestTxHash = record.Status.DestChain.TxHash
	}

	switch d := record.Details.(type) {
	case common.BridgeDetails:
		result.Bridge = &d
	case common.SwapDetails:
		result.Swap = &d
	}

	return result
}

type AccountHistoryResponse struct {
	Account string                   `json:"account"`
	Items   []*HistoryRecordResponse `json:"items"`
} // @name AccountHistoryResponse

// NewAccountHistoryResponse orders items from newest to oldest
func NewAccountHistoryResponse(account string, records map[string]common.HistoryRecord) *AccountHistoryResponse {
	items := make([]*HistoryRecordResponse, 0, len(records))

	for _, record := range records {
		items = append(items, NewHistoryRecordResponse(record))
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].StartTime.Equal(items[j].StartTime) {
			return items[i].ItemID < items[j].ItemID
		}

		return items[i].StartTime.After(items[j].StartTime)
	})

	return &AccountHistoryResponse{
		Account: account,
		Items:   items,
	}
}

type WipeResponse struct {
	Removed int `json:"removed"`
} // @name WipeResponse

type TrackingResponse struct {
	ItemID  string `json:"itemId"`
	Polling bool   `json:"polling"`
} // @name TrackingResponse
