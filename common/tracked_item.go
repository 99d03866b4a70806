package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type TrackedItemID = string

type ItemKind string

const (
	ItemKindBridge ItemKind = "bridge"
	ItemKindSwap   ItemKind = "swap"
)

var AllItemKinds = []ItemKind{ItemKindBridge, ItemKindSwap}

type StatusValue string

const (
	StatusPending  StatusValue = "PENDING"
	StatusComplete StatusValue = "COMPLETE"
	StatusFailed   StatusValue = "FAILED"
	StatusUnknown  StatusValue = "UNKNOWN"
)

func (s StatusValue) IsTerminal() bool {
	return s == StatusComplete || s == StatusFailed
}

func (s StatusValue) IsValid() bool {
	switch s {
	case StatusPending, StatusComplete, StatusFailed, StatusUnknown:
		return true
	default:
		return false
	}
}

type Asset struct {
	ChainID  ChainID `json:"chainId"`
	Address  string  `json:"address"`
	Symbol   string  `json:"symbol"`
	Decimals uint8   `json:"decimals"`
}

// Quote is the snapshot of the terms agreed when the operation was initiated.
// It is never mutated after the record is created.
type Quote struct {
	RequestID       string   `json:"requestId"`
	BridgeID        string   `json:"bridgeId"`
	Bridges         []string `json:"bridges"`
	SrcChainID      ChainID  `json:"srcChainId"`
	DestChainID     ChainID  `json:"destChainId"`
	SrcAsset        Asset    `json:"srcAsset"`
	DestAsset       Asset    `json:"destAsset"`
	SrcTokenAmount  string   `json:"srcTokenAmount"`
	DestTokenAmount string   `json:"destTokenAmount"`
}

type ChainStatus struct {
	ChainID ChainID `json:"chainId"`
	TxHash  string  `json:"txHash,omitempty"`
	Amount  string  `json:"amount,omitempty"`
}

type StatusEnvelope struct {
	Status    StatusValue  `json:"status"`
	SrcChain  ChainStatus  `json:"srcChain"`
	DestChain *ChainStatus `json:"destChain,omitempty"`
}

type PricingSnapshot struct {
	Amount          string `json:"amount"`
	ValueInCurrency string `json:"valueInCurrency,omitempty"`
	UsdAmount       string `json:"usdAmount,omitempty"`
}

// ItemDetails is implemented only by BridgeDetails and SwapDetails.
type ItemDetails interface {
	Kind() ItemKind
	isItemDetails()
}

type BridgeDetails struct {
	Bridge string `json:"bridge"`
	Refuel bool   `json:"refuel"`
}

func (BridgeDetails) Kind() ItemKind { return ItemKindBridge }
func (BridgeDetails) isItemDetails() {}

type SwapDetails struct {
	Provider       string `json:"provider,omitempty"`
	DepositAddress string `json:"depositAddress,omitempty"`
}

func (SwapDetails) Kind() ItemKind { return ItemKindSwap }
func (SwapDetails) isItemDetails() {}

type HistoryRecord struct {
	ItemID         TrackedItemID
	Account        string
	Quote          Quote
	StartTime      time.Time
	Status         StatusEnvelope
	CompletionTime *time.Time
	Details        ItemDetails

	EstimatedProcessingTimeSec uint64
	Pricing                    *PricingSnapshot
	HasApprovalTx              bool
}

func (r HistoryRecord) Kind() ItemKind {
	if r.Details == nil {
		return ""
	}

	return r.Details.Kind()
}

func (r HistoryRecord) IsTerminal() bool {
	return r.Status.Status.IsTerminal()
}

func (r HistoryRecord) ToDBKey() []byte {
	return []byte(r.ItemID)
}

func (r HistoryRecord) Validate() error {
	if r.ItemID == "" {
		return errors.New("item id is empty")
	}

	if r.Account == "" {
		return fmt.Errorf("account is empty for %s", r.ItemID)
	}

	switch d := r.Details.(type) {
	case BridgeDetails:
	case SwapDetails:
		if d.Provider == SwapProviderOneClick && d.DepositAddress == "" {
			return fmt.Errorf("deposit address is required for %s swap %s", d.Provider, r.ItemID)
		}
	case nil:
		return fmt.Errorf("item kind is not set for %s", r.ItemID)
	default:
		return fmt.Errorf("unsupported item details %T for %s", d, r.ItemID)
	}

	if r.Status.Status != "" && !r.Status.Status.IsValid() {
		return fmt.Errorf("invalid status %s for %s", r.Status.Status, r.ItemID)
	}

	if r.IsTerminal() != (r.CompletionTime != nil) {
		return fmt.Errorf("completion time of %s does not match status %s", r.ItemID, r.Status.Status)
	}

	return nil
}

type historyRecordJSON struct {
	ItemID                     TrackedItemID    `json:"itemId"`
	Kind                       ItemKind         `json:"kind"`
	Account                    string           `json:"account"`
	Quote                      Quote            `json:"quote"`
	StartTime                  time.Time        `json:"startTime"`
	Status                     StatusEnvelope   `json:"status"`
	CompletionTime             *time.Time       `json:"completionTime,omitempty"`
	Bridge                     *BridgeDetails   `json:"bridge,omitempty"`
	Swap                       *SwapDetails     `json:"swap,omitempty"`
	EstimatedProcessingTimeSec uint64           `json:"estimatedProcessingTimeInSeconds,omitempty"`
	Pricing                    *PricingSnapshot `json:"pricing,omitempty"`
	HasApprovalTx              bool             `json:"hasApprovalTx,omitempty"`
}

func (r HistoryRecord) MarshalJSON() ([]byte, error) {
	value := historyRecordJSON{
		ItemID:                     r.ItemID,
		Kind:                       r.Kind(),
		Account:                    r.Account,
		Quote:                      r.Quote,
		StartTime:                  r.StartTime,
		Status:                     r.Status,
		CompletionTime:             r.CompletionTime,
		EstimatedProcessingTimeSec: r.EstimatedProcessingTimeSec,
		Pricing:                    r.Pricing,
		HasApprovalTx:              r.HasApprovalTx,
	}

	switch d := r.Details.(type) {
	case BridgeDetails:
		value.Bridge = &d
	case SwapDetails:
		value.Swap = &d
	case nil:
	default:
		return nil, fmt.Errorf("unsupported item details %T", d)
	}

	return json.Marshal(value)
}

func (r *HistoryRecord) UnmarshalJSON(data []byte) error {
	var value historyRecordJSON

	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	*r = HistoryRecord{
		ItemID:                     value.ItemID,
		Account:                    value.Account,
		Quote:                      value.Quote,
		StartTime:                  value.StartTime,
		Status:                     value.Status,
		CompletionTime:             value.CompletionTime,
		EstimatedProcessingTimeSec: value.EstimatedProcessingTimeSec,
		Pricing:                    value.Pricing,
		HasApprovalTx:              value.HasApprovalTx,
	}

	switch value.Kind {
	case ItemKindBridge:
		details := BridgeDetails{}
		if value.Bridge != nil {
			details = *value.Bridge
		}

		r.Details = details
	case ItemKindSwap:
		details := SwapDetails{}
		if value.Swap != nil {
			details = *value.Swap
		}

		r.Details = details
	default:
		return fmt.Errorf("unknown item kind: %s", value.Kind)
	}

	return nil
}
