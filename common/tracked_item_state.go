package common

import (
	"fmt"
	"strings"
	"time"
)

const (
	SwapProviderOneClick = "oneClick"
)

type LifecycleEventType string

const (
	LifecycleEventCompleted LifecycleEventType = "completed"
	LifecycleEventFailed    LifecycleEventType = "failed"
)

type HashFillResult int

const (
	HashFillUnchanged HashFillResult = iota
	HashFillFilled
	HashFillInconsistent
)

func (r HashFillResult) String() string {
	switch r {
	case HashFillUnchanged:
		return "unchanged"
	case HashFillFilled:
		return "filled"
	case HashFillInconsistent:
		return "inconsistent"
	default:
		return "unknown"
	}
}

// LifecycleEventName returns names like bridgeTransactionComplete or swapTransactionFailed.
func LifecycleEventName(kind ItemKind, event LifecycleEventType) string {
	suffix := "Complete"
	if event == LifecycleEventFailed {
		suffix = "Failed"
	}

	return fmt.Sprintf("%sTransaction%s", kind, suffix)
}

func LifecycleEventFromStatus(status StatusValue) (LifecycleEventType, bool) {
	switch status {
	case StatusComplete:
		return LifecycleEventCompleted, true
	case StatusFailed:
		return LifecycleEventFailed, true
	default:
		return "", false
	}
}

func IsStatusTransitionPossible(itemID TrackedItemID, oldStatus, newStatus StatusValue) error {
	isInvalidTransition := false

	switch oldStatus {
	case StatusComplete, StatusFailed:
		isInvalidTransition = oldStatus != newStatus
	case StatusPending, StatusUnknown, "":
		isInvalidTransition = !newStatus.IsValid()
	default:
		isInvalidTransition = true
	}

	if isInvalidTransition {
		return fmt.Errorf("HistoryRecord (%s) invalid transition %s -> %s", itemID, oldStatus, newStatus)
	}

	return nil
}

// FillSourceTxHash sets the source chain hash if the record does not have one yet.
// An already recorded hash is authoritative and is never replaced.
func FillSourceTxHash(record HistoryRecord, txHash string) (HistoryRecord, HashFillResult) {
	if txHash == "" {
		return record, HashFillUnchanged
	}

	current := record.Status.SrcChain.TxHash
	if current == "" {
		record.Status.SrcChain.TxHash = txHash
		if record.Status.SrcChain.ChainID == 0 {
			record.Status.SrcChain.ChainID = record.Quote.SrcChainID
		}

		return record, HashFillFilled
	}

	if strings.EqualFold(current, txHash) {
		return record, HashFillUnchanged
	}

	return record, HashFillInconsistent
}

// MergeStatus applies a status returned by the status service to the record.
// The second return value is true only when the record moves from a non-terminal to a terminal status.
func MergeStatus(record HistoryRecord, envelope StatusEnvelope, now time.Time) (HistoryRecord, bool, error) {
	if err := IsStatusTransitionPossible(record.ItemID, record.Status.Status, envelope.Status); err != nil {
		return record, false, err
	}

	wasTerminal := record.IsTerminal()

	record.Status.Status = envelope.Status

	if record.Status.SrcChain.ChainID == 0 {
		record.Status.SrcChain.ChainID = envelope.SrcChain.ChainID
	}

	if record.Status.SrcChain.TxHash == "" {
		record.Status.SrcChain.TxHash = envelope.SrcChain.TxHash
	}

	if envelope.SrcChain.Amount != "" {
		record.Status.SrcChain.Amount = envelope.SrcChain.Amount
	}

	if envelope.DestChain != nil {
		destChain := *envelope.DestChain
		record.Status.DestChain = &destChain
	}

	transitioned := !wasTerminal && record.IsTerminal()
	if transitioned && record.CompletionTime == nil {
		completionTime := now
		record.CompletionTime = &completionTime
	}

	return record, transitioned, nil
}

func IsStatusChanged(oldRecord, newRecord HistoryRecord) bool {
	if oldRecord.Status.Status != newRecord.Status.Status ||
		oldRecord.Status.SrcChain != newRecord.Status.SrcChain {
		return true
	}

	if (oldRecord.Status.DestChain == nil) != (newRecord.Status.DestChain == nil) {
		return true
	}

	return oldRecord.Status.DestChain != nil && *oldRecord.Status.DestChain != *newRecord.Status.DestChain
}
