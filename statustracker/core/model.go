package core

import (
	"fmt"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"go.uber.org/atomic"
)

type ReconcileOutcome string

const (
	ReconcileOutcomeMissing     ReconcileOutcome = "missing"
	ReconcileOutcomeHashPending ReconcileOutcome = "hash_pending"
	ReconcileOutcomeFetchFailed ReconcileOutcome = "fetch_failed"
	ReconcileOutcomeUnchanged   ReconcileOutcome = "unchanged"
	ReconcileOutcomeUpdated     ReconcileOutcome = "updated"
	ReconcileOutcomeTerminal    ReconcileOutcome = "terminal"
)

type SoftFailureKind string

const (
	SoftFailureTransientFetch   SoftFailureKind = "transient_fetch"
	SoftFailureInconsistentHash SoftFailureKind = "inconsistent_hash"
	SoftFailurePersistence      SoftFailureKind = "persistence"
	SoftFailureInvalidResponse  SoftFailureKind = "invalid_response"
)

type SoftFailure struct {
	Kind SoftFailureKind
	Err  error
}

func (sf *SoftFailure) Error() string {
	return fmt.Sprintf("%s: %v", sf.Kind, sf.Err)
}

func (sf *SoftFailure) Unwrap() error {
	return sf.Err
}

type ReconcileResult struct {
	ItemID      string
	Kind        common.ItemKind
	Outcome     ReconcileOutcome
	Status      common.StatusValue
	SoftFailure *SoftFailure
}

// IsTerminal reports whether polling for the item should stop
func (r ReconcileResult) IsTerminal() bool {
	return r.Outcome == ReconcileOutcomeTerminal || r.Outcome == ReconcileOutcomeMissing
}

// PollToken is the handle of one recurring poll. Only the registry stops it
// and only the scheduler loop begins runs on it.
type PollToken struct {
	ID       string
	ItemID   string
	Interval time.Duration
	PollFn   PollFn

	stopped  atomic.Bool
	inFlight atomic.Bool
	lastRun  atomic.Time
}

func NewPollToken(id string, itemID string, pollFn PollFn, interval time.Duration) *PollToken {
	return &PollToken{
		ID:       id,
		ItemID:   itemID,
		Interval: interval,
		PollFn:   pollFn,
	}
}

// TryBeginRun marks the token as in flight if it is live, idle and due at now.
// A token is due once half of its interval has passed since the last run so that
// a forced run shortly before a tick absorbs that tick. force skips the due check.
func (t *PollToken) TryBeginRun(now time.Time, force bool) bool {
	if t.stopped.Load() {
		return false
	}

	if !force {
		if lastRun := t.lastRun.Load(); !lastRun.IsZero() && now.Sub(lastRun) < t.Interval/2 {
			return false
		}
	}

	if !t.inFlight.CompareAndSwap(false, true) {
		return false
	}

	if t.stopped.Load() {
		t.inFlight.Store(false)

		return false
	}

	t.lastRun.Store(now)

	return true
}

func (t *PollToken) EndRun() {
	t.inFlight.Store(false)
}

func (t *PollToken) MarkStopped() {
	t.stopped.Store(true)
}

func (t *PollToken) IsStopped() bool {
	return t.stopped.Load()
}

func (t *PollToken) IsInFlight() bool {
	return t.inFlight.Load()
}

type LifecycleEvent struct {
	Name        string                    `json:"name"`
	Kind        common.ItemKind           `json:"kind"`
	Event       common.LifecycleEventType `json:"event"`
	Record      common.HistoryRecord      `json:"record"`
	PublishedAt time.Time                 `json:"publishedAt"`
}

type TransactionUpdate struct {
	ItemID  string         `json:"itemId"`
	ChainID common.ChainID `json:"chainId"`
	TxHash  string         `json:"txHash"`
}

type LedgerTransaction struct {
	ItemID    string         `json:"itemId"`
	ChainID   common.ChainID `json:"chainId"`
	TxHash    string         `json:"txHash"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

func (tx *LedgerTransaction) ToDBKey() []byte {
	return []byte(tx.ItemID)
}

type NetworkClientConfiguration struct {
	ChainID string `json:"chainId"`
	RPCURL  string `json:"rpcUrl,omitempty"`
}

type NetworkClient struct {
	ID            string                     `json:"id"`
	Configuration NetworkClientConfiguration `json:"configuration"`
}

type StatusRequest struct {
	Kind           common.ItemKind
	BridgeID       string
	Bridge         string
	SrcChainID     common.ChainID
	DestChainID    common.ChainID
	Quote          common.Quote
	Refuel         bool
	SrcTxHash      string
	Provider       string
	DepositAddress string
}

type WipeOptions struct {
	IgnoreNetwork bool
	// TargetChainID in any form accepted by common.ParseChainID, empty means the selected network
	TargetChainID string
}
