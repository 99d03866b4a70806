package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/hashicorp/go-hclog"
)

var errInvalidStatusResponse = errors.New("invalid status response")

type StatusReconcilerImpl struct {
	store     core.HistoryStore
	ledger    core.TransactionLedger
	fetcher   core.StatusFetcher
	publisher core.LifecyclePublisher
	timeNow   func() time.Time
	logger    hclog.Logger
}

var _ core.StatusReconciler = (*StatusReconcilerImpl)(nil)

func NewStatusReconciler(
	store core.HistoryStore,
	ledger core.TransactionLedger,
	fetcher core.StatusFetcher,
	publisher core.LifecyclePublisher,
	logger hclog.Logger,
) *StatusReconcilerImpl {
	return &StatusReconcilerImpl{
		store:     store,
		ledger:    ledger,
		fetcher:   fetcher,
		publisher: publisher,
		timeNow:   time.Now,
		logger:    logger,
	}
}

func (r *StatusReconcilerImpl) Reconcile(ctx context.Context, itemID string) core.ReconcileResult {
	result := core.ReconcileResult{ItemID: itemID}

	record, exists := r.store.Get(itemID)
	if !exists {
		result.Outcome = core.ReconcileOutcomeMissing

		return result
	}

	result.Kind = record.Kind()
	result.Status = record.Status.Status

	if record.IsTerminal() {
		result.Outcome = core.ReconcileOutcomeTerminal

		return result
	}

	record, ok := r.resolveSourceTxHash(record, &result)
	if !ok {
		return result
	}

	request, err := newStatusRequest(record)
	if err != nil {
		result.Outcome = core.ReconcileOutcomeFetchFailed
		result.SoftFailure = &core.SoftFailure{Kind: core.SoftFailureInvalidResponse, Err: err}

		return result
	}

	envelope, err := r.fetcher.FetchStatus(ctx, request)
	if err != nil {
		result.Outcome = core.ReconcileOutcomeFetchFailed
		result.SoftFailure = &core.SoftFailure{Kind: core.SoftFailureTransientFetch, Err: err}

		return result
	}

	if envelope == nil || !envelope.Status.IsValid() {
		result.Outcome = core.ReconcileOutcomeFetchFailed
		result.SoftFailure = &core.SoftFailure{
			Kind: core.SoftFailureInvalidResponse,
			Err:  fmt.Errorf("%w for %s", errInvalidStatusResponse, itemID),
		}

		return result
	}

	return r.mergeStatus(itemID, *envelope, result)
}

// resolveSourceTxHash fills the source hash from the ledger. It returns false when
// reconciliation can not continue in this tick.
func (r *StatusReconcilerImpl) resolveSourceTxHash(
	record common.HistoryRecord, result *core.ReconcileResult,
) (common.HistoryRecord, bool) {
	ledgerHash, found := r.ledger.GetTransactionHash(record.ItemID)

	if currentHash := record.Status.SrcChain.TxHash; currentHash != "" {
		if found && ledgerHash != "" && !strings.EqualFold(currentHash, ledgerHash) {
			result.SoftFailure = newInconsistentHashFailure(record.ItemID, currentHash, ledgerHash)
		}

		return record, true
	}

	if !found || ledgerHash == "" {
		result.Outcome = core.ReconcileOutcomeHashPending

		return record, false
	}

	fillResult := common.HashFillUnchanged

	updated, exists, err := r.store.Update(record.ItemID,
		func(current common.HistoryRecord) (common.HistoryRecord, bool, error) {
			var filled common.HistoryRecord

			filled, fillResult = common.FillSourceTxHash(current, ledgerHash)

			return filled, fillResult == common.HashFillFilled, nil
		})
	if !exists {
		result.Outcome = core.ReconcileOutcomeMissing

		return record, false
	} else if err != nil {
		result.Outcome = core.ReconcileOutcomeHashPending
		result.SoftFailure = &core.SoftFailure{Kind: core.SoftFailurePersistence, Err: err}

		return record, false
	}

	if fillResult == common.HashFillInconsistent {
		result.SoftFailure = newInconsistentHashFailure(
			record.ItemID, updated.Status.SrcChain.TxHash, ledgerHash)
	} else if fillResult == common.HashFillFilled {
		r.logger.Debug("Source tx hash resolved", "itemID", record.ItemID, "hash", ledgerHash)
	}

	return updated, true
}

func (r *StatusReconcilerImpl) mergeStatus(
	itemID string, envelope common.StatusEnvelope, result core.ReconcileResult,
) core.ReconcileResult {
	var (
		transitioned bool
		changed      bool
	)

	updated, exists, err := r.store.Update(itemID,
		func(current common.HistoryRecord) (common.HistoryRecord, bool, error) {
			// terminal records are never rewritten
			if current.IsTerminal() {
				return current, false, nil
			}

			merged, isTransition, err := common.MergeStatus(current, envelope, r.timeNow())
			if err != nil {
				return current, false, err
			}

			transitioned = isTransition
			changed = common.IsStatusChanged(current, merged)

			return merged, changed, nil
		})
	if !exists {
		// wiped while the status was being fetched
		result.Outcome = core.ReconcileOutcomeMissing

		return result
	}

	result.Status = updated.Status.Status

	if err != nil {
		result.Outcome = core.ReconcileOutcomeFetchFailed
		result.SoftFailure = &core.SoftFailure{Kind: core.SoftFailurePersistence, Err: err}

		return result
	}

	switch {
	case transitioned:
		event, _ := common.LifecycleEventFromStatus(updated.Status.Status)

		r.publisher.Publish(updated.Kind(), event, updated)

		result.Outcome = core.ReconcileOutcomeTerminal
	case updated.IsTerminal():
		result.Outcome = core.ReconcileOutcomeTerminal
	case changed:
		result.Outcome = core.ReconcileOutcomeUpdated
	default:
		result.Outcome = core.ReconcileOutcomeUnchanged
	}

	return result
}

func newStatusRequest(record common.HistoryRecord) (core.StatusRequest, error) {
	request := core.StatusRequest{
		Kind:        record.Kind(),
		BridgeID:    record.Quote.BridgeID,
		SrcChainID:  record.Quote.SrcChainID,
		DestChainID: record.Quote.DestChainID,
		Quote:       record.Quote,
		SrcTxHash:   record.Status.SrcChain.TxHash,
	}

	switch details := record.Details.(type) {
	case common.BridgeDetails:
		request.Bridge = details.Bridge
		request.Refuel = details.Refuel
	case common.SwapDetails:
		request.Provider = details.Provider
		request.DepositAddress = details.DepositAddress
	default:
		return request, fmt.Errorf("unsupported details %T for %s", record.Details, record.ItemID)
	}

	if request.Bridge == "" && len(record.Quote.Bridges) > 0 {
		request.Bridge = record.Quote.Bridges[0]
	}

	return request, nil
}

func newInconsistentHashFailure(itemID, recordedHash, ledgerHash string) *core.SoftFailure {
	return &core.SoftFailure{
		Kind: core.SoftFailureInconsistentHash,
		Err: fmt.Errorf("ledger hash %s differs from recorded hash %s for %s",
			ledgerHash, recordedHash, itemID),
	}
}
