package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/hashicorp/go-hclog"
)

var ErrAlreadyTracked = errors.New("item is already tracked")

type StatusTrackerImpl struct {
	store     core.HistoryStore
	registry  *PollRegistryImpl
	scheduler *PollSchedulerImpl
	publisher *LifecyclePublisherImpl
	ledger    core.TransactionLedger
	identity  core.IdentityProvider
	timeNow   func() time.Time
	logger    hclog.Logger
}

var _ core.StatusTracker = (*StatusTrackerImpl)(nil)

func NewStatusTracker(
	config core.TrackerConfig,
	store core.HistoryStore,
	ledger core.TransactionLedger,
	fetcher core.StatusFetcher,
	identity core.IdentityProvider,
	subscribers []core.LifecycleSubscriber,
	logger hclog.Logger,
) *StatusTrackerImpl {
	publisher := NewLifecyclePublisher(subscribers, logger.Named("lifecycle_publisher"))
	registry := NewPollRegistry(logger.Named("poll_registry"))
	reconciler := NewStatusReconciler(store, ledger, fetcher, publisher, logger.Named("status_reconciler"))
	scheduler := NewPollScheduler(
		registry, reconciler, NewResultObserver(logger.Named("reconcile_results")),
		config.PollInterval(), logger.Named("poll_scheduler"))

	return &StatusTrackerImpl{
		store:     store,
		registry:  registry,
		scheduler: scheduler,
		publisher: publisher,
		ledger:    ledger,
		identity:  identity,
		timeNow:   time.Now,
		logger:    logger,
	}
}

// Start runs the scheduler, the lifecycle dispatcher and the ledger listener until ctx is done
func (t *StatusTrackerImpl) Start(ctx context.Context) {
	go t.publisher.Start(ctx)
	go t.scheduler.Start(ctx)
	go t.listenLedger(ctx)
}

func (t *StatusTrackerImpl) Dispose() error {
	return t.publisher.Dispose()
}

// StartTracking stores a new record and begins polling it unless it is already terminal
func (t *StatusTrackerImpl) StartTracking(record common.HistoryRecord) error {
	now := t.timeNow().UTC()

	if record.Status.Status == "" {
		record.Status.Status = common.StatusPending
	}

	if record.StartTime.IsZero() {
		record.StartTime = now
	}

	if record.IsTerminal() && record.CompletionTime == nil {
		record.CompletionTime = &now
	}

	if record.Status.SrcChain.ChainID == 0 {
		record.Status.SrcChain.ChainID = record.Quote.SrcChainID
	}

	if err := t.store.Insert(record); err != nil {
		if errors.Is(err, core.ErrHistoryRecordExists) {
			return fmt.Errorf("%w: %s", ErrAlreadyTracked, record.ItemID)
		}

		return fmt.Errorf("failed to start tracking %s. err: %w", record.ItemID, err)
	}

	t.logger.Info("Tracking started", "itemID", record.ItemID, "kind", record.Kind(),
		"account", record.Account, "status", record.Status.Status)

	if !record.IsTerminal() {
		t.scheduler.StartItem(record.ItemID)
	}

	return nil
}

// Resume starts a poll for every non terminal record without a live token
// and returns how many polls were started
func (t *StatusTrackerImpl) Resume() int {
	records := map[string]common.HistoryRecord{}

	for _, record := range t.store.All() {
		if !record.IsTerminal() {
			records[record.ItemID] = record
		}
	}

	started := 0

	for _, itemID := range sortedItemIDs(records) {
		if t.scheduler.StartItem(itemID) {
			started++
		}
	}

	t.logger.Info("Polling resumed", "pending", len(records), "started", started)

	return started
}

func (t *StatusTrackerImpl) GetHistoryForAccount(account string) map[string]common.HistoryRecord {
	return t.store.GetForAccount(account)
}

func (t *StatusTrackerImpl) GetHistoryItem(itemID string) (common.HistoryRecord, bool) {
	return t.store.Get(itemID)
}

func (t *StatusTrackerImpl) ActivePolls() int {
	return t.scheduler.ActiveItems()
}

func (t *StatusTrackerImpl) listenLedger(ctx context.Context) {
	if t.ledger == nil {
		return
	}

	updatesCh := t.ledger.NotifyOnTransactionUpdate()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updatesCh:
			if !ok {
				return
			}

			if t.registry.HasToken(update.ItemID) {
				t.logger.Debug("Ledger transaction updated", "itemID", update.ItemID, "hash", update.TxHash)

				t.scheduler.Kick(update.ItemID)
			}
		}
	}
}
