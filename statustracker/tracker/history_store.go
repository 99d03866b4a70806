package tracker

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/hashicorp/go-hclog"
	"go.uber.org/atomic"
)

type historyPartitions map[common.ItemKind]map[string]common.HistoryRecord

type HistoryStoreImpl struct {
	db       core.HistoryDB
	lock     sync.Mutex
	snapshot atomic.Pointer[historyPartitions]
	logger   hclog.Logger
}

var _ core.HistoryStore = (*HistoryStoreImpl)(nil)

func NewHistoryStore(db core.HistoryDB, logger hclog.Logger) *HistoryStoreImpl {
	store := &HistoryStoreImpl{
		db:     db,
		logger: logger,
	}

	store.snapshot.Store(newHistoryPartitions())

	return store
}

// Load replaces the in memory snapshot with the persisted records
func (s *HistoryStoreImpl) Load() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	partitions := newHistoryPartitions()

	for _, kind := range common.AllItemKinds {
		records, err := s.db.GetAllHistoryRecords(kind)
		if err != nil {
			return fmt.Errorf("failed to load %s history records. err: %w", kind, err)
		}

		for _, record := range records {
			if err := record.Validate(); err != nil {
				s.logger.Warn("skipping invalid history record", "itemID", record.ItemID, "err", err)

				continue
			}

			(*partitions)[kind][record.ItemID] = *record
		}
	}

	s.snapshot.Store(partitions)

	s.logger.Debug("History loaded", "bridges", len((*partitions)[common.ItemKindBridge]),
		"swaps", len((*partitions)[common.ItemKindSwap]))

	return nil
}

// Insert stores a new record. It fails with core.ErrHistoryRecordExists if the id is already stored.
func (s *HistoryStoreImpl) Insert(record common.HistoryRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if _, exists := s.find(record.ItemID); exists {
		return fmt.Errorf("%w: %s", core.ErrHistoryRecordExists, record.ItemID)
	}

	if err := s.db.SaveHistoryRecord(&record); err != nil {
		return fmt.Errorf("failed to save history record %s. err: %w", record.ItemID, err)
	}

	s.replace(record.Kind(), func(partition map[string]common.HistoryRecord) {
		partition[record.ItemID] = record
	})

	return nil
}

func (s *HistoryStoreImpl) Upsert(record common.HistoryRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	kind := record.Kind()

	if existing, exists := s.find(record.ItemID); exists && existing.Kind() != kind {
		return fmt.Errorf("item %s is already tracked as %s", record.ItemID, existing.Kind())
	}

	if err := s.db.SaveHistoryRecord(&record); err != nil {
		return fmt.Errorf("failed to save history record %s. err: %w", record.ItemID, err)
	}

	s.replace(kind, func(partition map[string]common.HistoryRecord) {
		partition[record.ItemID] = record
	})

	return nil
}

// Update applies updateFn to the current record if it still exists.
// The second return value is false when the record is absent. On error the current record is returned.
func (s *HistoryStoreImpl) Update(
	itemID string, updateFn core.HistoryUpdateFn,
) (common.HistoryRecord, bool, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	current, exists := s.find(itemID)
	if !exists {
		return common.HistoryRecord{}, false, nil
	}

	updated, write, err := updateFn(current)
	if err != nil {
		return current, true, err
	}

	if !write {
		return current, true, nil
	}

	if updated.ItemID != current.ItemID || updated.Kind() != current.Kind() {
		return current, true, fmt.Errorf("update of %s changed its identity", itemID)
	}

	if err := s.db.SaveHistoryRecord(&updated); err != nil {
		return current, true, fmt.Errorf("failed to save history record %s. err: %w", itemID, err)
	}

	s.replace(updated.Kind(), func(partition map[string]common.HistoryRecord) {
		partition[itemID] = updated
	})

	return updated, true, nil
}

func (s *HistoryStoreImpl) Get(itemID string) (common.HistoryRecord, bool) {
	return s.find(itemID)
}

func (s *HistoryStoreImpl) All() []common.HistoryRecord {
	partitions := s.snapshot.Load()
	result := []common.HistoryRecord{}

	for _, kind := range common.AllItemKinds {
		for _, record := range (*partitions)[kind] {
			result = append(result, record)
		}
	}

	return result
}

func (s *HistoryStoreImpl) GetForAccount(account string) map[string]common.HistoryRecord {
	result := map[string]common.HistoryRecord{}

	for _, record := range s.All() {
		if common.IsSameAccount(record.Account, account) {
			result[record.ItemID] = record
		}
	}

	return result
}

func (s *HistoryStoreImpl) Remove(itemIDs ...string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	byKind := map[common.ItemKind][]string{}

	for _, itemID := range itemIDs {
		if record, exists := s.find(itemID); exists {
			byKind[record.Kind()] = append(byKind[record.Kind()], itemID)
		}
	}

	for _, kind := range common.AllItemKinds {
		ids := byKind[kind]
		if len(ids) == 0 {
			continue
		}

		if err := s.db.DeleteHistoryRecords(kind, ids); err != nil {
			return fmt.Errorf("failed to delete %s history records. err: %w", kind, err)
		}

		s.replace(kind, func(partition map[string]common.HistoryRecord) {
			for _, id := range ids {
				delete(partition, id)
			}
		})
	}

	return nil
}

func (s *HistoryStoreImpl) find(itemID string) (common.HistoryRecord, bool) {
	partitions := s.snapshot.Load()

	for _, kind := range common.AllItemKinds {
		if record, exists := (*partitions)[kind][itemID]; exists {
			return record, true
		}
	}

	return common.HistoryRecord{}, false
}

// replace must be called with the lock held. Only the changed partition is cloned.
func (s *HistoryStoreImpl) replace(kind common.ItemKind, mutate func(map[string]common.HistoryRecord)) {
	current := s.snapshot.Load()
	next := make(historyPartitions, len(*current))

	for k, partition := range *current {
		next[k] = partition
	}

	partition := maps.Clone((*current)[kind])
	if partition == nil {
		partition = map[string]common.HistoryRecord{}
	}

	mutate(partition)

	next[kind] = partition

	s.snapshot.Store(&next)
}

func newHistoryPartitions() *historyPartitions {
	partitions := make(historyPartitions, len(common.AllItemKinds))
	for _, kind := range common.AllItemKinds {
		partitions[kind] = map[string]common.HistoryRecord{}
	}

	return &partitions
}

func sortedItemIDs(records map[string]common.HistoryRecord) []string {
	ids := slices.Collect(maps.Keys(records))
	slices.Sort(ids)

	return ids
}
