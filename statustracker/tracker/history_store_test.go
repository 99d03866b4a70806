package tracker

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	databaseaccess "github.com/Ethernal-Tech/bridge-status-tracker/statustracker/database_access"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	accountA = "0x30E8ccaD5A980BDF30447f8c2C48e70989D9d294"
	accountB = "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"
)

func newTestDB(t *testing.T) core.Database {
	t.Helper()

	testDir, err := os.MkdirTemp("", "tracker-test")
	require.NoError(t, err)

	db, err := databaseaccess.NewDatabase(filepath.Join(testDir, "temp_test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()

		os.RemoveAll(testDir)
	})

	return db
}

func newTestStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()

	return NewHistoryStore(newTestDB(t), hclog.NewNullLogger())
}

func newBridgeRecord(itemID, account string, srcChainID common.ChainID) common.HistoryRecord {
	return common.HistoryRecord{
		ItemID:  itemID,
		Account: account,
		Quote: common.Quote{
			RequestID:   "request-" + itemID,
			BridgeID:    "lifi",
			Bridges:     []string{"across"},
			SrcChainID:  srcChainID,
			DestChainID: common.ChainIDArbitrum,
		},
		StartTime: time.Unix(1700000000, 0).UTC(),
		Status: common.StatusEnvelope{
			Status:   common.StatusPending,
			SrcChain: common.ChainStatus{ChainID: srcChainID},
		},
		Details: common.BridgeDetails{Bridge: "across"},
	}
}

func newSwapRecord(itemID, account string, srcChainID common.ChainID) common.HistoryRecord {
	record := newBridgeRecord(itemID, account, srcChainID)
	record.Quote.DestChainID = srcChainID
	record.Details = common.SwapDetails{}

	return record
}

func TestHistoryStore(t *testing.T) {
	t.Run("Upsert and Get", func(t *testing.T) {
		store := newTestStore(t)

		bridge := newBridgeRecord("bridge-1", accountA, common.ChainIDEthereum)
		swap := newSwapRecord("swap-1", accountA, common.ChainIDPolygon)

		require.NoError(t, store.Upsert(bridge))
		require.NoError(t, store.Upsert(swap))

		record, exists := store.Get("bridge-1")
		require.True(t, exists)
		require.Equal(t, bridge, record)

		record, exists = store.Get("swap-1")
		require.True(t, exists)
		require.Equal(t, common.ItemKindSwap, record.Kind())

		_, exists = store.Get("missing")
		require.False(t, exists)

		require.Len(t, store.All(), 2)
	})

	t.Run("Upsert invalid record", func(t *testing.T) {
		store := newTestStore(t)

		record := newBridgeRecord("bridge-1", accountA, common.ChainIDEthereum)
		record.Details = nil

		require.Error(t, store.Upsert(record))
		require.Empty(t, store.All())
	})

	t.Run("Upsert same id with different kind", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Upsert(newBridgeRecord("item-1", accountA, common.ChainIDEthereum)))
		require.ErrorContains(t, store.Upsert(newSwapRecord("item-1", accountA, common.ChainIDEthereum)),
			"already tracked as bridge")
	})

	t.Run("Insert rejects existing id", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Insert(newBridgeRecord("bridge-1", accountA, common.ChainIDEthereum)))

		err := store.Insert(newBridgeRecord("bridge-1", accountB, common.ChainIDPolygon))
		require.ErrorIs(t, err, core.ErrHistoryRecordExists)

		record, exists := store.Get("bridge-1")
		require.True(t, exists)
		require.Equal(t, accountA, record.Account)
		require.Equal(t, common.ChainIDEthereum, record.Quote.SrcChainID)
	})

	t.Run("concurrent Insert of the same id", func(t *testing.T) {
		store := newTestStore(t)

		const workers = 8

		var (
			wg   sync.WaitGroup
			errs = make([]error, workers)
		)

		for i := range workers {
			wg.Add(1)

			go func(i int) {
				defer wg.Done()

				account := accountA
				if i%2 == 1 {
					account = accountB
				}

				errs[i] = store.Insert(newBridgeRecord("bridge-1", account, common.ChainIDEthereum))
			}(i)
		}

		wg.Wait()

		succeeded := 0

		for _, err := range errs {
			if err == nil {
				succeeded++
			} else {
				require.ErrorIs(t, err, core.ErrHistoryRecordExists)
			}
		}

		require.Equal(t, 1, succeeded)
		require.Len(t, store.All(), 1)
	})

	t.Run("terminal record without completion time", func(t *testing.T) {
		store := newTestStore(t)

		record := newBridgeRecord("bridge-1", accountA, common.ChainIDEthereum)
		record.Status.Status = common.StatusComplete

		require.ErrorContains(t, store.Insert(record), "completion time")

		completionTime := time.Unix(1700000100, 0).UTC()
		pending := newBridgeRecord("bridge-2", accountA, common.ChainIDEthereum)
		pending.CompletionTime = &completionTime

		require.ErrorContains(t, store.Upsert(pending), "completion time")
		require.Empty(t, store.All())
	})

	t.Run("readers keep their snapshot", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Upsert(newBridgeRecord("bridge-1", accountA, common.ChainIDEthereum)))

		before := store.All()

		_, _, err := store.Update("bridge-1", func(r common.HistoryRecord) (common.HistoryRecord, bool, error) {
			r.Status.Status = common.StatusComplete

			return r, true, nil
		})
		require.NoError(t, err)

		require.Equal(t, common.StatusPending, before[0].Status.Status)

		record, _ := store.Get("bridge-1")
		require.Equal(t, common.StatusComplete, record.Status.Status)
	})

	t.Run("Update missing record", func(t *testing.T) {
		store := newTestStore(t)
		called := false

		_, exists, err := store.Update("missing", func(r common.HistoryRecord) (common.HistoryRecord, bool, error) {
			called = true

			return r, true, nil
		})
		require.NoError(t, err)
		require.False(t, exists)
		require.False(t, called)
	})

	t.Run("Update without write", func(t *testing.T) {
		db := &databaseaccess.HistoryDBMock{}
		db.On("SaveHistoryRecord", mock.Anything).Return(nil).Once()

		store := NewHistoryStore(db, hclog.NewNullLogger())
		require.NoError(t, store.Upsert(newBridgeRecord("bridge-1", accountA, common.ChainIDEthereum)))

		record, exists, err := store.Update("bridge-1", func(r common.HistoryRecord) (common.HistoryRecord, bool, error) {
			r.Status.Status = common.StatusFailed

			return r, false, nil
		})
		require.NoError(t, err)
		require.True(t, exists)
		require.Equal(t, common.StatusPending, record.Status.Status)
		db.AssertNumberOfCalls(t, "SaveHistoryRecord", 1)
	})

	t.Run("Update can not change identity", func(t *testing.T) {
		store := newTestStore(t)
		require.NoError(t, store.Upsert(newBridgeRecord("bridge-1", accountA, common.ChainIDEthereum)))

		_, _, err := store.Update("bridge-1", func(r common.HistoryRecord) (common.HistoryRecord, bool, error) {
			r.Details = common.SwapDetails{}

			return r, true, nil
		})
		require.ErrorContains(t, err, "changed its identity")
	})

	t.Run("persistence failure keeps snapshot", func(t *testing.T) {
		db := &databaseaccess.HistoryDBMock{}
		db.On("SaveHistoryRecord", mock.Anything).Return(nil).Once()
		db.On("SaveHistoryRecord", mock.Anything).Return(errors.New("disk full"))
		db.On("DeleteHistoryRecords", common.ItemKindBridge, []string{"bridge-1"}).Return(errors.New("disk full"))

		store := NewHistoryStore(db, hclog.NewNullLogger())
		require.NoError(t, store.Upsert(newBridgeRecord("bridge-1", accountA, common.ChainIDEthereum)))

		record, exists, err := store.Update("bridge-1", func(r common.HistoryRecord) (common.HistoryRecord, bool, error) {
			r.Status.Status = common.StatusComplete

			return r, true, nil
		})
		require.ErrorContains(t, err, "disk full")
		require.True(t, exists)
		require.Equal(t, common.StatusPending, record.Status.Status)

		require.Error(t, store.Upsert(newBridgeRecord("bridge-2", accountA, common.ChainIDEthereum)))
		require.Error(t, store.Remove("bridge-1"))

		require.Len(t, store.All(), 1)

		record, _ = store.Get("bridge-1")
		require.Equal(t, common.StatusPending, record.Status.Status)
	})

	t.Run("GetForAccount", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Upsert(newBridgeRecord("bridge-1", accountA, common.ChainIDEthereum)))
		require.NoError(t, store.Upsert(newSwapRecord("swap-1", accountA, common.ChainIDEthereum)))
		require.NoError(t, store.Upsert(newBridgeRecord("bridge-2", accountB, common.ChainIDEthereum)))

		records := store.GetForAccount("0x30e8ccad5a980bdf30447f8c2c48e70989d9d294")
		require.Len(t, records, 2)
		require.Contains(t, records, "bridge-1")
		require.Contains(t, records, "swap-1")

		require.Empty(t, store.GetForAccount("0x0000000000000000000000000000000000000001"))
	})

	t.Run("Remove", func(t *testing.T) {
		store := newTestStore(t)

		require.NoError(t, store.Upsert(newBridgeRecord("bridge-1", accountA, common.ChainIDEthereum)))
		require.NoError(t, store.Upsert(newSwapRecord("swap-1", accountA, common.ChainIDEthereum)))
		require.NoError(t, store.Upsert(newBridgeRecord("bridge-2", accountB, common.ChainIDEthereum)))

		require.NoError(t, store.Remove("bridge-1", "swap-1", "missing"))

		require.Len(t, store.All(), 1)

		_, exists := store.Get("bridge-2")
		require.True(t, exists)
	})

	t.Run("Load", func(t *testing.T) {
		db := newTestDB(t)

		store := NewHistoryStore(db, hclog.NewNullLogger())
		require.NoError(t, store.Upsert(newBridgeRecord("bridge-1", accountA, common.ChainIDEthereum)))
		require.NoError(t, store.Upsert(newSwapRecord("swap-1", accountB, common.ChainIDBase)))

		reloaded := NewHistoryStore(db, hclog.NewNullLogger())
		require.Empty(t, reloaded.All())
		require.NoError(t, reloaded.Load())
		require.Len(t, reloaded.All(), 2)

		record, exists := reloaded.Get("swap-1")
		require.True(t, exists)
		require.Equal(t, common.ChainIDBase, record.Quote.SrcChainID)
	})

	t.Run("Load skips records breaking the completion invariant", func(t *testing.T) {
		broken := newBridgeRecord("bridge-broken", accountA, common.ChainIDEthereum)
		broken.Status.Status = common.StatusComplete

		valid := newBridgeRecord("bridge-1", accountA, common.ChainIDEthereum)

		db := &databaseaccess.HistoryDBMock{}
		db.On("GetAllHistoryRecords", common.ItemKindBridge).Return([]*common.HistoryRecord{&broken, &valid}, nil)
		db.On("GetAllHistoryRecords", common.ItemKindSwap).Return([]*common.HistoryRecord{}, nil)

		store := NewHistoryStore(db, hclog.NewNullLogger())
		require.NoError(t, store.Load())

		_, exists := store.Get("bridge-broken")
		require.False(t, exists)

		_, exists = store.Get("bridge-1")
		require.True(t, exists)
	})

	t.Run("Load failure", func(t *testing.T) {
		db := &databaseaccess.HistoryDBMock{}
		db.On("GetAllHistoryRecords", common.ItemKindBridge).Return(nil, errors.New("corrupted"))

		store := NewHistoryStore(db, hclog.NewNullLogger())
		require.ErrorContains(t, store.Load(), "corrupted")
	})

	t.Run("concurrent updates of different items", func(t *testing.T) {
		store := newTestStore(t)

		ids := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
		for _, id := range ids {
			require.NoError(t, store.Upsert(newBridgeRecord(id, accountA, common.ChainIDEthereum)))
		}

		var wg sync.WaitGroup

		for _, id := range ids {
			wg.Add(1)

			go func(id string) {
				defer wg.Done()

				_, _, err := store.Update(id, func(r common.HistoryRecord) (common.HistoryRecord, bool, error) {
					r.Status.SrcChain.TxHash = "0x" + id

					return r, true, nil
				})
				require.NoError(t, err)
			}(id)
		}

		wg.Wait()

		for _, id := range ids {
			record, exists := store.Get(id)
			require.True(t, exists)
			require.Equal(t, "0x"+id, record.Status.SrcChain.TxHash)
		}
	})
}
