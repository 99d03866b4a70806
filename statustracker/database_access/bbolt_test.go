package databaseaccess

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/stretchr/testify/require"
)

func newTestRecord(itemID string, details common.ItemDetails) *common.HistoryRecord {
	return &common.HistoryRecord{
		ItemID:  itemID,
		Account: "0x30E8ccaD5A980BDF30447f8c2C48e70989D9d294",
		Quote: common.Quote{
			BridgeID:    "lifi",
			SrcChainID:  common.ChainIDEthereum,
			DestChainID: common.ChainIDArbitrum,
		},
		StartTime: time.Unix(1700000000, 0).UTC(),
		Status: common.StatusEnvelope{
			Status:   common.StatusPending,
			SrcChain: common.ChainStatus{ChainID: common.ChainIDEthereum},
		},
		Details: details,
	}
}

func TestBoltDatabase(t *testing.T) {
	testDir, err := os.MkdirTemp("", "boltdb-test")
	require.NoError(t, err)

	defer func() {
		os.RemoveAll(testDir)
		os.Remove(testDir)
	}()

	filePath := filepath.Join(testDir, "temp_test.db")

	dbCleanup := func() {
		if _, err := os.Stat(filePath); err == nil {
			os.Remove(filePath)
		}
	}

	initDB := func(t *testing.T) *BBoltDatabase {
		t.Helper()

		db := &BBoltDatabase{}
		require.NoError(t, db.Init(filePath))

		t.Cleanup(func() {
			_ = db.Close()

			dbCleanup()
		})

		return db
	}

	t.Run("Init", func(t *testing.T) {
		initDB(t)
	})

	t.Run("Init should fail", func(t *testing.T) {
		t.Cleanup(dbCleanup)

		db := &BBoltDatabase{}
		err := db.Init("")
		require.Error(t, err)
	})

	t.Run("Close", func(t *testing.T) {
		t.Cleanup(dbCleanup)

		db := &BBoltDatabase{}
		err := db.Init(filePath)
		require.NoError(t, err)

		err = db.Close()
		require.NoError(t, err)
	})

	t.Run("SaveHistoryRecord and GetHistoryRecord", func(t *testing.T) {
		db := initDB(t)

		record := newTestRecord("bridge-1", common.BridgeDetails{Bridge: "across", Refuel: true})

		require.NoError(t, db.SaveHistoryRecord(record))

		result, err := db.GetHistoryRecord(common.ItemKindBridge, "bridge-1")
		require.NoError(t, err)
		require.Equal(t, record, result)

		result, err = db.GetHistoryRecord(common.ItemKindSwap, "bridge-1")
		require.NoError(t, err)
		require.Nil(t, result)

		result, err = db.GetHistoryRecord(common.ItemKindBridge, "unknown")
		require.NoError(t, err)
		require.Nil(t, result)

		_, err = db.GetHistoryRecord("teleport", "bridge-1")
		require.ErrorContains(t, err, "unknown item kind")
	})

	t.Run("SaveHistoryRecord overwrites", func(t *testing.T) {
		db := initDB(t)

		record := newTestRecord("bridge-1", common.BridgeDetails{})
		require.NoError(t, db.SaveHistoryRecord(record))

		completionTime := time.Unix(1700000100, 0).UTC()
		record.Status.Status = common.StatusComplete
		record.CompletionTime = &completionTime

		require.NoError(t, db.SaveHistoryRecord(record))

		result, err := db.GetHistoryRecord(common.ItemKindBridge, "bridge-1")
		require.NoError(t, err)
		require.Equal(t, common.StatusComplete, result.Status.Status)
		require.Equal(t, completionTime, *result.CompletionTime)
	})

	t.Run("SaveHistoryRecord without kind", func(t *testing.T) {
		db := initDB(t)

		require.Error(t, db.SaveHistoryRecord(newTestRecord("x", nil)))
	})

	t.Run("GetAllHistoryRecords and DeleteHistoryRecords", func(t *testing.T) {
		db := initDB(t)

		require.NoError(t, db.SaveHistoryRecord(newTestRecord("bridge-1", common.BridgeDetails{})))
		require.NoError(t, db.SaveHistoryRecord(newTestRecord("bridge-2", common.BridgeDetails{})))
		require.NoError(t, db.SaveHistoryRecord(newTestRecord("swap-1", common.SwapDetails{})))

		bridges, err := db.GetAllHistoryRecords(common.ItemKindBridge)
		require.NoError(t, err)
		require.Len(t, bridges, 2)

		swaps, err := db.GetAllHistoryRecords(common.ItemKindSwap)
		require.NoError(t, err)
		require.Len(t, swaps, 1)
		require.Equal(t, common.ItemKindSwap, swaps[0].Kind())

		require.NoError(t, db.DeleteHistoryRecords(common.ItemKindBridge, []string{"bridge-1", "missing"}))

		bridges, err = db.GetAllHistoryRecords(common.ItemKindBridge)
		require.NoError(t, err)
		require.Len(t, bridges, 1)
		require.Equal(t, "bridge-2", bridges[0].ItemID)
	})

	t.Run("LedgerTransaction", func(t *testing.T) {
		db := initDB(t)

		result, err := db.GetLedgerTransaction("meta-1")
		require.NoError(t, err)
		require.Nil(t, result)

		ledgerTx := &core.LedgerTransaction{
			ItemID:    "meta-1",
			ChainID:   common.ChainIDEthereum,
			TxHash:    "0xabc",
			UpdatedAt: time.Unix(1700000000, 0).UTC(),
		}

		require.NoError(t, db.SaveLedgerTransaction(ledgerTx))

		result, err = db.GetLedgerTransaction("meta-1")
		require.NoError(t, err)
		require.Equal(t, ledgerTx, result)
	})
}
