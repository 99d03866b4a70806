package databaseaccess

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"go.etcd.io/bbolt"
)

const openTimeout = 5 * time.Second

type BBoltDatabase struct {
	db *bbolt.DB
}

var (
	bridgeHistoryBucket      = []byte("BridgeHistory")
	swapHistoryBucket        = []byte("SwapHistory")
	ledgerTransactionsBucket = []byte("LedgerTransactions")
)

var _ core.Database = (*BBoltDatabase)(nil)

func (bd *BBoltDatabase) Init(filePath string) error {
	db, err := bbolt.Open(filePath, 0660, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return fmt.Errorf("could not open db: %w", err)
	}

	bd.db = db

	return db.Update(func(tx *bbolt.Tx) error {
		for _, bn := range [][]byte{bridgeHistoryBucket, swapHistoryBucket, ledgerTransactionsBucket} {
			_, err := tx.CreateBucketIfNotExists(bn)
			if err != nil {
				return fmt.Errorf("could not bucket: %s, err: %w", string(bn), err)
			}
		}

		return nil
	})
}

func (bd *BBoltDatabase) Close() error {
	return bd.db.Close()
}

// SaveHistoryRecord implements core.Database.
func (bd *BBoltDatabase) SaveHistoryRecord(record *common.HistoryRecord) error {
	bucket, err := historyBucket(record.Kind())
	if err != nil {
		return err
	}

	return bd.db.Update(func(tx *bbolt.Tx) error {
		bytes, err := json.Marshal(record)
		if err != nil {
			return fmt.Errorf("could not marshal HistoryRecord: %w", err)
		}

		if err = tx.Bucket(bucket).Put(record.ToDBKey(), bytes); err != nil {
			return fmt.Errorf("HistoryRecord write error: %w", err)
		}

		return nil
	})
}

// GetHistoryRecord implements core.Database.
func (bd *BBoltDatabase) GetHistoryRecord(
	kind common.ItemKind, itemID string,
) (
	result *common.HistoryRecord, err error,
) {
	bucket, err := historyBucket(kind)
	if err != nil {
		return nil, err
	}

	err = bd.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucket).Get([]byte(itemID))
		if len(data) > 0 {
			return json.Unmarshal(data, &result)
		}

		return nil
	})

	return result, err
}

// GetAllHistoryRecords implements core.Database.
func (bd *BBoltDatabase) GetAllHistoryRecords(kind common.ItemKind) (result []*common.HistoryRecord, err error) {
	bucket, err := historyBucket(kind)
	if err != nil {
		return nil, err
	}

	err = bd.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).ForEach(func(k, v []byte) error {
			var record *common.HistoryRecord

			if err := json.Unmarshal(v, &record); err != nil {
				return fmt.Errorf("could not unmarshal HistoryRecord %s: %w", string(k), err)
			}

			result = append(result, record)

			return nil
		})
	})

	return result, err
}

// DeleteHistoryRecords implements core.Database.
func (bd *BBoltDatabase) DeleteHistoryRecords(kind common.ItemKind, itemIDs []string) error {
	bucket, err := historyBucket(kind)
	if err != nil {
		return err
	}

	return bd.db.Update(func(tx *bbolt.Tx) error {
		for _, itemID := range itemIDs {
			if err := tx.Bucket(bucket).Delete([]byte(itemID)); err != nil {
				return fmt.Errorf("HistoryRecord %s delete error: %w", itemID, err)
			}
		}

		return nil
	})
}

// SaveLedgerTransaction implements core.Database.
func (bd *BBoltDatabase) SaveLedgerTransaction(ledgerTx *core.LedgerTransaction) error {
	return bd.db.Update(func(tx *bbolt.Tx) error {
		bytes, err := json.Marshal(ledgerTx)
		if err != nil {
			return fmt.Errorf("could not marshal LedgerTransaction: %w", err)
		}

		if err = tx.Bucket(ledgerTransactionsBucket).Put(ledgerTx.ToDBKey(), bytes); err != nil {
			return fmt.Errorf("LedgerTransaction write error: %w", err)
		}

		return nil
	})
}

// GetLedgerTransaction implements core.Database.
func (bd *BBoltDatabase) GetLedgerTransaction(itemID string) (result *core.LedgerTransaction, err error) {
	err = bd.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(ledgerTransactionsBucket).Get([]byte(itemID))
		if len(data) > 0 {
			return json.Unmarshal(data, &result)
		}

		return nil
	})

	return result, err
}

func historyBucket(kind common.ItemKind) ([]byte, error) {
	switch kind {
	case common.ItemKindBridge:
		return bridgeHistoryBucket, nil
	case common.ItemKindSwap:
		return swapHistoryBucket, nil
	default:
		return nil, fmt.Errorf("unknown item kind: %s", kind)
	}
}
