package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/hashicorp/go-hclog"
)

const updatesChannelSize = 256

// TransactionLedgerImpl is a bbolt backed mapping from item id to source transaction hash.
// Writers are the API ingest endpoint and the tracker's callers; updates are announced on a channel.
type TransactionLedgerImpl struct {
	db        core.LedgerDB
	updatesCh *common.SafeCh[core.TransactionUpdate]
	timeNow   func() time.Time
	logger    hclog.Logger
}

var _ core.TransactionLedgerWriter = (*TransactionLedgerImpl)(nil)

func NewTransactionLedger(db core.LedgerDB, logger hclog.Logger) *TransactionLedgerImpl {
	return &TransactionLedgerImpl{
		db:        db,
		updatesCh: common.MakeSafeCh[core.TransactionUpdate](updatesChannelSize),
		timeNow:   time.Now,
		logger:    logger,
	}
}

func (l *TransactionLedgerImpl) GetTransactionHash(itemID string) (string, bool) {
	tx, err := l.db.GetLedgerTransaction(itemID)
	if err != nil {
		l.logger.Warn("failed to get ledger transaction", "itemID", itemID, "err", err)

		return "", false
	}

	if tx == nil || tx.TxHash == "" {
		return "", false
	}

	return tx.TxHash, true
}

func (l *TransactionLedgerImpl) SetTransactionHash(itemID string, chainID common.ChainID, txHash string) error {
	if itemID == "" {
		return fmt.Errorf("item id is empty")
	}

	normalizedHash, err := common.NormalizeTxHash(chainID, txHash)
	if err != nil {
		return err
	}

	existing, err := l.db.GetLedgerTransaction(itemID)
	if err != nil {
		return fmt.Errorf("failed to get ledger transaction %s. err: %w", itemID, err)
	}

	if existing != nil && existing.ChainID == chainID && strings.EqualFold(existing.TxHash, normalizedHash) {
		return nil
	}

	if existing != nil && existing.TxHash != "" {
		l.logger.Warn("ledger transaction hash replaced", "itemID", itemID,
			"old", existing.TxHash, "new", normalizedHash)
	}

	err = l.db.SaveLedgerTransaction(&core.LedgerTransaction{
		ItemID:    itemID,
		ChainID:   chainID,
		TxHash:    normalizedHash,
		UpdatedAt: l.timeNow().UTC(),
	})
	if err != nil {
		return fmt.Errorf("failed to save ledger transaction %s. err: %w", itemID, err)
	}

	written, err := l.updatesCh.TryWrite(core.TransactionUpdate{
		ItemID:  itemID,
		ChainID: chainID,
		TxHash:  normalizedHash,
	})
	if err != nil {
		l.logger.Debug("ledger update not announced", "itemID", itemID, "err", err)
	} else if !written {
		l.logger.Debug("ledger update channel is full", "itemID", itemID)
	}

	return nil
}

func (l *TransactionLedgerImpl) NotifyOnTransactionUpdate() <-chan core.TransactionUpdate {
	return l.updatesCh.ReadCh()
}

func (l *TransactionLedgerImpl) Dispose() error {
	return l.updatesCh.Close()
}
