package core

import (
	"context"
	"errors"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
)

type HistoryDB interface {
	SaveHistoryRecord(record *common.HistoryRecord) error
	GetHistoryRecord(kind common.ItemKind, itemID string) (*common.HistoryRecord, error)
	GetAllHistoryRecords(kind common.ItemKind) ([]*common.HistoryRecord, error)
	DeleteHistoryRecords(kind common.ItemKind, itemIDs []string) error
}

type LedgerDB interface {
	SaveLedgerTransaction(tx *LedgerTransaction) error
	GetLedgerTransaction(itemID string) (*LedgerTransaction, error)
}

type Database interface {
	HistoryDB
	LedgerDB
	Init(filePath string) error
	Close() error
}

var ErrHistoryRecordExists = errors.New("history record already exists")

// HistoryStore keeps tracked records in memory and writes every mutation through to the HistoryDB
type HistoryStore interface {
	Load() error
	Insert(record common.HistoryRecord) error
	Upsert(record common.HistoryRecord) error
	Update(itemID string, updateFn HistoryUpdateFn) (common.HistoryRecord, bool, error)
	Get(itemID string) (common.HistoryRecord, bool)
	All() []common.HistoryRecord
	GetForAccount(account string) map[string]common.HistoryRecord
	Remove(itemIDs ...string) error
}

// HistoryUpdateFn returns the new record and whether it should be written
type HistoryUpdateFn func(record common.HistoryRecord) (common.HistoryRecord, bool, error)

type PollFn func(ctx context.Context) ReconcileResult

type PollRegistry interface {
	Start(itemID string, pollFn PollFn, interval time.Duration) *PollToken
	Stop(token *PollToken)
	HasToken(itemID string) bool
	GetToken(itemID string) *PollToken
	Tokens() []*PollToken
}

type StatusReconciler interface {
	Reconcile(ctx context.Context, itemID string) ReconcileResult
}

type ResultObserver interface {
	Observe(result ReconcileResult)
}

type PollScheduler interface {
	Start(ctx context.Context)
	StartItem(itemID string) bool
	StopItem(itemID string)
	Kick(itemID string)
	ActiveItems() int
}

type LifecyclePublisher interface {
	Publish(kind common.ItemKind, event common.LifecycleEventType, record common.HistoryRecord)
}

type LifecycleSubscriber interface {
	Name() string
	OnLifecycleEvent(ctx context.Context, event LifecycleEvent) error
}

type TransactionLedger interface {
	GetTransactionHash(itemID string) (string, bool)
	NotifyOnTransactionUpdate() <-chan TransactionUpdate
}

type TransactionLedgerWriter interface {
	TransactionLedger
	SetTransactionHash(itemID string, chainID common.ChainID, txHash string) error
}

type IdentityProvider interface {
	GetSelectedAccountAddress() string
	GetCurrentChainID() string
	GetSelectedNetworkClientID() string
	GetNetworkClientByID(networkClientID string) (NetworkClient, error)
}

type IdentitySelector interface {
	IdentityProvider
	SelectAccount(account string)
	SelectNetworkClient(networkClientID string) error
}

type StatusFetcher interface {
	FetchStatus(ctx context.Context, request StatusRequest) (*common.StatusEnvelope, error)
}

type StatusTracker interface {
	StartTracking(record common.HistoryRecord) error
	Wipe(account string, options WipeOptions) (int, error)
	GetHistoryForAccount(account string) map[string]common.HistoryRecord
	GetHistoryItem(itemID string) (common.HistoryRecord, bool)
	Resume() int
	ActivePolls() int
}

type StatusTrackerComponents interface {
	Start() error
	Dispose() error
	ErrorCh() <-chan error
}
