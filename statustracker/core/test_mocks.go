package core

import (
	"context"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/stretchr/testify/mock"
)

type StatusFetcherMock struct {
	mock.Mock
}

var _ StatusFetcher = (*StatusFetcherMock)(nil)

// FetchStatus implements StatusFetcher.
func (m *StatusFetcherMock) FetchStatus(ctx context.Context, request StatusRequest) (*common.StatusEnvelope, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*common.StatusEnvelope), args.Error(1)
}

type TransactionLedgerMock struct {
	mock.Mock
	UpdatesCh chan TransactionUpdate
}

var _ TransactionLedger = (*TransactionLedgerMock)(nil)

// GetTransactionHash implements TransactionLedger.
func (m *TransactionLedgerMock) GetTransactionHash(itemID string) (string, bool) {
	args := m.Called(itemID)

	return args.String(0), args.Bool(1)
}

// NotifyOnTransactionUpdate implements TransactionLedger.
func (m *TransactionLedgerMock) NotifyOnTransactionUpdate() <-chan TransactionUpdate {
	if m.UpdatesCh == nil {
		m.UpdatesCh = make(chan TransactionUpdate)
	}

	return m.UpdatesCh
}

type LifecyclePublisherMock struct {
	mock.Mock
}

var _ LifecyclePublisher = (*LifecyclePublisherMock)(nil)

// Publish implements LifecyclePublisher.
func (m *LifecyclePublisherMock) Publish(
	kind common.ItemKind, event common.LifecycleEventType, record common.HistoryRecord,
) {
	m.Called(kind, event, record)
}

type LifecycleSubscriberMock struct {
	mock.Mock
}

var _ LifecycleSubscriber = (*LifecycleSubscriberMock)(nil)

// Name implements LifecycleSubscriber.
func (m *LifecycleSubscriberMock) Name() string {
	return "mock"
}

// OnLifecycleEvent implements LifecycleSubscriber.
func (m *LifecycleSubscriberMock) OnLifecycleEvent(ctx context.Context, event LifecycleEvent) error {
	args := m.Called(ctx, event)

	return args.Error(0)
}

type IdentityProviderMock struct {
	mock.Mock
}

var _ IdentityProvider = (*IdentityProviderMock)(nil)

// GetSelectedAccountAddress implements IdentityProvider.
func (m *IdentityProviderMock) GetSelectedAccountAddress() string {
	return m.Called().String(0)
}

// GetCurrentChainID implements IdentityProvider.
func (m *IdentityProviderMock) GetCurrentChainID() string {
	return m.Called().String(0)
}

// GetSelectedNetworkClientID implements IdentityProvider.
func (m *IdentityProviderMock) GetSelectedNetworkClientID() string {
	return m.Called().String(0)
}

// GetNetworkClientByID implements IdentityProvider.
func (m *IdentityProviderMock) GetNetworkClientByID(networkClientID string) (NetworkClient, error) {
	args := m.Called(networkClientID)

	return args.Get(0).(NetworkClient), args.Error(1)
}

type StatusTrackerMock struct {
	mock.Mock
}

var _ StatusTracker = (*StatusTrackerMock)(nil)

// StartTracking implements StatusTracker.
func (m *StatusTrackerMock) StartTracking(record common.HistoryRecord) error {
	return m.Called(record).Error(0)
}

// Wipe implements StatusTracker.
func (m *StatusTrackerMock) Wipe(account string, options WipeOptions) (int, error) {
	args := m.Called(account, options)

	return args.Int(0), args.Error(1)
}

// GetHistoryForAccount implements StatusTracker.
func (m *StatusTrackerMock) GetHistoryForAccount(account string) map[string]common.HistoryRecord {
	args := m.Called(account)
	if args.Get(0) == nil {
		return nil
	}

	return args.Get(0).(map[string]common.HistoryRecord)
}

// GetHistoryItem implements StatusTracker.
func (m *StatusTrackerMock) GetHistoryItem(itemID string) (common.HistoryRecord, bool) {
	args := m.Called(itemID)

	return args.Get(0).(common.HistoryRecord), args.Bool(1)
}

// Resume implements StatusTracker.
func (m *StatusTrackerMock) Resume() int {
	return m.Called().Int(0)
}

// ActivePolls implements StatusTracker.
func (m *StatusTrackerMock) ActivePolls() int {
	return m.Called().Int(0)
}
