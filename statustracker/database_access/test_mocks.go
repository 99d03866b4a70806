package databaseaccess

import (
	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/stretchr/testify/mock"
)

type HistoryDBMock struct {
	mock.Mock
}

var _ core.HistoryDB = (*HistoryDBMock)(nil)

// SaveHistoryRecord implements core.HistoryDB.
func (m *HistoryDBMock) SaveHistoryRecord(record *common.HistoryRecord) error {
	args := m.Called(record)

	return args.Error(0)
}

// GetHistoryRecord implements core.HistoryDB.
func (m *HistoryDBMock) GetHistoryRecord(kind common.ItemKind, itemID string) (*common.HistoryRecord, error) {
	args := m.Called(kind, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).(*common.HistoryRecord)

	return arg0, args.Error(1)
}

// GetAllHistoryRecords implements core.HistoryDB.
func (m *HistoryDBMock) GetAllHistoryRecords(kind common.ItemKind) ([]*common.HistoryRecord, error) {
	args := m.Called(kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	arg0, _ := args.Get(0).([]*common.HistoryRecord)

	return arg0, args.Error(1)
}

// DeleteHistoryRecords implements core.HistoryDB.
func (m *HistoryDBMock) DeleteHistoryRecords(kind common.ItemKind, itemIDs []string) error {
	args := m.Called(kind, itemIDs)

	return args.Error(0)
}
