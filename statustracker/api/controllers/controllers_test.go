package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/api/model/response"
	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/identity"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/tracker"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAccount = "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4"

type ledgerWriterMock struct {
	core.TransactionLedgerMock
}

func (m *ledgerWriterMock) SetTransactionHash(itemID string, chainID common.ChainID, txHash string) error {
	return m.Called(itemID, chainID, txHash).Error(0)
}

func newRecord(itemID string, status common.StatusValue) common.HistoryRecord {
	return common.HistoryRecord{
		ItemID:    itemID,
		Account:   testAccount,
		Quote:     common.Quote{SrcChainID: common.ChainIDEthereum, DestChainID: 10},
		StartTime: time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Status:    common.StatusEnvelope{Status: status, SrcChain: common.ChainStatus{ChainID: common.ChainIDEthereum}},
		Details:   common.BridgeDetails{Bridge: "across"},
	}
}

func doRequest(handler http.HandlerFunc, method string, url string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader

	if body != nil {
		bytesBody, _ := json.Marshal(body)
		reader = bytes.NewReader(bytesBody)
	} else {
		reader = bytes.NewReader(nil)
	}

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(method, url, reader))

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var result T

	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	return result
}

func TestHistoryController(t *testing.T) {
	t.Run("account missing", func(t *testing.T) {
		c := NewHistoryController(&core.StatusTrackerMock{}, hclog.NewNullLogger())

		rec := doRequest(c.getAccountHistory, http.MethodGet, "/api/history/account", nil)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, decodeBody[response.ErrorResponse](t, rec).Err, "account missing from query")
	})

	t.Run("account history newest first", func(t *testing.T) {
		older := newRecord("1", common.StatusComplete)
		newer := newRecord("2", common.StatusPending)
		newer.StartTime = older.StartTime.Add(time.Hour)

		trackerMock := &core.StatusTrackerMock{}
		trackerMock.On("GetHistoryForAccount", testAccount).Return(map[string]common.HistoryRecord{
			"1": older, "2": newer,
		})

		c := NewHistoryController(trackerMock, hclog.NewNullLogger())

		rec := doRequest(c.getAccountHistory, http.MethodGet, "/api/history/account?account="+testAccount, nil)

		require.Equal(t, http.StatusOK, rec.Code)

		result := decodeBody[response.AccountHistoryResponse](t, rec)
		require.Equal(t, testAccount, result.Account)
		require.Len(t, result.Items, 2)
		require.Equal(t, "2", result.Items[0].ItemID)
		require.Equal(t, "1", result.Items[1].ItemID)
		require.True(t, result.Items[1].IsTerminal)
		require.Equal(t, common.ItemKindBridge, result.Items[0].Kind)
	})

	t.Run("item not found", func(t *testing.T) {
		trackerMock := &core.StatusTrackerMock{}
		trackerMock.On("GetHistoryItem", "7").Return(common.HistoryRecord{}, false)

		c := NewHistoryController(trackerMock, hclog.NewNullLogger())

		rec := doRequest(c.getHistoryItem, http.MethodGet, "/api/history/item?itemId=7", nil)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("item found", func(t *testing.T) {
		trackerMock := &core.StatusTrackerMock{}
		trackerMock.On("GetHistoryItem", "7").Return(newRecord("7", common.StatusPending), true)

		c := NewHistoryController(trackerMock, hclog.NewNullLogger())

		rec := doRequest(c.getHistoryItem, http.MethodGet, "/api/history/item?itemId=7", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		result := decodeBody[response.HistoryRecordResponse](t, rec)
		require.Equal(t, "7", result.ItemID)
		require.NotNil(t, result.Bridge)
		require.Equal(t, "across", result.Bridge.Bridge)
		require.Nil(t, result.Swap)
	})
}

func TestTrackingController(t *testing.T) {
	startBody := map[string]any{
		"itemId":  "10",
		"kind":    "bridge",
		"account": testAccount,
		"quote":   map[string]any{"srcChainId": 1, "destChainId": 10, "bridges": []string{"across"}},
		"bridge":  map[string]any{"bridge": "across"},
	}

	t.Run("start tracking", func(t *testing.T) {
		trackerMock := &core.StatusTrackerMock{}
		trackerMock.On("StartTracking", mock.MatchedBy(func(record common.HistoryRecord) bool {
			return record.ItemID == "10" && record.Kind() == common.ItemKindBridge &&
				record.Status.Status == common.StatusPending
		})).Return(nil)

		c := NewTrackingController(trackerMock, hclog.NewNullLogger())

		rec := doRequest(c.startTracking, http.MethodPost, "/api/tracking/start", startBody)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, response.TrackingResponse{ItemID: "10", Polling: true},
			decodeBody[response.TrackingResponse](t, rec))
		trackerMock.AssertExpectations(t)
	})

	t.Run("already tracked", func(t *testing.T) {
		trackerMock := &core.StatusTrackerMock{}
		trackerMock.On("StartTracking", mock.Anything).Return(fmt.Errorf("%w: 10", tracker.ErrAlreadyTracked))

		c := NewTrackingController(trackerMock, hclog.NewNullLogger())

		rec := doRequest(c.startTracking, http.MethodPost, "/api/tracking/start", startBody)

		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("invalid item", func(t *testing.T) {
		trackerMock := &core.StatusTrackerMock{}
		c := NewTrackingController(trackerMock, hclog.NewNullLogger())

		rec := doRequest(c.startTracking, http.MethodPost, "/api/tracking/start", map[string]any{
			"itemId": "10", "kind": "teleport", "account": testAccount,
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		trackerMock.AssertNotCalled(t, "StartTracking", mock.Anything)
	})

	t.Run("unknown field", func(t *testing.T) {
		c := NewTrackingController(&core.StatusTrackerMock{}, hclog.NewNullLogger())

		rec := doRequest(c.startTracking, http.MethodPost, "/api/tracking/start", map[string]any{"foo": 1})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("wipe", func(t *testing.T) {
		trackerMock := &core.StatusTrackerMock{}
		trackerMock.On("Wipe", testAccount, core.WipeOptions{TargetChainID: "0x1"}).Return(3, nil)

		c := NewTrackingController(trackerMock, hclog.NewNullLogger())

		rec := doRequest(c.wipe, http.MethodPost, "/api/tracking/wipe", map[string]any{
			"account": testAccount, "chainId": "0x1",
		})

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, 3, decodeBody[response.WipeResponse](t, rec).Removed)
	})

	t.Run("wipe invalid request", func(t *testing.T) {
		wipeErr := fmt.Errorf("%w: account is required", tracker.ErrInvalidWipeRequest)

		trackerMock := &core.StatusTrackerMock{}
		trackerMock.On("Wipe", "", core.WipeOptions{IgnoreNetwork: false}).Return(0, wipeErr)

		c := NewTrackingController(trackerMock, hclog.NewNullLogger())

		rec := doRequest(c.wipe, http.MethodPost, "/api/tracking/wipe", map[string]any{})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, wipeErr.Error(), decodeBody[response.ErrorResponse](t, rec).Err)
	})

	t.Run("wipe persistence failure", func(t *testing.T) {
		trackerMock := &core.StatusTrackerMock{}
		trackerMock.On("Wipe", testAccount, core.WipeOptions{IgnoreNetwork: true}).
			Return(0, errors.New("failed to wipe history. err: disk full"))

		c := NewTrackingController(trackerMock, hclog.NewNullLogger())

		rec := doRequest(c.wipe, http.MethodPost, "/api/tracking/wipe", map[string]any{
			"account": testAccount, "ignoreNetwork": true,
		})

		require.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestLedgerController(t *testing.T) {
	const txHash = "0x0d1ef6ab3c4ea3b2f7bd0b7d8b3d1a1e3b5b6d9a8c7f6e5d4c3b2a1908070605"

	t.Run("transaction stored", func(t *testing.T) {
		ledgerMock := &ledgerWriterMock{}
		ledgerMock.On("SetTransactionHash", "10", common.ChainIDEthereum, txHash).Return(nil)

		c := NewLedgerController(ledgerMock, hclog.NewNullLogger())

		rec := doRequest(c.setTransaction, http.MethodPost, "/api/ledger/transaction", map[string]any{
			"itemId": "10", "chainId": 1, "txHash": txHash,
		})

		require.Equal(t, http.StatusNoContent, rec.Code)
		ledgerMock.AssertExpectations(t)
	})

	t.Run("hash missing", func(t *testing.T) {
		ledgerMock := &ledgerWriterMock{}
		c := NewLedgerController(ledgerMock, hclog.NewNullLogger())

		rec := doRequest(c.setTransaction, http.MethodPost, "/api/ledger/transaction", map[string]any{
			"itemId": "10", "chainId": 1,
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		ledgerMock.AssertNotCalled(t, "SetTransactionHash", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ledger rejects", func(t *testing.T) {
		ledgerMock := &ledgerWriterMock{}
		ledgerMock.On("SetTransactionHash", "", common.ChainIDEthereum, txHash).Return(errors.New("item id is required"))

		c := NewLedgerController(ledgerMock, hclog.NewNullLogger())

		rec := doRequest(c.setTransaction, http.MethodPost, "/api/ledger/transaction", map[string]any{
			"chainId": 1, "txHash": txHash,
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestIdentityController(t *testing.T) {
	newController := func() *IdentityControllerImpl {
		appConfig := &core.AppConfig{
			Tracker:  core.TrackerConfig{PollIntervalMs: 10_000},
			Fetchers: core.FetchersConfig{BridgeAPI: core.BridgeAPIConfig{BaseURL: "http://localhost:8080"}},
			Identity: core.IdentityConfig{
				NetworkClients: map[string]core.NetworkClientConfiguration{
					"mainnet":  {ChainID: "0x1"},
					"optimism": {ChainID: "10"},
				},
				SelectedNetworkClientID: "mainnet",
			},
		}

		trackerMock := &core.StatusTrackerMock{}
		trackerMock.On("ActivePolls").Return(2)

		return NewIdentityController(
			appConfig, identity.NewIdentityProvider(appConfig.Identity), trackerMock, hclog.NewNullLogger())
	}

	t.Run("settings", func(t *testing.T) {
		c := newController()

		rec := doRequest(c.getSettings, http.MethodGet, "/api/identity/settings", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		result := decodeBody[response.SettingsResponse](t, rec)
		require.Equal(t, uint64(10_000), result.PollIntervalMs)
		require.Equal(t, "mainnet", result.SelectedNetworkClientID)
		require.Equal(t, "0x1", result.CurrentChainID)
		require.Equal(t, 2, result.ActivePolls)
	})

	t.Run("select", func(t *testing.T) {
		c := newController()

		rec := doRequest(c.selectIdentity, http.MethodPost, "/api/identity/select", map[string]any{
			"account": "0x5b38da6a701c568545dcfcb03fcb875f56beddc4", "networkClientId": "optimism",
		})

		require.Equal(t, http.StatusOK, rec.Code)

		result := decodeBody[response.SettingsResponse](t, rec)
		require.Equal(t, testAccount, result.SelectedAccount)
		require.Equal(t, "optimism", result.SelectedNetworkClientID)
		require.Equal(t, "0xa", result.CurrentChainID)
	})

	t.Run("select unknown network client", func(t *testing.T) {
		c := newController()

		rec := doRequest(c.selectIdentity, http.MethodPost, "/api/identity/select", map[string]any{
			"account": testAccount, "networkClientId": "unknown",
		})

		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, "", c.identity.GetSelectedAccountAddress())
	})
}
