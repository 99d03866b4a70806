package statustracker

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
)

func TestStatusTrackerComponents(t *testing.T) {
	dbsPath, err := os.MkdirTemp("", "statustracker-components")
	require.NoError(t, err)

	defer os.RemoveAll(dbsPath)

	appConfig := &core.AppConfig{
		Settings: core.AppSettings{DbsPath: dbsPath},
		Fetchers: core.FetchersConfig{
			BridgeAPI: core.BridgeAPIConfig{BaseURL: "http://localhost:1"},
		},
	}
	appConfig.FillOut()

	newRecord := func(itemID string, status common.StatusValue) common.HistoryRecord {
		return common.HistoryRecord{
			ItemID:  itemID,
			Account: "0x5B38Da6a701c568545dCfcB03FcB875f56beddC4",
			Quote:   common.Quote{SrcChainID: common.ChainIDEthereum, DestChainID: common.ChainIDArbitrum},
			Status: common.StatusEnvelope{
				Status:   status,
				SrcChain: common.ChainStatus{ChainID: common.ChainIDEthereum},
			},
			Details: common.BridgeDetails{Bridge: "across"},
		}
	}

	t.Run("pending records are resumed after restart", func(t *testing.T) {
		ctx, cancelCtx := context.WithCancel(context.Background())

		components, err := NewStatusTrackerComponents(ctx, appConfig, false, hclog.NewNullLogger())
		require.NoError(t, err)
		require.NoError(t, components.Start())

		require.NoError(t, components.tracker.StartTracking(newRecord("1", common.StatusPending)))
		require.NoError(t, components.tracker.StartTracking(newRecord("2", common.StatusComplete)))
		require.NoError(t, components.tracker.StartTracking(newRecord("3", common.StatusPending)))
		require.Equal(t, 2, components.tracker.ActivePolls())

		cancelCtx()
		require.NoError(t, components.Dispose())

		ctx, cancelCtx = context.WithCancel(context.Background())
		defer cancelCtx()

		components, err = NewStatusTrackerComponents(ctx, appConfig, false, hclog.NewNullLogger())
		require.NoError(t, err)

		defer components.Dispose()

		require.NoError(t, components.Start())
		require.Equal(t, 2, components.tracker.ActivePolls())

		record, exists := components.tracker.GetHistoryItem("2")
		require.True(t, exists)
		require.Equal(t, common.StatusComplete, record.Status.Status)
	})

	t.Run("database can not be opened", func(t *testing.T) {
		invalidConfig := *appConfig
		invalidConfig.Settings.DbsPath = filepath.Join(dbsPath, "missing", "dir")

		_, err := NewStatusTrackerComponents(context.Background(), &invalidConfig, false, hclog.NewNullLogger())
		require.ErrorContains(t, err, "failed to open status tracker database")
	})

	t.Run("error channel forwards telemetry worker errors", func(t *testing.T) {
		ctx, cancelCtx := context.WithCancel(context.Background())
		defer cancelCtx()

		worker := NewTelemetryWorker(nil, nil, time.Hour, hclog.NewNullLogger())
		components := &StatusTrackerComponentsImpl{
			ctx:             ctx,
			telemetryWorker: worker,
			errorCh:         make(chan error, 1),
			logger:          hclog.NewNullLogger(),
		}

		go components.errorHandler()

		worker.errorCh <- os.ErrClosed

		select {
		case err := <-components.ErrorCh():
			require.ErrorIs(t, err, os.ErrClosed)
		case <-time.After(5 * time.Second):
			t.Fatal("error not forwarded")
		}
	})
}
