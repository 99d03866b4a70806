package statustracker

import (
	"context"
	"fmt"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/telemetry"
	"github.com/hashicorp/go-hclog"
)

const maxConsecutiveDBFailures = 5

type recordsGaugeKey struct {
	kind   common.ItemKind
	status common.StatusValue
}

// TelemetryWorker periodically reports persisted record counts and active polls.
// Repeated database read failures are reported on ErrorCh.
type TelemetryWorker struct {
	db             core.HistoryDB
	tracker        core.StatusTracker
	waitTime       time.Duration
	latestRecords  map[recordsGaugeKey]int
	latestPolls    int
	failedAttempts int
	errorCh        chan error
	logger         hclog.Logger
}

func NewTelemetryWorker(
	db core.HistoryDB,
	tracker core.StatusTracker,
	waitTime time.Duration,
	logger hclog.Logger,
) *TelemetryWorker {
	return &TelemetryWorker{
		db:            db,
		tracker:       tracker,
		waitTime:      waitTime,
		latestRecords: map[recordsGaugeKey]int{},
		latestPolls:   -1,
		errorCh:       make(chan error, 1),
		logger:        logger,
	}
}

func (ti *TelemetryWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(ti.waitTime):
			ti.execute()
		}
	}
}

func (ti *TelemetryWorker) ErrorCh() <-chan error {
	return ti.errorCh
}

func (ti *TelemetryWorker) execute() {
	if polls := ti.tracker.ActivePolls(); polls != ti.latestPolls {
		ti.latestPolls = polls

		telemetry.UpdateActivePollsGauge(polls)
	}

	counts := make(map[recordsGaugeKey]int, len(ti.latestRecords))

	for _, kind := range common.AllItemKinds {
		records, err := ti.db.GetAllHistoryRecords(kind)
		if err != nil {
			ti.failedAttempts++

			ti.logger.Warn("failed to retrieve history records", "kind", kind,
				"attempt", ti.failedAttempts, "err", err)

			if ti.failedAttempts == maxConsecutiveDBFailures {
				select {
				case ti.errorCh <- fmt.Errorf("history database unavailable after %d attempts. err: %w",
					ti.failedAttempts, err):
				default:
				}
			}

			return
		}

		for _, record := range records {
			counts[recordsGaugeKey{kind: kind, status: record.Status.Status}]++
		}
	}

	ti.failedAttempts = 0

	// statuses that disappeared since the last run are reset to zero
	for key := range ti.latestRecords {
		if _, exists := counts[key]; !exists {
			counts[key] = 0
		}
	}

	for key, cnt := range counts {
		if cache, exists := ti.latestRecords[key]; !exists || cache != cnt {
			telemetry.UpdateRecordsGauge(string(key.kind), string(key.status), cnt)
		}

		if cnt == 0 {
			delete(ti.latestRecords, key)
		} else {
			ti.latestRecords[key] = cnt
		}
	}
}
