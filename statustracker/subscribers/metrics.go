package subscribers

import (
	"context"

	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/Ethernal-Tech/bridge-status-tracker/telemetry"
)

// MetricsSubscriber reports how long tracked items took to reach a terminal status
type MetricsSubscriber struct{}

var _ core.LifecycleSubscriber = (*MetricsSubscriber)(nil)

func NewMetricsSubscriber() *MetricsSubscriber {
	return &MetricsSubscriber{}
}

func (s *MetricsSubscriber) Name() string {
	return "metrics"
}

func (s *MetricsSubscriber) OnLifecycleEvent(_ context.Context, event core.LifecycleEvent) error {
	record := event.Record
	if record.CompletionTime != nil && !record.StartTime.IsZero() {
		telemetry.UpdateCompletionDuration(event.Name, record.CompletionTime.Sub(record.StartTime))
	}

	if record.EstimatedProcessingTimeSec > 0 && record.CompletionTime != nil {
		elapsed := record.CompletionTime.Sub(record.StartTime).Seconds()
		if elapsed > float64(record.EstimatedProcessingTimeSec) {
			telemetry.UpdateSlowCompletionCounter(string(event.Kind), 1)
		}
	}

	return nil
}
