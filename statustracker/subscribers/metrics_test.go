package subscribers

import (
	"context"
	"testing"
	"time"

	"github.com/Ethernal-Tech/bridge-status-tracker/common"
	"github.com/Ethernal-Tech/bridge-status-tracker/statustracker/core"
	"github.com/armon/go-metrics"
	"github.com/stretchr/testify/require"
)

func newTestMetricsSink(t *testing.T) *metrics.InmemSink {
	t.Helper()

	sink := metrics.NewInmemSink(time.Minute, 5*time.Minute)

	config := metrics.DefaultConfig("")
	config.EnableHostname = false
	config.EnableRuntimeMetrics = false

	_, err := metrics.NewGlobal(config, sink)
	require.NoError(t, err)

	return sink
}

// sinkCounts sums counter and sample counts per key over every interval
func sinkCounts(sink *metrics.InmemSink) (counters map[string]int, samples map[string]int) {
	counters, samples = map[string]int{}, map[string]int{}

	for _, interval := range sink.Data() {
		interval.RLock()

		for key, value := range interval.Counters {
			counters[key] += int(value.Sum)
		}

		for key, value := range interval.Samples {
			samples[key] += value.Count
		}

		interval.RUnlock()
	}

	return counters, samples
}

func TestMetricsSubscriber(t *testing.T) {
	const (
		eventName        = "bridgeTransactionComplete"
		completionKey    = "lifecycle.completion_seconds." + eventName
		slowBridgeKey    = "lifecycle.slower_than_estimated.bridge"
		estimatedTimeSec = 60
	)

	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	fast := start.Add(30 * time.Second)
	slow := start.Add(2 * time.Minute)

	cases := []struct {
		name            string
		startTime       time.Time
		completionTime  *time.Time
		estimatedSec    uint64
		wantCompletions int
		wantSlow        int
	}{
		{name: "slower than estimated", startTime: start, completionTime: &slow,
			estimatedSec: estimatedTimeSec, wantCompletions: 1, wantSlow: 1},
		{name: "within estimate", startTime: start, completionTime: &fast,
			estimatedSec: estimatedTimeSec, wantCompletions: 1},
		{name: "no estimate", startTime: start, completionTime: &slow, wantCompletions: 1},
		{name: "missing completion time", startTime: start, estimatedSec: estimatedTimeSec},
		{name: "missing start time", completionTime: &fast},
	}

	t.Run("name and empty event", func(t *testing.T) {
		subscriber := NewMetricsSubscriber()

		require.Equal(t, "metrics", subscriber.Name())
		require.NoError(t, subscriber.OnLifecycleEvent(context.Background(), core.LifecycleEvent{}))
	})

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sink := newTestMetricsSink(t)

			err := NewMetricsSubscriber().OnLifecycleEvent(context.Background(), core.LifecycleEvent{
				Name:  eventName,
				Kind:  common.ItemKindBridge,
				Event: common.LifecycleEventCompleted,
				Record: common.HistoryRecord{
					ItemID:                     "1",
					StartTime:                  tc.startTime,
					CompletionTime:             tc.completionTime,
					EstimatedProcessingTimeSec: tc.estimatedSec,
					Details:                    common.BridgeDetails{},
				},
			})
			require.NoError(t, err)

			counters, samples := sinkCounts(sink)

			require.Equal(t, tc.wantCompletions, samples[completionKey])
			require.Equal(t, tc.wantSlow, counters[slowBridgeKey])
		})
	}
}
