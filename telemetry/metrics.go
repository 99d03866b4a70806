package telemetry

import (
	"time"

	"github.com/armon/go-metrics"
)

const (
	trackerMetricsPrefix   = "tracker"
	lifecycleMetricsPrefix = "lifecycle"
	apiMetricsPrefix       = "api"
)

func UpdateActivePollsGauge(cnt int) {
	metrics.SetGauge([]string{trackerMetricsPrefix, "active_polls"}, float32(cnt))
}

func UpdateRecordsGauge(kind string, status string, cnt int) {
	metrics.SetGauge([]string{trackerMetricsPrefix, "records", kind, status}, float32(cnt))
}

func UpdateReconcileOutcomeCounter(kind string, outcome string, cnt int) {
	metrics.IncrCounter([]string{trackerMetricsPrefix, "reconcile_outcome", kind, outcome}, float32(cnt))
}

func UpdateSoftFailureCounter(kind string, failure string, cnt int) {
	metrics.IncrCounter([]string{trackerMetricsPrefix, "soft_failure", kind, failure}, float32(cnt))
}

func UpdateDroppedTicksCounter(cnt int) {
	metrics.IncrCounter([]string{trackerMetricsPrefix, "dropped_ticks"}, float32(cnt))
}

func UpdateHashAnomalyCounter(kind string, cnt int) {
	metrics.IncrCounter([]string{trackerMetricsPrefix, "hash_anomaly", kind}, float32(cnt))
}

func UpdateWipedRecordsCounter(cnt int) {
	metrics.IncrCounter([]string{trackerMetricsPrefix, "wiped_records"}, float32(cnt))
}

func UpdateStatusFetchDuration(provider string, startTime time.Time) {
	metrics.MeasureSince([]string{trackerMetricsPrefix, "status_fetch", provider}, startTime)
}

func UpdateLifecycleEventCounter(name string, cnt int) {
	metrics.IncrCounter([]string{lifecycleMetricsPrefix, "events", name}, float32(cnt))
}

func UpdateSubscriberFailureCounter(subscriber string, cnt int) {
	metrics.IncrCounter([]string{lifecycleMetricsPrefix, "subscriber_failures", subscriber}, float32(cnt))
}

func UpdateAPIRequestCounter(path string, cnt int) {
	metrics.IncrCounter([]string{apiMetricsPrefix, "requests", path}, float32(cnt))
}

func UpdateAPIRequestDuration(path string, startTime time.Time) {
	metrics.MeasureSince([]string{apiMetricsPrefix, "request_duration", path}, startTime)
}

func UpdateCompletionDuration(name string, duration time.Duration) {
	metrics.AddSample([]string{lifecycleMetricsPrefix, "completion_seconds", name}, float32(duration.Seconds()))
}

func UpdateSlowCompletionCounter(kind string, cnt int) {
	metrics.IncrCounter([]string{lifecycleMetricsPrefix, "slower_than_estimated", kind}, float32(cnt))
}
