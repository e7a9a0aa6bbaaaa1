package driven

import "time"

// Metrics records operational counters for the integration layer.
// A nil Metrics is never passed around; use NopMetrics instead.
type Metrics interface {
	// RecordCacheHit records a read served from a cache.
	RecordCacheHit(kind string)

	// RecordCacheMiss records a read that had to go to the provider.
	RecordCacheMiss(kind string)

	// RecordCacheClear records a wholesale cache invalidation.
	RecordCacheClear()

	// RecordThrottleWait records how long a caller waited at the gate.
	RecordThrottleWait(d time.Duration)

	// RecordAPICall records one outbound provider call and its outcome.
	RecordAPICall(op string, err error, d time.Duration)

	// RecordBatchSkipped records per-id failures swallowed inside a batch.
	RecordBatchSkipped(kind string, n int)
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordCacheHit(string)                      {}
func (NopMetrics) RecordCacheMiss(string)                     {}
func (NopMetrics) RecordCacheClear()                          {}
func (NopMetrics) RecordThrottleWait(time.Duration)           {}
func (NopMetrics) RecordAPICall(string, error, time.Duration) {}
func (NopMetrics) RecordBatchSkipped(string, int)             {}

var _ Metrics = NopMetrics{}
