// Package metrics records integration-layer metrics with Prometheus.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/api/googleapi"

	"github.com/custodia-labs/wsbridge/internal/core/ports/driven"
)

// Ensure Collector implements the interface.
var _ driven.Metrics = (*Collector)(nil)

const namespace = "wsbridge"

// Outcome labels for API calls that did not produce an HTTP status.
const (
	outcomeOK    = "ok"
	outcomeError = "error"
)

// Collector records metrics into a Prometheus registry.
type Collector struct {
	cacheHits    *prometheus.CounterVec
	cacheMisses  *prometheus.CounterVec
	cacheClears  prometheus.Counter
	throttleWait prometheus.Histogram
	apiCalls     *prometheus.CounterVec
	apiLatency   *prometheus.HistogramVec
	batchSkipped *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_hits_total",
			Help:      "Reads served from a resource cache.",
		}, []string{"kind"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_misses_total",
			Help:      "Reads that went to the provider.",
		}, []string{"kind"}),
		cacheClears: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_clears_total",
			Help:      "Wholesale cache invalidations on sign-out or identity change.",
		}),
		throttleWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "throttle_wait_seconds",
			Help:      "Time spent waiting at the request gate.",
			Buckets:   []float64{0, .01, .05, .1, .2, .5, 1, 2, 5, 10, 30, 60},
		}),
		apiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_calls_total",
			Help:      "Provider calls by operation and outcome.",
		}, []string{"op", "code"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_call_duration_seconds",
			Help:      "Provider call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		batchSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batch_skipped_total",
			Help:      "Ids dropped from a batch because their sub-request failed.",
		}, []string{"kind"}),
	}

	reg.MustRegister(
		c.cacheHits,
		c.cacheMisses,
		c.cacheClears,
		c.throttleWait,
		c.apiCalls,
		c.apiLatency,
		c.batchSkipped,
	)

	return c
}

// RecordCacheHit records a read served from a cache.
func (c *Collector) RecordCacheHit(kind string) {
	c.cacheHits.WithLabelValues(kind).Inc()
}

// RecordCacheMiss records a read that had to go to the provider.
func (c *Collector) RecordCacheMiss(kind string) {
	c.cacheMisses.WithLabelValues(kind).Inc()
}

// RecordCacheClear records a wholesale cache invalidation.
func (c *Collector) RecordCacheClear() {
	c.cacheClears.Inc()
}

// RecordThrottleWait records time spent at the gate.
func (c *Collector) RecordThrottleWait(d time.Duration) {
	c.throttleWait.Observe(d.Seconds())
}

// RecordAPICall records one provider call. The code label is the HTTP
// status of a provider error, "ok" on success and "error" otherwise.
func (c *Collector) RecordAPICall(op string, err error, d time.Duration) {
	c.apiCalls.WithLabelValues(op, outcome(err)).Inc()
	c.apiLatency.WithLabelValues(op).Observe(d.Seconds())
}

// RecordBatchSkipped records ids dropped from a batch.
func (c *Collector) RecordBatchSkipped(kind string, n int) {
	if n <= 0 {
		return
	}
	c.batchSkipped.WithLabelValues(kind).Add(float64(n))
}

func outcome(err error) string {
	if err == nil {
		return outcomeOK
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Code != 0 {
		return strconv.Itoa(gerr.Code)
	}
	return outcomeError
}

// Handler returns the scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
