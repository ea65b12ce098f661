// Package metrics records what a scrape run did as Prometheus metrics.
//
// A batch run has no scrape endpoint, so the registry is flushed to a file in
// the node_exporter textfile format when the run ends.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Page kinds for fetch timings
const (
	PageScoreboard = "scoreboard"
	PagePlayByPlay = "playbyplay"
)

// Recorder holds the metrics of one run
type Recorder struct {
	namespace    string
	subsystem    string
	fetchBuckets []float64
	registry     *prometheus.Registry

	gamesProcessed   *prometheus.CounterVec
	daysProcessed    *prometheus.CounterVec
	eventsExtracted  prometheus.Counter
	tokensRejected   *prometheus.CounterVec
	recordsEmitted   prometheus.Counter
	fetchDuration    *prometheus.HistogramVec
	lastRunTimestamp prometheus.Gauge
}

// New creates a Recorder. Without WithRegistry the metrics live on a private
// registry so that several recorders can coexist in tests.
func New(opts ...Option) *Recorder {
	r := &Recorder{
		namespace:    "pbp",
		subsystem:    "scrape",
		fetchBuckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
	}

	for _, opt := range opts {
		opt(r)
	}
	if r.registry == nil {
		r.registry = prometheus.NewRegistry()
	}

	r.initializeMetrics()
	return r
}

func (r *Recorder) initializeMetrics() {
	auto := promauto.With(r.registry)

	r.gamesProcessed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "games_processed_total",
		Help:      "Games processed, by outcome",
	}, []string{"status"})

	r.daysProcessed = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "days_processed_total",
		Help:      "Scoreboard days processed, by outcome",
	}, []string{"status"})

	r.eventsExtracted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "events_extracted_total",
		Help:      "Score-change events extracted from play-by-play pages",
	})

	r.tokensRejected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "tokens_rejected_total",
		Help:      "Cells that looked like a score or clock but did not parse, by kind",
	}, []string{"kind"})

	r.recordsEmitted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "records_emitted_total",
		Help:      "Rows handed to the exporter",
	})

	r.fetchDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "fetch_duration_seconds",
		Help:      "Page fetch latency including retries, by page kind",
		Buckets:   r.fetchBuckets,
	}, []string{"page"})

	r.lastRunTimestamp = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: r.namespace,
		Subsystem: r.subsystem,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time the run finished",
	})
}

// GameProcessed counts a game by outcome
func (r *Recorder) GameProcessed(status string) {
	r.gamesProcessed.WithLabelValues(status).Inc()
}

// DayProcessed counts a scoreboard day by outcome
func (r *Recorder) DayProcessed(status string) {
	r.daysProcessed.WithLabelValues(status).Inc()
}

// EventsExtracted adds n extracted events
func (r *Recorder) EventsExtracted(n int) {
	r.eventsExtracted.Add(float64(n))
}

// TokenRejected counts one unparseable cell
func (r *Recorder) TokenRejected(kind string) {
	r.tokensRejected.WithLabelValues(kind).Inc()
}

// RecordsEmitted adds n exported rows
func (r *Recorder) RecordsEmitted(n int) {
	r.recordsEmitted.Add(float64(n))
}

// ObserveFetch records how long a page took to fetch
func (r *Recorder) ObserveFetch(page string, d time.Duration) {
	r.fetchDuration.WithLabelValues(page).Observe(d.Seconds())
}

// Gatherer exposes the underlying registry
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile stamps the finish time and writes every metric to path in
// the text exposition format.
func (r *Recorder) WriteTextfile(path string) error {
	r.lastRunTimestamp.SetToCurrentTime()
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
