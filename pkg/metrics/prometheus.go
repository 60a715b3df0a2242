package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.DashboardMetrics using Prometheus.
type Recorder struct {
	fetchesTotal  *prometheus.CounterVec
	fetchLatency  *prometheus.HistogramVec
	ticksTotal    prometheus.Counter
	remaining     prometheus.Gauge
	staleDropped  prometheus.Counter
	displayDrops  *prometheus.CounterVec
	displayErrors *prometheus.CounterVec
}

// New creates a recorder registered on the default registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchesTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "findash_fetches_total",
				Help: "Dashboard fetch cycles by result",
			},
			[]string{"result"},
		),
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "findash_fetch_duration_seconds",
				Help:    "Duration of dashboard fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		),
		ticksTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "findash_countdown_ticks_total",
			Help: "Countdown ticks executed",
		}),
		remaining: f.NewGauge(prometheus.GaugeOpts{
			Name: "findash_countdown_remaining_seconds",
			Help: "Seconds shown on the countdown",
		}),
		staleDropped: f.NewCounter(prometheus.CounterOpts{
			Name: "findash_stale_completions_total",
			Help: "Fetch completions discarded because a newer one was already applied",
		}),
		displayDrops: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "findash_display_dropped_total",
				Help: "Region writes dropped because a sink buffer was full",
			},
			[]string{"sink"},
		),
		displayErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "findash_display_errors_total",
				Help: "Region writes a sink failed to deliver",
			},
			[]string{"sink"},
		),
	}
}

// RecordFetch records one completed fetch.
func (r *Recorder) RecordFetch(result string, d time.Duration) {
	r.fetchesTotal.WithLabelValues(result).Inc()
	r.fetchLatency.WithLabelValues(result).Observe(d.Seconds())
}

// RecordTick records a countdown tick and the value it displayed.
func (r *Recorder) RecordTick(remaining int) {
	r.ticksTotal.Inc()
	r.remaining.Set(float64(remaining))
}

func (r *Recorder) RecordStale() { r.staleDropped.Inc() }

func (r *Recorder) RecordDisplayDrop(sink string) { r.displayDrops.WithLabelValues(sink).Inc() }

func (r *Recorder) RecordDisplayError(sink string) { r.displayErrors.WithLabelValues(sink).Inc() }

// Nop discards everything.
type Nop struct{}

func (Nop) RecordFetch(string, time.Duration) {}
func (Nop) RecordTick(int)                    {}
func (Nop) RecordStale()                      {}
func (Nop) RecordDisplayDrop(string)          {}
func (Nop) RecordDisplayError(string)         {}
