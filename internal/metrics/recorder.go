// Package metrics exposes Prometheus instrumentation for the animation engine
// and the HTTP surface. All collectors live on a private registry so several
// recorders can coexist in tests.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ecodash"

// Recorder collects engine and request metrics. A nil *Recorder is valid and
// records nothing.
type Recorder struct {
	registry *prometheus.Registry

	mounts         prometheus.Counter
	activeViews    prometheus.Gauge
	frames         prometheus.Counter
	snapshots      prometheus.Counter
	settled        prometheus.Counter
	configErrors   prometheus.Counter
	settleDuration prometheus.Histogram

	activeRequests prometheus.Gauge
	requests       *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry, including the Go
// runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		mounts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "coordinator_mounts_total",
			Help:      "Number of dashboard views mounted.",
		}),
		activeViews: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "coordinator_active",
			Help:      "Number of mounted coordinators that have not been torn down.",
		}),
		frames: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_sampled_total",
			Help:      "Number of display-refresh ticks sampled by coordinators.",
		}),
		snapshots: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshots_published_total",
			Help:      "Number of dashboard snapshots handed to a renderer.",
		}),
		settled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "animators_settled_total",
			Help:      "Number of value animators that reached their target.",
		}),
		configErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_errors_total",
			Help:      "Number of target sets rejected at coordinator construction.",
		}),
		settleDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "settle_duration_seconds",
			Help:      "Time from mount to all values settled.",
			Buckets:   []float64{0.25, 0.5, 1, 1.5, 2, 3, 5, 10},
		}),
		activeRequests: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_requests",
			Help:      "Number of HTTP requests currently being served.",
		}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "Number of HTTP requests served.",
		}, []string{"method", "code"}),
	}

	r.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		r.mounts, r.activeViews, r.frames, r.snapshots, r.settled,
		r.configErrors, r.settleDuration, r.activeRequests, r.requests,
	)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Mounted records a view mount.
func (r *Recorder) Mounted() {
	if r == nil {
		return
	}
	r.mounts.Inc()
	r.activeViews.Inc()
}

// Unmounted records a view teardown.
func (r *Recorder) Unmounted() {
	if r == nil {
		return
	}
	r.activeViews.Dec()
}

// FrameSampled records one sampled tick.
func (r *Recorder) FrameSampled() {
	if r == nil {
		return
	}
	r.frames.Inc()
}

// SnapshotPublished records one snapshot delivered to a renderer.
func (r *Recorder) SnapshotPublished() {
	if r == nil {
		return
	}
	r.snapshots.Inc()
}

// AnimatorsSettled records n animators reaching their target.
func (r *Recorder) AnimatorsSettled(n int) {
	if r == nil || n <= 0 {
		return
	}
	r.settled.Add(float64(n))
}

// AllSettled records the time from mount to the last value settling.
func (r *Recorder) AllSettled(sinceMount time.Duration) {
	if r == nil {
		return
	}
	r.settleDuration.Observe(sinceMount.Seconds())
}

// ConfigRejected records a target set rejected at construction.
func (r *Recorder) ConfigRejected() {
	if r == nil {
		return
	}
	r.configErrors.Inc()
}

// RequestStarted increments the in-flight request gauge.
func (r *Recorder) RequestStarted() {
	if r == nil {
		return
	}
	r.activeRequests.Inc()
}

// RequestFinished decrements the in-flight gauge and counts the request.
func (r *Recorder) RequestFinished(method string, code int) {
	if r == nil {
		return
	}
	r.activeRequests.Dec()
	r.requests.WithLabelValues(method, strconv.Itoa(code)).Inc()
}
