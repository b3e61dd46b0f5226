package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid
// and turns every method into a no-op, so tests can pass nil.
type Metrics struct {
	activeSessions    prometheus.Gauge
	framesProcessed   prometheus.Counter
	frameCacheHits    prometheus.Counter
	tasksSuperseded   prometheus.Counter
	wsMessagesDropped prometheus.Counter
	frameDuration     prometheus.Histogram
}

// New creates and registers the collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		activeSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Number of connected client sessions.",
		}),
		framesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frames_processed_total",
			Help: "Frames that went through the full pipeline.",
		}),
		frameCacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "frame_cache_hits_total",
			Help: "Frames answered from the decimation cache.",
		}),
		tasksSuperseded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tasks_superseded_total",
			Help: "In-flight tasks cancelled by a newer task of the same modality.",
		}),
		wsMessagesDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ws_messages_dropped_total",
			Help: "Inbound websocket messages dropped by rate limiting.",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "frame_processing_seconds",
			Help:    "Frame pipeline latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.activeSessions,
		m.framesProcessed,
		m.frameCacheHits,
		m.tasksSuperseded,
		m.wsMessagesDropped,
		m.frameDuration,
	)
	return m
}

func (m *Metrics) SessionOpened() {
	if m == nil {
		return
	}
	m.activeSessions.Inc()
}

func (m *Metrics) SessionClosed() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

func (m *Metrics) FrameProcessed(d time.Duration) {
	if m == nil {
		return
	}
	m.framesProcessed.Inc()
	m.frameDuration.Observe(d.Seconds())
}

func (m *Metrics) FrameCacheHit() {
	if m == nil {
		return
	}
	m.frameCacheHits.Inc()
}

func (m *Metrics) TaskSuperseded() {
	if m == nil {
		return
	}
	m.tasksSuperseded.Inc()
}

func (m *Metrics) MessageDropped() {
	if m == nil {
		return
	}
	m.wsMessagesDropped.Inc()
}
