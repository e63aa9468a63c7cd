package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics aggregates counters for chat reply generation, keyed by reply mode.
type Metrics struct {
	mu sync.Mutex

	requestTotal  atomic.Int64
	requestFailed atomic.Int64

	modeMetrics map[string]*ModeMetrics
}

// ModeMetrics holds counters for a single reply mode.
type ModeMetrics struct {
	replyCount    atomic.Int64
	totalDuration atomic.Int64 // milliseconds
	errorCount    atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		modeMetrics: make(map[string]*ModeMetrics),
	}
}

var globalMetrics = NewMetrics()

// GlobalMetrics returns the process-wide metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordReply records a completed reply in the given mode.
func (m *Metrics) RecordReply(mode string, duration time.Duration) {
	m.requestTotal.Add(1)
	mm := m.getModeMetrics(mode)
	mm.replyCount.Add(1)
	mm.totalDuration.Add(duration.Milliseconds())
}

// RecordFailure records a failed chat request.
func (m *Metrics) RecordFailure(mode string) {
	m.requestFailed.Add(1)
	m.getModeMetrics(mode).errorCount.Add(1)
}

// GetRequestTotal returns the total number of chat requests.
func (m *Metrics) GetRequestTotal() int64 {
	return m.requestTotal.Load()
}

// GetRequestFailed returns the total number of failed chat requests.
func (m *Metrics) GetRequestFailed() int64 {
	return m.requestFailed.Load()
}

// GetAverageDuration returns the average reply duration in milliseconds for a mode.
func (m *Metrics) GetAverageDuration(mode string) int64 {
	mm := m.getModeMetrics(mode)
	count := mm.replyCount.Load()
	if count == 0 {
		return 0
	}
	return mm.totalDuration.Load() / count
}

func (m *Metrics) getModeMetrics(mode string) *ModeMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	mm, ok := m.modeMetrics[mode]
	if !ok {
		mm = &ModeMetrics{}
		m.modeMetrics[mode] = mm
	}
	return mm
}

// Reset clears all metrics. Intended for tests.
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)

	m.mu.Lock()
	m.modeMetrics = make(map[string]*ModeMetrics)
	m.mu.Unlock()
}

// Snapshot returns a point-in-time copy of all counters.
func (m *Metrics) Snapshot() *MetricsSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	modes := make(map[string]*ModeMetricsSnapshot, len(m.modeMetrics))
	for mode, mm := range m.modeMetrics {
		count := mm.replyCount.Load()
		snap := &ModeMetricsSnapshot{
			ReplyCount:    count,
			TotalDuration: mm.totalDuration.Load(),
			ErrorCount:    mm.errorCount.Load(),
		}
		if count > 0 {
			snap.AverageDuration = snap.TotalDuration / count
		}
		modes[mode] = snap
	}

	return &MetricsSnapshot{
		RequestTotal:  m.requestTotal.Load(),
		RequestFailed: m.requestFailed.Load(),
		ModeMetrics:   modes,
	}
}

// MetricsSnapshot is a point-in-time view of chat metrics.
type MetricsSnapshot struct {
	RequestTotal  int64
	RequestFailed int64
	ModeMetrics   map[string]*ModeMetricsSnapshot
}

// ModeMetricsSnapshot holds the counters for one reply mode.
type ModeMetricsSnapshot struct {
	ReplyCount      int64
	TotalDuration   int64
	ErrorCount      int64
	AverageDuration int64
}

// SuccessRate returns the success rate as a percentage (0-100).
func (s *MetricsSnapshot) SuccessRate() float64 {
	if s.RequestTotal == 0 {
		return 100.0
	}
	return float64(s.RequestTotal-s.RequestFailed) / float64(s.RequestTotal) * 100.0
}
