package app

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dshills/riv/internal/texture"
)

// Metrics tracks viewer activity: events handled, frames produced and
// image loads.
type Metrics struct {
	eventCount   atomic.Uint64
	eventTotalNs atomic.Int64

	frameCount atomic.Uint64

	loadCount    atomic.Uint64
	loadHits     atomic.Uint64
	loadFailures atomic.Uint64
	loadChunks   atomic.Uint64
	loadTotalNs  atomic.Int64
	loadMaxNs    atomic.Int64

	reloads atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	return &Metrics{startTime: time.Now()}
}

// RecordEvent records the time spent handling one input event.
func (m *Metrics) RecordEvent(duration time.Duration) {
	m.eventCount.Add(1)
	m.eventTotalNs.Add(duration.Nanoseconds())
}

// RecordFrame counts one produced frame.
func (m *Metrics) RecordFrame() {
	m.frameCount.Add(1)
}

// RecordLoad records a successful texture load.
func (m *Metrics) RecordLoad(r texture.Report) {
	ns := r.Duration.Nanoseconds()
	m.loadCount.Add(1)
	if r.Hit {
		m.loadHits.Add(1)
	}
	m.loadChunks.Add(uint64(r.Chunks))
	m.loadTotalNs.Add(ns)

	for {
		old := m.loadMaxNs.Load()
		if ns <= old || m.loadMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordLoadFailure counts a failed texture load.
func (m *Metrics) RecordLoadFailure() {
	m.loadFailures.Add(1)
}

// RecordReload counts an applied config reload.
func (m *Metrics) RecordReload() {
	m.reloads.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	events := m.eventCount.Load()
	loads := m.loadCount.Load()

	var avgEvent, avgLoad time.Duration
	if events > 0 {
		avgEvent = time.Duration(m.eventTotalNs.Load() / int64(events))
	}
	if loads > 0 {
		avgLoad = time.Duration(m.loadTotalNs.Load() / int64(loads))
	}

	return MetricsSnapshot{
		Uptime:       time.Since(m.startTime),
		Events:       events,
		AvgEvent:     avgEvent,
		Frames:       m.frameCount.Load(),
		Loads:        loads,
		LoadHits:     m.loadHits.Load(),
		LoadFailures: m.loadFailures.Load(),
		Chunks:       m.loadChunks.Load(),
		AvgLoad:      avgLoad,
		MaxLoad:      time.Duration(m.loadMaxNs.Load()),
		Reloads:      m.reloads.Load(),
	}
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime       time.Duration
	Events       uint64
	AvgEvent     time.Duration
	Frames       uint64
	Loads        uint64
	LoadHits     uint64
	LoadFailures uint64
	Chunks       uint64
	AvgLoad      time.Duration
	MaxLoad      time.Duration
	Reloads      uint64
}

// HitRate returns the share of loads served from decoded surfaces.
func (s MetricsSnapshot) HitRate() float64 {
	if s.Loads == 0 {
		return 0
	}
	return float64(s.LoadHits) / float64(s.Loads)
}

// Fields returns the snapshot as log fields.
func (s MetricsSnapshot) Fields() map[string]any {
	return map[string]any{
		"uptime":   s.Uptime.Round(time.Millisecond),
		"events":   s.Events,
		"frames":   s.Frames,
		"loads":    s.Loads,
		"failures": s.LoadFailures,
		"hitRate":  fmt.Sprintf("%.2f", s.HitRate()),
		"chunks":   s.Chunks,
		"avgLoad":  s.AvgLoad,
		"maxLoad":  s.MaxLoad,
		"reloads":  s.Reloads,
	}
}
