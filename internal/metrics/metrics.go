// Package metrics provides lightweight counters for tracking the
// outcome of diagnostic runs.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"netdiag/internal/probe"
)

// Collector tracks probe statistics across one or more runs.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	probesRun      atomic.Int64
	probesPassed   atomic.Int64
	probesWarned   atomic.Int64
	probesFailed   atomic.Int64
	latencyTotalMs atomic.Int64
	latencySamples atomic.Int64

	mu        sync.RWMutex
	startTime time.Time
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// Record counts one probe result.
func (c *Collector) Record(res probe.Result) {
	if c == nil {
		return
	}
	c.probesRun.Add(1)
	switch res.Status {
	case probe.Pass:
		c.probesPassed.Add(1)
	case probe.Warn:
		c.probesWarned.Add(1)
	case probe.Fail:
		c.probesFailed.Add(1)
	}
	if res.LatencyMs > 0 {
		c.latencyTotalMs.Add(res.LatencyMs)
		c.latencySamples.Add(1)
	}
}

// ProbesRun returns the total number of recorded probes.
func (c *Collector) ProbesRun() int64 {
	if c == nil {
		return 0
	}
	return c.probesRun.Load()
}

// AverageLatencyMs returns the mean latency over all latency-bearing
// probes, or 0 when none were recorded.
func (c *Collector) AverageLatencyMs() int64 {
	if c == nil {
		return 0
	}
	samples := c.latencySamples.Load()
	if samples == 0 {
		return 0
	}
	return c.latencyTotalMs.Load() / samples
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	ProbesRun        int64         `json:"probes_run"`
	ProbesPassed     int64         `json:"probes_passed"`
	ProbesWarned     int64         `json:"probes_warned"`
	ProbesFailed     int64         `json:"probes_failed"`
	AverageLatencyMs int64         `json:"average_latency_ms"`
	Uptime           time.Duration `json:"uptime_ns"`
}

// Snapshot returns a consistent copy of the current counters.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	start := c.startTime
	c.mu.RUnlock()

	return Snapshot{
		ProbesRun:        c.probesRun.Load(),
		ProbesPassed:     c.probesPassed.Load(),
		ProbesWarned:     c.probesWarned.Load(),
		ProbesFailed:     c.probesFailed.Load(),
		AverageLatencyMs: c.AverageLatencyMs(),
		Uptime:           time.Since(start),
	}
}

// JSON renders the snapshot for debug logging.
func (c *Collector) JSON() string {
	b, err := json.Marshal(c.Snapshot())
	if err != nil {
		return "{}"
	}
	return string(b)
}
