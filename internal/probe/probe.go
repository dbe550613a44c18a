// Package probe implements the per-layer health checks.  Each probe
// covers one OSI layer, runs a single bounded check, and returns
// exactly one Result — every internal fault (timeout, refusal,
// resolution failure) is converted into a Fail result with a readable
// message, so the pipeline never needs layer-specific error handling.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Layer identifies one of the seven OSI layers, in probing order.
type Layer int

const (
	Physical Layer = iota + 1
	DataLink
	Network
	Transport
	Session
	Presentation
	Application
)

// Layers returns all layers in fixed OSI order.
func Layers() []Layer {
	return []Layer{Physical, DataLink, Network, Transport, Session, Presentation, Application}
}

func (l Layer) String() string {
	switch l {
	case Physical:
		return "Physical"
	case DataLink:
		return "Data Link"
	case Network:
		return "Network"
	case Transport:
		return "Transport"
	case Session:
		return "Session"
	case Presentation:
		return "Presentation"
	case Application:
		return "Application"
	default:
		return fmt.Sprintf("Layer(%d)", int(l))
	}
}

// MarshalJSON renders the layer as its name.
func (l Layer) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

// UnmarshalJSON accepts a layer name.
func (l *Layer) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, candidate := range Layers() {
		if candidate.String() == s {
			*l = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown layer %q", s)
}

// Status classifies a probe outcome.  The numeric order doubles as
// severity: Fail > Warn > Pass.
type Status int

const (
	Pass Status = iota
	Warn
	Fail
)

func (s Status) String() string {
	switch s {
	case Pass:
		return "PASS"
	case Warn:
		return "WARN"
	case Fail:
		return "FAIL"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalJSON renders the status as its name.
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON accepts a status name.
func (s *Status) UnmarshalJSON(b []byte) error {
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch v {
	case "PASS":
		*s = Pass
	case "WARN":
		*s = Warn
	case "FAIL":
		*s = Fail
	default:
		return fmt.Errorf("unknown status %q", v)
	}
	return nil
}

// Worst returns the more severe of two statuses.
func Worst(a, b Status) Status {
	if b > a {
		return b
	}
	return a
}

// Result is the immutable outcome of one layer check.  LatencyMs is 0
// when the check has no latency dimension.
type Result struct {
	Layer     Layer  `json:"layer"`
	Status    Status `json:"status"`
	LatencyMs int64  `json:"latency_ms,omitempty"`
	Message   string `json:"message"`
}

// Probe runs a single layer check.  Implementations never return an
// error past Run; faults become Fail results.
type Probe interface {
	Layer() Layer
	Run(ctx context.Context) Result
}

// millis converts a measured duration to whole milliseconds, clamping
// to 1 so a sub-millisecond round trip is distinguishable from "no
// latency recorded".
func millis(d time.Duration) int64 {
	ms := d.Milliseconds()
	if ms < 1 {
		return 1
	}
	return ms
}
