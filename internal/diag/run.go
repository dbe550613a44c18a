package diag

import (
	"time"

	"netdiag/internal/probe"
)

// Run is the aggregate state of one diagnostic invocation.  It is
// owned by the pipeline that produced it and never shared across
// runs.  Results appear in attempted-layer order; a layer missing
// from the slice means the pipeline stopped before reaching it.
type Run struct {
	StartedAt time.Time      `json:"started_at"`
	Gateway   string         `json:"gateway,omitempty"` // empty when unresolved
	Results   []probe.Result `json:"results"`
	Overall   probe.Status   `json:"overall"`
}

// overallStatus derives the worst status present, or Fail for an
// empty result set.
func overallStatus(results []probe.Result) probe.Status {
	if len(results) == 0 {
		return probe.Fail
	}
	worst := probe.Pass
	for _, res := range results {
		worst = probe.Worst(worst, res.Status)
	}
	return worst
}
