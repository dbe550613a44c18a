package probe

// Classifier maps a measured round-trip time to a severity band.
// Thresholds are inclusive upper bounds: a round trip at exactly the
// pass threshold still passes.
type Classifier struct {
	PassThresholdMs int64
	WarnThresholdMs int64
}

// DefaultClassifier returns the standard bands: ≤50ms healthy,
// ≤150ms degraded, above that failing.
func DefaultClassifier() Classifier {
	return Classifier{PassThresholdMs: 50, WarnThresholdMs: 150}
}

// Classify returns the severity band for latencyMs.  Callers must
// only classify successful probes — absence of connectivity always
// outranks latency and never reaches classification.
func (c Classifier) Classify(latencyMs int64) Status {
	switch {
	case latencyMs <= c.PassThresholdMs:
		return Pass
	case latencyMs <= c.WarnThresholdMs:
		return Warn
	default:
		return Fail
	}
}
