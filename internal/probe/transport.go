package probe

import (
	"context"
	"fmt"
	"time"

	"netdiag/internal/errors"
	"netdiag/internal/netsys"
)

// TransportProbe attempts a TCP handshake with a well-known reachable
// endpoint and classifies how long establishment took.
type TransportProbe struct {
	Dialer     netsys.Dialer
	Target     string // host:port
	Classifier Classifier
	Timeout    time.Duration
}

func (p *TransportProbe) Layer() Layer { return Transport }

func (p *TransportProbe) Run(ctx context.Context) Result {
	latency, err := p.Dialer.Connect(ctx, p.Target, p.Timeout)
	if err != nil {
		switch {
		case errors.IsTimeout(err):
			return Result{
				Layer:   Transport,
				Status:  Fail,
				Message: fmt.Sprintf("connect %s timed out after %s", p.Target, p.Timeout),
			}
		case errors.IsRefused(err):
			return Result{
				Layer:   Transport,
				Status:  Fail,
				Message: fmt.Sprintf("connection to %s refused", p.Target),
			}
		default:
			return Result{
				Layer:   Transport,
				Status:  Fail,
				Message: errors.Wrap(Transport.String(), "connect", p.Target, err).Error(),
			}
		}
	}

	ms := millis(latency)
	status := p.Classifier.Classify(ms)
	var msg string
	switch status {
	case Warn:
		msg = fmt.Sprintf("elevated latency connecting to %s", p.Target)
	case Fail:
		msg = fmt.Sprintf("high latency connecting to %s", p.Target)
	default:
		msg = fmt.Sprintf("TCP handshake with %s in %d ms", p.Target, ms)
	}
	return Result{Layer: Transport, Status: status, LatencyMs: ms, Message: msg}
}
