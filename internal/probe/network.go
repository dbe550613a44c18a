package probe

import (
	"context"
	"fmt"
	"net/netip"
	"time"

	"netdiag/internal/errors"
	"netdiag/internal/netsys"
	"netdiag/internal/retry"
)

// GatewayFunc supplies the run's default gateway.  The pipeline wires
// in a memoized resolver so the routing table is queried at most once
// per run.
type GatewayFunc func(ctx context.Context) (netip.Addr, error)

// NetworkProbe pings the default gateway and classifies the round-trip
// time.  A transient lost reply is retried within the probe's timeout
// budget before the gateway is declared unreachable.
type NetworkProbe struct {
	Gateway    GatewayFunc
	Pinger     netsys.Pinger
	Classifier Classifier
	Timeout    time.Duration
	Retry      *retry.Backoff
}

func (p *NetworkProbe) Layer() Layer { return Network }

func (p *NetworkProbe) Run(ctx context.Context) Result {
	gw, err := p.Gateway(ctx)
	if err != nil {
		return Result{
			Layer:   Network,
			Status:  Fail,
			Message: fmt.Sprintf("gateway unresolved: %v", err),
		}
	}

	// The timeout bounds the whole probe, not each attempt; retries
	// share whatever budget remains.
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	backoff := p.Retry
	if backoff == nil {
		backoff = retry.DefaultBackoff()
	}

	var echo netsys.EchoResult
	err = backoff.Do(ctx, func(int) error {
		res, err := p.Pinger.Echo(ctx, gw, p.Timeout)
		if err != nil {
			return err
		}
		if !res.Reachable {
			return errors.ErrUnreachable
		}
		echo = res
		return nil
	})
	if err != nil {
		if errors.IsTimeout(err) {
			return Result{
				Layer:   Network,
				Status:  Fail,
				Message: fmt.Sprintf("echo to gateway %s timed out after %s", gw, p.Timeout),
			}
		}
		return Result{
			Layer:   Network,
			Status:  Fail,
			Message: fmt.Sprintf("gateway %s unreachable: %v", gw, err),
		}
	}

	ms := millis(echo.Latency)
	status := p.Classifier.Classify(ms)
	var msg string
	switch status {
	case Warn:
		msg = fmt.Sprintf("elevated latency to gateway %s", gw)
	case Fail:
		msg = fmt.Sprintf("high latency to gateway %s", gw)
	default:
		msg = fmt.Sprintf("gateway %s round trip %d ms", gw, ms)
	}
	return Result{Layer: Network, Status: status, LatencyMs: ms, Message: msg}
}
