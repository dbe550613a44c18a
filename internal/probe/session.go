package probe

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"netdiag/internal/errors"
	"netdiag/internal/netsys"
)

// The session and presentation layers have no independent OS-level
// primitive, so both are proxied through an encrypted-session
// handshake: the session layer checks that a secure session can be
// established at all, the presentation layer checks what was
// negotiated.

// SessionProbe verifies an encrypted session can be established with a
// known reachable endpoint.
type SessionProbe struct {
	TLS     netsys.TLSDialer
	Target  string // host:port
	Timeout time.Duration
}

func (p *SessionProbe) Layer() Layer { return Session }

func (p *SessionProbe) Run(ctx context.Context) Result {
	info, err := p.TLS.Handshake(ctx, p.Target, p.Timeout)
	if err != nil {
		if errors.IsTimeout(err) {
			return Result{
				Layer:   Session,
				Status:  Fail,
				Message: fmt.Sprintf("handshake with %s timed out after %s", p.Target, p.Timeout),
			}
		}
		return Result{
			Layer:   Session,
			Status:  Fail,
			Message: errors.Wrap(Session.String(), "handshake", p.Target, err).Error(),
		}
	}

	return Result{
		Layer:     Session,
		Status:    Pass,
		LatencyMs: millis(info.Latency),
		Message:   fmt.Sprintf("secure session established with %s", p.Target),
	}
}

// PresentationProbe verifies the negotiated encryption parameters of a
// handshake with a known endpoint.
type PresentationProbe struct {
	TLS     netsys.TLSDialer
	Target  string // host:port
	Timeout time.Duration
}

func (p *PresentationProbe) Layer() Layer { return Presentation }

func (p *PresentationProbe) Run(ctx context.Context) Result {
	info, err := p.TLS.Handshake(ctx, p.Target, p.Timeout)
	if err != nil {
		if errors.IsTimeout(err) {
			return Result{
				Layer:   Presentation,
				Status:  Fail,
				Message: fmt.Sprintf("handshake with %s timed out after %s", p.Target, p.Timeout),
			}
		}
		return Result{
			Layer:   Presentation,
			Status:  Fail,
			Message: errors.Wrap(Presentation.String(), "handshake", p.Target, err).Error(),
		}
	}

	version := tls.VersionName(info.Version)
	if info.Version < tls.VersionTLS12 {
		return Result{
			Layer:     Presentation,
			Status:    Warn,
			LatencyMs: millis(info.Latency),
			Message:   fmt.Sprintf("legacy %s negotiated with %s", version, p.Target),
		}
	}

	return Result{
		Layer:     Presentation,
		Status:    Pass,
		LatencyMs: millis(info.Latency),
		Message:   fmt.Sprintf("%s / %s negotiated with %s", version, tls.CipherSuiteName(info.CipherSuite), p.Target),
	}
}
