package probe

import (
	"context"
	"fmt"
	"time"

	"netdiag/internal/errors"
	"netdiag/internal/netsys"
)

// ApplicationProbe checks that application protocols work end to end:
// the target name resolves through DNS and an HTTP(S) GET returns a
// successful status.
type ApplicationProbe struct {
	DNS        netsys.DNSResolver
	HTTP       netsys.HTTPClient
	Name       string // hostname to resolve
	Server     string // explicit DNS server; "" = system
	URL        string
	Classifier Classifier
	Timeout    time.Duration
}

func (p *ApplicationProbe) Layer() Layer { return Application }

func (p *ApplicationProbe) Run(ctx context.Context) Result {
	dnsRes, err := p.DNS.Resolve(ctx, p.Name, p.Server, p.Timeout)
	if err != nil {
		if errors.IsTimeout(err) {
			return Result{
				Layer:   Application,
				Status:  Fail,
				Message: fmt.Sprintf("DNS resolve %s timed out after %s", p.Name, p.Timeout),
			}
		}
		return Result{
			Layer:   Application,
			Status:  Fail,
			Message: errors.Wrap(Application.String(), "DNS resolve", p.Name, err).Error(),
		}
	}

	res, err := p.HTTP.Get(ctx, p.URL, p.Timeout)
	if err != nil {
		if errors.IsTimeout(err) {
			return Result{
				Layer:   Application,
				Status:  Fail,
				Message: fmt.Sprintf("GET %s timed out after %s", p.URL, p.Timeout),
			}
		}
		return Result{
			Layer:   Application,
			Status:  Fail,
			Message: errors.Wrap(Application.String(), "GET", p.URL, err).Error(),
		}
	}
	if res.StatusCode < 200 || res.StatusCode >= 400 {
		return Result{
			Layer:   Application,
			Status:  Fail,
			Message: fmt.Sprintf("GET %s returned HTTP %d", p.URL, res.StatusCode),
		}
	}

	ms := millis(res.Latency)
	status := p.Classifier.Classify(ms)
	var msg string
	switch status {
	case Warn:
		msg = fmt.Sprintf("elevated latency fetching %s", p.URL)
	case Fail:
		msg = fmt.Sprintf("high latency fetching %s", p.URL)
	default:
		msg = fmt.Sprintf("HTTP %d from %s in %d ms (DNS %d ms)",
			res.StatusCode, p.URL, ms, millis(dnsRes.Latency))
	}
	return Result{Layer: Application, Status: status, LatencyMs: ms, Message: msg}
}
