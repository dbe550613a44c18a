// Package diag is the orchestration layer.  It composes the system
// capabilities and layer probes into a sequential bottom-up walk of
// the OSI stack and aggregates the per-layer results into a Run.
//
// Architecture layers (bottom → top):
//
//	netsys  →  probe  →  diag  →  report  →  cmd (CLI)
package diag

import (
	"context"
	"net/netip"
	"sync"
	"time"

	"netdiag/internal/metrics"
	"netdiag/internal/netsys"
	"netdiag/internal/probe"
	"netdiag/util"
)

// skippedMessage marks layers never probed because a lower layer was
// already dead.
const skippedMessage = "skipped: lower layer failed"

// cancelledMessage marks layers never probed because the run was
// cancelled.
const cancelledMessage = "cancelled before probing"

// Pipeline walks the configured probes in OSI order.  A fresh Run is
// produced per Execute call; concurrent Executes on separate pipelines
// are independent.
type Pipeline struct {
	probes        []probe.Probe
	gateway       *gatewayCache
	logger        *util.Logger
	metrics       *metrics.Collector
	stopOnNetFail bool
}

// Execute runs every layer probe in order and returns the completed
// Run.  Continuation policy: a Physical or Data Link failure stops the
// walk — there is no value in probing higher layers over a dead link —
// and the remaining layers are recorded as skipped failures so the
// result set always covers all seven layers.  Higher-layer failures do
// not stop the walk unless the network-layer stop policy is enabled.
//
// Cancellation is honoured between layers: an in-flight probe may
// finish or hit its timeout, but no new layer starts after ctx is
// cancelled.
func (p *Pipeline) Execute(ctx context.Context) *Run {
	run := &Run{StartedAt: time.Now()}

	if gw, err := p.gateway.get(ctx); err == nil {
		run.Gateway = gw.String()
		p.logger.Verbose("default gateway %s", gw)
	} else {
		p.logger.Warn("default gateway: %v", err)
	}

	for i, pr := range p.probes {
		if ctx.Err() != nil {
			p.logger.Warn("run cancelled before %s layer", pr.Layer())
			p.skipRemaining(run, i, cancelledMessage)
			break
		}

		res := pr.Run(ctx)
		run.Results = append(run.Results, res)
		p.metrics.Record(res)
		p.logger.Verbose("%-12s %s  %s", res.Layer, res.Status, res.Message)

		if res.Status == probe.Fail && p.stopsRun(res.Layer) {
			p.logger.Debug("%s layer failed, skipping higher layers", res.Layer)
			p.skipRemaining(run, i+1, skippedMessage)
			break
		}
	}

	run.Overall = overallStatus(run.Results)
	p.logger.Debug("run metrics: %s", p.metrics.JSON())
	return run
}

// stopsRun reports whether a failure at the given layer ends the walk.
func (p *Pipeline) stopsRun(l probe.Layer) bool {
	switch l {
	case probe.Physical, probe.DataLink:
		return true
	case probe.Network:
		return p.stopOnNetFail
	default:
		return false
	}
}

// skipRemaining appends a synthetic Fail for every layer from index on.
func (p *Pipeline) skipRemaining(run *Run, from int, msg string) {
	for _, pr := range p.probes[from:] {
		res := probe.Result{Layer: pr.Layer(), Status: probe.Fail, Message: msg}
		run.Results = append(run.Results, res)
		p.metrics.Record(res)
	}
}

// gatewayCache resolves the default gateway at most once per run and
// shares the outcome between the pipeline and the network-layer probe.
type gatewayCache struct {
	resolver netsys.GatewayResolver
	timeout  time.Duration

	once sync.Once
	addr netip.Addr
	err  error
}

func (g *gatewayCache) get(ctx context.Context) (netip.Addr, error) {
	g.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, g.timeout)
		defer cancel()
		g.addr, g.err = g.resolver.DefaultGateway(ctx)
	})
	return g.addr, g.err
}
