package diag

import (
	"net/netip"
	"time"

	"netdiag/config"
	"netdiag/internal/metrics"
	"netdiag/internal/netsys"
	"netdiag/internal/probe"
	"netdiag/internal/retry"
	"netdiag/util"
)

// Capabilities bundles the system primitives the probes consume.
// Tests substitute fakes; production code uses SystemCapabilities.
type Capabilities struct {
	Ifaces  netsys.InterfaceLister
	Gateway netsys.GatewayResolver
	Pinger  netsys.Pinger
	Dialer  netsys.Dialer
	TLS     netsys.TLSDialer
	HTTP    netsys.HTTPClient
	DNS     netsys.DNSResolver
}

// SystemCapabilities returns the real platform implementations.
func SystemCapabilities() Capabilities {
	return Capabilities{
		Ifaces:  netsys.SystemInterfaces{},
		Gateway: &netsys.RouteResolver{},
		Pinger:  &netsys.ICMPPinger{Fallback: netsys.TCPDialer{}},
		Dialer:  netsys.TCPDialer{},
		TLS:     &netsys.StdTLSDialer{},
		HTTP:    &netsys.StdHTTPClient{},
		DNS:     &netsys.MiekgResolver{},
	}
}

// New assembles the seven layer probes from the configuration.  This
// is the single dispatch point wiring config values, capabilities, and
// the shared gateway cache together.
func New(cfg *config.Config, caps Capabilities, logger *util.Logger, collector *metrics.Collector) *Pipeline {
	classifier := probe.Classifier{
		PassThresholdMs: cfg.PassThresholdMs,
		WarnThresholdMs: cfg.WarnThresholdMs,
	}

	resolver := caps.Gateway
	if cfg.Gateway != "" {
		// Validated upstream; a bad override degrades to discovery.
		if addr, err := netip.ParseAddr(cfg.Gateway); err == nil {
			resolver = &netsys.StaticResolver{Addr: addr}
		}
	}
	gw := &gatewayCache{resolver: resolver, timeout: cfg.Timeout}

	echoRetry := &retry.Backoff{
		InitialDelay: 200 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   2.0,
		MaxAttempts:  cfg.PingRetries,
		Jitter:       true,
	}

	probes := []probe.Probe{
		&probe.PhysicalProbe{Ifaces: caps.Ifaces},
		&probe.DataLinkProbe{Ifaces: caps.Ifaces},
		&probe.NetworkProbe{
			Gateway:    gw.get,
			Pinger:     caps.Pinger,
			Classifier: classifier,
			Timeout:    cfg.Timeout,
			Retry:      echoRetry,
		},
		&probe.TransportProbe{
			Dialer:     caps.Dialer,
			Target:     cfg.TCPTarget,
			Classifier: classifier,
			Timeout:    cfg.Timeout,
		},
		&probe.SessionProbe{TLS: caps.TLS, Target: cfg.TLSTarget, Timeout: cfg.Timeout},
		&probe.PresentationProbe{TLS: caps.TLS, Target: cfg.TLSTarget, Timeout: cfg.Timeout},
		&probe.ApplicationProbe{
			DNS:        caps.DNS,
			HTTP:       caps.HTTP,
			Name:       cfg.DNSName,
			Server:     cfg.DNSServer,
			URL:        cfg.HTTPTarget,
			Classifier: classifier,
			Timeout:    cfg.Timeout,
		},
	}

	return &Pipeline{
		probes:        probes,
		gateway:       gw,
		logger:        logger,
		metrics:       collector,
		stopOnNetFail: cfg.StopOnNetFail,
	}
}
