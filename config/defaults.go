package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultTimeout bounds every individual probe so a silent remote
	// endpoint cannot hang the run.
	DefaultTimeout = 5 * time.Second

	// DefaultPassThresholdMs is the RTT at or below which a
	// latency-bearing probe passes.
	DefaultPassThresholdMs = 50

	// DefaultWarnThresholdMs is the RTT at or below which a
	// latency-bearing probe warns; above it the probe fails.
	DefaultWarnThresholdMs = 150

	// DefaultPingRetries is how many echo attempts the network-layer
	// probe makes before declaring the gateway unreachable.
	DefaultPingRetries = 3

	// DefaultTCPTarget is a public DNS resolver on its service port,
	// reachable from almost any network that has working transport.
	DefaultTCPTarget = "8.8.8.8:53"

	// DefaultTLSTarget is the endpoint for the session/presentation
	// handshake check.
	DefaultTLSTarget = "example.com:443"

	// DefaultHTTPTarget is the application-layer GET target.
	DefaultHTTPTarget = "https://example.com"

	// DefaultDNSName is the hostname resolved during the
	// application-layer check.
	DefaultDNSName = "example.com"

	// DefaultReportDir is where timestamped report files are written.
	DefaultReportDir = "."
)

// New returns a Config populated with defaults.  CLI flags and
// environment variables overlay on top of this.
func New() *Config {
	return &Config{
		TCPTarget:       DefaultTCPTarget,
		TLSTarget:       DefaultTLSTarget,
		HTTPTarget:      DefaultHTTPTarget,
		DNSName:         DefaultDNSName,
		Timeout:         DefaultTimeout,
		PassThresholdMs: DefaultPassThresholdMs,
		WarnThresholdMs: DefaultWarnThresholdMs,
		PingRetries:     DefaultPingRetries,
		ReportDir:       DefaultReportDir,
	}
}
