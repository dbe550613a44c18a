// Package config defines the runtime configuration for a diagnostic
// run and provides helpers for loading values from the environment.
package config

import (
	"net"
	"net/url"
	"time"

	"netdiag/internal/errors"
)

// Config holds every tuneable for a single diagnostic run.
type Config struct {
	// ── Probe targets ────────────────────────────────────────────────
	Gateway    string // override default-gateway discovery with a fixed IP
	TCPTarget  string // host:port for the transport-layer connect test
	TLSTarget  string // host:port for the session/presentation handshake
	HTTPTarget string // URL for the application-layer GET
	DNSName    string // hostname resolved as part of the application check
	DNSServer  string // explicit DNS server (host[:port]); empty = system

	// ── Probe behaviour ──────────────────────────────────────────────
	Timeout         time.Duration // per-probe wait bound
	PassThresholdMs int64         // RTT at or below this is healthy
	WarnThresholdMs int64         // RTT at or below this is degraded
	PingRetries     int           // echo attempts before declaring unreachable
	StopOnNetFail   bool          // stop the run when the network layer fails

	// ── Report & history ─────────────────────────────────────────────
	ReportDir   string // directory for timestamped report files
	NoReport    bool   // skip writing the report file
	HistoryDB   string // sqlite path for run history ("" disables)
	HistoryLast int    // print the last N stored runs and exit

	// ── Output ───────────────────────────────────────────────────────
	JSON    bool
	Verbose int
}

// ── Validation ───────────────────────────────────────────────────────

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return &errors.ConfigError{
			Field:   "timeout",
			Value:   c.Timeout,
			Message: "per-probe timeout must be positive",
			Hint:    "try --timeout 5s",
		}
	}
	if c.PassThresholdMs <= 0 || c.WarnThresholdMs <= 0 {
		return &errors.ConfigError{
			Field:   "latency-pass / latency-warn",
			Message: "latency thresholds must be positive",
		}
	}
	if c.PassThresholdMs >= c.WarnThresholdMs {
		return &errors.ConfigError{
			Field:   "latency-pass",
			Value:   c.PassThresholdMs,
			Message: "pass threshold must be below the warn threshold",
			Hint:    "defaults are 50 and 150",
		}
	}
	if c.PingRetries < 1 {
		return &errors.ConfigError{
			Field:   "ping-retries",
			Value:   c.PingRetries,
			Message: "at least one echo attempt is required",
		}
	}
	if c.Gateway != "" && net.ParseIP(c.Gateway) == nil {
		return &errors.ConfigError{
			Field:   "gateway",
			Value:   c.Gateway,
			Message: "gateway override must be an IP address",
		}
	}
	if err := validateHostPort("tcp-target", c.TCPTarget); err != nil {
		return err
	}
	if err := validateHostPort("tls-target", c.TLSTarget); err != nil {
		return err
	}
	if err := validateURL("http-target", c.HTTPTarget); err != nil {
		return err
	}
	if c.DNSName == "" {
		return &errors.ConfigError{
			Field:   "dns-name",
			Message: "application-layer check needs a hostname to resolve",
		}
	}
	if c.HistoryLast > 0 && c.HistoryDB == "" {
		return &errors.ConfigError{
			Field:   "history-last",
			Value:   c.HistoryLast,
			Message: "listing run history requires a history database",
			Hint:    "add --history-db <path>",
		}
	}
	return nil
}

func validateHostPort(field, value string) error {
	host, port, err := net.SplitHostPort(value)
	if err != nil || host == "" || port == "" {
		return &errors.ConfigError{
			Field:   field,
			Value:   value,
			Message: "expected host:port",
		}
	}
	return nil
}

func validateURL(field, value string) error {
	u, err := url.Parse(value)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &errors.ConfigError{
			Field:   field,
			Value:   value,
			Message: "expected an http(s) URL",
		}
	}
	return nil
}
