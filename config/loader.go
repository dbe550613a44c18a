package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)
//
// A .env file in the working directory is loaded first, so values in
// it behave like ordinary environment variables.

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the NETDIAG_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	// Best effort; a missing .env file is the normal case.
	_ = godotenv.Load()

	if v := os.Getenv("NETDIAG_GATEWAY"); v != "" {
		cfg.Gateway = v
	}
	if v := os.Getenv("NETDIAG_TCP_TARGET"); v != "" {
		cfg.TCPTarget = v
	}
	if v := os.Getenv("NETDIAG_TLS_TARGET"); v != "" {
		cfg.TLSTarget = v
	}
	if v := os.Getenv("NETDIAG_HTTP_TARGET"); v != "" {
		cfg.HTTPTarget = v
	}
	if v := os.Getenv("NETDIAG_DNS_NAME"); v != "" {
		cfg.DNSName = v
	}
	if v := os.Getenv("NETDIAG_DNS_SERVER"); v != "" {
		cfg.DNSServer = v
	}
	if v := envDuration("NETDIAG_TIMEOUT"); v > 0 {
		cfg.Timeout = v
	}
	if v := envInt("NETDIAG_LATENCY_PASS"); v > 0 {
		cfg.PassThresholdMs = int64(v)
	}
	if v := envInt("NETDIAG_LATENCY_WARN"); v > 0 {
		cfg.WarnThresholdMs = int64(v)
	}
	if v := envInt("NETDIAG_PING_RETRIES"); v > 0 {
		cfg.PingRetries = v
	}
	if envBool("NETDIAG_STOP_ON_NET_FAIL") {
		cfg.StopOnNetFail = true
	}

	// Report & history
	if v := os.Getenv("NETDIAG_REPORT_DIR"); v != "" {
		cfg.ReportDir = v
	}
	if envBool("NETDIAG_NO_REPORT") {
		cfg.NoReport = true
	}
	if v := os.Getenv("NETDIAG_HISTORY_DB"); v != "" {
		cfg.HistoryDB = v
	}

	// Output
	if envBool("NETDIAG_JSON") {
		cfg.JSON = true
	}
	if v := envInt("NETDIAG_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}

// envDuration accepts either a Go duration string ("5s") or a plain
// number of seconds ("5").
func envDuration(key string) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return 0
}
