package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("NETDIAG_GATEWAY", "10.0.0.1")
	t.Setenv("NETDIAG_TCP_TARGET", "1.1.1.1:443")
	t.Setenv("NETDIAG_TIMEOUT", "3s")
	t.Setenv("NETDIAG_LATENCY_PASS", "40")
	t.Setenv("NETDIAG_LATENCY_WARN", "120")
	t.Setenv("NETDIAG_JSON", "true")
	t.Setenv("NETDIAG_VERBOSE", "2")

	cfg := New()
	LoadFromEnv(cfg)

	if cfg.Gateway != "10.0.0.1" {
		t.Errorf("Gateway = %q", cfg.Gateway)
	}
	if cfg.TCPTarget != "1.1.1.1:443" {
		t.Errorf("TCPTarget = %q", cfg.TCPTarget)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.PassThresholdMs != 40 || cfg.WarnThresholdMs != 120 {
		t.Errorf("thresholds = %d/%d", cfg.PassThresholdMs, cfg.WarnThresholdMs)
	}
	if !cfg.JSON {
		t.Error("JSON should be enabled")
	}
	if cfg.Verbose != 2 {
		t.Errorf("Verbose = %d", cfg.Verbose)
	}
}

func TestLoadFromEnv_EmptyKeepsDefaults(t *testing.T) {
	// Explicitly clear anything the test environment might carry.
	for _, key := range []string{
		"NETDIAG_GATEWAY", "NETDIAG_TCP_TARGET", "NETDIAG_TLS_TARGET",
		"NETDIAG_HTTP_TARGET", "NETDIAG_DNS_NAME", "NETDIAG_TIMEOUT",
		"NETDIAG_LATENCY_PASS", "NETDIAG_LATENCY_WARN", "NETDIAG_JSON",
	} {
		t.Setenv(key, "")
	}

	cfg := New()
	LoadFromEnv(cfg)

	if cfg.TCPTarget != DefaultTCPTarget {
		t.Errorf("TCPTarget = %q, want default %q", cfg.TCPTarget, DefaultTCPTarget)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want default %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.PassThresholdMs != DefaultPassThresholdMs {
		t.Errorf("PassThresholdMs = %d, want %d", cfg.PassThresholdMs, DefaultPassThresholdMs)
	}
}

func TestEnvDuration_PlainSeconds(t *testing.T) {
	t.Setenv("NETDIAG_TIMEOUT", "7")
	cfg := New()
	LoadFromEnv(cfg)
	if cfg.Timeout != 7*time.Second {
		t.Errorf("Timeout = %v, want 7s", cfg.Timeout)
	}
}

func TestEnvBool_Variants(t *testing.T) {
	for _, v := range []string{"1", "true", "YES"} {
		t.Run(v, func(t *testing.T) {
			t.Setenv("NETDIAG_NO_REPORT", v)
			cfg := New()
			LoadFromEnv(cfg)
			if !cfg.NoReport {
				t.Errorf("NETDIAG_NO_REPORT=%q should enable NoReport", v)
			}
		})
	}
}
