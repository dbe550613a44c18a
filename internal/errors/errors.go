// Package errors provides domain-specific error types for netdiag.
//
// These types carry structured context (layer, operation, target) that
// lets the pipeline convert any probe-internal fault into a readable
// result message without layer-specific handling.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
)

// ── Sentinel errors ──────────────────────────────────────────────────

var (
	ErrNoGateway   = errors.New("no default gateway configured")
	ErrTimeout     = errors.New("probe timed out")
	ErrUnreachable = errors.New("destination unreachable")
	ErrRefused     = errors.New("connection refused")
	ErrSinkWrite   = errors.New("report sink write failed")
)

// ── Structured error types ───────────────────────────────────────────

// ProbeError represents a failure inside a single layer probe.
type ProbeError struct {
	Layer  string // OSI layer name: "Physical", "Network", ...
	Op     string // operation: "echo", "connect", "handshake", "get", "resolve"
	Target string // address or URL involved
	Err    error  // underlying error
}

func (e *ProbeError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s %s: %v", e.Layer, e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s %s: %v", e.Layer, e.Op, e.Target, e.Err)
}

func (e *ProbeError) Unwrap() error { return e.Err }

// ConfigError represents an invalid configuration value.
type ConfigError struct {
	Field   string      // config field name
	Value   interface{} // the invalid value (nil if missing)
	Message string      // human-readable explanation
	Hint    string      // suggestion for the user (optional)
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("config: --%s", e.Field)
	if e.Value != nil {
		msg += fmt.Sprintf("=%v", e.Value)
	}
	msg += ": " + e.Message
	if e.Hint != "" {
		msg += "\n  hint: " + e.Hint
	}
	return msg
}

// ── Constructors ─────────────────────────────────────────────────────

// Wrap creates a ProbeError for the given layer and operation.
func Wrap(layer, op, target string, err error) *ProbeError {
	return &ProbeError{Layer: layer, Op: op, Target: target, Err: err}
}

// ── Classification helpers ───────────────────────────────────────────

// IsTimeout reports whether err represents an exceeded wait bound.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// IsRefused reports whether err is an active connection refusal.
func IsRefused(err error) bool {
	return errors.Is(err, ErrRefused) || errors.Is(err, syscall.ECONNREFUSED)
}

// IsUnreachable reports whether err indicates a routing dead end.
func IsUnreachable(err error) bool {
	return errors.Is(err, ErrUnreachable) ||
		errors.Is(err, syscall.ENETUNREACH) ||
		errors.Is(err, syscall.EHOSTUNREACH)
}

// ── Re-exports for convenience ───────────────────────────────────────
//
// These allow callers to use netdiag/internal/errors as a drop-in
// replacement for the standard library in common operations.

// As is [errors.As].
func As(err error, target interface{}) bool { return errors.As(err, target) }

// Is is [errors.Is].
func Is(err, target error) bool { return errors.Is(err, target) }

// New is [errors.New].
func New(text string) error { return errors.New(text) }

// Unwrap is [errors.Unwrap].
func Unwrap(err error) error { return errors.Unwrap(err) }
