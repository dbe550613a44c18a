package errors

import (
	"context"
	"fmt"
	"net"
	"strings"
	"syscall"
	"testing"
)

func TestProbeError_Message(t *testing.T) {
	e := Wrap("Network", "echo", "192.168.1.1", ErrUnreachable)
	want := "Network echo 192.168.1.1: destination unreachable"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
	if !Is(e, ErrUnreachable) {
		t.Error("wrapped sentinel should survive errors.Is")
	}
}

func TestProbeError_NoTarget(t *testing.T) {
	e := Wrap("Physical", "list interfaces", "", New("boom"))
	want := "Physical list interfaces: boom"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}
}

func TestConfigError_Hint(t *testing.T) {
	e := &ConfigError{Field: "timeout", Value: 0, Message: "must be positive", Hint: "try --timeout 5s"}
	got := e.Error()
	for _, sub := range []string{"--timeout", "must be positive", "hint:"} {
		if !strings.Contains(got, sub) {
			t.Errorf("error %q should contain %q", got, sub)
		}
	}
}

func TestIsTimeout(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"sentinel", ErrTimeout, true},
		{"wrapped sentinel", Wrap("Transport", "connect", "8.8.8.8:53", ErrTimeout), true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"net op timeout", &net.OpError{Op: "dial", Err: timeoutErr{}}, true},
		{"plain error", New("nope"), false},
		{"refused", syscall.ECONNREFUSED, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsTimeout(tt.err); got != tt.want {
				t.Errorf("IsTimeout(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestIsRefused(t *testing.T) {
	if !IsRefused(fmt.Errorf("dial: %w", syscall.ECONNREFUSED)) {
		t.Error("ECONNREFUSED should classify as refused")
	}
	if IsRefused(ErrTimeout) {
		t.Error("timeout is not a refusal")
	}
}

func TestIsUnreachable(t *testing.T) {
	for _, err := range []error{ErrUnreachable, syscall.ENETUNREACH, syscall.EHOSTUNREACH} {
		if !IsUnreachable(fmt.Errorf("wrap: %w", err)) {
			t.Errorf("%v should classify as unreachable", err)
		}
	}
	if IsUnreachable(syscall.ECONNREFUSED) {
		t.Error("refusal is not unreachability")
	}
}

// timeoutErr satisfies net.Error with Timeout() == true.
type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }
