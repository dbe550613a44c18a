// Package netsys provides abstractions over the operating-system
// networking primitives the layer probes consume — interface
// enumeration, gateway discovery, ICMP echo, TCP/TLS connects, HTTP
// requests, and DNS queries.  Probes depend on the interfaces in this
// file, never on the concrete implementations, which keeps the
// diagnostic logic platform-independent and testable with fakes.
package netsys

import (
	"context"
	"net"
	"net/netip"
	"time"
)

// Interface describes one network interface as seen by the OS.
type Interface struct {
	Name         string
	Up           bool // administratively up with carrier present
	Loopback     bool
	HardwareAddr net.HardwareAddr // nil or empty when unassigned
}

// InterfaceLister enumerates the host's network interfaces.
type InterfaceLister interface {
	Interfaces() ([]Interface, error)
}

// GatewayResolver discovers the active default gateway.
type GatewayResolver interface {
	// DefaultGateway returns the default route's next hop, or
	// errors.ErrNoGateway when no default route exists.
	DefaultGateway(ctx context.Context) (netip.Addr, error)
}

// EchoResult is the outcome of a single reachability probe.
type EchoResult struct {
	Reachable bool
	Latency   time.Duration
}

// Pinger issues an echo request and measures the round trip.
type Pinger interface {
	Echo(ctx context.Context, addr netip.Addr, timeout time.Duration) (EchoResult, error)
}

// Dialer opens a connection-oriented handshake and measures how long
// establishment took.  The connection is closed before returning.
type Dialer interface {
	Connect(ctx context.Context, address string, timeout time.Duration) (time.Duration, error)
}

// TLSInfo describes a completed TLS handshake.
type TLSInfo struct {
	Latency     time.Duration
	Version     uint16 // negotiated protocol version (tls.VersionTLS13, ...)
	CipherSuite uint16
}

// TLSDialer performs a full TLS handshake against address.
type TLSDialer interface {
	Handshake(ctx context.Context, address string, timeout time.Duration) (TLSInfo, error)
}

// HTTPResult describes a completed HTTP request.
type HTTPResult struct {
	StatusCode int
	Latency    time.Duration
}

// HTTPClient issues a bounded GET request.
type HTTPClient interface {
	Get(ctx context.Context, url string, timeout time.Duration) (HTTPResult, error)
}

// DNSResult describes a completed DNS query.
type DNSResult struct {
	Addrs   []string
	Latency time.Duration
}

// DNSResolver resolves a hostname, optionally against an explicit
// server ("" selects the system resolver configuration).
type DNSResolver interface {
	Resolve(ctx context.Context, name, server string, timeout time.Duration) (DNSResult, error)
}
