package netsys

import (
	"context"
	"crypto/tls"
	"net"
	"time"
)

// TCPDialer measures how long a TCP handshake takes.
type TCPDialer struct{}

// Connect implements Dialer.  The connection is closed immediately;
// only establishment latency matters to the probes.
func (TCPDialer) Connect(ctx context.Context, address string, timeout time.Duration) (time.Duration, error) {
	d := net.Dialer{Timeout: timeout}
	start := time.Now()
	conn, err := d.DialContext(ctx, "tcp", address)
	if err != nil {
		return 0, err
	}
	latency := time.Since(start)
	conn.Close()
	return latency, nil
}

// StdTLSDialer performs a full TLS handshake using crypto/tls.
type StdTLSDialer struct {
	// InsecureSkipVerify disables certificate verification.  Only for
	// tests against self-signed local servers.
	InsecureSkipVerify bool
}

// Handshake implements TLSDialer.
func (t *StdTLSDialer) Handshake(ctx context.Context, address string, timeout time.Duration) (TLSInfo, error) {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return TLSInfo{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialer := &tls.Dialer{
		NetDialer: &net.Dialer{Timeout: timeout},
		Config: &tls.Config{
			ServerName:         host,
			InsecureSkipVerify: t.InsecureSkipVerify,
		},
	}

	start := time.Now()
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return TLSInfo{}, err
	}
	latency := time.Since(start)

	state := conn.(*tls.Conn).ConnectionState()
	conn.Close()

	return TLSInfo{
		Latency:     latency,
		Version:     state.Version,
		CipherSuite: state.CipherSuite,
	}, nil
}
