package netsys

import (
	"context"
	"net"
	"net/netip"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"
)

// protocolICMP is the IANA protocol number for ICMPv4.
const protocolICMP = 1

// echoSeq gives every outgoing echo request a distinct sequence number
// so concurrent runs don't swallow each other's replies.
var echoSeq atomic.Uint32

// ICMPPinger sends an ICMP echo request.  It prefers an unprivileged
// udp4 datagram socket (available to non-root users on Linux when
// net.ipv4.ping_group_range allows it, and on macOS generally) and
// falls back to a raw socket.  When neither socket can be opened and
// Fallback is set, reachability degrades to a TCP connect on port 80.
type ICMPPinger struct {
	// Privileged skips the unprivileged socket and goes straight to
	// raw ICMP.
	Privileged bool
	// Fallback handles hosts where ICMP sockets are unavailable.
	Fallback Dialer
}

// Echo implements Pinger.
func (p *ICMPPinger) Echo(ctx context.Context, addr netip.Addr, timeout time.Duration) (EchoResult, error) {
	conn, dgram, err := p.listen()
	if err != nil {
		if p.Fallback != nil {
			return p.fallbackEcho(ctx, addr, timeout)
		}
		return EchoResult{}, err
	}
	defer conn.Close()

	deadline := time.Now().Add(timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return EchoResult{}, err
	}

	id := os.Getpid() & 0xffff
	seq := int(echoSeq.Add(1) & 0xffff)
	wb, err := echoMessage(id, seq)
	if err != nil {
		return EchoResult{}, err
	}

	var dst net.Addr
	if dgram {
		dst = &net.UDPAddr{IP: addr.AsSlice()}
	} else {
		dst = &net.IPAddr{IP: addr.AsSlice()}
	}

	start := time.Now()
	if _, err := conn.WriteTo(wb, dst); err != nil {
		return EchoResult{}, err
	}

	rb := make([]byte, 1500)
	for {
		n, _, err := conn.ReadFrom(rb)
		if err != nil {
			return EchoResult{}, err
		}
		if isEchoReply(rb[:n], id, seq, dgram) {
			return EchoResult{Reachable: true, Latency: time.Since(start)}, nil
		}
		// Not ours (another run's reply, or an unrelated ICMP
		// message) — keep reading until the deadline.
	}
}

func (p *ICMPPinger) listen() (conn *icmp.PacketConn, dgram bool, err error) {
	if !p.Privileged {
		if conn, err = icmp.ListenPacket("udp4", "0.0.0.0"); err == nil {
			return conn, true, nil
		}
	}
	conn, err = icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	return conn, false, err
}

// fallbackEcho approximates reachability with a TCP connect when ICMP
// is unavailable.
func (p *ICMPPinger) fallbackEcho(ctx context.Context, addr netip.Addr, timeout time.Duration) (EchoResult, error) {
	latency, err := p.Fallback.Connect(ctx, net.JoinHostPort(addr.String(), "80"), timeout)
	if err != nil {
		return EchoResult{}, err
	}
	return EchoResult{Reachable: true, Latency: latency}, nil
}

// echoMessage marshals an ICMP echo request with the given id and
// sequence number.
func echoMessage(id, seq int) ([]byte, error) {
	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   id,
			Seq:  seq,
			Data: []byte("netdiag echo"),
		},
	}
	return msg.Marshal(nil)
}

// isEchoReply reports whether b is an echo reply matching seq.  The
// kernel rewrites the ID on unprivileged datagram sockets, so the ID
// is only checked on raw sockets.
func isEchoReply(b []byte, id, seq int, dgram bool) bool {
	msg, err := icmp.ParseMessage(protocolICMP, b)
	if err != nil || msg.Type != ipv4.ICMPTypeEchoReply {
		return false
	}
	echo, ok := msg.Body.(*icmp.Echo)
	if !ok || echo.Seq != seq {
		return false
	}
	return dgram || echo.ID == id
}
