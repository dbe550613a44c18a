package netsys

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/miekg/dns"
)

// MiekgResolver queries a DNS server directly with github.com/miekg/dns
// instead of going through the system resolver, so the probe measures
// the actual wire round trip.
type MiekgResolver struct {
	// ConfigPath overrides /etc/resolv.conf for server discovery
	// (tests).
	ConfigPath string
}

// Resolve implements DNSResolver.  With an empty server the first
// nameserver from resolv.conf is used, falling back to Google DNS when
// no local configuration exists.
func (r *MiekgResolver) Resolve(ctx context.Context, name, server string, timeout time.Duration) (DNSResult, error) {
	if server == "" {
		server = r.systemServer()
	}
	if _, _, err := net.SplitHostPort(server); err != nil {
		server = net.JoinHostPort(server, "53")
	}

	client := &dns.Client{Timeout: timeout}
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(name), dns.TypeA)
	msg.RecursionDesired = true

	in, rtt, err := client.ExchangeContext(ctx, msg, server)
	if err != nil {
		return DNSResult{}, err
	}
	if in.Rcode != dns.RcodeSuccess {
		return DNSResult{}, fmt.Errorf("dns query for %s: %s", name, dns.RcodeToString[in.Rcode])
	}

	var addrs []string
	for _, rr := range in.Answer {
		if a, ok := rr.(*dns.A); ok {
			addrs = append(addrs, a.A.String())
		}
	}
	if len(addrs) == 0 {
		return DNSResult{}, fmt.Errorf("dns query for %s: no A records", name)
	}

	return DNSResult{Addrs: addrs, Latency: rtt}, nil
}

func (r *MiekgResolver) systemServer() string {
	path := r.ConfigPath
	if path == "" {
		path = "/etc/resolv.conf"
	}
	cfg, err := dns.ClientConfigFromFile(path)
	if err != nil || len(cfg.Servers) == 0 {
		return "8.8.8.8:53"
	}
	return net.JoinHostPort(cfg.Servers[0], cfg.Port)
}
