package netsys

import (
	"bufio"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net/netip"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"netdiag/internal/errors"
)

// RTF_GATEWAY marks a route whose next hop is a gateway.
const rtfGateway = 0x2

// RouteResolver discovers the default gateway from the local routing
// table.  On Linux it parses /proc/net/route directly; elsewhere (or
// when the proc table yields nothing) it falls back to the platform
// route command.
type RouteResolver struct {
	// ProcPath overrides the routing table location (tests).
	ProcPath string
}

// DefaultGateway implements GatewayResolver.
func (r *RouteResolver) DefaultGateway(ctx context.Context) (netip.Addr, error) {
	path := r.ProcPath
	if path == "" {
		path = "/proc/net/route"
	}

	if f, err := os.Open(path); err == nil {
		defer f.Close()
		if gw, ok := parseProcRoute(f); ok {
			return gw, nil
		}
		// A readable table with no default route is authoritative on
		// Linux: don't second-guess it with the route command.
		if runtime.GOOS == "linux" && r.ProcPath == "" {
			return netip.Addr{}, errors.ErrNoGateway
		}
	}

	return commandGateway(ctx)
}

// parseProcRoute scans a Linux /proc/net/route table for the default
// route (destination 0.0.0.0 with the gateway flag set).  Addresses in
// the table are little-endian hex.
func parseProcRoute(r io.Reader) (netip.Addr, bool) {
	scanner := bufio.NewScanner(r)
	first := true
	for scanner.Scan() {
		if first { // header row
			first = false
			continue
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			continue
		}
		dest, gateway, flagsHex := fields[1], fields[2], fields[3]
		if dest != "00000000" {
			continue
		}
		flags, err := strconv.ParseUint(flagsHex, 16, 32)
		if err != nil || flags&rtfGateway == 0 {
			continue
		}
		raw, err := strconv.ParseUint(gateway, 16, 32)
		if err != nil || raw == 0 {
			continue
		}
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(raw))
		return netip.AddrFrom4(b), true
	}
	return netip.Addr{}, false
}

// commandGateway shells out to the platform routing tool.
func commandGateway(ctx context.Context) (netip.Addr, error) {
	var out []byte
	var err error
	switch runtime.GOOS {
	case "darwin":
		out, err = exec.CommandContext(ctx, "route", "-n", "get", "default").Output()
		if err == nil {
			if gw, ok := parseRouteGet(string(out)); ok {
				return gw, nil
			}
		}
	default:
		out, err = exec.CommandContext(ctx, "ip", "route", "show", "default").Output()
		if err == nil {
			if gw, ok := parseIPRoute(string(out)); ok {
				return gw, nil
			}
		}
	}
	if err != nil {
		return netip.Addr{}, fmt.Errorf("query routing table: %w", err)
	}
	return netip.Addr{}, errors.ErrNoGateway
}

// parseIPRoute extracts the next hop from "default via X dev Y" output.
func parseIPRoute(out string) (netip.Addr, bool) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		for i := 0; i+1 < len(fields); i++ {
			if fields[i] == "via" {
				if gw, err := netip.ParseAddr(fields[i+1]); err == nil {
					return gw, true
				}
			}
		}
	}
	return netip.Addr{}, false
}

// parseRouteGet extracts the "gateway:" line from BSD route output.
func parseRouteGet(out string) (netip.Addr, bool) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if v, ok := strings.CutPrefix(line, "gateway:"); ok {
			if gw, err := netip.ParseAddr(strings.TrimSpace(v)); err == nil {
				return gw, true
			}
		}
	}
	return netip.Addr{}, false
}

// StaticResolver returns a fixed gateway; used for the --gateway
// override and in tests.
type StaticResolver struct {
	Addr netip.Addr
}

// DefaultGateway implements GatewayResolver.
func (s *StaticResolver) DefaultGateway(context.Context) (netip.Addr, error) {
	if !s.Addr.IsValid() {
		return netip.Addr{}, errors.ErrNoGateway
	}
	return s.Addr, nil
}
