// Package report renders a completed diagnostic run as human-readable
// text or JSON and persists it to a timestamped log file.
package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"netdiag/internal/diag"
	"netdiag/internal/probe"
)

// layerDescriptions gives the plain-language explanation printed in
// verbose mode, one per layer.
var layerDescriptions = map[probe.Layer]string{
	probe.Physical:     "Physical layer: checks that your network hardware (Wi-Fi or Ethernet) is working. Handled by device drivers and hardware.",
	probe.DataLink:     "Data Link layer: ensures your device can talk to the router over the local network. Handled by the network adapter and OS.",
	probe.Network:      "Network layer: tests whether the default gateway is reachable. Controlled by your router and IP settings.",
	probe.Transport:    "Transport layer: tries to open a TCP connection to a server. Managed by the OS and firewall.",
	probe.Session:      "Session layer: verifies that applications can start and maintain connections. Often abstracted by the OS.",
	probe.Presentation: "Presentation layer: checks data encryption parameters (like HTTPS). Managed by the browser or apps.",
	probe.Application:  "Application layer: tests that web services work end to end (DNS and HTTP).",
}

// Formatter renders runs.  The zero value produces the compact table;
// set Verbose for per-layer explanations.
type Formatter struct {
	Verbose bool
}

// Text renders the run as the tabular plain-text report.
func (f Formatter) Text(run *diag.Run) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Network diagnostic — %s\n", run.StartedAt.Format("2006-01-02 15:04:05"))
	if run.Gateway != "" {
		fmt.Fprintf(&b, "Default gateway: %s\n", run.Gateway)
	} else {
		b.WriteString("Default gateway: not found\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "%-14s %-6s %9s  %s\n", "LAYER", "STATUS", "LATENCY", "DETAILS")
	b.WriteString(strings.Repeat("-", 72))
	b.WriteString("\n")

	for _, res := range run.Results {
		latency := ""
		if res.LatencyMs > 0 {
			latency = fmt.Sprintf("%d ms", res.LatencyMs)
		}
		fmt.Fprintf(&b, "%-14s %-6s %9s  %s\n", res.Layer, res.Status, latency, res.Message)
		if f.Verbose {
			if desc, ok := layerDescriptions[res.Layer]; ok {
				fmt.Fprintf(&b, "               %s\n", desc)
			}
		}
	}

	b.WriteString(strings.Repeat("-", 72))
	b.WriteString("\n")

	var passed, warned, failed int
	for _, res := range run.Results {
		switch res.Status {
		case probe.Pass:
			passed++
		case probe.Warn:
			warned++
		case probe.Fail:
			failed++
		}
	}
	fmt.Fprintf(&b, "Overall: %s (%d passed, %d warned, %d failed)\n",
		run.Overall, passed, warned, failed)

	return b.String()
}

// JSON renders the run as indented JSON.
func (f Formatter) JSON(run *diag.Run) (string, error) {
	b, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
