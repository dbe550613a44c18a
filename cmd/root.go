// Package cmd wires up the CLI flags and dispatches a diagnostic run.
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"netdiag/config"
	"netdiag/internal/diag"
	"netdiag/internal/history"
	"netdiag/internal/metrics"
	"netdiag/internal/probe"
	"netdiag/internal/report"
	"netdiag/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X netdiag/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the layered diagnostic.
func Execute(ctx context.Context, args []string) error {
	cfg := config.New()
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("netdiag", flag.ContinueOnError)

	// ── probe targets ────────────────────────────────────────────
	fs.StringVarP(&cfg.Gateway, "gateway", "g", cfg.Gateway, "Gateway IP (skip discovery)")
	fs.StringVar(&cfg.TCPTarget, "tcp-target", cfg.TCPTarget, "host:port for the TCP connect test")
	fs.StringVar(&cfg.TLSTarget, "tls-target", cfg.TLSTarget, "host:port for the TLS handshake tests")
	fs.StringVar(&cfg.HTTPTarget, "http-target", cfg.HTTPTarget, "URL for the HTTP GET test")
	fs.StringVar(&cfg.DNSName, "dns-name", cfg.DNSName, "Hostname for the DNS resolution test")
	fs.StringVar(&cfg.DNSServer, "dns-server", cfg.DNSServer, "Explicit DNS server (default: system)")

	// ── probe behaviour ──────────────────────────────────────────
	fs.DurationVarP(&cfg.Timeout, "timeout", "w", cfg.Timeout, "Per-probe timeout")
	fs.Int64Var(&cfg.PassThresholdMs, "latency-pass", cfg.PassThresholdMs, "RTT at or below this (ms) is healthy")
	fs.Int64Var(&cfg.WarnThresholdMs, "latency-warn", cfg.WarnThresholdMs, "RTT at or below this (ms) is degraded")
	fs.IntVar(&cfg.PingRetries, "ping-retries", cfg.PingRetries, "Echo attempts before declaring the gateway unreachable")
	fs.BoolVar(&cfg.StopOnNetFail, "stop-on-net-fail", cfg.StopOnNetFail, "Skip higher layers when the network layer fails")

	// ── report & history ─────────────────────────────────────────
	fs.StringVarP(&cfg.ReportDir, "report-dir", "d", cfg.ReportDir, "Directory for report files")
	fs.BoolVar(&cfg.NoReport, "no-report", cfg.NoReport, "Do not write a report file")
	fs.StringVar(&cfg.HistoryDB, "history-db", cfg.HistoryDB, "SQLite file for run history")
	fs.IntVar(&cfg.HistoryLast, "history-last", 0, "Print the last N stored runs and exit")

	// ── output ───────────────────────────────────────────────────
	fs.BoolVarP(&cfg.JSON, "json", "j", cfg.JSON, "JSON output")
	var verbose int
	fs.CountVarP(&verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp, dryRun bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")
	fs.BoolVar(&dryRun, "dry-run", false, "Validate configuration and exit")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}
	if showHelp {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("netdiag %s\n", version)
		return nil
	}
	if verbose > 0 {
		cfg.Verbose = verbose
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}
	if dryRun {
		return nil
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose + 1)

	if cfg.HistoryLast > 0 {
		return printHistory(os.Stdout, cfg)
	}

	collector := metrics.New()
	pipeline := diag.New(cfg, diag.SystemCapabilities(), logger, collector)
	run := pipeline.Execute(ctx)

	formatter := report.Formatter{Verbose: cfg.Verbose > 0}
	text := formatter.Text(run)

	if cfg.JSON {
		out, err := formatter.JSON(run)
		if err != nil {
			return err
		}
		fmt.Print(out)
	} else {
		fmt.Print(text)
	}

	// The report file always carries the text rendering, so a run
	// invoked with --json still leaves a readable trace behind.
	if !cfg.NoReport {
		sink := &report.FileSink{Dir: cfg.ReportDir}
		if path, err := sink.Write(text); err != nil {
			logger.Warn("%v", err)
		} else {
			logger.Verbose("report saved to %s", path)
		}
	}

	if cfg.HistoryDB != "" {
		if err := recordHistory(cfg.HistoryDB, run); err != nil {
			logger.Warn("history: %v", err)
		}
	}

	if run.Overall == probe.Fail {
		return fmt.Errorf("%d of %d layers failed", countFailed(run), len(run.Results))
	}
	return nil
}

// ── helpers ──────────────────────────────────────────────────────────

func countFailed(run *diag.Run) int {
	var n int
	for _, res := range run.Results {
		if res.Status == probe.Fail {
			n++
		}
	}
	return n
}

func recordHistory(path string, run *diag.Run) error {
	store, err := history.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Insert(run)
}

func printHistory(w io.Writer, cfg *config.Config) error {
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(cfg.HistoryLast)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "no stored runs")
		return nil
	}

	fmt.Fprintf(w, "%-20s %-7s %-16s %s\n", "STARTED", "OVERALL", "GATEWAY", "FAILED LAYERS")
	for _, run := range runs {
		var failed []string
		for _, res := range run.Results {
			if res.Status == probe.Fail {
				failed = append(failed, res.Layer.String())
			}
		}
		gateway := run.Gateway
		if gateway == "" {
			gateway = "-"
		}
		fmt.Fprintf(w, "%-20s %-7s %-16s %s\n",
			run.StartedAt.Format("2006-01-02 15:04:05"),
			run.Overall, gateway, joinOrDash(failed))
	}
	return nil
}

func joinOrDash(parts []string) string {
	if len(parts) == 0 {
		return "-"
	}
	out := parts[0]
	for _, p := range parts[1:] {
		out += ", " + p
	}
	return out
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `netdiag – Layered Network Diagnostic v%s

Walks the OSI stack bottom-up, one check per layer, and reports
PASS / WARN / FAIL for each.

Usage:
  netdiag [options]                           Run the full diagnostic
  netdiag --json [options]                    Machine-readable output
  netdiag --history-db FILE --history-last N  Show stored runs

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  netdiag                                     Full run with defaults
  netdiag -v                                  Explain each layer
  netdiag -g 192.168.1.1 -w 2s                Fixed gateway, short timeout
  netdiag --json --no-report                  JSON to stdout only
  netdiag --history-db runs.db                Record this run
`)
}
