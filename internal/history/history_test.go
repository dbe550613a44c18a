package history

import (
	"path/filepath"
	"testing"
	"time"

	"netdiag/internal/diag"
	"netdiag/internal/probe"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "netdiag.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func storedRun(start time.Time, overall probe.Status) *diag.Run {
	return &diag.Run{
		StartedAt: start,
		Gateway:   "192.168.1.1",
		Results: []probe.Result{
			{Layer: probe.Physical, Status: probe.Pass, Message: "interface eth0 is up"},
			{Layer: probe.Network, Status: overall, LatencyMs: 42, Message: "gateway 192.168.1.1 round trip 42 ms"},
		},
		Overall: overall,
	}
}

func TestStore_InsertAndRecent(t *testing.T) {
	s := tempStore(t)

	base := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	for i, overall := range []probe.Status{probe.Pass, probe.Warn, probe.Fail} {
		if err := s.Insert(storedRun(base.Add(time.Duration(i)*time.Minute), overall)); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	runs, err := s.Recent(2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	// Most recent first.
	if runs[0].Overall != probe.Fail {
		t.Errorf("runs[0].Overall = %s, want FAIL", runs[0].Overall)
	}
	if runs[1].Overall != probe.Warn {
		t.Errorf("runs[1].Overall = %s, want WARN", runs[1].Overall)
	}
	if runs[0].Gateway != "192.168.1.1" {
		t.Errorf("Gateway = %q", runs[0].Gateway)
	}
	if len(runs[0].Results) != 2 {
		t.Fatalf("got %d results, want 2", len(runs[0].Results))
	}
	if runs[0].Results[1].LatencyMs != 42 {
		t.Errorf("LatencyMs = %d, want 42", runs[0].Results[1].LatencyMs)
	}
	if runs[0].Results[1].Layer != probe.Network {
		t.Errorf("Layer = %s, want Network", runs[0].Results[1].Layer)
	}
}

func TestStore_RecentEmpty(t *testing.T) {
	s := tempStore(t)
	runs, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs, want 0", len(runs))
	}
}

func TestStore_CountByOverall(t *testing.T) {
	s := tempStore(t)

	base := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	for i, overall := range []probe.Status{probe.Pass, probe.Pass, probe.Fail} {
		if err := s.Insert(storedRun(base.Add(time.Duration(i)*time.Minute), overall)); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}

	counts, err := s.CountByOverall()
	if err != nil {
		t.Fatalf("CountByOverall: %v", err)
	}
	if counts[probe.Pass] != 2 || counts[probe.Fail] != 1 {
		t.Errorf("counts = %v", counts)
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "netdiag.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	run := storedRun(time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC), probe.Pass)
	if err := s.Insert(run); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	s.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	runs, err := s2.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("got %d runs after reopen, want 1", len(runs))
	}
}
