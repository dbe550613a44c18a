package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"netdiag/internal/errors"
)

// Sink persists a rendered report and returns where it went.
type Sink interface {
	Write(text string) (string, error)
}

// FileSink writes each report to a uniquely named file in Dir, one
// file per run: network_debug_YYYYMMDD_HHMM.txt.
type FileSink struct {
	Dir string

	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// Write stores the report and returns the file path.  The file is
// opened in append mode so two runs in the same minute share it
// instead of the second clobbering the first.  Failures wrap
// ErrSinkWrite so callers can degrade to console-only output.
func (s *FileSink) Write(text string) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	name := fmt.Sprintf("network_debug_%s.txt", now().Format("20060102_1504"))
	path := filepath.Join(s.Dir, name)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrSinkWrite, err)
	}
	if _, err := f.Write([]byte(text)); err != nil {
		f.Close()
		return "", fmt.Errorf("%w: %v", errors.ErrSinkWrite, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrSinkWrite, err)
	}
	return path, nil
}

// DiscardSink satisfies Sink without persisting anything.
type DiscardSink struct{}

func (DiscardSink) Write(string) (string, error) { return "", nil }
