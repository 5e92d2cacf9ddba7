// Package logging builds the *slog.Logger handed to the oat and dexdb
// packages by the CLI.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	logPrefix     = "oatdump-"
	logSuffix     = ".log"
	dateLayout    = "2006-01-02"
	retentionDays = 30
)

// Options configures New.
type Options struct {
	Writer io.Writer  // destination when Dir is empty; nil discards
	Level  slog.Level // minimum level
	JSON   bool       // JSON records instead of key=value text

	// Dir, when set, sends records to a dated JSON file in Dir instead of
	// Writer. Files older than 30 days are removed.
	Dir string
}

// New returns a logger and a function that releases its destination.
func New(opts Options) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, nil, err
		}
		cleanOldLogs(opts.Dir, time.Now())

		name := filepath.Join(opts.Dir, logPrefix+time.Now().Format(dateLayout)+logSuffix)
		f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, err
		}
		h := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level})
		return slog.New(h), f.Close, nil
	}

	if opts.Writer == nil {
		return slog.New(slog.DiscardHandler), noop, nil
	}
	hopts := &slog.HandlerOptions{Level: opts.Level}
	if opts.JSON {
		return slog.New(slog.NewJSONHandler(opts.Writer, hopts)), noop, nil
	}
	return slog.New(slog.NewTextHandler(opts.Writer, hopts)), noop, nil
}

// cleanOldLogs removes oatdump log files dated before the retention window.
func cleanOldLogs(dir string, now time.Time) {
	cutoff := now.AddDate(0, 0, -retentionDays)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, logPrefix) || !strings.HasSuffix(name, logSuffix) {
			continue
		}
		// oatdump-2024-01-05.log
		day, err := time.Parse(dateLayout, strings.TrimSuffix(strings.TrimPrefix(name, logPrefix), logSuffix))
		if err != nil {
			continue
		}
		if day.Before(cutoff) {
			_ = os.Remove(filepath.Join(dir, name))
		}
	}
}
