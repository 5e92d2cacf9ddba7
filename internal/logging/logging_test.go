package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log, closeFn, err := New(Options{Writer: &buf, Level: slog.LevelInfo})
	require.NoError(t, err)
	defer closeFn()

	log.Debug("hidden")
	log.Info("oat header", "version", 64)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "msg=\"oat header\" version=64")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := New(Options{Writer: &buf, Level: slog.LevelDebug, JSON: true})
	require.NoError(t, err)

	log.Debug("dex image", "dex_size", 512)
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "dex image", rec["msg"])
	assert.Equal(t, float64(512), rec["dex_size"])
}

func TestNewDiscard(t *testing.T) {
	log, closeFn, err := New(Options{})
	require.NoError(t, err)
	require.NotNil(t, log)
	log.Error("goes nowhere")
	assert.NoError(t, closeFn())
}

func TestNewDir(t *testing.T) {
	dir := t.TempDir()
	stale := filepath.Join(dir, "oatdump-2001-01-01.log")
	unrelated := filepath.Join(dir, "notes.log")
	require.NoError(t, os.WriteFile(stale, nil, 0o644))
	require.NoError(t, os.WriteFile(unrelated, nil, 0o644))

	log, closeFn, err := New(Options{Dir: dir, Level: slog.LevelInfo})
	require.NoError(t, err)
	log.Info("carved dex", "dex", 1)
	require.NoError(t, closeFn())

	_, err = os.Stat(stale)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(unrelated)
	assert.NoError(t, err)

	today := filepath.Join(dir, "oatdump-"+time.Now().Format(dateLayout)+".log")
	data, err := os.ReadFile(today)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"carved dex"`)
}

func TestCleanOldLogsKeepsRecent(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	recent := filepath.Join(dir, "oatdump-2024-03-01.log")
	old := filepath.Join(dir, "oatdump-2024-01-01.log")
	bad := filepath.Join(dir, "oatdump-yesterday.log")
	for _, p := range []string{recent, old, bad} {
		require.NoError(t, os.WriteFile(p, nil, 0o644))
	}

	cleanOldLogs(dir, now)

	assert.FileExists(t, recent)
	assert.FileExists(t, bad)
	assert.NoFileExists(t, old)
}
