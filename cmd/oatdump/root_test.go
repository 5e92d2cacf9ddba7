package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSetupLoggingToDir(t *testing.T) {
	resetFlags()
	logDir = t.TempDir()
	defer func() { logDir = "" }()

	if err := setupLogging(); err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	logger.Warn("unexpected oat magic", "magic", "sec\n")
	if err := closeLog(); err != nil {
		t.Fatalf("closeLog() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(logDir, "oatdump-"+time.Now().Format("2006-01-02")+".log"))
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, string(data), []string{"unexpected oat magic"})
}

func TestOatOptionsFromFlags(t *testing.T) {
	resetFlags()
	samsung = true
	validateDex = true
	opts := oatOptions()
	if !opts.SamsungMode || !opts.ValidateDexMagic || opts.Logger == nil {
		t.Errorf("oatOptions() = %+v", opts)
	}
}

func TestVersionCommand(t *testing.T) {
	resetFlags()
	output, err := captureOutput(t, runVersion)
	if err != nil {
		t.Fatal(err)
	}
	assertContains(t, output, []string{
		"oatdump dev",
		"commit: none",
		"post64  version >= 064  key/value size at +68  header 72 bytes",
		"pre64   version >= 000  key/value size at +80  header 84 bytes",
	})
}

func TestVersionCommandJSON(t *testing.T) {
	resetFlags()
	jsonOut = true
	output, err := captureOutput(t, runVersion)
	if err != nil {
		t.Fatal(err)
	}
	assertJSON(t, output)
	assertContains(t, output, []string{`"version": "dev"`, `"name": "post64"`, `"min_version": 64`})
}

func TestRootCommandWiring(t *testing.T) {
	resetFlags()
	path := filepath.Join(t.TempDir(), "missing.oat")
	rootCmd.SetArgs([]string{"info", path})
	rootCmd.SetErr(new(discardWriter))
	defer rootCmd.SetArgs(nil)

	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error for missing file")
	}
}

type discardWriter struct{}

func (*discardWriter) Write(p []byte) (int, error) { return len(p), nil }
