package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TwoDexBuilder returns the reference fixture used by end-to-end tests: a
// version 064 container embedding two DEX images of 512 and 2048 bytes.
func TwoDexBuilder() Builder {
	return Builder{
		Version:  "064",
		LoadBias: 0x1000,
		KeyValues: []KeyValue{
			{Key: "classpath", Value: ""},
			{Key: "dex2oat-cmdline", Value: "--dex-file=/system/framework/core.jar"},
		},
		Dexes: []Dex{
			{Location: "/system/framework/core.jar", Size: 512, ClassDefs: 3, Seed: 1},
			{Location: "/system/framework/core.jar:classes2.dex", Size: 2048, ClassDefs: 5, Seed: 2},
		},
	}
}

// WriteOat builds b and writes it into a temporary directory, returning the
// path and the layout.
//
// Example:
//
//	path, lay := testutil.WriteOat(t, testutil.TwoDexBuilder())
//	f, err := oat.Open(path, oat.Options{})
func WriteOat(t testing.TB, b Builder) (string, Layout) {
	t.Helper()
	data, lay := b.Build()
	return WriteFile(t, "boot.oat", data), lay
}

// WriteFile writes data to name inside t.TempDir and returns the path.
func WriteFile(t testing.TB, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
