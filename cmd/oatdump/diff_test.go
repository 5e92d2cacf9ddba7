package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/joshuapare/oatkit/internal/testutil"
	"github.com/joshuapare/oatkit/pkg/dexdb"
)

func writeDBs(t *testing.T) (local, base string) {
	t.Helper()
	local = testutil.WriteDexDB(t, "device.db", []testutil.ClassFixture{
		{Class: dexdb.Class{ID: 0, Name: "android.app.Activity", AccessFlags: 0x1, Superclass: "java.lang.Object"}},
		{
			Class:        dexdb.Class{ID: 1, Name: "com.vendor.Tracker", AccessFlags: 0x11, Superclass: "java.lang.Object"},
			StaticFields: []dexdb.Field{{Name: "TAG", Type: "Ljava/lang/String;", AccessFlags: 0x19}},
			Methods:      []dexdb.Method{{Name: "<init>", Descriptor: "()V", AccessFlags: 0x10001}},
		},
	})
	base = testutil.WriteDexDB(t, "aosp.db", []testutil.ClassFixture{
		{Class: dexdb.Class{ID: 0, Name: "android.app.Activity", AccessFlags: 0x1, Superclass: "java.lang.Object"}},
	})
	return local, base
}

func TestDiffCommand(t *testing.T) {
	local, base := writeDBs(t)
	missing := filepath.Join(t.TempDir(), "missing.db")

	tests := []struct {
		name           string
		args           []string
		json           bool
		wantErr        string
		wantContain    []string
		wantNotContain []string
	}{
		{
			name: "new classes",
			args: []string{local, base},
			wantContain: []string{
				"[New Class] public final com.vendor.Tracker",
				"   [Static Field] public static final java.lang.String TAG",
				"   [Method] public constructor <init>()V",
			},
			wantNotContain: []string{"android.app.Activity"},
		},
		{
			name:        "json",
			args:        []string{local, base},
			json:        true,
			wantContain: []string{`"name": "com.vendor.Tracker"`},
		},
		{
			name:           "identical databases",
			args:           []string{base, base},
			wantNotContain: []string{"[New Class]"},
		},
		{
			name:    "missing local",
			args:    []string{missing, base},
			wantErr: "database file not found",
		},
		{
			name:    "missing base",
			args:    []string{local, missing},
			wantErr: "failed to open base database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags()
			jsonOut = tt.json

			output, err := captureOutput(t, func() error {
				return runDiff(tt.args)
			})
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("runDiff() error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("runDiff() error = %v\nOutput: %s", err, output)
			}
			if tt.json {
				assertJSON(t, output)
			}
			assertContains(t, output, tt.wantContain)
			assertNotContains(t, output, tt.wantNotContain)
		})
	}
}
