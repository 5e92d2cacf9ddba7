package testutil

import (
	"path/filepath"
	"testing"

	"github.com/joshuapare/oatkit/pkg/dexdb"
)

// ClassFixture is one class and its members for WriteDexDB.
type ClassFixture struct {
	Class          dexdb.Class
	StaticFields   []dexdb.Field
	InstanceFields []dexdb.Field
	Methods        []dexdb.Method
}

// WriteDexDB creates a DEX database named name inside t.TempDir, populated
// with classes. Member ClassIDs are taken from the enclosing class.
func WriteDexDB(t testing.TB, name string, classes []ClassFixture) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	db, err := dexdb.Open(path, dexdb.Options{})
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer db.Close()

	if err := db.CreateTables(); err != nil {
		t.Fatalf("create tables: %v", err)
	}
	for _, c := range classes {
		if err := db.AddClass(c.Class); err != nil {
			t.Fatalf("%v", err)
		}
		for _, f := range c.StaticFields {
			f.ClassID = c.Class.ID
			if _, err := db.AddStaticField(f); err != nil {
				t.Fatalf("%v", err)
			}
		}
		for _, f := range c.InstanceFields {
			f.ClassID = c.Class.ID
			if _, err := db.AddInstanceField(f); err != nil {
				t.Fatalf("%v", err)
			}
		}
		for _, m := range c.Methods {
			m.ClassID = c.Class.ID
			if _, err := db.AddMethod(m); err != nil {
				t.Fatalf("%v", err)
			}
		}
	}
	return path
}
