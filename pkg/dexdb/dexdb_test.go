package dexdb

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/oatkit/pkg/types"
)

func newDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "local.db"), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.CreateTables())
	return db
}

func TestOpenSafeRefusesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")
	_, err := Open(path, Options{Safe: true})
	require.ErrorIs(t, err, types.ErrDatabaseNotFound)

	kind, ok := types.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, types.ErrKindNotFound, kind)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "safe open must not create the file")

	_, err = Open(t.TempDir(), Options{Safe: true})
	require.ErrorIs(t, err, types.ErrDatabaseNotFound)
}

func TestOpenCreatesWhenNotSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.db")
	db, err := Open(path, Options{})
	require.NoError(t, err)
	require.NoError(t, db.CreateTables())
	require.NoError(t, db.Close())

	db, err = Open(path, Options{Safe: true})
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, "fresh.db", db.Name())
}

func TestClassesRoundTrip(t *testing.T) {
	db := newDB(t)
	require.NoError(t, db.AddClass(Class{ID: 1, Name: "com.example.Second", AccessFlags: 0x11, Superclass: "java.lang.Object"}))
	require.NoError(t, db.AddClass(Class{ID: 0, Name: "com.example.First", AccessFlags: 0, Superclass: "None"}))

	classes, ok := db.Classes()
	require.True(t, ok)
	require.Len(t, classes, 2)
	assert.Equal(t, Class{ID: 0, Name: "com.example.First", AccessFlags: 0, Superclass: "None"}, classes[0])
	assert.Equal(t, "com.example.Second", classes[1].Name)
	assert.Equal(t, uint32(0x11), classes[1].AccessFlags)

	err := db.AddClass(Class{ID: 1, Name: "dup"})
	require.Error(t, err)
}

func TestMembers(t *testing.T) {
	db := newDB(t)
	require.NoError(t, db.AddClass(Class{ID: 7, Name: "com.example.Foo", Superclass: "java.lang.Object"}))

	id, err := db.AddStaticField(Field{Name: "TAG", Type: "Ljava/lang/String;", AccessFlags: 0x19, ClassID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	_, err = db.AddInstanceField(Field{Name: "count", Type: "I", AccessFlags: 0x2, ClassID: 7})
	require.NoError(t, err)
	_, err = db.AddInstanceField(Field{Name: "other", Type: "J", ClassID: 8})
	require.NoError(t, err)
	_, err = db.AddMethod(Method{Name: "<init>", Kind: MethodDirect, Descriptor: "()V", AccessFlags: 0x10001, ClassID: 7})
	require.NoError(t, err)
	_, err = db.AddMethod(Method{Name: "run", Kind: MethodVirtual, Descriptor: "(I)Z", AccessFlags: 0x1, ClassID: 7})
	require.NoError(t, err)

	statics, ok := db.StaticFields(7)
	require.True(t, ok)
	assert.Equal(t, []Field{{ID: 1, Name: "TAG", Type: "Ljava/lang/String;", AccessFlags: 0x19, ClassID: 7}}, statics)

	instances, ok := db.InstanceFields(7)
	require.True(t, ok)
	require.Len(t, instances, 1)
	assert.Equal(t, "count", instances[0].Name)

	methods, ok := db.Methods(7)
	require.True(t, ok)
	require.Len(t, methods, 2)
	assert.Equal(t, MethodDirect, methods[0].Kind)
	assert.Equal(t, uint32(0x10001), methods[0].AccessFlags)
	assert.Equal(t, MethodVirtual, methods[1].Kind)
	assert.Equal(t, "(I)Z", methods[1].Descriptor)

	none, ok := db.Methods(99)
	require.True(t, ok)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestStrings(t *testing.T) {
	db := newDB(t)
	for _, s := range []string{"hello", "it's quoted", ""} {
		require.NoError(t, db.AddString(s))
	}
	got, ok := db.Strings()
	require.True(t, ok)
	assert.Equal(t, []string{"hello", "it's quoted", ""}, got)
}

func TestHasClass(t *testing.T) {
	db := newDB(t)
	require.NoError(t, db.AddClass(Class{ID: 0, Name: "a.B", Superclass: "java.lang.Object"}))

	found, ok := db.HasClass("a.B")
	assert.True(t, ok)
	assert.True(t, found)

	found, ok = db.HasClass("a.b")
	assert.True(t, ok)
	assert.False(t, found)

	found, ok = db.HasClass(`a.B" OR "1"="1`)
	assert.True(t, ok)
	assert.False(t, found)
}

func TestCreateTablesReplacesData(t *testing.T) {
	db := newDB(t)
	require.NoError(t, db.AddClass(Class{ID: 0, Name: "old.Class", Superclass: "None"}))
	require.NoError(t, db.CreateTables())

	classes, ok := db.Classes()
	require.True(t, ok)
	assert.Empty(t, classes)
}

func TestQueryFailureIsSoft(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	db, err := Open(filepath.Join(t.TempDir(), "empty.db"), Options{Logger: logger})
	require.NoError(t, err)
	defer db.Close()

	classes, ok := db.Classes()
	assert.False(t, ok)
	assert.Nil(t, classes)

	strs, ok := db.Strings()
	assert.False(t, ok)
	assert.Nil(t, strs)

	_, ok = db.StaticFields(0)
	assert.False(t, ok)
	_, ok = db.Methods(0)
	assert.False(t, ok)

	found, ok := db.HasClass("x")
	assert.False(t, ok)
	assert.False(t, found)

	assert.Contains(t, logs.String(), "error getting classes")
	assert.Contains(t, logs.String(), "db=empty.db")
}

func TestClosedHandle(t *testing.T) {
	db := newDB(t)
	require.NoError(t, db.Close())
	_, ok := db.Classes()
	assert.False(t, ok)
	require.Error(t, db.AddString("x"))
}

func TestMethodKindString(t *testing.T) {
	assert.Equal(t, "direct", MethodDirect.String())
	assert.Equal(t, "virtual", MethodVirtual.String())
	assert.Equal(t, "unknown", MethodKind(5).String())
}
