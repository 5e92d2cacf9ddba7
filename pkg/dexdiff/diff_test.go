package dexdiff

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/oatkit/internal/testutil"
	"github.com/joshuapare/oatkit/pkg/dexdb"
	"github.com/joshuapare/oatkit/pkg/types"
)

func localFixture() []testutil.ClassFixture {
	return []testutil.ClassFixture{
		{Class: dexdb.Class{ID: 0, Name: "android.app.Activity", AccessFlags: 0x1, Superclass: "java.lang.Object"}},
		{
			Class: dexdb.Class{ID: 1, Name: "com.vendor.Tracker", AccessFlags: 0x11, Superclass: "java.lang.Object"},
			StaticFields: []dexdb.Field{
				{Name: "TAG", Type: "Ljava/lang/String;", AccessFlags: 0x19},
			},
			InstanceFields: []dexdb.Field{
				{Name: "ids", Type: "[I", AccessFlags: 0x2},
				{Name: "raw", Type: "J"},
			},
			Methods: []dexdb.Method{
				{Name: "<init>", Kind: dexdb.MethodDirect, Descriptor: "()V", AccessFlags: 0x10001},
				{Name: "upload", Kind: dexdb.MethodVirtual, Descriptor: "(Ljava/lang/String;)Z"},
			},
		},
		{Class: dexdb.Class{ID: 2, Name: "com.vendor.Hidden", AccessFlags: 0, Superclass: "java.lang.Object"}},
	}
}

func baseFixture() []testutil.ClassFixture {
	return []testutil.ClassFixture{
		{Class: dexdb.Class{ID: 0, Name: "android.app.Activity", AccessFlags: 0x1, Superclass: "java.lang.Object"}},
		{Class: dexdb.Class{ID: 1, Name: "com.vendor.hidden", AccessFlags: 0x1, Superclass: "java.lang.Object"}},
	}
}

func openFixture(t *testing.T, name string, classes []testutil.ClassFixture) *dexdb.DB {
	t.Helper()
	db, err := dexdb.Open(testutil.WriteDexDB(t, name, classes), dexdb.Options{Safe: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDiff(t *testing.T) {
	local := openFixture(t, "local.db", localFixture())
	base := openFixture(t, "aosp.db", baseFixture())

	reports, err := Diff(local, base)
	require.NoError(t, err)
	require.Len(t, reports, 2)

	assert.Equal(t, "com.vendor.Tracker", reports[0].Class.Name)
	assert.Len(t, reports[0].StaticFields, 1)
	assert.Len(t, reports[0].InstanceFields, 2)
	assert.Len(t, reports[0].Methods, 2)

	// Names compare exactly, so case differences count as new.
	assert.Equal(t, "com.vendor.Hidden", reports[1].Class.Name)
	assert.Empty(t, reports[1].Methods)
}

func TestDiffIdentical(t *testing.T) {
	local := openFixture(t, "local.db", localFixture())
	same := openFixture(t, "same.db", localFixture())

	reports, err := Diff(local, same)
	require.NoError(t, err)
	assert.Empty(t, reports)
}

func TestWriteReport(t *testing.T) {
	local := openFixture(t, "local.db", localFixture())
	base := openFixture(t, "aosp.db", baseFixture())
	reports, err := Diff(local, base)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, WriteReport(&out, reports, Style{}))

	want := strings.Join([]string{
		"[New Class] public final com.vendor.Tracker",
		"   [Static Field] public static final java.lang.String TAG",
		"   [Instance Field] private int[] ids",
		"   [Instance Field] long raw",
		"   [Method] public constructor <init>()V",
		"   [Method] upload(Ljava/lang/String;)Z",
		"[New Class] public com.vendor.Hidden",
		"",
	}, "\n")
	assert.Equal(t, want, out.String())
}

func TestWriteReportStyle(t *testing.T) {
	reports := []ClassReport{{Class: dexdb.Class{Name: "a.B", AccessFlags: 0x1}}}
	style := Style{
		Tag:   func(s string) string { return "<" + s + ">" },
		Class: strings.ToUpper,
	}
	var out bytes.Buffer
	require.NoError(t, WriteReport(&out, reports, style))
	assert.Equal(t, "<[New Class]> public A.B\n", out.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteReportError(t *testing.T) {
	reports := []ClassReport{{Class: dexdb.Class{Name: "a.B"}}}
	require.EqualError(t, WriteReport(failingWriter{}, reports, Style{}), "disk full")
}

// stubSource fails whichever query is named in fail.
type stubSource struct {
	fail    string
	classes []dexdb.Class
}

func (s stubSource) Name() string { return "stub.db" }

func (s stubSource) Classes() ([]dexdb.Class, bool) {
	return s.classes, s.fail != "classes"
}

func (s stubSource) StaticFields(int64) ([]dexdb.Field, bool) {
	return []dexdb.Field{}, s.fail != "static"
}

func (s stubSource) InstanceFields(int64) ([]dexdb.Field, bool) {
	return []dexdb.Field{}, s.fail != "instance"
}

func (s stubSource) Methods(int64) ([]dexdb.Method, bool) {
	return []dexdb.Method{}, s.fail != "methods"
}

func TestDiffQueryFailure(t *testing.T) {
	classes := []dexdb.Class{{ID: 3, Name: "x.Y"}}
	for _, fail := range []string{"classes", "static", "instance", "methods"} {
		t.Run(fail, func(t *testing.T) {
			_, err := Diff(stubSource{fail: fail, classes: classes}, stubSource{})
			require.ErrorIs(t, err, types.ErrQueryFailed)
			assert.Contains(t, err.Error(), "stub.db")
		})
	}

	_, err := Diff(stubSource{classes: classes}, stubSource{fail: "classes"})
	require.ErrorIs(t, err, types.ErrQueryFailed)
}
