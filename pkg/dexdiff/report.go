package dexdiff

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/joshuapare/oatkit/pkg/dexdb"
)

// Style decorates the report. Nil functions leave text unchanged.
type Style struct {
	Tag   func(string) string // "[New Class]", "[Method]", ...
	Class func(string) string // class names on [New Class] lines
}

func (s Style) tag(v string) string {
	if s.Tag == nil {
		return v
	}
	return s.Tag(v)
}

func (s Style) class(v string) string {
	if s.Class == nil {
		return v
	}
	return s.Class(v)
}

// ClassFlags renders a class's access flags. A class with no flags set is
// reported as public.
func ClassFlags(flags uint32) string {
	if flags == 0 {
		return "public"
	}
	return Describe(flags, ForClass)
}

// FieldLine renders a field as "flags type name", omitting empty flags.
func FieldLine(f dexdb.Field) string {
	return join(Describe(f.AccessFlags, ForField), TypeName(f.Type), f.Name)
}

// MethodLine renders a method as "flags name(descriptor)", omitting empty flags.
func MethodLine(m dexdb.Method) string {
	return join(Describe(m.AccessFlags, ForMethod), m.Name+m.Descriptor)
}

// WriteReport writes reports in the order given:
//
//	[New Class] public final com.example.Foo
//	   [Static Field] public static final java.lang.String TAG
//	   [Instance Field] private int count
//	   [Method] public constructor <init>()V
func WriteReport(w io.Writer, reports []ClassReport, style Style) error {
	var sb strings.Builder
	for _, r := range reports {
		sb.Reset()
		fmt.Fprintf(&sb, "%s %s\n", style.tag("[New Class]"),
			join(ClassFlags(r.Class.AccessFlags), style.class(r.Class.Name)))
		for _, f := range r.StaticFields {
			fmt.Fprintf(&sb, "   %s %s\n", style.tag("[Static Field]"), FieldLine(f))
		}
		for _, f := range r.InstanceFields {
			fmt.Fprintf(&sb, "   %s %s\n", style.tag("[Instance Field]"), FieldLine(f))
		}
		for _, m := range r.Methods {
			fmt.Fprintf(&sb, "   %s %s\n", style.tag("[Method]"), MethodLine(m))
		}
		if _, err := io.WriteString(w, sb.String()); err != nil {
			return err
		}
	}
	return nil
}

func join(parts ...string) string {
	return strings.Join(lo.Compact(parts), " ")
}
