package types

import (
	"fmt"
	"sort"
	"strings"
)

// -----------------------------------------------------------------------------
// Diagnostics
// -----------------------------------------------------------------------------
//
// A parse either fails with an error or succeeds. Anything odd that does not
// stop the parse (an unexpected magic, a damaged key/value store) is recorded
// as a Diagnostic on the result instead.

// Severity classifies how serious a diagnostic is.
type Severity int

const (
	SevInfo    Severity = iota // unusual but valid
	SevWarning                 // decoded, but part of the data was ignored or distrusted
)

func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText renders the severity by name in JSON output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Diagnostic is one non-fatal issue found while parsing.
type Diagnostic struct {
	Severity  Severity `json:"severity"`
	Offset    uint64   `json:"offset"`    // absolute byte offset in the file
	Structure string   `json:"structure"` // "OAT", "KV", "DEX"
	Issue     string   `json:"issue"`
	Expected  any      `json:"expected,omitempty"`
	Actual    any      `json:"actual,omitempty"`
}

// FormatCompact returns one line per diagnostic, ordered by offset.
func FormatCompact(diags []Diagnostic) string {
	if len(diags) == 0 {
		return "No issues found.\n"
	}
	byOffset := make([]Diagnostic, len(diags))
	copy(byOffset, diags)
	sort.SliceStable(byOffset, func(i, j int) bool {
		return byOffset[i].Offset < byOffset[j].Offset
	})

	var b strings.Builder
	for _, d := range byOffset {
		fmt.Fprintf(&b, "0x%08X [%s/%s] %s", d.Offset, d.Severity, d.Structure, d.Issue)
		if d.Expected != nil || d.Actual != nil {
			fmt.Fprintf(&b, " (expected %q, got %q)", fmt.Sprint(d.Expected), fmt.Sprint(d.Actual))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
