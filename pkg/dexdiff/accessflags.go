package dexdiff

import "strings"

// Target selects which access flag table Describe uses.
type Target int

const (
	ForClass Target = iota
	ForMethod
	ForField
)

const numAccessFlags = 18

// accessNames maps bit i of access_flags to its name. "?" marks bits that have
// no meaning for the target.
var accessNames = [...][numAccessFlags]string{
	ForClass: {
		"public", "private", "protected", "static", "final", "?",
		"?", "?", "?", "interface", "abstract", "?",
		"synthetic", "annotation", "enum", "?", "verified", "optimized",
	},
	ForMethod: {
		"public", "private", "protected", "static", "final", "synchronized",
		"bridge", "varargs", "native", "?", "abstract", "strict",
		"synthetic", "?", "?", "miranda", "constructor", "declared_synchronized",
	},
	ForField: {
		"public", "private", "protected", "static", "final", "?",
		"volatile", "transient", "?", "?", "?", "?",
		"synthetic", "?", "enum", "?", "?", "?",
	},
}

// Describe returns the names of the set bits in flags, lowest bit first,
// separated by spaces. Bits above the 18th are ignored.
func Describe(flags uint32, target Target) string {
	if target < ForClass || target > ForField {
		return ""
	}
	var names []string
	for i := 0; i < numAccessFlags; i++ {
		if flags&(1<<i) != 0 {
			names = append(names, accessNames[target][i])
		}
	}
	return strings.Join(names, " ")
}
