package dexdiff

import "strings"

var primitives = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'V': "void",
	'Z': "boolean",
}

// TypeName renders a type descriptor as Java source spells it:
// "Ljava/lang/String;" becomes "java.lang.String" and "[[I" becomes
// "int[][]". Anything that is not a descriptor is returned unchanged.
func TypeName(desc string) string {
	elem := strings.TrimLeft(desc, "[")
	dims := len(desc) - len(elem)

	var base string
	switch {
	case len(elem) == 1 && primitives[elem[0]] != "":
		base = primitives[elem[0]]
	case len(elem) > 2 && elem[0] == 'L' && elem[len(elem)-1] == ';':
		base = strings.NewReplacer("/", ".", "$", ".").Replace(elem[1 : len(elem)-1])
	default:
		return desc
	}
	return base + strings.Repeat("[]", dims)
}
