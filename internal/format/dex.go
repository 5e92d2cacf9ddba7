package format

import "github.com/joshuapare/oatkit/internal/buf"

// IsDexMagic reports whether b starts with a DEX magic such as "dex\n035\0".
func IsDexMagic(b []byte) bool {
	if len(b) < DexMagicSize {
		return false
	}
	if string(b[:len(DexMagicPrefix)]) != DexMagicPrefix {
		return false
	}
	for _, c := range b[4:7] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return b[7] == 0
}

// DexFileSize returns the file_size field of a DEX header held in b.
func DexFileSize(b []byte) (uint32, error) {
	field, ok := buf.Slice(b, DexFileSizeOffset, 4)
	if !ok {
		return 0, ErrTruncated
	}
	return buf.U32LE(field), nil
}

// DexClassDefsSize returns the class_defs_size field of a DEX header held in b.
func DexClassDefsSize(b []byte) (uint32, error) {
	field, ok := buf.Slice(b, DexClassDefsSizeOffset, 4)
	if !ok {
		return 0, ErrTruncated
	}
	return buf.U32LE(field), nil
}
