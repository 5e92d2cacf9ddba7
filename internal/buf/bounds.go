package buf

import (
	"fmt"
	"math"
)

// AddU64 adds a and b, returning ok = false when the result would overflow uint64.
func AddU64(a, b uint64) (uint64, bool) {
	if a > math.MaxUint64-b {
		return 0, false
	}
	return a + b, true
}

// Int64 converts an unsigned file offset to the int64 expected by io.ReaderAt.
func Int64(off uint64) (int64, bool) {
	if off > math.MaxInt64 {
		return 0, false
	}
	return int64(off), true
}

// CheckRange validates that n bytes starting at off fit inside a source of the
// given size. Returns the exclusive end offset.
//
//	end, err := buf.CheckRange(size, h.DexOffset, uint64(h.DexSize))
//	if err != nil {
//	    return fmt.Errorf("dex image: %w", err)
//	}
func CheckRange(size, off, n uint64) (uint64, error) {
	end, ok := AddU64(off, n)
	if !ok {
		return 0, fmt.Errorf("overflow: offset=%d + size=%d", off, n)
	}
	if end > size {
		return 0, fmt.Errorf("bounds: end=%d > len=%d", end, size)
	}
	return end, nil
}

// Slice returns the sub-slice [off:off+n] if it fits within len(b).
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	if n > len(b)-off {
		return nil, false
	}
	return b[off : off+n], true
}
