package format

import (
	"encoding/binary"
	"testing"
)

func TestIsDexMagic(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want bool
	}{
		{"v035", []byte("dex\n035\x00"), true},
		{"v039", []byte("dex\n039\x00trailing"), true},
		{"short", []byte("dex\n03"), false},
		{"odex", []byte("dey\n036\x00"), false},
		{"non digit version", []byte("dex\n0a5\x00"), false},
		{"missing nul", []byte("dex\n0351"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDexMagic(tt.in); got != tt.want {
				t.Fatalf("IsDexMagic(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestDexHeaderFields(t *testing.T) {
	hdr := make([]byte, DexHeaderSize)
	copy(hdr, "dex\n035\x00")
	binary.LittleEndian.PutUint32(hdr[DexFileSizeOffset:], 2048)
	binary.LittleEndian.PutUint32(hdr[DexClassDefsSizeOffset:], 7)

	size, err := DexFileSize(hdr)
	if err != nil || size != 2048 {
		t.Fatalf("DexFileSize = %d, %v", size, err)
	}
	classes, err := DexClassDefsSize(hdr)
	if err != nil || classes != 7 {
		t.Fatalf("DexClassDefsSize = %d, %v", classes, err)
	}

	if _, err := DexClassDefsSize(hdr[:DexClassDefsSizeOffset]); err != ErrTruncated {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}
