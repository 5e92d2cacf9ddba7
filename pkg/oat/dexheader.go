package oat

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/joshuapare/oatkit/internal/format"
	"github.com/joshuapare/oatkit/pkg/types"
)

// DexHeader is one OatDexFile sub-header together with the two DEX header
// fields it was resolved against.
//
//	Offset       Size               Description
//	-----------  -----------------  ---------------------------------------
//	 +0          4                  location length
//	 +4          location length    dex file location (not NUL terminated)
//	 ...         4                  location checksum
//	 ...         4                  dex file pointer (relative to oatdata)
//	 ...         4                  methods_offsets_ (Samsung builds only)
//	 ...         4*class_defs_size  class offset table
type DexHeader struct {
	Index            int    `json:"index"`
	StartOffset      uint64 `json:"start_offset"`
	EndOffset        uint64 `json:"end_offset"`
	FileLocation     string `json:"file_location"`
	Checksum         uint32 `json:"checksum"`
	DexFilePointer   uint32 `json:"dex_file_pointer"`
	DexOffset        uint64 `json:"dex_offset"`
	DexSize          uint32 `json:"dex_size"`
	ClassDefsSize    uint32 `json:"class_defs_size"`
	ClassOffsetsSize uint64 `json:"class_offsets_size"`
}

// Location returns FileLocation decoded for display. Non UTF-8 locations are
// treated as Latin-1.
func (h DexHeader) Location() string {
	return displayString(h.FileLocation)
}

// checkSize rejects sizes that are negative once read as int32.
func (h DexHeader) checkSize() error {
	if int32(h.DexSize) < 0 {
		return fmt.Errorf("%w: dex %d declares 0x%x bytes", types.ErrInvalidDexSize, h.Index, h.DexSize)
	}
	return nil
}

// walkDexHeaders decodes count sub-headers starting at start, each link
// beginning where the previous one ended.
func (p *parser) walkDexHeaders(oatDataOffset, start uint64, count uint32) ([]DexHeader, error) {
	headers := make([]DexHeader, 0, min(count, 1024))
	off := start
	for i := uint32(0); i < count; i++ {
		h, err := p.parseDexHeader(int(i), oatDataOffset, off)
		if err != nil {
			return nil, fmt.Errorf("dex header %d at 0x%x: %w", i, off, err)
		}
		headers = append(headers, h)
		off = h.EndOffset
	}
	return headers, nil
}

// parseDexHeader decodes one chain link at off.
func (p *parser) parseDexHeader(index int, oatDataOffset, off uint64) (DexHeader, error) {
	h := DexHeader{Index: index, StartOffset: off}
	log := p.log.With("dex", index)

	locLen, err := p.src.u32(off)
	if err != nil {
		return h, fmt.Errorf("location length: %w", err)
	}
	// A length past the limit means the cursor is misaligned; nothing after it
	// can be trusted.
	if locLen > format.MaxFileLocationData {
		return h, fmt.Errorf("%w: %d bytes (limit %d)",
			types.ErrSuspiciousLocationLength, locLen, format.MaxFileLocationData)
	}
	if off, err = advance(off, 4); err != nil {
		return h, err
	}

	loc, err := p.src.bytes(off, int(locLen))
	if err != nil {
		return h, fmt.Errorf("location: %w", err)
	}
	h.FileLocation = string(loc)
	log.Debug("dex location", "offset", hex(off), "length", locLen, "location", h.Location())
	if off, err = advance(off, uint64(locLen)); err != nil {
		return h, err
	}

	if h.Checksum, err = p.src.u32(off); err != nil {
		return h, fmt.Errorf("checksum: %w", err)
	}
	log.Debug("dex checksum", "offset", hex(off), "checksum", fmt.Sprintf("0x%08x", h.Checksum))
	if off, err = advance(off, 4); err != nil {
		return h, err
	}

	if h.DexFilePointer, err = p.src.u32(off); err != nil {
		return h, fmt.Errorf("dex file pointer: %w", err)
	}
	if off, err = advance(off, 4); err != nil {
		return h, err
	}
	if h.DexOffset, err = advance(oatDataOffset, uint64(h.DexFilePointer)); err != nil {
		return h, err
	}

	// One read covers every DEX header field the chain depends on.
	hdr, err := p.src.bytes(h.DexOffset, format.DexClassDefsSizeOffset+4)
	if err != nil {
		return h, fmt.Errorf("dex header: %w", err)
	}
	if p.opts.ValidateDexMagic && !format.IsDexMagic(hdr) {
		return h, fmt.Errorf("%w: %q at 0x%x", types.ErrBadDexMagic, hdr[:format.DexMagicSize], h.DexOffset)
	}

	if h.DexSize, err = format.DexFileSize(hdr); err != nil {
		return h, fmt.Errorf("dex file size: %w", err)
	}
	if err := h.checkSize(); err != nil {
		return h, err
	}
	log.Debug("dex image", "dex_offset", hex(h.DexOffset), "dex_size", h.DexSize)

	if p.opts.SamsungMode {
		if off, err = advance(off, format.SamsungMethodsOffsetsSize); err != nil {
			return h, err
		}
	}

	if h.ClassDefsSize, err = format.DexClassDefsSize(hdr); err != nil {
		return h, fmt.Errorf("class defs size: %w", err)
	}
	h.ClassOffsetsSize = uint64(h.ClassDefsSize) * format.ClassOffsetEntrySize
	if off, err = advance(off, h.ClassOffsetsSize); err != nil {
		return h, err
	}
	log.Debug("dex class offsets", "class_defs_size", h.ClassDefsSize, "class_offsets_size", h.ClassOffsetsSize)

	h.EndOffset = off
	return h, nil
}

func displayString(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().String(s)
	if err != nil {
		return s
	}
	return decoded
}
