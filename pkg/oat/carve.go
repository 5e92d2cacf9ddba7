package oat

import (
	"bytes"
	"fmt"
	"io"

	"github.com/joshuapare/oatkit/internal/buf"
	"github.com/joshuapare/oatkit/pkg/types"
)

// Carve streams the DEX image described by h into w, reading at most the
// configured chunk size at a time. It returns the number of bytes written,
// which equals h.DexSize on success. Size and bounds are validated before the
// payload region is touched.
func (f *File) Carve(w io.Writer, h DexHeader) (int64, error) {
	if err := f.checkCarve(h); err != nil {
		return 0, err
	}

	chunk := make([]byte, min(uint64(f.chunkSize), uint64(h.DexSize)))
	var written int64
	off := h.DexOffset
	remaining := uint64(h.DexSize)
	for remaining > 0 {
		b := chunk[:min(remaining, uint64(len(chunk)))]
		if err := f.readAt(b, off); err != nil {
			return written, fmt.Errorf("carve dex %d: %w", h.Index, err)
		}
		n, err := w.Write(b)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("carve dex %d: write: %w", h.Index, err)
		}
		off += uint64(len(b))
		remaining -= uint64(len(b))
	}
	f.log.Debug("carved dex", "dex", h.Index, "offset", hex(h.DexOffset), "bytes", written)
	return written, nil
}

// DexBytes returns the DEX image described by h.
func (f *File) DexBytes(h DexHeader) ([]byte, error) {
	var out bytes.Buffer
	if _, err := f.Carve(&out, h); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// DexReader returns a reader over the DEX image described by h without
// copying it. Reads fail with types.ErrClosed once f is closed.
func (f *File) DexReader(h DexHeader) (*io.SectionReader, error) {
	if err := f.checkCarve(h); err != nil {
		return nil, err
	}
	off, ok := buf.Int64(h.DexOffset)
	if !ok {
		return nil, fmt.Errorf("%w: dex %d offset 0x%x out of range", types.ErrCorrupt, h.Index, h.DexOffset)
	}
	return io.NewSectionReader(guardedReaderAt{f}, off, int64(h.DexSize)), nil
}

func (f *File) checkCarve(h DexHeader) error {
	if f.isClosed() {
		return types.ErrClosed
	}
	if err := h.checkSize(); err != nil {
		return err
	}
	if f.src.size < 0 {
		return nil
	}
	if _, err := buf.CheckRange(uint64(f.src.size), h.DexOffset, uint64(h.DexSize)); err != nil {
		return fmt.Errorf("%w: dex %d: %v", types.ErrTruncated, h.Index, err)
	}
	return nil
}
