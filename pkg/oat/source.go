package oat

import (
	"fmt"
	"io"
	"os"

	"github.com/joshuapare/oatkit/internal/buf"
	"github.com/joshuapare/oatkit/pkg/types"
)

// source wraps the caller's io.ReaderAt with exact-length reads.
type source struct {
	r    io.ReaderAt
	size int64 // -1 when unknown
}

func newSource(r io.ReaderAt) *source {
	return &source{r: r, size: sizeOf(r)}
}

func sizeOf(r io.ReaderAt) int64 {
	switch v := r.(type) {
	case interface{ Size() int64 }:
		return v.Size()
	case interface{ Stat() (os.FileInfo, error) }:
		if fi, err := v.Stat(); err == nil && fi.Mode().IsRegular() {
			return fi.Size()
		}
	}
	return -1
}

// readAt fills b from off. A short read is reported as io.ErrUnexpectedEOF;
// any other error from the source is returned wrapped but unchanged.
func (s *source) readAt(b []byte, off uint64) error {
	o, ok := buf.Int64(off)
	if !ok {
		return fmt.Errorf("%w: offset 0x%x out of range", types.ErrCorrupt, off)
	}
	n, err := s.r.ReadAt(b, o)
	if n == len(b) {
		return nil
	}
	if err == nil || err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("read %d bytes at 0x%x: %w", len(b), off, err)
}

func (s *source) bytes(off uint64, n int) ([]byte, error) {
	b := make([]byte, n)
	if err := s.readAt(b, off); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *source) u32(off uint64) (uint32, error) {
	var b [4]byte
	if err := s.readAt(b[:], off); err != nil {
		return 0, err
	}
	return buf.U32LE(b[:]), nil
}

// advance moves an offset forward, failing on overflow.
func advance(off, n uint64) (uint64, error) {
	next, ok := buf.AddU64(off, n)
	if !ok {
		return 0, fmt.Errorf("%w: offset 0x%x + %d overflows", types.ErrCorrupt, off, n)
	}
	return next, nil
}
