package oat

import (
	"debug/elf"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/joshuapare/oatkit/internal/elfscan"
	"github.com/joshuapare/oatkit/internal/format"
	"github.com/joshuapare/oatkit/pkg/types"
)

// KeyValue is one entry of the OAT key/value store.
type KeyValue = format.KeyValue

// File is a fully parsed OAT container. It is immutable once returned by
// Parse or Open; DexHeaders[i].EndOffset == DexHeaders[i+1].StartOffset.
type File struct {
	BaseOffset        int64       `json:"base_offset"`
	OatDataOffset     uint64      `json:"oat_data_offset"`
	Magic             string      `json:"magic"`
	Version           uint32      `json:"version"`
	DexFileCount      uint32      `json:"dex_file_count"`
	KeyValueStoreSize uint32      `json:"key_value_store_size"`
	DexHeaderStart    uint64      `json:"dex_header_start"`
	Layout            Layout      `json:"layout"`
	KeyValues         []KeyValue  `json:"key_values,omitempty"`
	DexHeaders        []DexHeader `json:"dex_headers"`

	// Diagnostics lists anomalies that did not fail the parse.
	Diagnostics []types.Diagnostic `json:"diagnostics,omitempty"`

	src       *source
	log       *slog.Logger
	chunkSize int

	// mu is held shared by every payload read and exclusively by Close, so
	// a mapping is never released under a read in progress.
	mu     sync.RWMutex
	closer func() error
	closed bool
}

// parser carries the per-parse state shared by the decoding stages.
type parser struct {
	src  *source
	log  *slog.Logger
	opts Options
}

// Parse decodes the OAT container held in r. r is borrowed for the lifetime of
// the returned *File and is never written. On any failure no *File is
// returned.
func Parse(r io.ReaderAt, opts Options) (*File, error) {
	log := opts.logger()
	src := newSource(r)

	ef, err := elf.NewFile(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrNotELF, err)
	}

	base, err := elfscan.BaseOffset(ef, log)
	if err != nil {
		return nil, err
	}
	sym, err := elfscan.OatDataSymbol(ef, format.OatDataSymbol, log)
	if err != nil {
		return nil, err
	}
	oatOff, err := virtualToFile(sym, base)
	if err != nil {
		return nil, err
	}
	log.Debug("oat data offset", "offset", hex(oatOff))

	f := &File{
		BaseOffset:    base,
		OatDataOffset: oatOff,
		src:           src,
		log:           log,
		chunkSize:     opts.chunkSize(),
	}
	p := &parser{src: src, log: log, opts: opts}
	if err := p.decodeHeader(f); err != nil {
		return nil, err
	}
	headers, err := p.walkDexHeaders(f.OatDataOffset, f.DexHeaderStart, f.DexFileCount)
	if err != nil {
		return nil, err
	}
	f.DexHeaders = headers
	return f, nil
}

// virtualToFile converts the oatdata virtual address to a file offset.
func virtualToFile(vaddr uint64, base int64) (uint64, error) {
	if base >= 0 {
		if vaddr < uint64(base) {
			return 0, fmt.Errorf("%w: oatdata 0x%x below load base 0x%x", types.ErrCorrupt, vaddr, base)
		}
		return vaddr - uint64(base), nil
	}
	return advance(vaddr, uint64(-base))
}

// Close releases the mapping acquired by Open. It waits for reads already in
// progress; later Carve, DexBytes and DexReader calls, and reads from readers
// handed out earlier, fail with types.ErrClosed. Close on a *File built with
// Parse only marks it closed. Closing twice is a no-op.
func (f *File) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.closed = true
	if f.closer != nil {
		return f.closer()
	}
	return nil
}

func (f *File) isClosed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

// readAt is source.readAt guarded against a concurrent Close.
func (f *File) readAt(b []byte, off uint64) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.closed {
		return types.ErrClosed
	}
	return f.src.readAt(b, off)
}

// guardedReaderAt is the io.ReaderAt behind DexReader. Each read holds the
// shared lock of its File.
type guardedReaderAt struct {
	f *File
}

func (g guardedReaderAt) ReadAt(p []byte, off int64) (int, error) {
	g.f.mu.RLock()
	defer g.f.mu.RUnlock()
	if g.f.closed {
		return 0, types.ErrClosed
	}
	return g.f.src.r.ReadAt(p, off)
}

func hex(v uint64) string {
	return fmt.Sprintf("0x%x", v)
}
