package oat

import (
	"log/slog"

	"github.com/joshuapare/oatkit/internal/format"
)

// Options configures a single parse. The values are fixed for the lifetime of
// the returned *File.
type Options struct {
	// SamsungMode expects the extra methods_offsets_ field Samsung builds add
	// to every dex sub-header.
	SamsungMode bool

	// ValidateDexMagic checks the embedded image's DEX magic before its
	// file_size and class_defs_size fields are trusted.
	ValidateDexMagic bool

	// ChunkSize is the read size used by Carve. Zero means format.CarveChunkSize.
	ChunkSize int

	// Logger receives debug traces of every decoded field and its offset.
	// Nil discards them.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (o Options) chunkSize() int {
	if o.ChunkSize > 0 {
		return o.ChunkSize
	}
	return format.CarveChunkSize
}
