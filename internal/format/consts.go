// Package format houses the on-disk constants and low-level decoders for the
// Android OAT container and the DEX header fields it dereferences. Parsing is
// kept independent from the public API so pkg/oat can orchestrate reads
// against an arbitrary io.ReaderAt.
package format

// OATMagic is the canonical four-byte magic at the start of the oatdata region.
// Layout:
//
//	0x00  'o' 'a' 't' '\n'
//
// Vendor builds have been seen with other values, so it is logged rather than
// enforced.
const OATMagic = "oat\n"

// OatDataSymbol names the ELF symbol that marks the start of the OAT header.
const OatDataSymbol = "oatdata"

// OAT header fields shared by every layout. Offsets are relative to the
// oatdata symbol.
//
//	Offset  Size  Description
//	------  ----  ------------------------------------------------------
//	 0x00    4    magic "oat\n"
//	 0x04    4    version, ASCII digits padded with NUL ("064\0")
//	 0x08    4    adler32 checksum of the oat header
//	 0x0C    4    instruction set
//	 0x10    4    instruction set features
//	 0x14    4    dex file count
//	 ....         version dependent trampoline offsets
//	 0x44    4    key/value store size (version >= 64)
//	 0x50    4    key/value store size (version < 64)
const (
	OATMagicOffset        = 0x00
	OATMagicSize          = 4
	OATVersionOffset      = 0x04
	OATVersionSize        = 4
	OATDexFileCountOffset = 0x14
)

// Version dependent layout of the OAT header tail. LayoutVersionThreshold is
// the first version that uses the shorter header.
const (
	LayoutVersionThreshold = 64

	Pre64KeyValueSizeOffset  = 80
	Pre64HeaderSize          = 84
	Post64KeyValueSizeOffset = 68
	Post64HeaderSize         = 72
)

// OatDexFile (sub-header) constants.
const (
	// MaxFileLocationData bounds the dex location string. Anything longer means
	// the chain cursor is misaligned.
	MaxFileLocationData = 256

	// ClassOffsetEntrySize is the width of one entry in the per-class offset
	// table that trails each sub-header.
	ClassOffsetEntrySize = 4

	// SamsungMethodsOffsetsSize is the extra methods_offsets_ field some Samsung
	// builds insert between the dex file pointer and the class offset table.
	SamsungMethodsOffsetsSize = 4
)

// DEX header_item fields read through the sub-header's dex file pointer.
//
//	Offset  Size  Description
//	------  ----  ------------------------------------------------------
//	 0x00    8    magic "dex\n035\0"
//	 0x08    4    adler32 checksum
//	 0x0C   20    SHA-1 signature
//	 0x20    4    file_size
//	 0x24    4    header_size (0x70)
//	 ....
//	 0x60    4    class_defs_size
//	 0x64    4    class_defs_off
const (
	DexMagicSize           = 8
	DexChecksumOffset      = 0x08
	DexFileSizeOffset      = 0x20
	DexHeaderSizeOffset    = 0x24
	DexClassDefsSizeOffset = 0x60
	DexHeaderSize          = 0x70
)

// DexMagicPrefix is the fixed part of the DEX magic; the next three bytes are
// the ASCII format version followed by a NUL.
const DexMagicPrefix = "dex\n"

const (
	// CarveChunkSize is the read size used when streaming a DEX image out of
	// the container.
	CarveChunkSize = 1024

	// MaxKeyValueStoreSize caps how much of the key/value store is decoded.
	MaxKeyValueStoreSize = 1 << 20
)
