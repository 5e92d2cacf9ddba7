// Package testutil builds synthetic OAT containers for tests. The output is a
// minimal little-endian ELF64 shared object: a PT_PHDR and a PT_LOAD segment,
// a .rodata section holding the oatdata region, and a .dynsym table exporting
// oatdata. Every offset the builder chooses is reported back in Layout so tests
// can assert against known-good values.
package testutil

import (
	"debug/elf"
	"encoding/binary"
	"hash/adler32"
	"strconv"
	"strings"

	"github.com/joshuapare/oatkit/internal/format"
)

// KeyValue is one key/value store entry.
type KeyValue = format.KeyValue

// Dex describes one embedded DEX image.
type Dex struct {
	Location  string
	Size      int    // image size in bytes; at least format.DexHeaderSize
	ClassDefs uint32 // class_defs_size written into the DEX header
	Seed      byte   // varies the payload bytes

	// DeclaredSize overrides the header's file_size field when non-zero.
	DeclaredSize uint32
	// BadMagic replaces the DEX magic with garbage.
	BadMagic bool
}

// Builder assembles an OAT container.
type Builder struct {
	Magic     string // defaults to "oat\n"
	Version   string // ASCII version, e.g. "064"; padded with NUL to 4 bytes
	KeyValues []KeyValue
	Dexes     []Dex
	Samsung   bool // emit the extra methods_offsets_ field
	LoadBias  uint64

	OmitPrograms     bool
	OmitPHDR         bool
	OmitSymbol       bool // export a symbol table without oatdata
	OmitSymbolTables bool
}

// Layout reports where the builder placed each structure.
type Layout struct {
	OatDataOffset   uint64
	OatDataSymbol   uint64
	KeyValueSize    uint32
	DexHeaderStart  uint64
	SubHeaderStarts []uint64
	SubHeaderEnds   []uint64
	DexOffsets      []uint64
	Images          [][]byte
}

const (
	ehdrSize = 64
	phdrSize = 56
	shdrSize = 64
	symSize  = 24
	oatAlign = 0x100
)

// DexImage returns a DEX image of size bytes with a valid header: magic,
// adler32 checksum, file_size and class_defs_size. The payload after the
// header is a deterministic pattern derived from seed.
func DexImage(size int, classDefs uint32, seed byte) []byte {
	if size < format.DexHeaderSize {
		size = format.DexHeaderSize
	}
	img := make([]byte, size)
	copy(img, "dex\n035\x00")
	binary.LittleEndian.PutUint32(img[format.DexFileSizeOffset:], uint32(size))
	binary.LittleEndian.PutUint32(img[format.DexHeaderSizeOffset:], format.DexHeaderSize)
	binary.LittleEndian.PutUint32(img[0x28:], 0x12345678)
	binary.LittleEndian.PutUint32(img[format.DexClassDefsSizeOffset:], classDefs)
	for i := format.DexHeaderSize; i < size; i++ {
		img[i] = seed + byte(i*31)
	}
	binary.LittleEndian.PutUint32(img[format.DexChecksumOffset:], adler32.Checksum(img[12:]))
	return img
}

// HeaderSize returns the fixed OAT header size for the given ASCII version.
func HeaderSize(version string) (kvOffset, headerSize int) {
	v, err := strconv.Atoi(strings.Trim(version, "\x00"))
	if err == nil && v >= format.LayoutVersionThreshold {
		return format.Post64KeyValueSizeOffset, format.Post64HeaderSize
	}
	return format.Pre64KeyValueSizeOffset, format.Pre64HeaderSize
}

// Build serializes the container.
func (b Builder) Build() ([]byte, Layout) {
	var lay Layout

	phnum := 2
	switch {
	case b.OmitPrograms:
		phnum = 0
	case b.OmitPHDR:
		phnum = 1
	}
	oatOff := alignUp(ehdrSize+phnum*phdrSize, oatAlign)
	lay.OatDataOffset = uint64(oatOff)
	lay.OatDataSymbol = b.LoadBias + uint64(oatOff)

	kv := encodeKeyValues(b.KeyValues)
	lay.KeyValueSize = uint32(len(kv))
	kvOffset, hdrSize := HeaderSize(b.Version)

	// Sub-headers first, so the DEX images can be placed after them.
	cursor := oatOff + hdrSize + len(kv)
	lay.DexHeaderStart = uint64(cursor)
	for _, d := range b.Dexes {
		lay.SubHeaderStarts = append(lay.SubHeaderStarts, uint64(cursor))
		cursor += subHeaderSize(d, b.Samsung)
		lay.SubHeaderEnds = append(lay.SubHeaderEnds, uint64(cursor))
	}
	for _, d := range b.Dexes {
		cursor = alignUp(cursor, 4)
		img := DexImage(d.Size, d.ClassDefs, d.Seed)
		if d.DeclaredSize != 0 {
			binary.LittleEndian.PutUint32(img[format.DexFileSizeOffset:], d.DeclaredSize)
		}
		if d.BadMagic {
			copy(img, "zip\x01\x02\x03\x04\x05")
		}
		lay.DexOffsets = append(lay.DexOffsets, uint64(cursor))
		lay.Images = append(lay.Images, img)
		cursor += len(img)
	}
	oatEnd := cursor

	out := make([]byte, oatEnd)
	b.writeOatRegion(out, oatOff, kvOffset, hdrSize, kv, lay)

	// Section payloads.
	shstr := newStrtab()
	dynstr := newStrtab()
	var dynsymOff, dynstrOff, dynsymLen, dynstrLen int
	if !b.OmitSymbolTables {
		name := format.OatDataSymbol
		if b.OmitSymbol {
			name = "oatexec"
		}
		syms := []elf.Sym64{
			{},
			{
				Name:  dynstr.add(name),
				Info:  elf.ST_INFO(elf.STB_GLOBAL, elf.STT_OBJECT),
				Shndx: uint16(elf.SHN_ABS),
				Value: lay.OatDataSymbol,
				Size:  uint64(oatEnd - oatOff),
			},
			{
				Name:  dynstr.add("oatlastword"),
				Info:  elf.ST_INFO(elf.STB_GLOBAL, elf.STT_OBJECT),
				Shndx: uint16(elf.SHN_ABS),
				Value: b.LoadBias + uint64(oatEnd) - 4,
				Size:  4,
			},
		}
		dynstrOff = len(out)
		out = append(out, dynstr.data...)
		dynstrLen = len(dynstr.data)

		out = pad(out, 8)
		dynsymOff = len(out)
		for _, s := range syms {
			out, _ = binary.Append(out, binary.LittleEndian, s)
		}
		dynsymLen = len(syms) * symSize
	}

	shdrs := []elf.Section64{
		{},
		{
			Name:      shstr.add(".rodata"),
			Type:      uint32(elf.SHT_PROGBITS),
			Flags:     uint64(elf.SHF_ALLOC),
			Addr:      b.LoadBias + uint64(oatOff),
			Off:       uint64(oatOff),
			Size:      uint64(oatEnd - oatOff),
			Addralign: oatAlign,
		},
	}
	if !b.OmitSymbolTables {
		strIdx := uint32(len(shdrs))
		shdrs = append(shdrs,
			elf.Section64{
				Name:      shstr.add(".dynstr"),
				Type:      uint32(elf.SHT_STRTAB),
				Flags:     uint64(elf.SHF_ALLOC),
				Off:       uint64(dynstrOff),
				Size:      uint64(dynstrLen),
				Addralign: 1,
			},
			elf.Section64{
				Name:      shstr.add(".dynsym"),
				Type:      uint32(elf.SHT_DYNSYM),
				Flags:     uint64(elf.SHF_ALLOC),
				Off:       uint64(dynsymOff),
				Size:      uint64(dynsymLen),
				Link:      strIdx,
				Info:      1,
				Addralign: 8,
				Entsize:   symSize,
			},
		)
	}
	shstrIdx := len(shdrs)
	shstrName := shstr.add(".shstrtab")
	shstrOff := len(out)
	out = append(out, shstr.data...)
	shdrs = append(shdrs, elf.Section64{
		Name:      shstrName,
		Type:      uint32(elf.SHT_STRTAB),
		Off:       uint64(shstrOff),
		Size:      uint64(len(shstr.data)),
		Addralign: 1,
	})

	out = pad(out, 8)
	shoff := len(out)
	for _, sh := range shdrs {
		out, _ = binary.Append(out, binary.LittleEndian, sh)
	}
	total := uint64(len(out))

	// Headers go last because they need the final sizes.
	var ident [elf.EI_NIDENT]byte
	copy(ident[:], elf.ELFMAG)
	ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	ident[elf.EI_DATA] = byte(elf.ELFDATA2LSB)
	ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	ehdr := elf.Header64{
		Ident:     ident,
		Type:      uint16(elf.ET_DYN),
		Machine:   uint16(elf.EM_AARCH64),
		Version:   uint32(elf.EV_CURRENT),
		Phoff:     phoff(phnum),
		Shoff:     uint64(shoff),
		Ehsize:    ehdrSize,
		Phentsize: phdrSize,
		Phnum:     uint16(phnum),
		Shentsize: shdrSize,
		Shnum:     uint16(len(shdrs)),
		Shstrndx:  uint16(shstrIdx),
	}
	hdr, _ := binary.Append(nil, binary.LittleEndian, ehdr)

	var progs []elf.Prog64
	if phnum == 2 {
		progs = append(progs, elf.Prog64{
			Type:   uint32(elf.PT_PHDR),
			Flags:  uint32(elf.PF_R),
			Off:    ehdrSize,
			Vaddr:  b.LoadBias + ehdrSize,
			Paddr:  b.LoadBias + ehdrSize,
			Filesz: uint64(phnum * phdrSize),
			Memsz:  uint64(phnum * phdrSize),
			Align:  8,
		})
	}
	if phnum > 0 {
		progs = append(progs, elf.Prog64{
			Type:   uint32(elf.PT_LOAD),
			Flags:  uint32(elf.PF_R),
			Off:    0,
			Vaddr:  b.LoadBias,
			Paddr:  b.LoadBias,
			Filesz: total,
			Memsz:  total,
			Align:  0x1000,
		})
	}
	for _, p := range progs {
		hdr, _ = binary.Append(hdr, binary.LittleEndian, p)
	}
	copy(out, hdr)

	return out, lay
}

func (b Builder) writeOatRegion(out []byte, oatOff, kvOffset, hdrSize int, kv []byte, lay Layout) {
	magic := b.Magic
	if magic == "" {
		magic = format.OATMagic
	}
	copy(out[oatOff:oatOff+format.OATMagicSize], magic)

	var version [format.OATVersionSize]byte
	copy(version[:], b.Version)
	copy(out[oatOff+format.OATVersionOffset:], version[:])

	le := binary.LittleEndian
	le.PutUint32(out[oatOff+format.OATDexFileCountOffset:], uint32(len(b.Dexes)))
	le.PutUint32(out[oatOff+kvOffset:], uint32(len(kv)))
	copy(out[oatOff+hdrSize:], kv)

	for i, d := range b.Dexes {
		off := int(lay.SubHeaderStarts[i])
		le.PutUint32(out[off:], uint32(len(d.Location)))
		off += 4
		off += copy(out[off:], d.Location)
		le.PutUint32(out[off:], le.Uint32(lay.Images[i][format.DexChecksumOffset:]))
		off += 4
		le.PutUint32(out[off:], uint32(lay.DexOffsets[i]-uint64(oatOff)))
		off += 4
		if b.Samsung {
			le.PutUint32(out[off:], 0)
			off += format.SamsungMethodsOffsetsSize
		}
		for c := uint32(0); c < d.ClassDefs; c++ {
			le.PutUint32(out[off:], 0x1000+c*0x10)
			off += format.ClassOffsetEntrySize
		}
		copy(out[lay.DexOffsets[i]:], lay.Images[i])
	}
}

func phoff(phnum int) uint64 {
	if phnum == 0 {
		return 0
	}
	return ehdrSize
}

func subHeaderSize(d Dex, samsung bool) int {
	n := 4 + len(d.Location) + 4 + 4 + int(d.ClassDefs)*format.ClassOffsetEntrySize
	if samsung {
		n += format.SamsungMethodsOffsetsSize
	}
	return n
}

func encodeKeyValues(kvs []KeyValue) []byte {
	var out []byte
	for _, kv := range kvs {
		out = append(out, kv.Key...)
		out = append(out, 0)
		out = append(out, kv.Value...)
		out = append(out, 0)
	}
	return out
}

type strtab struct {
	data []byte
}

func newStrtab() *strtab {
	return &strtab{data: []byte{0}}
}

func (s *strtab) add(name string) uint32 {
	off := uint32(len(s.data))
	s.data = append(s.data, name...)
	s.data = append(s.data, 0)
	return off
}

func alignUp(n, a int) int {
	return (n + a - 1) &^ (a - 1)
}

func pad(b []byte, a int) []byte {
	for len(b)%a != 0 {
		b = append(b, 0)
	}
	return b
}
