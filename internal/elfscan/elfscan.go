// Package elfscan resolves the two ELF facts an OAT parse depends on: the
// load bias of the container and the virtual address of the oatdata symbol.
package elfscan

import (
	"debug/elf"
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/oatkit/pkg/types"
)

// BaseOffset returns p_vaddr - p_offset of the first PT_PHDR program header.
// Every virtual address in the container is translated to a file offset by
// subtracting this value.
func BaseOffset(f *elf.File, log *slog.Logger) (int64, error) {
	if len(f.Progs) == 0 {
		return 0, fmt.Errorf("%w: no program headers", types.ErrMissingBaseOffset)
	}
	for i, p := range f.Progs {
		if p.Type != elf.PT_PHDR {
			continue
		}
		base := int64(p.Vaddr) - int64(p.Off)
		log.Debug("program header segment",
			"index", i, "p_vaddr", fmt.Sprintf("%#x", p.Vaddr), "p_offset", fmt.Sprintf("%#x", p.Off), "base", base)
		return base, nil
	}
	return 0, fmt.Errorf("%w: no PT_PHDR among %d segments", types.ErrMissingBaseOffset, len(f.Progs))
}

// OatDataSymbol returns st_value of the first symbol named "oatdata", scanning
// the symbol table sections in file order.
func OatDataSymbol(f *elf.File, name string, log *slog.Logger) (uint64, error) {
	tables := 0
	for _, s := range f.Sections {
		if s.Type != elf.SHT_SYMTAB && s.Type != elf.SHT_DYNSYM {
			continue
		}
		tables++
		if s.Entsize == 0 {
			return 0, fmt.Errorf("%w: symbol table %s has zero entry size", types.ErrMissingOatDataSymbol, s.Name)
		}

		syms, err := symbols(f, s.Type)
		if err != nil {
			if errors.Is(err, elf.ErrNoSymbols) {
				continue
			}
			return 0, fmt.Errorf("read %s: %w", s.Name, err)
		}
		for _, sym := range syms {
			if sym.Name == name {
				log.Debug("oatdata symbol", "section", s.Name, "st_value", fmt.Sprintf("%#x", sym.Value))
				return sym.Value, nil
			}
		}
	}
	if tables == 0 {
		return 0, fmt.Errorf("%w: no symbol table", types.ErrMissingOatDataSymbol)
	}
	return 0, fmt.Errorf("%w: %q not in %d symbol tables", types.ErrMissingOatDataSymbol, name, tables)
}

func symbols(f *elf.File, typ elf.SectionType) ([]elf.Symbol, error) {
	if typ == elf.SHT_DYNSYM {
		return f.DynamicSymbols()
	}
	return f.Symbols()
}
