package oat

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/oatkit/internal/format"
	"github.com/joshuapare/oatkit/pkg/types"
)

// decodeHeader fills the OAT header fields of f, starting at f.OatDataOffset.
func (p *parser) decodeHeader(f *File) error {
	base := f.OatDataOffset

	magic, err := p.src.bytes(base+format.OATMagicOffset, format.OATMagicSize)
	if err != nil {
		return fmt.Errorf("oat magic: %w", err)
	}
	f.Magic = string(magic)
	if f.Magic != format.OATMagic {
		f.diag(types.Diagnostic{
			Severity: types.SevWarning, Offset: base, Structure: "OAT",
			Issue: "unexpected oat magic", Expected: format.OATMagic, Actual: f.Magic,
		})
	}

	raw, err := p.src.bytes(base+format.OATVersionOffset, format.OATVersionSize)
	if err != nil {
		return fmt.Errorf("oat version: %w", err)
	}
	if f.Version, err = parseVersion(raw); err != nil {
		return err
	}

	countOff := base + format.OATDexFileCountOffset
	if f.DexFileCount, err = p.src.u32(countOff); err != nil {
		return fmt.Errorf("dex file count: %w", err)
	}
	p.log.Debug("oat header",
		"magic", strconv.Quote(f.Magic), "version", f.Version,
		"dex_file_count", f.DexFileCount, "count_offset", hex(countOff))

	f.Layout = LayoutForVersion(f.Version)
	kvOff := base + f.Layout.KeyValueSizeOffset
	if f.KeyValueStoreSize, err = p.src.u32(kvOff); err != nil {
		return fmt.Errorf("key/value store size: %w", err)
	}

	storeStart := base + f.Layout.HeaderSize
	if f.DexHeaderStart, err = advance(storeStart, uint64(f.KeyValueStoreSize)); err != nil {
		return err
	}
	p.log.Debug("oat header layout",
		"layout", f.Layout.Name, "key_value_size", f.KeyValueStoreSize,
		"key_value_size_offset", hex(kvOff), "dex_header_start", hex(f.DexHeaderStart))

	f.KeyValues = p.decodeKeyValues(f, storeStart, f.KeyValueStoreSize)
	return nil
}

// parseVersion reads the ASCII version field ("064\0").
func parseVersion(raw []byte) (uint32, error) {
	s := strings.Trim(string(raw), "\x00")
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", types.ErrMalformedVersion, raw)
	}
	return uint32(v), nil
}

// decodeKeyValues is best effort: the store is informational and a damaged
// one never fails the parse.
func (p *parser) decodeKeyValues(f *File, off uint64, size uint32) []KeyValue {
	if size == 0 {
		return nil
	}
	if size > format.MaxKeyValueStoreSize {
		f.diag(types.Diagnostic{
			Severity: types.SevWarning, Offset: off, Structure: "KV",
			Issue: "key/value store too large, skipped", Actual: size,
		})
		return nil
	}
	raw, err := p.src.bytes(off, int(size))
	if err != nil {
		f.diag(types.Diagnostic{
			Severity: types.SevWarning, Offset: off, Structure: "KV",
			Issue: "key/value store unreadable: " + err.Error(),
		})
		return nil
	}
	kvs, err := format.ParseKeyValueStore(raw)
	if errors.Is(err, format.ErrDanglingKey) {
		f.diag(types.Diagnostic{
			Severity: types.SevWarning, Offset: off, Structure: "KV",
			Issue: fmt.Sprintf("key/value store ends mid-entry after %d pairs", len(kvs)),
		})
	}
	for i := range kvs {
		kvs[i].Key = displayString(kvs[i].Key)
		kvs[i].Value = displayString(kvs[i].Value)
	}
	return kvs
}

// diag records d on f and logs it.
func (f *File) diag(d types.Diagnostic) {
	f.Diagnostics = append(f.Diagnostics, d)
	attrs := []any{"structure", d.Structure, "offset", hex(d.Offset)}
	if d.Actual != nil {
		attrs = append(attrs, "actual", fmt.Sprintf("%q", fmt.Sprint(d.Actual)))
	}
	f.log.Warn(d.Issue, attrs...)
}
