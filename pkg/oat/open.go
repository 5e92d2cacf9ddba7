package oat

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/oatkit/internal/mmfile"
)

// Open maps the OAT file at path read-only and parses it. The returned *File
// must be closed to release the mapping.
func Open(path string, opts Options) (*File, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	f, err := Parse(bytes.NewReader(data), opts)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	f.closer = cleanup
	return f, nil
}
