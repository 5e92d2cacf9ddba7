package oat

import "github.com/joshuapare/oatkit/internal/format"

// Layout describes where a family of OAT versions keeps the key/value store
// size and how long the fixed header is. A new container revision is a new
// Layout, never an edit of an existing one.
type Layout struct {
	Name               string `json:"name"`
	MinVersion         uint32 `json:"min_version"`
	KeyValueSizeOffset uint64 `json:"key_value_size_offset"`
	HeaderSize         uint64 `json:"header_size"`
}

var (
	// LayoutPre64 covers versions below 064.
	LayoutPre64 = Layout{
		Name:               "pre64",
		MinVersion:         0,
		KeyValueSizeOffset: format.Pre64KeyValueSizeOffset,
		HeaderSize:         format.Pre64HeaderSize,
	}
	// LayoutPost64 covers version 064 and later.
	LayoutPost64 = Layout{
		Name:               "post64",
		MinVersion:         format.LayoutVersionThreshold,
		KeyValueSizeOffset: format.Post64KeyValueSizeOffset,
		HeaderSize:         format.Post64HeaderSize,
	}
)

// layouts is ordered by descending MinVersion.
var layouts = []Layout{LayoutPost64, LayoutPre64}

// Layouts returns the supported header layouts, newest first.
func Layouts() []Layout {
	return append([]Layout(nil), layouts...)
}

// LayoutForVersion returns the header layout used by the given OAT version.
func LayoutForVersion(version uint32) Layout {
	for _, l := range layouts {
		if version >= l.MinVersion {
			return l
		}
	}
	return LayoutPre64
}
