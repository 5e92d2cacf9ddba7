package format

import "bytes"

// KeyValue is one entry of the OAT key/value store.
type KeyValue struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ParseKeyValueStore decodes the NUL separated "key\0value\0" pairs dex2oat
// writes after the fixed OAT header. Decoding stops at the first empty key so
// trailing padding is ignored. A key with no terminated value yields the pairs
// decoded so far and ErrDanglingKey.
func ParseKeyValueStore(b []byte) ([]KeyValue, error) {
	var out []KeyValue
	for len(b) > 0 {
		end := bytes.IndexByte(b, 0)
		if end <= 0 {
			// Empty key (padding) or an unterminated tail.
			if end < 0 {
				return out, ErrDanglingKey
			}
			return out, nil
		}
		key := string(b[:end])
		b = b[end+1:]

		end = bytes.IndexByte(b, 0)
		if end < 0 {
			return out, ErrDanglingKey
		}
		out = append(out, KeyValue{Key: key, Value: string(b[:end])})
		b = b[end+1:]
	}
	return out, nil
}
