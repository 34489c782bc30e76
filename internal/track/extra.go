package track

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
)

// Extra holds vendor-specific key/value pairs reported alongside a track.
//
// Lookup distinguishes a missing key (ok == false) from a key whose value is
// the empty string (ok == true).
type Extra struct {
	values map[string]string
}

// NewExtra copies values into an Extra.
func NewExtra(values map[string]string) Extra {
	if len(values) == 0 {
		return Extra{}
	}
	return Extra{values: maps.Clone(values)}
}

// Lookup returns the value stored under key and whether the key was present.
func (e Extra) Lookup(key string) (string, bool) {
	value, ok := e.values[key]
	return value, ok
}

// Len reports the number of entries.
func (e Extra) Len() int {
	return len(e.values)
}

// Keys returns the entry keys in sorted order.
func (e Extra) Keys() []string {
	return slices.Sorted(maps.Keys(e.values))
}

// UnmarshalJSON decodes an object whose values are strings or scalars.
// Nested objects, arrays, and nulls are dropped.
func (e *Extra) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*e = Extra{}
		return nil
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("extra: %w", err)
	}
	values := make(map[string]string, len(raw))
	for key, msg := range raw {
		var value Text
		if err := value.UnmarshalJSON(msg); err != nil {
			// Nested vendor structures carry no summary value.
			continue
		}
		if value.Set {
			values[key] = value.Value
		}
	}
	*e = Extra{values: values}
	return nil
}

// MarshalJSON emits the entries as a JSON object.
func (e Extra) MarshalJSON() ([]byte, error) {
	if e.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(e.values)
}
