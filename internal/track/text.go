package track

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Text is an optional string attribute. The zero value is unset; a present
// but empty attribute has Set == true and Value == "".
type Text struct {
	Value string
	Set   bool
}

// Some returns a present Text holding value.
func Some(value string) Text {
	return Text{Value: value, Set: true}
}

// Get returns the value and whether it was present.
func (t Text) Get() (string, bool) {
	return t.Value, t.Set
}

// NonEmpty returns the trimmed value when present and not blank.
func (t Text) NonEmpty() (string, bool) {
	if !t.Set {
		return "", false
	}
	trimmed := strings.TrimSpace(t.Value)
	return trimmed, trimmed != ""
}

// Or returns t when it carries a non-blank value, otherwise fallback.
func (t Text) Or(fallback Text) Text {
	if _, ok := t.NonEmpty(); ok {
		return t
	}
	return fallback
}

// String returns the raw value, empty when unset.
func (t Text) String() string {
	return t.Value
}

// UnmarshalJSON accepts strings and, for tools that emit bare scalars,
// numbers and booleans kept as their literal text. null leaves Text unset.
func (t *Text) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*t = Text{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*t = Some(s)
		return nil
	case '{', '[':
		return fmt.Errorf("expected string value, got %s", kindOf(trimmed[0]))
	default:
		*t = Some(string(trimmed))
		return nil
	}
}

// MarshalJSON emits the value, or null when unset.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.Set {
		return []byte("null"), nil
	}
	return json.Marshal(t.Value)
}

// IsZero lets encoders using omitzero drop unset attributes.
func (t Text) IsZero() bool {
	return !t.Set
}

func kindOf(b byte) string {
	if b == '{' {
		return "object"
	}
	return "array"
}
