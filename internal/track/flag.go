package track

import "strings"

// Flag is a tri-state boolean track attribute such as default or forced.
type Flag int

const (
	FlagUnset Flag = iota
	FlagYes
	FlagNo
)

// ParseFlag interprets a textual flag. Only a case-insensitive "yes" is true.
func ParseFlag(raw Text) Flag {
	value, ok := raw.Get()
	if !ok {
		return FlagUnset
	}
	if strings.EqualFold(strings.TrimSpace(value), "yes") {
		return FlagYes
	}
	return FlagNo
}

// FlagFromBool converts an optional boolean into a Flag.
func FlagFromBool(value *bool) Flag {
	switch {
	case value == nil:
		return FlagUnset
	case *value:
		return FlagYes
	default:
		return FlagNo
	}
}

// IsYes reports whether the flag is explicitly set.
func (f Flag) IsYes() bool {
	return f == FlagYes
}

func (f Flag) String() string {
	switch f {
	case FlagYes:
		return "yes"
	case FlagNo:
		return "no"
	default:
		return ""
	}
}
