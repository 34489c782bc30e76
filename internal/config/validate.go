package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return describeFieldError(fieldErrs[0])
		}
		return fmt.Errorf("validate config: %w", err)
	}
	if strings.ContainsAny(c.Output.RawJSONName, `/\`) {
		return errors.New("output.raw_json_name must be a file name, not a path")
	}
	return nil
}

func describeFieldError(fe validator.FieldError) error {
	key := tomlKey(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("%s must be set", key)
	case "oneof":
		return fmt.Errorf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	case "gte":
		return fmt.Errorf("%s must be >= %s", key, fe.Param())
	case "bcp47_language_tag":
		return fmt.Errorf("%s must be a BCP 47 language tag, got %q", key, fe.Value())
	default:
		return fmt.Errorf("%s failed %q validation", key, fe.Tag())
	}
}

// tomlKey converts a validator namespace such as "Config.Timeouts.ProbeSeconds"
// into the matching TOML key "timeouts.probe_seconds".
func tomlKey(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	for i, part := range parts {
		parts[i] = snakeCase(part)
	}
	return strings.Join(parts, ".")
}

func snakeCase(value string) string {
	if mapped, ok := tomlNames[value]; ok {
		return mapped
	}
	var b strings.Builder
	for i, r := range value {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}

var tomlNames = map[string]string{
	"MediaInfo":   "mediainfo",
	"MKVMerge":    "mkvmerge",
	"MKVExtract":  "mkvextract",
	"RawJSONName": "raw_json_name",
}
