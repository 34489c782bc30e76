package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTools()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeDisplay()
	return c.normalizeLogging()
}

func (c *Config) normalizeTools() {
	c.Tools.MediaInfo = resolveBinary(c.Tools.MediaInfo, "MOZAIK_MEDIAINFO", defaultMediaInfoBinary)
	c.Tools.MKVMerge = resolveBinary(c.Tools.MKVMerge, "MOZAIK_MKVMERGE", defaultMKVMergeBinary)
	c.Tools.MKVExtract = resolveBinary(c.Tools.MKVExtract, "MOZAIK_MKVEXTRACT", defaultMKVExtractBinary)
}

// resolveBinary prefers the configured value, then the environment, then the
// bare command name resolved through PATH at run time.
func resolveBinary(configured, envKey, fallback string) string {
	if value := strings.TrimSpace(configured); value != "" {
		return expandBinary(value)
	}
	if value, ok := os.LookupEnv(envKey); ok && strings.TrimSpace(value) != "" {
		return expandBinary(strings.TrimSpace(value))
	}
	return fallback
}

func expandBinary(value string) string {
	if !strings.ContainsAny(value, `/\`) && !strings.HasPrefix(value, "~") {
		return value
	}
	expanded, err := expandPath(value)
	if err != nil {
		return value
	}
	return expanded
}

func (c *Config) normalizeOutput() error {
	c.Output.Dir = strings.TrimSpace(c.Output.Dir)
	if c.Output.Dir != "" {
		expanded, err := expandPath(c.Output.Dir)
		if err != nil {
			return fmt.Errorf("output.dir: %w", err)
		}
		c.Output.Dir = expanded
	}
	c.Output.RawJSONName = strings.TrimSpace(c.Output.RawJSONName)
	if c.Output.RawJSONName == "" {
		c.Output.RawJSONName = defaultRawJSONName
	}
	return nil
}

func (c *Config) normalizeDisplay() {
	c.Display.Locale = strings.TrimSpace(c.Display.Locale)
	if c.Display.Locale == "" {
		c.Display.Locale = defaultLocale
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.Level == "warning" {
		c.Logging.Level = "warn"
	}
	c.Logging.File = strings.TrimSpace(c.Logging.File)
	if c.Logging.File != "" {
		expanded, err := expandPath(c.Logging.File)
		if err != nil {
			return fmt.Errorf("logging.file: %w", err)
		}
		c.Logging.File = expanded
	}
	return nil
}
