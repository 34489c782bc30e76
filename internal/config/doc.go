// Package config loads, normalizes, and validates Mozaik configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for the
// tool binaries (MOZAIK_MEDIAINFO, MOZAIK_MKVMERGE, MOZAIK_MKVEXTRACT). The
// Config type centralizes every knob the CLI needs: where the external tools
// live, how long probes and extractions may run, where extracted tracks land,
// how summaries are rendered, and how logs are written.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, resolved binaries, and clear validation errors.
package config
