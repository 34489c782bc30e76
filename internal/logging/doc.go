// Package logging assembles structured slog loggers and formatting helpers used
// across Mozaik.
//
// It owns the console and JSON handlers, parses level and format settings from
// configuration, and exposes attribute helpers so probe, extraction, and
// session code emit lines with the same keys. Loggers built here understand a
// "component" attribute (rendered as a prefix on the console) and carry the
// session identifier attached through WithSessionID.
//
// NewNop returns a logger that discards everything; packages default to it so
// constructors never need a nil check.
package logging
