// Package main hosts the Mozaik CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into probe, summary and
// extraction calls: analyze and raw read mediainfo reports, tracks lists the
// mkvmerge manifest, extract drives mkvextract through a session, and doctor
// reports whether the tools are installed. Configuration resolution and
// logger construction live in the shared command context so subcommands only
// deal with presentation.
//
// Keep this package thin. New behavior belongs in the internal packages and
// is surfaced here as flags or commands.
package main
