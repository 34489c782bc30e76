// Package mkvmerge decodes the identification report produced by
// `mkvmerge -J` into a ContainerManifest.
//
// Track ids in the manifest are the references mkvextract expects, so the
// decoder rejects documents with missing or duplicate ids instead of
// guessing. Manifest.Tracks adapts entries into the schema-neutral
// track.Track used by the summarizer and the extraction planner.
package mkvmerge
