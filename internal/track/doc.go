// Package track defines the schema-neutral track model shared by the
// summarizer and the extraction planner.
//
// The mediainfo and mkvmerge decoders each convert their own records into
// Track through an adapter, tagging the result with its Source. Optional
// attributes are Text values that record presence separately from content,
// vendor extension maps are Extra values with an explicit Lookup contract,
// and boolean-ish flags are tri-state Flag values.
package track
