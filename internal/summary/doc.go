// Package summary renders probed tracks as short human-readable
// descriptions.
//
// Track descriptions are lists of fragments joined by Separator. Numeric
// attributes (bitrates, durations, sizes) are interpreted here and nowhere
// else; values that do not parse are shown as reported. Overview collects
// the container-level facts of a mediainfo report, and Sections applies the
// audio and subtitle preview limits used by the analyze listing.
package summary
