// Package mediainfo decodes `mediainfo --Output=JSON` reports and runs the
// mediainfo probe.
//
// Key types:
//   - Record: the decoded media report (one General node, any number of
//     Video, Audio, Text, and Menu nodes)
//   - Node: one track node with its optional string attributes
//   - Result: a Record plus the raw payload exactly as mediainfo wrote it
//
// Attributes stay uninterpreted strings; numeric parsing happens in the
// summary package. Record.Tracks adapts nodes into track.Track values.
package mediainfo
