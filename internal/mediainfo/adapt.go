package mediainfo

import "mozaik/internal/track"

// Track converts the node into the schema-neutral model. index is the
// node's position within the report.
func (n Node) Track(index int) track.Track {
	return track.Track{
		Source:           track.SourceMediaInfo,
		ID:               index,
		Kind:             track.ParseKind(n.Type),
		Codec:            n.CodecID,
		Format:           n.Format,
		CommercialName:   n.CommercialName,
		Title:            n.Title,
		Language:         n.Language,
		BitRate:          n.BitRate,
		BitRateMode:      n.BitRateMode,
		CompressionMode:  n.CompressionMode,
		Width:            n.Width,
		Height:           n.Height,
		HDRFormat:        n.HDRFormat,
		HDRCompatibility: n.HDRCompatibility,
		IMDB:             n.IMDB,
		Default:          track.ParseFlag(n.Default),
		Forced:           track.ParseFlag(n.Forced),
		Extra:            n.Extra,
	}
}

// Tracks adapts every node of the report, General included.
func (r *Record) Tracks() []track.Track {
	out := make([]track.Track, 0, len(r.Nodes))
	for i, node := range r.Nodes {
		out = append(out, node.Track(i))
	}
	return out
}
