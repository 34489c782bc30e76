package summary

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"mozaik/internal/track"
)

const bytesPerGiB = 1 << 30

// parseNumber parses a reported attribute as a finite number. Surrounding
// whitespace is ignored; anything else makes the value non-numeric.
func parseNumber(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// FormatVideoBitrate renders a bits-per-second value in Mbps.
func FormatVideoBitrate(raw string) string {
	if bps, ok := parseNumber(raw); ok {
		return fmt.Sprintf("%.1f Mbps", bps/1_000_000)
	}
	return raw + "bps"
}

// FormatAudioBitrate renders a bits-per-second value in kbps.
func FormatAudioBitrate(raw string) string {
	if bps, ok := parseNumber(raw); ok {
		return fmt.Sprintf("%.0f kbps", bps/1000)
	}
	return raw + "bps"
}

// FormatDuration renders seconds as whole hours and remaining whole minutes.
// Non-numeric and negative input is returned unchanged.
func FormatDuration(raw string) string {
	seconds, ok := parseNumber(raw)
	if !ok || seconds < 0 {
		return raw
	}
	hours := math.Floor(seconds / 3600)
	minutes := math.Floor(math.Mod(seconds, 3600) / 60)
	return fmt.Sprintf("%.0fh %.0fm", hours, minutes)
}

// FormatFileSize renders a byte count in GiB. ok is false when raw is not a
// number; callers treat that as an absent size, not zero.
func FormatFileSize(raw string) (string, bool) {
	size, ok := parseNumber(raw)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%.1f GiB", size/bytesPerGiB), true
}

// HDRTags returns the first "/"-token of the compatibility field followed by
// the first "/"-token of the HDR format field, joined by ", ". Blank tokens
// are dropped, so two empty fields produce "".
func HDRTags(compatibility, format track.Text) string {
	tags := make([]string, 0, 2)
	for _, field := range []track.Text{compatibility, format} {
		value, ok := field.Get()
		if !ok {
			continue
		}
		first, _, _ := strings.Cut(value, "/")
		if first = strings.TrimSpace(first); first != "" {
			tags = append(tags, first)
		}
	}
	return strings.Join(tags, ", ")
}

// FormatFrameRate renders a frame rate attribute.
func FormatFrameRate(raw string) string {
	return strings.TrimSpace(raw) + " fps"
}
