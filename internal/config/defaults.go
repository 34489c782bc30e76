package config

const (
	defaultMediaInfoBinary  = "mediainfo"
	defaultMKVMergeBinary   = "mkvmerge"
	defaultMKVExtractBinary = "mkvextract"
	defaultProbeSeconds     = 60
	defaultExtractSeconds   = 6 * 60 * 60
	defaultRawJSONName      = "MediaInfoOutput.json"
	defaultLocale           = "en"
	defaultAudioPreview     = 2
	defaultSubtitlePreview  = 1
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
)

// Default returns a Config populated with repository defaults. Tool binaries
// are left empty so normalization can apply environment fallbacks first.
func Default() Config {
	return Config{
		Timeouts: Timeouts{
			ProbeSeconds:   defaultProbeSeconds,
			ExtractSeconds: defaultExtractSeconds,
		},
		Output: Output{
			RawJSONName: defaultRawJSONName,
		},
		Display: Display{
			Locale:          defaultLocale,
			AudioPreview:    defaultAudioPreview,
			SubtitlePreview: defaultSubtitlePreview,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
