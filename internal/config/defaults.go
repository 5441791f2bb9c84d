package config

const (
	defaultDataDir           = "~/.local/share/podium"
	defaultExportPath        = "~/.local/share/podium/feed.json"
	defaultLogDir            = "~/.local/share/podium/logs"
	defaultFetchTimeout      = 30
	defaultUserAgent         = "podium/1.0 (+https://github.com/podium-feeds/podium)"
	defaultDetailConcurrency = 10
	defaultMaxEntries        = 220
	defaultLogFormat         = "console"
	defaultLogLevel          = "info"
)

// Default returns a Config populated with repository defaults. All three
// sources are enabled; endpoint URLs default inside each source adapter when
// left empty.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    defaultDataDir,
			ExportPath: defaultExportPath,
			LogDir:     defaultLogDir,
		},
		Fetch: Fetch{
			TimeoutSeconds:    defaultFetchTimeout,
			UserAgent:         defaultUserAgent,
			DetailConcurrency: defaultDetailConcurrency,
			MaxEntries:        defaultMaxEntries,
		},
		Sources: Sources{
			Wigmore:   Wigmore{Enabled: true},
			Proms:     Proms{Enabled: true},
			Southbank: Southbank{Enabled: true},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
