package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeFetch()
	c.normalizeSources()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ExportPath) == "" {
		c.Paths.ExportPath = defaultExportPath
	}
	if c.Paths.ExportPath, err = expandPath(c.Paths.ExportPath); err != nil {
		return fmt.Errorf("paths.export_path: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeFetch() {
	if c.Fetch.TimeoutSeconds <= 0 {
		c.Fetch.TimeoutSeconds = defaultFetchTimeout
	}
	c.Fetch.UserAgent = strings.TrimSpace(c.Fetch.UserAgent)
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = defaultUserAgent
	}
	if c.Fetch.DetailConcurrency < 0 {
		c.Fetch.DetailConcurrency = defaultDetailConcurrency
	}
	if c.Fetch.MaxEntries < 0 {
		c.Fetch.MaxEntries = defaultMaxEntries
	}
}

func (c *Config) normalizeSources() {
	c.Sources.Wigmore.BaseURL = strings.TrimRight(strings.TrimSpace(c.Sources.Wigmore.BaseURL), "/")
	c.Sources.Proms.SeriesURL = strings.TrimSpace(c.Sources.Proms.SeriesURL)
	c.Sources.Southbank.BaseURL = strings.TrimRight(strings.TrimSpace(c.Sources.Southbank.BaseURL), "/")
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
