package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	Swift      SwiftConfig      `mapstructure:"swift"`
	Output     OutputConfig     `mapstructure:"output"`
	Validation ValidationConfig `mapstructure:"validation"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// SwiftConfig locates the ring builder files
type SwiftConfig struct {
	Dir    string `mapstructure:"dir"`    // Directory holding account/container/object.builder
	Format string `mapstructure:"format"` // Builder encoding: auto (default), pickle, json
}

// OutputConfig describes the summary file
type OutputConfig struct {
	Path string `mapstructure:"path"` // Summary JSON path, overwritten on every run
	// Atomic writes to a temp file and renames it over Path, so a crash
	// mid-write never leaves a truncated summary behind
	Atomic bool `mapstructure:"atomic"`
}

// ValidationConfig tightens checks applied to builder contents
type ValidationConfig struct {
	// StrictPorts fails the run when one host is listed with two different
	// ports in the same ring. Off by default: the last port seen wins.
	StrictPorts bool `mapstructure:"strict_ports"`
}

// MetricsConfig configures run metrics for node_exporter's textfile collector
type MetricsConfig struct {
	TextfilePath string `mapstructure:"textfile_path"` // Empty disables the textfile
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, Kitchen
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Swift.Validate(); err != nil {
		return fmt.Errorf("swift config: %w", err)
	}

	if err := c.Output.Validate(); err != nil {
		return fmt.Errorf("output config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates swift configuration
func (c *SwiftConfig) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("swift.dir is required")
	}

	switch c.Format {
	case "auto", "pickle", "json":
	default:
		return fmt.Errorf("swift.format must be one of: auto, pickle, json")
	}

	return nil
}

// Validate validates output configuration
func (c *OutputConfig) Validate() error {
	if c.Path == "" {
		return fmt.Errorf("output.path is required")
	}
	return nil
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
