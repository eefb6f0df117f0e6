package config

import (
	"fmt"

	"github.com/cqroot/openstack-swift-exporter/internal/utils"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command line flag names to configuration keys
var flagKeys = map[string]string{
	"swift-dir":        "swift.dir",
	"format":           "swift.format",
	"output":           "output.path",
	"atomic":           "output.atomic",
	"strict-ports":     "validation.strict_ports",
	"metrics-textfile": "metrics.textfile_path",
	"log-level":        "logging.level",
	"log-format":       "logging.format",
}

// configName is the base name searched for when no --config is given. It
// must not collide with the summary file name (swift_exporter.json), which
// viper would otherwise pick up from the working directory.
const configName = "update_swift_info"

// Load loads configuration from file, environment and command line flags.
// flags may be nil; only flags listed in flagKeys are bound.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/swift_exporter")
	}

	setDefaults(v)

	// SWIFT_EXPORTER_SWIFT_DIR, SWIFT_EXPORTER_OUTPUT_PATH, ...
	v.SetEnvPrefix("SWIFT_EXPORTER")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("swift.dir", utils.DefaultSwiftDir)
	v.SetDefault("swift.format", "auto")

	v.SetDefault("output.path", utils.DefaultOutputPath)
	v.SetDefault("output.atomic", false)

	v.SetDefault("validation.strict_ports", false)

	v.SetDefault("metrics.textfile_path", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output_path", "stderr")
	v.SetDefault("logging.time_format", "RFC3339")
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Swift: SwiftConfig{
			Dir:    utils.DefaultSwiftDir,
			Format: "auto",
		},
		Output: OutputConfig{
			Path: utils.DefaultOutputPath,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			OutputPath: "stderr",
			TimeFormat: "RFC3339",
		},
	}
}
