// Package config holds the runtime settings for the word generator and
// loads them from an optional YAML file, environment variables and
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is consulted when no --config flag is given.
const DefaultConfigFile = "relang.yaml"

// EnvPrefix is the prefix of environment overrides, e.g.
// RELANG_BUFFER_SIZE=4096.
const EnvPrefix = "RELANG"

// Config holds all settings for a generation run. Struct tags control
// how Viper maps config file keys and environment variables.
type Config struct {
	// General behavior
	Silent bool `mapstructure:"silent" yaml:"silent"` // Suppress informational messages
	Debug  bool `mapstructure:"debug" yaml:"debug"`   // Verbose tracing + iterator state dumps

	// Output
	PrintTree bool `mapstructure:"print_tree" yaml:"print_tree"` // Dump the parsed pattern before enumerating
	CountOnly bool `mapstructure:"count_only" yaml:"count_only"` // Suppress words, print the total count at the end

	// Enumeration window
	Offset int64 `mapstructure:"offset" yaml:"offset"` // Words to skip from the beginning
	Limit  int64 `mapstructure:"limit" yaml:"limit"`   // Stop after this many words; <= 0 means unlimited

	// BufferSize is the initial word buffer in bytes, grown as needed.
	BufferSize int `mapstructure:"buffer_size" yaml:"buffer_size"`
}

var defaults = map[string]interface{}{
	"silent":      false,
	"debug":       false,
	"print_tree":  false,
	"count_only":  false,
	"offset":      int64(0),
	"limit":       int64(0),
	"buffer_size": 1024,
}

var (
	// Testing controls whether informational output is suppressed for
	// testing purposes.
	Testing bool
)

// PrintInfo prints formatted information to stdout, respecting the
// Testing flag.
func PrintInfo(format string, args ...interface{}) {
	if !Testing {
		fmt.Printf(format, args...)
	}
}

// DefaultConfig returns a configuration with default settings.
func DefaultConfig() *Config {
	return &Config{
		BufferSize: 1024,
	}
}

// LoadConfig reads configuration from file and environment variables,
// then returns a filled Config struct. An empty path means the default
// relang.yaml, which is allowed to be absent; a path given explicitly
// must exist.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	explicit := configPath != ""
	if configPath == "" {
		configPath = DefaultConfigFile
	}

	if _, err := os.Stat(configPath); err == nil {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configPath, err)
		}
		logrus.Debugf("config: loaded %s", configPath)
	} else if os.IsNotExist(err) {
		if explicit {
			return nil, fmt.Errorf("specified config file not found: %s", configPath)
		}
	} else {
		return nil, fmt.Errorf("error checking config file %s: %w", configPath, err)
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config file %s: %w", configPath, err)
	}
	return cfg, nil
}

// SaveConfig writes the default configuration to a file, creating the
// parent directory if needed.
func SaveConfig(configPath string) error {
	cfg := DefaultConfig()
	yamlData, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshalling default config: %w", err)
	}
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating directory for config file %s: %w", configPath, err)
	}
	if err := os.WriteFile(configPath, yamlData, 0644); err != nil {
		return fmt.Errorf("error writing config file %s: %w", configPath, err)
	}
	PrintInfo("Info: Saved default configuration to %s\n", configPath)
	return nil
}
