package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Environment variable prefix for mods2docs configuration.
const envPrefix = "MODS2DOCS"

// Loader handles loading and merging configuration from multiple sources.
// Precedence, highest first: environment, config file, DefaultConfig.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigType("yaml")

	_ = v.BindEnv("data_dir", "MODS2DOCS_DATA_DIR")
	_ = v.BindEnv("writer", "MODS2DOCS_WRITER")
	_ = v.BindEnv("metrics_file", "MODS2DOCS_METRICS_FILE")
	_ = v.BindEnv("sandbox_timeout", "MODS2DOCS_SANDBOX_TIMEOUT")

	return &Loader{v: v}
}

// Load loads configuration from the given file path.
// If configFile is empty, it uses the default config file path.
// A missing file is not an error: defaults and environment still apply.
// Lists in the file replace the default lists; module_classes merge key by key.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	defaults, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	if err := l.v.ReadConfig(bytes.NewReader(defaults)); err != nil {
		return nil, fmt.Errorf("reading defaults: %w", err)
	}

	data, err := os.ReadFile(expandedPath)
	switch {
	case err == nil:
		if err := l.v.MergeConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", expandedPath, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.DataDir, err = ExpandPath(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("expanding data_dir: %w", err)
	}

	return &cfg, nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(expandedPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// WriteDefault writes DefaultConfig as YAML to path, creating parent
// directories. An existing file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}

	if !force {
		if _, err := os.Stat(expanded); err == nil {
			return fmt.Errorf("config file already exists: %s", expanded)
		}
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.MkdirAll(dirOf(expanded), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return os.WriteFile(expanded, data, 0o644)
}
