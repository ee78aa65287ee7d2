package config

import (
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Paths contains standard filesystem paths for mods2docs.
type Paths struct {
	// ConfigFile is the path to the config file (~/.mods2docs/config.yaml).
	ConfigFile string

	// HomeDir is the mods2docs home directory (~/.mods2docs).
	HomeDir string
}

// DefaultPaths returns the default paths for mods2docs.
func DefaultPaths() (*Paths, error) {
	homeDir, err := homedir.Dir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".mods2docs")

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		HomeDir:    home,
	}, nil
}

// GetConfigFile returns the config file path.
// If MODS2DOCS_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("MODS2DOCS_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}

	return paths.ConfigFile, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
// ~user forms are rejected.
func ExpandPath(path string) (string, error) {
	return homedir.Expand(path)
}

func dirOf(path string) string {
	return filepath.Dir(path)
}
