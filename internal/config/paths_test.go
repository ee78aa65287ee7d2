package config

import (
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	homeDir, err := homedir.Dir()
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no tilde", input: "/absolute/path", expected: "/absolute/path"},
		{name: "relative path", input: "relative/path", expected: "relative/path"},
		{name: "tilde only", input: "~", expected: homeDir},
		{name: "tilde with path", input: "~/.mods2docs/config.yaml", expected: filepath.Join(homeDir, ".mods2docs", "config.yaml")},
		{name: "tilde in middle", input: "/path/~/file", expected: "/path/~/file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ExpandPath(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestExpandPath_UserForm(t *testing.T) {
	_, err := ExpandPath("~someone/file")
	assert.Error(t, err)
}

func TestDefaultPaths(t *testing.T) {
	paths, err := DefaultPaths()
	require.NoError(t, err)

	assert.Equal(t, ".mods2docs", filepath.Base(paths.HomeDir))
	assert.Equal(t, filepath.Join(paths.HomeDir, "config.yaml"), paths.ConfigFile)
}

func TestGetConfigFile(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		t.Setenv("MODS2DOCS_CONFIG", "/etc/mods2docs.yaml")
		path, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, "/etc/mods2docs.yaml", path)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv("MODS2DOCS_CONFIG", "")
		path, err := GetConfigFile()
		require.NoError(t, err)
		assert.Equal(t, "config.yaml", filepath.Base(path))
	})
}
