package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	assert.NotNil(t, loader)
	assert.NotNil(t, loader.v)
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")

		content := `
data_dir: /srv/mods2docs
writer: obsidian
architectures:
  - name: skylake
    modulepath: /opt/apps/skylake/modules/all
scan:
  trim_suffix: /all
  extension: .lua
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "/srv/mods2docs", cfg.DataDir)
		assert.Equal(t, "obsidian", cfg.Writer)
		require.Len(t, cfg.Architectures, 1, "file lists replace default lists")
		assert.Equal(t, "skylake", cfg.Architectures[0].Name)
		assert.Equal(t, "sa_", cfg.InstallerPrefix, "unset keys keep defaults")
	})

	t.Run("returns defaults for missing file", func(t *testing.T) {
		tmpDir := t.TempDir()

		cfg, err := NewLoader().Load(filepath.Join(tmpDir, "nonexistent.yaml"))

		require.NoError(t, err)
		assert.Equal(t, DefaultConfig().Architectures, cfg.Architectures)
		assert.Equal(t, "collected-data.db", cfg.SnapshotFile)
	})

	t.Run("module classes merge with defaults", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		content := `
module_classes:
  weather: Weather and climate models
`
		require.NoError(t, os.WriteFile(configFile, []byte(content), 0o644))

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "Weather and climate models", cfg.ModuleClass("Weather"))
		assert.Equal(t, "Compilers", cfg.ModuleClass("Compiler"))
	})

	t.Run("env vars override file values", func(t *testing.T) {
		t.Setenv("MODS2DOCS_WRITER", "obsidian")
		t.Setenv("MODS2DOCS_SCAN_EXTENSION", ".modulefile")

		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("writer: rest\n"), 0o644))

		cfg, err := NewLoader().Load(configFile)

		require.NoError(t, err)
		assert.Equal(t, "obsidian", cfg.Writer)
		assert.Equal(t, ".modulefile", cfg.Scan.Extension)
	})

	t.Run("malformed file is an error", func(t *testing.T) {
		tmpDir := t.TempDir()
		configFile := filepath.Join(tmpDir, "config.yaml")
		require.NoError(t, os.WriteFile(configFile, []byte("writer: [unclosed\n"), 0o644))

		_, err := NewLoader().Load(configFile)
		assert.Error(t, err)
	})
}

func TestConfigFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	present := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(present, []byte(""), 0o644))

	ok, err := ConfigFileExists(present)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ConfigFileExists(filepath.Join(tmpDir, "absent.yaml"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestWriteDefault(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nested", "config.yaml")

	require.NoError(t, WriteDefault(path, false))

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Outputs, cfg.Outputs)
	assert.Equal(t, DefaultConfig().Site, cfg.Site)

	err = WriteDefault(path, false)
	assert.ErrorContains(t, err, "already exists")

	assert.NoError(t, WriteDefault(path, true))
}
