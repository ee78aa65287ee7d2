package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcdocs/mods2docs/internal/cmdtypes"
	"github.com/hpcdocs/mods2docs/internal/config"
	oerrors "github.com/hpcdocs/mods2docs/internal/errors"
)

func run(t *testing.T, c *cobra.Command, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.Execute()
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *cmdtypes.ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func TestNewConfigCmd(t *testing.T) {
	c := NewConfigCmd(&cmdtypes.GlobalConfig{})

	assert.Equal(t, "config", c.Use)
	names := []string{}
	for _, sub := range c.Commands() {
		names = append(names, sub.Name())
	}
	assert.ElementsMatch(t, []string{"init", "vet"}, names)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	gc := &cmdtypes.GlobalConfig{ConfigPath: path}

	out, err := run(t, NewConfigInitCmd(gc))
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().Architectures, cfg.Architectures)

	_, err = run(t, NewConfigInitCmd(gc))
	assert.Equal(t, cmdtypes.ExitGeneralError, exitCode(t, err))
	assert.Contains(t, err.Error(), "--force")

	_, err = run(t, NewConfigInitCmd(gc), "--force")
	assert.NoError(t, err)
}

func TestConfigVet(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, config.WriteDefault(path, false))

		out, err := run(t, NewConfigVetCmd(&cmdtypes.GlobalConfig{ConfigPath: path}))
		require.NoError(t, err)
		assert.Contains(t, out, "Config file is valid")
	})

	t.Run("invalid", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("writer: html\n"), 0o644))

		_, err := run(t, NewConfigVetCmd(&cmdtypes.GlobalConfig{ConfigPath: path}))
		assert.Equal(t, cmdtypes.ExitValidationError, exitCode(t, err))
		assert.ErrorIs(t, err, oerrors.ErrValidation)
	})

	t.Run("missing", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")

		_, err := run(t, NewConfigVetCmd(&cmdtypes.GlobalConfig{ConfigPath: path}))
		assert.Equal(t, cmdtypes.ExitNotFound, exitCode(t, err))
		assert.ErrorIs(t, err, oerrors.ErrNotFound)
	})
}
