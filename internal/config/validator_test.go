package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Defaults(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(DefaultConfig()))
}

func TestValidator_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "unknown writer",
			mutate: func(c *Config) { c.Writer = "html" },
			field:  "writer",
		},
		{
			name:   "no architectures",
			mutate: func(c *Config) { c.Architectures = []Architecture{} },
			field:  "architectures",
		},
		{
			name: "duplicate architecture",
			mutate: func(c *Config) {
				c.Architectures = append(c.Architectures, Architecture{Name: "icelake", ModulePath: "/x"})
			},
			field: "architectures.2.name",
		},
		{
			name:   "extension without dot",
			mutate: func(c *Config) { c.Scan.Extension = "lua" },
			field:  "scan.extension",
		},
		{
			name:   "bad timeout",
			mutate: func(c *Config) { c.SandboxTimeout = "ten seconds" },
			field:  "sandbox_timeout",
		},
		{
			name:   "empty list command",
			mutate: func(c *Config) { c.ListCommand = []string{} },
			field:  "list_command",
		},
	}

	v, err := NewValidator()
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := v.Validate(cfg)
			require.Error(t, err)

			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			fields := make([]string, 0, len(verrs))
			for _, e := range verrs {
				fields = append(fields, e.Field)
			}
			assert.Contains(t, fields, tt.field)
		})
	}
}

func TestValidator_ValidateFile(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("writer: latex\n"), 0o644))

	err = v.ValidateFile(path)
	assert.ErrorContains(t, err, "writer")
}

func TestValidationErrors_Error(t *testing.T) {
	assert.Equal(t, "no validation errors", ValidationErrors{}.Error())

	errs := ValidationErrors{{Field: "writer", Message: "bad"}}
	assert.Contains(t, errs.Error(), "  writer: bad")
}
