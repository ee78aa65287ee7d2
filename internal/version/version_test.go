package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	info := Get()

	require.NotEmpty(t, info.GoVersion, "GoVersion should be populated")
	assert.Equal(t, "Lua 5.1", info.LuaVersion)
	assert.Equal(t, Version, info.Version)
}

func TestInfoString(t *testing.T) {
	info := Info{
		Version:    "v1.0.0",
		GitCommit:  "abc123",
		BuildDate:  "2026-01-29",
		GoVersion:  "go1.25",
		LuaVersion: "Lua 5.1",
	}

	str := info.String()

	assert.Contains(t, str, "v1.0.0")
	assert.Contains(t, str, "2026-01-29/abc123")
	assert.Contains(t, str, "go1.25")
	assert.Contains(t, str, "Lua 5.1")
}
