package cmdutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hpcdocs/mods2docs/internal/config"
	"github.com/hpcdocs/mods2docs/internal/testutil"
)

type fakeLister struct{}

func (fakeLister) List(_ context.Context, path string) (string, error) {
	return "lrwxrwxrwx 1 sa_builder hpc 10 Jan 1 00:00 " + path + "\n", nil
}

const gccModule = `help([==[The GNU Compiler Collection]==])
whatis([==[Description: The GNU Compiler Collection]==])
whatis([==[URL: https://gcc.gnu.org]==])
local root = "/opt/apps/gcc/12.2.0"
setenv("EBROOTGCC", root)
setenv("EBVERSIONGCC", "12.2.0")
load("binutils/2.39")
`

const zstdModule = `whatis([==[Description: Zstandard compression]==])
setenv("EBROOTZSTD", "/opt/apps/zstd/1.5.5")
`

// testConfig lays out two architectures whose module paths end in /all, as
// Lmod trees do, and returns a config pointing at them.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()

	icelake := filepath.Join(dir, "icelake")
	znver3 := filepath.Join(dir, "znver3")
	for _, root := range []string{icelake, znver3} {
		testutil.WriteFile(t, root, "all/GCC/12.2.0.lua", gccModule)
		testutil.WriteFile(t, root, "compiler/GCC/12.2.0.lua", gccModule)
	}
	testutil.WriteFile(t, icelake, "tools/zstd/1.5.5.lua", zstdModule)
	testutil.Symlink(t, icelake, "tools/broken/1.0.lua", filepath.Join(dir, "gone.lua"))

	cfg := config.DefaultConfig()
	cfg.DataDir = filepath.Join(dir, "data")
	cfg.Architectures = []config.Architecture{
		{Name: "icelake", ModulePath: icelake + "/all"},
		{Name: "znver3", ModulePath: znver3 + "/all"},
	}
	return cfg
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
