package render

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObsidian_WriteAll(t *testing.T) {
	root := t.TempDir()
	w := NewObsidian(Options{Root: root})

	require.NoError(t, w.Setup())
	require.NoError(t, w.WriteAll(context.Background(), testSite()))
	require.NoError(t, w.WriteGlobal())

	vault := filepath.Join(root, "test-stack")
	assert.Equal(t, "#compiler\n[[binutils]]\n", readFile(t, vault, "GCC.md"))
	assert.Equal(t, "#toolchain\n[[GCC]]\n[[OpenMPI]]\n[[zlib]]\n", readFile(t, vault, "foss.md"))
	assert.NoFileExists(t, filepath.Join(vault, "ghost.md"))
}

func TestObsidian_Rewrites(t *testing.T) {
	root := t.TempDir()
	w := NewObsidian(Options{Root: root})

	require.NoError(t, w.WriteAll(context.Background(), testSite()))
	require.NoError(t, w.WriteAll(context.Background(), testSite()))

	assert.Equal(t, "#compiler\n[[binutils]]\n", readFile(t, root, "test-stack", "GCC.md"))
}
