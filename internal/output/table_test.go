package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderCollectSummary(t *testing.T) {
	out := RenderCollectSummary([]ArchSummary{
		{Arch: "icelake", Scanned: 10, Parsed: 4, Broken: 1},
		{Arch: "znver3", Scanned: 8, Parsed: 3, Skipped: 2},
	})

	assert.Contains(t, out, "ARCH")
	assert.Contains(t, out, "icelake")
	assert.Contains(t, out, "znver3")
	assert.Contains(t, out, "10")
}

func TestRenderFileTree(t *testing.T) {
	out := stripAnsi(RenderFileTree("site", map[string]string{
		"stacks/index.rst":            "stack index",
		"stacks/el9/compiler/gcc.rst": "",
		"note.rst":                    "note",
	}))

	assert.Contains(t, out, "site/")
	assert.Contains(t, out, "stacks/")
	assert.Contains(t, out, "gcc.rst")
	assert.Contains(t, out, "stack index")
	// Directories sort before files.
	assert.Less(t, strings.Index(out, "stacks/"), strings.Index(out, "note.rst"))
}
