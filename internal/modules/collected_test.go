package modules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLatestIndexFirstWriteWins(t *testing.T) {
	idx := NewLatestIndex()
	pk := PackageKey{Category: "Compiler", Package: "GCC"}

	first := &LatestEntry{CreationDate: "2024-01-01"}
	second := &LatestEntry{CreationDate: "2023-01-01"}

	assert.True(t, idx.Set(pk, "icelake", first))
	assert.False(t, idx.Set(pk, "icelake", second))
	assert.True(t, idx.Set(pk, "znver3", second))

	got, ok := idx.Get(pk, "icelake")
	assert.True(t, ok)
	assert.Same(t, first, got)
	assert.Len(t, idx.Arches(pk), 2)
	assert.Equal(t, []PackageKey{pk}, idx.Keys())
}

func TestLatestIndexPreservesInsertionOrder(t *testing.T) {
	idx := NewLatestIndex()
	keys := []PackageKey{
		{Category: "Tools", Package: "zstd"},
		{Category: "All", Package: "bzip2"},
		{Category: "Bio", Package: "BLAST"},
	}
	for _, k := range keys {
		idx.Set(k, "icelake", &LatestEntry{})
	}
	assert.Equal(t, keys, idx.Keys())
}

func TestPackageIndex(t *testing.T) {
	idx := NewPackageIndex()
	newer := PackageInfo{Key: Key{"Compiler", "GCC", "13.2.0"}, FilePath: "/a/13.2.0.lua", Version: "13.2.0"}
	older := PackageInfo{Key: Key{"Compiler", "GCC", "12.2.0"}, FilePath: "/a/12.2.0.lua", Version: "12.2.0"}
	other := PackageInfo{Key: Key{"Lang", "Python", "3.11.3"}, FilePath: "/a/3.11.3.lua", Version: "3.11.3"}

	assert.True(t, idx.Add(newer))
	assert.True(t, idx.Add(other))
	assert.True(t, idx.Add(older))
	assert.False(t, idx.Add(newer))

	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, []PackageInfo{newer, older}, idx.Versions(PackageKey{"Compiler", "GCC"}))
}

func TestCollectedEmpty(t *testing.T) {
	var nilData *Collected
	assert.True(t, nilData.Empty())

	c := NewCollected([]string{"icelake", "znver3"})
	assert.True(t, c.Empty())
	assert.NotNil(t, c.PackageInfos["znver3"])

	c.Latest.Set(PackageKey{"Compiler", "GCC"}, "icelake", &LatestEntry{})
	assert.False(t, c.Empty())
}

func TestPackageRefOrder(t *testing.T) {
	ref := NewPackageRef()
	ref.Set("gcc", "All")
	ref.Set("python", "Lang")
	ref.Set("gcc", "Compiler")

	assert.Equal(t, []string{"gcc", "python"}, ref.Packages())
	cat, ok := ref.Get("gcc")
	assert.True(t, ok)
	assert.Equal(t, "Compiler", cat)
}

func TestRecordHelpers(t *testing.T) {
	r := &Record{
		Whatis: []string{
			"Description: GNU Compiler Collection",
			"Homepage: ignored",
			"URL: https://gcc.gnu.org/",
		},
		BuildVars: map[string]BuildVar{"ROOT": {Value: "/opt/gcc", VarName: "EBROOTGCC"}},
	}

	assert.Equal(t, "Description: GNU Compiler Collection", r.Description())
	assert.Equal(t, "https://gcc.gnu.org/", r.HomepageURL())

	root, ok := r.RootVar()
	assert.True(t, ok)
	assert.Equal(t, "EBROOTGCC", root.VarName)

	empty := &Record{}
	assert.Equal(t, "", empty.Description())
	assert.Equal(t, NotAvailable, empty.HomepageURL())
}
