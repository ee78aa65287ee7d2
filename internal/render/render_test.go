package render

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpcdocs/mods2docs/internal/modules"
)

// testSite builds two architectures: GCC on both, foss on icelake only, and
// a package ghost that the reference names but nothing parsed.
func testSite() Site {
	c := modules.NewCollected([]string{"icelake", "znver3"})

	add := func(arch, category, pkg, version string) {
		c.Index(arch).Add(modules.PackageInfo{
			Key:      modules.Key{Category: category, Package: pkg, Version: version},
			FilePath: "/modules/" + category + "/" + pkg + "/" + version + ".lua",
			Version:  version,
		})
	}

	gcc := &modules.Record{
		Whatis: []string{
			"Description: The *GNU* Compiler Collection",
			"URL: https://gcc.gnu.org",
		},
		BuildVars: map[string]modules.BuildVar{
			"ROOT":    {Value: "/opt/gcc/13.1.0", VarName: "EBROOTGCC"},
			"VERSION": {Value: "13.1.0", VarName: "EBVERSIONGCC"},
		},
		InstallRoot:     "/opt/gcc/13.1.0",
		DeclaredVersion: "13.1.0",
	}
	gccZen := &modules.Record{
		Whatis:       []string{"Description: GCC for Zen"},
		Dependencies: []string{"binutils/2.40"},
		InstallRoot:  "/opt/gcc/12.2.0-GCCcore-12.2.0",
	}
	foss := &modules.Record{
		Whatis: []string{"Description: GNU toolchain"},
		Dependencies: []string{
			"GCC/12.2.0",
			"GCC/13.1.0",
			"OpenMPI/4.1.4-GCC-12.2.0",
			"zlib/1.2.13",
		},
	}

	add("icelake", "Compiler", "GCC", "13.1.0")
	add("icelake", "Compiler", "GCC", "12.2.0")
	c.Latest.Set(modules.PackageKey{Category: "Compiler", Package: "GCC"}, "icelake",
		&modules.LatestEntry{Record: gcc, CreationDate: "2024-01-02", Installer: "builder"})

	add("icelake", "Toolchain", "foss", "2023a")
	c.Latest.Set(modules.PackageKey{Category: "Toolchain", Package: "foss"}, "icelake",
		&modules.LatestEntry{Record: foss, CreationDate: "2024-02-03", Installer: "builder"})

	add("znver3", "Compiler", "GCC", "12.2.0")
	c.Latest.Set(modules.PackageKey{Category: "Compiler", Package: "GCC"}, "znver3",
		&modules.LatestEntry{Record: gccZen, CreationDate: "2023-05-06", Installer: "unknown"})

	ref := modules.NewPackageRef()
	ref.Set("GCC", "Compiler")
	ref.Set("foss", "Toolchain")
	ref.Set("OpenMPI", "Mpi")
	ref.Set("ghost", "Tools")

	return Site{Title: "Test Stack", Dir: "test-stack", Collected: c, Ref: ref}
}

func TestPages(t *testing.T) {
	var buf bytes.Buffer
	warn := log.New(&buf)

	pages := Pages(testSite(), warn)

	require.Len(t, pages, 2)

	gcc := pages[0]
	assert.Equal(t, "GCC", gcc.Package)
	assert.Equal(t, "Compiler", gcc.Category)
	assert.Equal(t, "icelake", gcc.Arch, "first configured architecture wins")
	assert.Len(t, gcc.Slots, 2)
	assert.Equal(t, []string{"binutils/2.40"}, gcc.Dependencies, "dependencies are merged across architectures")

	assert.Equal(t, "foss", pages[1].Package)

	assert.Contains(t, buf.String(), "Missing latest info for Mpi | OpenMPI. Skipping.")
	assert.Contains(t, buf.String(), "Missing latest info for Tools | ghost. Skipping.")
}

func TestPages_FallsBackToLaterArchitecture(t *testing.T) {
	c := modules.NewCollected([]string{"icelake", "znver3"})
	pk := modules.PackageKey{Category: "Tools", Package: "zstd"}
	c.Latest.Set(pk, "znver3", &modules.LatestEntry{Record: &modules.Record{}})
	ref := modules.NewPackageRef()
	ref.Set("zstd", "Tools")

	pages := Pages(Site{Collected: c, Ref: ref}, nil)

	require.Len(t, pages, 1)
	assert.Equal(t, "znver3", pages[0].Arch)
}

func TestModuleVersions(t *testing.T) {
	site := testSite()

	assert.Equal(t, []string{"13.1.0", "12.2.0"}, ModuleVersions(site.Collected, "icelake", "GCC"))
	assert.Equal(t, []string{"12.2.0"}, ModuleVersions(site.Collected, "znver3", "GCC"))
	assert.Empty(t, ModuleVersions(site.Collected, "znver3", "foss"))
	assert.Empty(t, ModuleVersions(site.Collected, "sapphire", "GCC"))
}

func TestMakeRef(t *testing.T) {
	assert.Equal(t, "gcc-compiler-test-stack", MakeRef("GCC", "Compiler", "test-stack"))
	assert.Equal(t, "test-stack--", MakeRef("test-stack", "", ""))
	assert.Equal(t, "my-package-sdbr-dir", MakeRef("My Package", "sdbr", "dir"))
}

func TestSortFolded(t *testing.T) {
	s := []string{"zlib", "GCC", "binutils", "Bzip2"}
	SortFolded(s)
	assert.Equal(t, []string{"binutils", "Bzip2", "GCC", "zlib"}, s)
}

func TestNew(t *testing.T) {
	w, err := New(WriterReST, Options{})
	require.NoError(t, err)
	assert.IsType(t, &ReST{}, w)

	w, err = New(WriterObsidian, Options{})
	require.NoError(t, err)
	assert.IsType(t, &Obsidian{}, w)

	_, err = New("html", Options{})
	assert.ErrorContains(t, err, "unknown writer")
	assert.Equal(t, []string{"rest", "obsidian"}, Names())
}
