package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareDependencyVersions(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.2.3", "1.10.0", -1},
		{"2.0.0", "1.99.99", 1},
		{"1.2.3", "1.2.3", 0},
		{"2023a", "2022b", 1},
		{"4.1.4-GCC-12.2.0", "4.1.5-GCC-12.3.0", -1},
		{"1.2", "1.2.1", -1},
		{"10", "9", 1},
		{"007", "7", 0},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareDependencyVersions(tt.a, tt.b))
		})
	}
}

func TestLatestDependencies(t *testing.T) {
	got := LatestDependencies([]string{
		"zlib/1.2.13",
		"GCC/12.2.0",
		"GCC/13.1.0",
		"binutils/2.40",
		"GCC/9.5.0",
	})

	assert.Equal(t, []Dependency{
		{Package: "binutils", Version: "2.40"},
		{Package: "GCC", Version: "13.1.0"},
		{Package: "zlib", Version: "1.2.13"},
	}, got)
}

func TestParseDependency(t *testing.T) {
	assert.Equal(t, Dependency{Package: "GCC", Version: "12.2.0"}, ParseDependency("GCC/12.2.0"))
	assert.Equal(t, Dependency{Package: "Python", Version: "3.11.3"}, ParseDependency("Python/3.11.3/extra"))

	bare := ParseDependency("git")
	assert.Equal(t, Dependency{Package: "git"}, bare)
	assert.Equal(t, "git", bare.String())
}
