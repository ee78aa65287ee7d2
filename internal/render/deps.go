package render

import (
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Dependency is a "package/version" load target.
type Dependency struct {
	Package string
	Version string
}

// String returns the "package/version" form.
func (d Dependency) String() string {
	if d.Version == "" {
		return d.Package
	}
	return d.Package + "/" + d.Version
}

// ParseDependency splits a load target on its first two path segments.
func ParseDependency(s string) Dependency {
	parts := strings.SplitN(s, "/", 3)
	d := Dependency{Package: parts[0]}
	if len(parts) > 1 {
		d.Version = parts[1]
	}
	return d
}

// LatestDependencies keeps the highest version of each dependency package and
// returns the survivors sorted case-insensitively.
func LatestDependencies(deps []string) []Dependency {
	latest := map[string]string{}
	var order []string
	for _, raw := range deps {
		d := ParseDependency(raw)
		cur, ok := latest[d.Package]
		if !ok {
			order = append(order, d.Package)
			latest[d.Package] = d.Version
			continue
		}
		if CompareDependencyVersions(d.Version, cur) > 0 {
			latest[d.Package] = d.Version
		}
	}

	names := make([]string, 0, len(order))
	byName := map[string]Dependency{}
	for _, pkg := range order {
		d := Dependency{Package: pkg, Version: latest[pkg]}
		names = append(names, d.String())
		byName[d.String()] = d
	}
	SortFolded(names)

	out := make([]Dependency, 0, len(names))
	for _, n := range names {
		out = append(out, byName[n])
	}
	return out
}

// CompareDependencyVersions orders two versions ascending. Semantic versions
// compare by semver precedence; anything else compares run by run, digit
// runs numerically and text runs lexically, with digits before text.
func CompareDependencyVersions(a, b string) int {
	va, errA := semver.StrictNewVersion(a)
	vb, errB := semver.StrictNewVersion(b)
	if errA == nil && errB == nil {
		return va.Compare(vb)
	}
	return compareNatural(a, b)
}

func compareNatural(a, b string) int {
	ra, rb := runs(a), runs(b)
	for i := 0; i < len(ra) && i < len(rb); i++ {
		da, db := isDigit(ra[i][0]), isDigit(rb[i][0])
		var c int
		switch {
		case da && db:
			c = compareNumeric(ra[i], rb[i])
		case da:
			c = -1
		case db:
			c = 1
		default:
			c = strings.Compare(ra[i], rb[i])
		}
		if c != 0 {
			return c
		}
	}
	switch {
	case len(ra) < len(rb):
		return -1
	case len(ra) > len(rb):
		return 1
	}
	return 0
}

// runs splits s into maximal digit and non-digit runs.
func runs(s string) []string {
	var out []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || isDigit(s[i]) != isDigit(s[start]) {
			out = append(out, s[start:i])
			start = i
		}
	}
	return out
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func compareNumeric(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
