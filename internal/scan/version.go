package scan

import (
	"strings"

	"golang.org/x/text/cases"
)

var folder = cases.Fold()

// Fold returns the Unicode case-folded form of s.
func Fold(s string) string {
	return folder.String(s)
}

// splitVersion splits v into alternating non-digit and digit runs. Even
// indices hold text (possibly empty), odd indices hold digit runs.
func splitVersion(v string) []string {
	parts := []string{}
	start := 0
	inDigits := false
	for i := 0; i < len(v); i++ {
		d := v[i] >= '0' && v[i] <= '9'
		if d != inDigits {
			parts = append(parts, v[start:i])
			start = i
			inDigits = d
		}
	}
	parts = append(parts, v[start:])
	if inDigits {
		parts = append(parts, "")
	}
	return parts
}

// compareDigits compares two digit runs by integer value without parsing, so
// runs of any length are supported.
func compareDigits(a, b string) int {
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

// CompareVersions orders version strings newest first. Digit runs compare
// descending by integer value and text runs ascending case-folded. When one
// version is a prefix of the other, the shorter sorts first.
func CompareVersions(a, b string) int {
	pa, pb := splitVersion(a), splitVersion(b)
	n := min(len(pa), len(pb))
	for i := 0; i < n; i++ {
		var c int
		if i%2 == 1 {
			c = -compareDigits(pa[i], pb[i])
		} else {
			c = strings.Compare(Fold(pa[i]), Fold(pb[i]))
		}
		if c != 0 {
			return c
		}
	}
	switch {
	case len(pa) < len(pb):
		return -1
	case len(pa) > len(pb):
		return 1
	}
	return 0
}

// CompareKeys orders files by folded category, folded package and then
// CompareVersions.
func CompareKeys(a, b File) int {
	if c := strings.Compare(Fold(a.Key.Category), Fold(b.Key.Category)); c != 0 {
		return c
	}
	if c := strings.Compare(Fold(a.Key.Package), Fold(b.Key.Package)); c != 0 {
		return c
	}
	return CompareVersions(a.Key.Version, b.Key.Version)
}
