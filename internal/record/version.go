package record

import (
	"path"
	"regexp"
	"strings"

	"github.com/hpcdocs/mods2docs/internal/modules"
)

// versionPattern keeps a leading run of non-hyphen characters plus at most one
// hyphenated run that does not start with a digit, so "1.2.3-GCC-12.2.0"
// yields "1.2.3-GCC" and "2.3-4" yields "2.3".
var versionPattern = regexp.MustCompile(`^[^-]+(?:-[^-0-9][^-]*)?`)

// FallbackVersion derives a display version from the last segment of an
// install root.
func FallbackVersion(root string) string {
	root = strings.TrimRight(root, "/")
	if root == "" {
		return modules.NotAvailable
	}
	seg := path.Base(root)
	if m := versionPattern.FindString(seg); m != "" {
		return m
	}
	return seg
}

// DisplayVersion returns the declared version of r, falling back to the
// install root.
func DisplayVersion(r *modules.Record) string {
	if r == nil {
		return modules.NotAvailable
	}
	if r.DeclaredVersion != "" {
		return r.DeclaredVersion
	}
	return FallbackVersion(r.InstallRoot)
}
