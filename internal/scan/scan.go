// Package scan enumerates module-definition files below the module roots of
// an architecture and orders them newest version first.
package scan

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/hpcdocs/mods2docs/internal/modules"
)

// ErrUnexpectedPath is returned for files whose relative key does not split
// into category, package and version.
var ErrUnexpectedPath = errors.New("unexpected path structure")

// Options controls enumeration.
type Options struct {
	// TrimSuffix is removed from the end of every root, e.g. "/all".
	TrimSuffix string

	// Extension is the module file extension, e.g. ".lua".
	Extension string
}

// DefaultOptions returns the Lmod layout defaults.
func DefaultOptions() Options {
	return Options{TrimSuffix: "/all", Extension: ".lua"}
}

// File is one discovered module file.
type File struct {
	Path string
	Key  modules.Key
}

// Result is the ordered output of Scan.
type Result struct {
	// Files are the classified files, sorted newest version first.
	Files []File

	// Unexpected lists paths that matched the glob but could not be
	// classified.
	Unexpected []string
}

// Roots splits a colon-separated module path into search roots.
func Roots(modulePath, trimSuffix string) []string {
	var roots []string
	for _, r := range strings.Split(modulePath, ":") {
		r = strings.TrimSpace(r)
		if trimSuffix != "" {
			r = strings.TrimSuffix(r, trimSuffix)
		}
		if r == "" {
			continue
		}
		roots = append(roots, r)
	}
	return roots
}

// Scan enumerates root/*/*/*<ext> for every root of modulePath and returns
// the classified files in sorted order.
func Scan(modulePath string, opts Options) (*Result, error) {
	res := &Result{}
	for _, root := range Roots(modulePath, opts.TrimSuffix) {
		matches, err := filepath.Glob(filepath.Join(root, "*", "*", "*"+opts.Extension))
		if err != nil {
			return nil, fmt.Errorf("globbing %s: %w", root, err)
		}
		for _, path := range matches {
			if hidden(path) {
				continue
			}
			key, err := KeyFromPath(path, opts.Extension)
			if err != nil {
				res.Unexpected = append(res.Unexpected, path)
				continue
			}
			res.Files = append(res.Files, File{Path: path, Key: key})
		}
	}
	Sort(res.Files)
	return res, nil
}

// Sort orders files in place, stably, newest version first within each
// package.
func Sort(files []File) {
	slices.SortStableFunc(files, CompareKeys)
}

// RelativeKey returns the last three segments of path joined with "/" and
// with ext removed.
func RelativeKey(path, ext string) string {
	segs := strings.Split(filepath.ToSlash(path), "/")
	if len(segs) > 3 {
		segs = segs[len(segs)-3:]
	}
	return strings.TrimSuffix(strings.Join(segs, "/"), ext)
}

// hidden reports whether the category, package or version segment of path
// starts with a dot, as Lmod control files such as .modulerc.lua do. Shell
// globs never match those names.
func hidden(path string) bool {
	segs := strings.Split(filepath.ToSlash(path), "/")
	if len(segs) > 3 {
		segs = segs[len(segs)-3:]
	}
	for _, seg := range segs {
		if strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// KeyFromPath classifies a module file path.
func KeyFromPath(path, ext string) (modules.Key, error) {
	return SplitKey(RelativeKey(path, ext))
}

// SplitKey splits a "category/package/version" key. The category is
// capitalized.
func SplitKey(rel string) (modules.Key, error) {
	parts := strings.Split(rel, "/")
	if len(parts) != 3 {
		return modules.Key{}, fmt.Errorf("%w: %s", ErrUnexpectedPath, rel)
	}
	for _, p := range parts {
		if p == "" {
			return modules.Key{}, fmt.Errorf("%w: %s", ErrUnexpectedPath, rel)
		}
	}
	return modules.Key{
		Category: Capitalize(parts[0]),
		Package:  parts[1],
		Version:  parts[2],
	}, nil
}

// Capitalize upper-cases the first rune of s and lower-cases the rest.
func Capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
