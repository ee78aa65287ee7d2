package modules

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedKey is returned when a pipe-joined key has the wrong shape.
var ErrMalformedKey = errors.New("malformed key")

const keySep = "|"

// Key identifies one module file within an architecture.
type Key struct {
	Category string
	Package  string
	Version  string
}

// String returns the portable "category|package|version" form.
func (k Key) String() string {
	return k.Category + keySep + k.Package + keySep + k.Version
}

// PackageKey drops the version.
func (k Key) PackageKey() PackageKey {
	return PackageKey{Category: k.Category, Package: k.Package}
}

// ParseKey parses the "category|package|version" form.
func ParseKey(s string) (Key, error) {
	parts := strings.Split(s, keySep)
	if len(parts) != 3 {
		return Key{}, fmt.Errorf("%w: %q", ErrMalformedKey, s)
	}
	return Key{Category: parts[0], Package: parts[1], Version: parts[2]}, nil
}

// PackageKey identifies a package within a category.
type PackageKey struct {
	Category string
	Package  string
}

// String returns the portable "category|package" form.
func (k PackageKey) String() string {
	return k.Category + keySep + k.Package
}

// ParsePackageKey parses the "category|package" form.
func ParsePackageKey(s string) (PackageKey, error) {
	parts := strings.Split(s, keySep)
	if len(parts) != 2 {
		return PackageKey{}, fmt.Errorf("%w: %q", ErrMalformedKey, s)
	}
	return PackageKey{Category: parts[0], Package: parts[1]}, nil
}
