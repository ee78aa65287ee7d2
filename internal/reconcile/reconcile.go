// Package reconcile resolves the primary category of every package across
// architectures.
package reconcile

import "github.com/hpcdocs/mods2docs/internal/modules"

// DefaultCatchAll is the category Lmod uses for its flat all/ directory.
const DefaultCatchAll = "All"

// PackageRef assigns each package in latest a primary category.
//
// Keys are visited in insertion order. The first category seen for a package
// is assigned. A package assigned catchAll is reassigned the first
// non-catch-all category seen later; after that it never changes.
func PackageRef(latest *modules.LatestIndex, catchAll string) *modules.PackageRef {
	ref := modules.NewPackageRef()
	for _, pk := range latest.Keys() {
		if len(latest.Arches(pk)) == 0 {
			continue
		}
		current, seen := ref.Get(pk.Package)
		switch {
		case !seen:
			ref.Set(pk.Package, pk.Category)
		case current == catchAll && pk.Category != catchAll:
			ref.Set(pk.Package, pk.Category)
		}
	}
	return ref
}

// Categories groups the packages of ref by primary category, preserving
// assignment order within each group.
func Categories(ref *modules.PackageRef) map[string][]string {
	out := make(map[string][]string)
	for _, pkg := range ref.Packages() {
		cat, _ := ref.Get(pkg)
		out[cat] = append(out[cat], pkg)
	}
	return out
}
