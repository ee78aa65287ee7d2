package render

import (
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/hpcdocs/mods2docs/internal/modules"
	"github.com/hpcdocs/mods2docs/internal/scan"
)

// Page is a package ready to render under its primary category.
type Page struct {
	Package  string
	Category string

	// Arch names the architecture whose latest entry describes the package:
	// the first configured architecture that has one.
	Arch   string
	Latest *modules.LatestEntry

	// Slots holds the latest entry of every architecture that has one.
	Slots map[string]*modules.LatestEntry

	// Dependencies is the union of every architecture's dependencies.
	Dependencies []string
}

// Pages resolves each package of site.Ref, in order, to its latest entries.
// Packages with no latest entry under their primary category are logged to
// warn and skipped.
func Pages(site Site, warn *log.Logger) []Page {
	pages := make([]Page, 0, site.Ref.Len())
	for _, pkg := range site.Ref.Packages() {
		category, _ := site.Ref.Get(pkg)
		pk := modules.PackageKey{Category: category, Package: pkg}

		page := Page{Package: pkg, Category: category, Slots: map[string]*modules.LatestEntry{}}
		seen := map[string]bool{}
		for _, arch := range site.Collected.Architectures {
			entry, ok := site.Collected.Latest.Get(pk, arch)
			if !ok || entry == nil || entry.Record == nil {
				continue
			}
			page.Slots[arch] = entry
			if page.Latest == nil {
				page.Arch, page.Latest = arch, entry
			}
			for _, dep := range entry.Record.Dependencies {
				if !seen[dep] {
					seen[dep] = true
					page.Dependencies = append(page.Dependencies, dep)
				}
			}
		}

		if page.Latest == nil {
			if warn != nil {
				warn.Warnf("Missing latest info for %s | %s. Skipping.", category, pkg)
			}
			continue
		}
		slices.Sort(page.Dependencies)
		pages = append(pages, page)
	}
	return pages
}

// ModuleVersions returns the versions of pkg found on arch, in scan order,
// regardless of category.
func ModuleVersions(c *modules.Collected, arch, pkg string) []string {
	idx, ok := c.PackageInfos[arch]
	if !ok {
		return nil
	}
	var out []string
	seen := map[string]bool{}
	for _, k := range idx.Keys() {
		if k.Package != pkg || seen[k.Version] {
			continue
		}
		seen[k.Version] = true
		out = append(out, k.Version)
	}
	return out
}

// MakeRef builds a lower-case, hyphen-joined reference label or file stem.
func MakeRef(parts ...string) string {
	return strings.ToLower(strings.ReplaceAll(strings.Join(parts, "-"), " ", "-"))
}

// SortFolded sorts s case-insensitively, keeping the order of equal elements.
func SortFolded(s []string) {
	slices.SortStableFunc(s, func(a, b string) int {
		return strings.Compare(scan.Fold(a), scan.Fold(b))
	})
}

// ArchLabel is the display form of an architecture name.
func ArchLabel(arch string) string {
	return scan.Capitalize(arch)
}
