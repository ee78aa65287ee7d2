package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var obsidianTemplates = mustParseTemplates(obsidianFS, "templates/obsidian/*.tmpl")

// Obsidian writes one markdown note per package into a vault directory, tagged
// with the package category and linked to its dependencies.
type Obsidian struct {
	opts Options
}

// NewObsidian returns an Obsidian vault writer.
func NewObsidian(opts Options) *Obsidian {
	return &Obsidian{opts: opts}
}

// Setup implements Writer.
func (w *Obsidian) Setup() error {
	if err := os.MkdirAll(w.opts.Root, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", w.opts.Root, err)
	}
	return nil
}

// WriteAll implements Writer.
func (w *Obsidian) WriteAll(ctx context.Context, site Site) error {
	vault := filepath.Join(w.opts.Root, site.Dir)
	for _, page := range Pages(site, w.opts.MainLog) {
		if err := ctx.Err(); err != nil {
			return err
		}

		seen := map[string]bool{}
		var links []string
		for _, dep := range page.Dependencies {
			name := ParseDependency(dep).Package
			if !seen[name] {
				seen[name] = true
				links = append(links, name)
			}
		}
		SortFolded(links)

		err := obsidianTemplates.WriteFile(filepath.Join(vault, page.Package+".md"), "note.md", struct {
			Tag   string
			Links []string
		}{strings.ToLower(page.Category), links})
		if err != nil {
			return fmt.Errorf("writing %s: %w", page.Package, err)
		}
	}
	return nil
}

// WriteGlobal implements Writer. A vault needs no global files.
func (w *Obsidian) WriteGlobal() error {
	return nil
}
