package render

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/hpcdocs/mods2docs/internal/modules"
	"github.com/hpcdocs/mods2docs/internal/record"
)

var restTemplates = mustParseTemplates(restFS, "templates/rest/*.tmpl")

// Import file kinds. Each package gets one import of each kind per output set.
const (
	kindSidebar      = "sdbr"
	kindDescription  = "dscr"
	kindModuleLoad   = "ml"
	kindCustom       = "cust"
	kindInstallation = "inst"
	kindDependencies = "dpnd"
)

const (
	noteFile          = "packages_note.rst"
	noDescription     = "No description available"
	allModuleClasses  = "All module classes"
	descriptionLabel  = `Description:\s*`
	unknownDependency = "unknown"
)

var descriptionLabelPattern = regexp.MustCompile(descriptionLabel)

// ReST writes reStructuredText pages for a Sphinx site.
type ReST struct {
	opts Options
}

// NewReST returns a reStructuredText writer.
func NewReST(opts Options) *ReST {
	if opts.CatchAll == "" {
		opts.CatchAll = "All"
	}
	return &ReST{opts: opts}
}

func (w *ReST) path(parts ...string) string {
	return filepath.Join(append([]string{w.opts.Root}, parts...)...)
}

// Setup implements Writer.
func (w *ReST) Setup() error {
	for _, dir := range []string{w.opts.ImportsDir, w.opts.StacksDir, w.opts.CustomDir} {
		if err := os.MkdirAll(w.path(dir), 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	return nil
}

type refLink struct {
	Label string
	Ref   string
}

type indexData struct {
	Ref        string
	Title      string
	Class      string
	CatchAll   string
	Categories []string
	Links      []refLink
}

// WriteAll implements Writer.
func (w *ReST) WriteAll(ctx context.Context, site Site) error {
	stackDir := w.path(w.opts.StacksDir, site.Dir)
	allDir := filepath.Join(stackDir, w.opts.CatchAll)

	var categories []string
	var allLinks []refLink
	written := map[string]bool{w.opts.CatchAll: true}

	for _, page := range Pages(site, w.opts.MainLog) {
		if err := ctx.Err(); err != nil {
			return err
		}

		if !written[page.Category] {
			written[page.Category] = true
			categories = append(categories, page.Category)
			err := restTemplates.WriteFile(filepath.Join(stackDir, page.Category, "index.rst"), "category_index.rst", indexData{
				Ref:   MakeRef(site.Dir, page.Category, ""),
				Title: page.Category,
				Class: w.opts.ModuleClasses[strings.ToLower(page.Category)],
			})
			if err != nil {
				return err
			}
		}

		if err := w.writePackage(site, page); err != nil {
			return fmt.Errorf("writing %s: %w", page.Package, err)
		}
		allLinks = append(allLinks, refLink{Label: page.Package, Ref: MakeRef(page.Package, page.Category, site.Dir)})
	}

	SortFolded(categories)
	sortLinks(allLinks)

	err := restTemplates.WriteFile(filepath.Join(allDir, "index.rst"), "category_index.rst", indexData{
		Ref:   MakeRef(site.Dir, w.opts.CatchAll, ""),
		Title: w.opts.CatchAll,
		Class: allModuleClasses,
		Links: allLinks,
	})
	if err != nil {
		return err
	}

	return restTemplates.WriteFile(filepath.Join(stackDir, "index.rst"), "stack_index.rst", indexData{
		Ref:        MakeRef(site.Dir, "", ""),
		Title:      site.Title,
		CatchAll:   w.opts.CatchAll,
		Categories: categories,
	})
}

func sortLinks(links []refLink) {
	labels := make([]string, len(links))
	byLabel := make(map[string][]refLink, len(links))
	for i, l := range links {
		labels[i] = l.Label
		byLabel[l.Label] = append(byLabel[l.Label], l)
	}
	SortFolded(labels)
	for i, label := range labels {
		links[i] = byLabel[label][0]
		byLabel[label] = byLabel[label][1:]
	}
}

type packageData struct {
	Ref                string
	Package            string
	ImportsDir         string
	CustomDir          string
	InteractiveInclude string
	Sidebar            string
	Description        string
	ModuleLoad         string
	Custom             string
	Installation       string
	Dependencies       string
}

func (w *ReST) importName(pkg, kind, dir string) string {
	return MakeRef(pkg, kind, dir)
}

func (w *ReST) importPath(pkg, kind, dir string) string {
	return w.path(w.opts.ImportsDir, w.importName(pkg, kind, dir)+".rst")
}

func (w *ReST) writePackage(site Site, page Page) error {
	data := packageData{
		Ref:                MakeRef(page.Package, page.Category, site.Dir),
		Package:            page.Package,
		ImportsDir:         filepath.ToSlash(w.opts.ImportsDir),
		CustomDir:          filepath.ToSlash(w.opts.CustomDir),
		InteractiveInclude: filepath.ToSlash(w.opts.InteractiveInclude),
		Sidebar:            w.importName(page.Package, kindSidebar, site.Dir),
		Description:        w.importName(page.Package, kindDescription, site.Dir),
		ModuleLoad:         w.importName(page.Package, kindModuleLoad, site.Dir),
		Custom:             w.importName(page.Package, kindCustom, site.Dir),
		Installation:       w.importName(page.Package, kindInstallation, site.Dir),
		Dependencies:       w.importName(page.Package, kindDependencies, site.Dir),
	}
	pagePath := w.path(w.opts.StacksDir, site.Dir, page.Category, page.Package+".rst")
	if err := restTemplates.WriteFile(pagePath, "package.rst", data); err != nil {
		return err
	}

	steps := []func(Site, Page) error{
		w.writeModuleLoad,
		w.writeDescription,
		w.writeSidebar,
		w.writeInstallation,
		w.writeCustom,
		w.writeDependencies,
	}
	for _, step := range steps {
		if err := step(site, page); err != nil {
			return err
		}
	}
	return nil
}

type tab struct {
	Label string
	Lines []string
}

func (w *ReST) writeModuleLoad(site Site, page Page) error {
	var tabs []tab
	for _, arch := range site.Collected.Architectures {
		versions := ModuleVersions(site.Collected, arch, page.Package)
		if len(versions) == 0 {
			continue
		}
		lines := make([]string, len(versions))
		for i, v := range versions {
			lines[i] = page.Package + "/" + v
		}
		tabs = append(tabs, tab{Label: ArchLabel(arch), Lines: lines})
	}
	return restTemplates.WriteFile(w.importPath(page.Package, kindModuleLoad, site.Dir), "module_load.rst", struct {
		Tabs []tab
	}{tabs})
}

// FormatDescription turns a "Description:" whatis line into page text.
func FormatDescription(line string) string {
	if line == "" {
		line = noDescription
	}
	line = strings.ReplaceAll(line, "*", "")
	lines := strings.Split(line, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	text := strings.TrimSpace(strings.Join(lines, "\n")) + "\n"
	text = strings.ReplaceAll(text, "`time'", "``time``")
	return descriptionLabelPattern.ReplaceAllString(text, "")
}

func (w *ReST) writeDescription(site Site, page Page) error {
	text := FormatDescription(page.Latest.Record.Description())
	return writeFile(w.importPath(page.Package, kindDescription, site.Dir), []byte(text+"\n"))
}

type sidebarArch struct {
	Label   string
	Version string
	Date    string
}

func (w *ReST) writeSidebar(site Site, page Page) error {
	url := modules.NotAvailable
	arches := make([]sidebarArch, 0, len(site.Collected.Architectures))
	for _, arch := range site.Collected.Architectures {
		row := sidebarArch{Label: ArchLabel(arch), Version: modules.NotAvailable, Date: modules.NotAvailable}
		if entry, ok := page.Slots[arch]; ok {
			row.Version = record.DisplayVersion(entry.Record)
			row.Date = entry.CreationDate
			if url == modules.NotAvailable {
				url = entry.Record.HomepageURL()
			}
		}
		arches = append(arches, row)
	}
	return restTemplates.WriteFile(w.importPath(page.Package, kindSidebar, site.Dir), "sidebar.rst", struct {
		Package string
		Arches  []sidebarArch
		URL     string
	}{page.Package, arches, url})
}

func (w *ReST) writeInstallation(site Site, page Page) error {
	var rootVar string
	if v, ok := page.Latest.Record.RootVar(); ok {
		rootVar = v.VarName
	}
	return restTemplates.WriteFile(w.importPath(page.Package, kindInstallation, site.Dir), "installation.rst", struct {
		Package string
		RootVar string
	}{page.Package, rootVar})
}

// writeCustom creates the hand-edited include once and never overwrites it.
func (w *ReST) writeCustom(site Site, page Page) error {
	path := w.path(w.opts.CustomDir, w.importName(page.Package, kindCustom, site.Dir)+".rst")
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, os.ErrNotExist):
		return writeFile(path, nil)
	default:
		return err
	}
}

func (w *ReST) writeDependencies(site Site, page Page) error {
	deps := LatestDependencies(page.Dependencies)
	links := make([]refLink, 0, len(deps))
	for _, d := range deps {
		category, ok := site.Ref.Get(d.Package)
		if !ok {
			category = unknownDependency
		}
		links = append(links, refLink{Label: d.String(), Ref: MakeRef(d.Package, category, site.Dir)})
	}
	return restTemplates.WriteFile(w.importPath(page.Package, kindDependencies, site.Dir), "dependencies.rst", struct {
		Package string
		Links   []refLink
	}{page.Package, links})
}

// WriteGlobal implements Writer.
func (w *ReST) WriteGlobal() error {
	if w.opts.StacksDir != "" && w.opts.Date != "" && len(w.opts.OutputDirs) > 0 {
		err := restTemplates.WriteFile(w.path(w.opts.StacksDir, "index.rst"), "stacks_index.rst", struct {
			Date string
			Dirs []string
		}{w.opts.Date, w.opts.OutputDirs})
		if err != nil {
			return err
		}
	}
	if w.opts.ImportsDir != "" {
		return restTemplates.WriteFile(w.path(w.opts.ImportsDir, noteFile), "packages_note.rst", struct {
			SoftwareRef string
		}{w.opts.SoftwareRef})
	}
	return nil
}
