// Package render turns collected module data into documentation pages.
package render

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/hpcdocs/mods2docs/internal/modules"
)

// Writer names.
const (
	WriterReST     = "rest"
	WriterObsidian = "obsidian"
)

// Writer renders one or more output sets.
type Writer interface {
	// Setup creates the directories shared by every output set.
	Setup() error

	// WriteAll renders the pages of one output set.
	WriteAll(ctx context.Context, site Site) error

	// WriteGlobal writes files needed once per run, after every output set.
	WriteGlobal() error
}

// Site is a single output set together with the data it is rendered from.
type Site struct {
	Title     string
	Dir       string
	Collected *modules.Collected
	Ref       *modules.PackageRef
}

// Options configures a writer. Directories are relative to Root.
type Options struct {
	Root               string
	StacksDir          string
	ImportsDir         string
	CustomDir          string
	InteractiveInclude string
	SoftwareRef        string

	// CatchAll is the category that lists every package.
	CatchAll string

	// ModuleClasses maps a lower-cased category to its description.
	ModuleClasses map[string]string

	// Date is printed on the global index.
	Date string

	// OutputDirs lists every output set directory for the global index.
	OutputDirs []string

	// MainLog receives render warnings. Nil discards them.
	MainLog *log.Logger
}

// Names returns the available writer names.
func Names() []string {
	return []string{WriterReST, WriterObsidian}
}

// New returns the writer registered under name.
func New(name string, opts Options) (Writer, error) {
	switch name {
	case WriterReST:
		return NewReST(opts), nil
	case WriterObsidian:
		return NewObsidian(opts), nil
	default:
		return nil, fmt.Errorf("unknown writer %q; valid writers: %s, %s", name, WriterReST, WriterObsidian)
	}
}
