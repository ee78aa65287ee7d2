// Package collect drives one collection run: it scans every architecture,
// extracts and normalizes the newest version of each package, attributes it,
// and folds the results into a modules.Collected snapshot.
package collect

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hpcdocs/mods2docs/internal/attribution"
	"github.com/hpcdocs/mods2docs/internal/diagnostics"
	"github.com/hpcdocs/mods2docs/internal/lmod"
	"github.com/hpcdocs/mods2docs/internal/metrics"
	"github.com/hpcdocs/mods2docs/internal/modules"
	"github.com/hpcdocs/mods2docs/internal/output"
	"github.com/hpcdocs/mods2docs/internal/record"
	"github.com/hpcdocs/mods2docs/internal/scan"
)

// Architecture is one build target and its colon-separated module path.
type Architecture struct {
	Name       string
	ModulePath string
}

// Config wires a Collector.
type Config struct {
	// Architectures are scanned in order.
	Architectures []Architecture

	// Scan controls file enumeration.
	Scan scan.Options

	Extractor  *lmod.Extractor
	Attributor *attribution.Attributor
	Ledger     *diagnostics.Ledger

	// Trace receives parsed fields and sandbox failures. Optional.
	Trace *log.Logger

	// Metrics receives run counters. Optional.
	Metrics *metrics.Collection
}

// Collector runs collection.
type Collector struct {
	cfg   Config
	trace *log.Logger
	stats map[string]*output.ArchSummary
}

// New creates a Collector.
func New(cfg Config) *Collector {
	trace := cfg.Trace
	if trace == nil {
		trace = output.DiscardLogger()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = metrics.NewCollection()
	}
	return &Collector{cfg: cfg, trace: trace, stats: make(map[string]*output.ArchSummary)}
}

// Summary returns per-architecture counts of the last Run in configuration
// order.
func (c *Collector) Summary() []output.ArchSummary {
	var out []output.ArchSummary
	for _, a := range c.cfg.Architectures {
		if s, ok := c.stats[a.Name]; ok {
			out = append(out, *s)
		}
	}
	return out
}

// Run performs a full collection. Per-file failures are recorded and skipped;
// only a scan failure or cancellation aborts the run.
func (c *Collector) Run(ctx context.Context) (*modules.Collected, error) {
	start := time.Now()
	names := make([]string, 0, len(c.cfg.Architectures))
	for _, a := range c.cfg.Architectures {
		names = append(names, a.Name)
	}
	data := modules.NewCollected(names)
	c.stats = make(map[string]*output.ArchSummary)

	for _, arch := range c.cfg.Architectures {
		if err := c.collectArch(ctx, arch, data); err != nil {
			return nil, err
		}
	}

	c.cfg.Metrics.SetPackages(data.Latest.Len())
	c.cfg.Metrics.Finish(start, time.Now())
	return data, nil
}

func (c *Collector) collectArch(ctx context.Context, arch Architecture, data *modules.Collected) error {
	logger := output.ArchLogger(arch.Name)
	stats := &output.ArchSummary{Arch: arch.Name}
	c.stats[arch.Name] = stats
	m := c.cfg.Metrics

	res, err := scan.Scan(arch.ModulePath, c.cfg.Scan)
	if err != nil {
		return fmt.Errorf("scanning %s: %w", arch.Name, err)
	}
	logger.Debug("scanned module path", "files", len(res.Files), "path", arch.ModulePath)

	for _, path := range res.Unexpected {
		stats.Unexpected++
		m.Unexpected(arch.Name)
		logger.Warn("unexpected path structure", "path", path)
		c.trace.Warn("Unexpected path structure", "path", path)
	}

	index := data.Index(arch.Name)
	for _, f := range res.Files {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		m.Scanned(arch.Name)

		pk := f.Key.PackageKey()
		if !data.Latest.Has(pk, arch.Name) {
			entry, err := c.parse(ctx, f.Path)
			if err != nil {
				c.recordFailure(logger, stats, arch.Name, f, err)
				continue
			}
			data.Latest.Set(pk, arch.Name, entry)
			stats.Parsed++
			m.Parsed(arch.Name)
			logger.Debug(output.FormatModuleLine(f.Key.Category, f.Key.Package, f.Key.Version, output.StatusParsed))
		} else if _, err := os.Stat(f.Path); err != nil {
			c.recordFailure(logger, stats, arch.Name, f, fmt.Errorf("%w: %w", lmod.ErrUnreadable, err))
			continue
		} else {
			logger.Debug(output.FormatModuleLine(f.Key.Category, f.Key.Package, f.Key.Version, output.StatusListed))
		}

		index.Add(modules.PackageInfo{Key: f.Key, FilePath: f.Path, Version: f.Key.Version})
	}
	return nil
}

func (c *Collector) recordFailure(logger *log.Logger, stats *output.ArchSummary, arch string, f scan.File, err error) {
	switch {
	case errors.Is(err, lmod.ErrSandbox):
		stats.Skipped++
		c.cfg.Metrics.SandboxFailed(arch)
		logger.Debug(output.FormatModuleLine(f.Key.Category, f.Key.Package, f.Key.Version, output.StatusSkipped))
		c.trace.Error("Error executing Lua content", "file", f.Path, "err", err)
	default:
		stats.Broken++
		c.cfg.Metrics.Broken(arch)
		logger.Warn(output.FormatModuleLine(f.Key.Category, f.Key.Package, f.Key.Version, output.StatusBroken), "path", f.Path)
		if lerr := c.cfg.Ledger.Record(f.Path); lerr != nil {
			logger.Error("recording broken file", "path", f.Path, "err", lerr)
		}
	}
}

// parse extracts, normalizes and attributes one module file.
func (c *Collector) parse(ctx context.Context, path string) (*modules.LatestEntry, error) {
	facts, err := c.cfg.Extractor.ExtractFile(ctx, path)
	if err != nil {
		return nil, err
	}
	rec := record.Normalize(facts)
	c.traceRecord(path, rec)

	return &modules.LatestEntry{
		Record:       rec,
		CreationDate: c.cfg.Attributor.CreationDate(path),
		Installer:    c.cfg.Attributor.Installer(ctx, path),
	}, nil
}

func (c *Collector) traceRecord(path string, rec *modules.Record) {
	names := make([]string, 0, len(rec.BuildVars))
	for k := range rec.BuildVars {
		names = append(names, k)
	}
	sort.Strings(names)
	vars := make([]string, 0, len(names))
	for _, k := range names {
		v := rec.BuildVars[k]
		vars = append(vars, fmt.Sprintf("%s = %s (variable: %s)", k, v.Value, v.VarName))
	}

	c.trace.Info("Parsed",
		"file", path,
		"whatis", strings.Join(rec.Whatis, "\n"),
		"loads", strings.Join(rec.Dependencies, "\n"),
		"root", rec.InstallRoot,
		"buildvars", strings.Join(vars, "\n"),
		"version", rec.DeclaredVersion,
	)
}
