// Package cmdutil provides shared command utilities: it wires configuration
// into the collection pipeline, the snapshot store and the writers.
package cmdutil

import (
	"context"
	"fmt"
	"os"

	"github.com/hpcdocs/mods2docs/internal/attribution"
	"github.com/hpcdocs/mods2docs/internal/collect"
	"github.com/hpcdocs/mods2docs/internal/config"
	"github.com/hpcdocs/mods2docs/internal/diagnostics"
	"github.com/hpcdocs/mods2docs/internal/lmod"
	"github.com/hpcdocs/mods2docs/internal/metrics"
	"github.com/hpcdocs/mods2docs/internal/modules"
	"github.com/hpcdocs/mods2docs/internal/output"
	"github.com/hpcdocs/mods2docs/internal/scan"
	"github.com/hpcdocs/mods2docs/internal/snapshot"
)

// CollectOpts holds the inputs for Collect.
type CollectOpts struct {
	Config  *config.Config
	Verbose bool

	// MetricsFile overrides Config.MetricsFile when set.
	MetricsFile string

	// Lister replaces the configured listing command. Used by tests.
	Lister attribution.Lister
}

// CollectResult is the outcome of a collection run.
type CollectResult struct {
	Data    *modules.Collected
	Summary []output.ArchSummary
	Broken  []string
}

// Collect runs a full collection, saves the snapshot and appends the
// broken-symlink diagnostics to the ledger.
func Collect(ctx context.Context, opts CollectOpts) (*CollectResult, error) {
	cfg := opts.Config
	if cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}

	timeout, err := cfg.Timeout()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	ledger := diagnostics.NewLedger(cfg.LedgerPath())
	if err := ledger.Reset(); err != nil {
		return nil, err
	}

	trace, err := output.OpenFileLogger(cfg.TraceLogPath(), opts.Verbose)
	if err != nil {
		return nil, err
	}
	defer trace.Close()

	lister := opts.Lister
	if lister == nil {
		lister = attribution.NewCommandLister(cfg.ListCommand)
	}

	m := metrics.NewCollection()
	collector := collect.New(collect.Config{
		Architectures: Architectures(cfg),
		Scan: scan.Options{
			TrimSuffix: cfg.Scan.TrimSuffix,
			Extension:  cfg.Scan.Extension,
		},
		Extractor:  lmod.NewExtractor(lmod.Options{Timeout: timeout}),
		Attributor: attribution.New(lister, cfg.InstallerPrefix),
		Ledger:     ledger,
		Trace:      trace.Logger,
		Metrics:    m,
	})

	var data *modules.Collected
	err = output.RunWithSpinner(ctx, func() error {
		var runErr error
		data, runErr = collector.Run(ctx)
		return runErr
	}, output.WithTitle("Collecting module files..."))
	if err != nil {
		return nil, fmt.Errorf("collecting: %w", err)
	}

	if err := snapshot.Save(ctx, cfg.SnapshotPath(), data); err != nil {
		return nil, err
	}
	output.Debug("snapshot saved", "path", cfg.SnapshotPath(), "packages", data.Latest.Len())

	broken, err := ledger.Entries()
	if err != nil {
		return nil, err
	}
	if len(broken) > 0 {
		if err := ledger.ExplainSymlinks(ctx, lister); err != nil {
			output.Warn("could not explain broken files", "error", err)
		}
	}

	metricsFile := opts.MetricsFile
	if metricsFile == "" {
		metricsFile = cfg.MetricsFile
	}
	if metricsFile != "" {
		if err := m.WriteTextfile(metricsFile); err != nil {
			return nil, err
		}
	}

	return &CollectResult{Data: data, Summary: collector.Summary(), Broken: broken}, nil
}

// Architectures converts configured architectures for the collector.
func Architectures(cfg *config.Config) []collect.Architecture {
	out := make([]collect.Architecture, 0, len(cfg.Architectures))
	for _, a := range cfg.Architectures {
		out = append(out, collect.Architecture{Name: a.Name, ModulePath: a.ModulePath})
	}
	return out
}
