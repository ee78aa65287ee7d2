// Package metrics records collection-run counters and writes them in the
// node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collection holds the metrics of one collection run.
type Collection struct {
	reg *prometheus.Registry

	filesScanned    *prometheus.CounterVec
	filesParsed     *prometheus.CounterVec
	filesBroken     *prometheus.CounterVec
	sandboxFailures *prometheus.CounterVec
	unexpectedPaths *prometheus.CounterVec
	packages        prometheus.Gauge
	lastRunSeconds  prometheus.Gauge
	lastRunTime     prometheus.Gauge
}

// NewCollection returns metrics registered on a fresh registry.
func NewCollection() *Collection {
	c := &Collection{
		reg: prometheus.NewRegistry(),
		filesScanned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mods2docs_files_scanned_total",
			Help: "Module files visited during collection.",
		}, []string{"arch"}),
		filesParsed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mods2docs_files_parsed_total",
			Help: "Module files extracted into records.",
		}, []string{"arch"}),
		filesBroken: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mods2docs_files_broken_total",
			Help: "Module files recorded in the broken-files ledger.",
		}, []string{"arch"}),
		sandboxFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mods2docs_sandbox_failures_total",
			Help: "Module files that failed to execute in the Lua sandbox.",
		}, []string{"arch"}),
		unexpectedPaths: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "mods2docs_unexpected_paths_total",
			Help: "Module files skipped for unexpected path structure.",
		}, []string{"arch"}),
		packages: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mods2docs_packages",
			Help: "Distinct category/package pairs with at least one parsed record.",
		}),
		lastRunSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mods2docs_collect_duration_seconds",
			Help: "Duration of the last collection run.",
		}),
		lastRunTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "mods2docs_collect_last_run_timestamp_seconds",
			Help: "Unix time at which the last collection run finished.",
		}),
	}
	c.reg.MustRegister(
		c.filesScanned,
		c.filesParsed,
		c.filesBroken,
		c.sandboxFailures,
		c.unexpectedPaths,
		c.packages,
		c.lastRunSeconds,
		c.lastRunTime,
	)
	return c
}

// Registry exposes the underlying registry.
func (c *Collection) Registry() *prometheus.Registry { return c.reg }

// Scanned counts a visited module file.
func (c *Collection) Scanned(arch string) { c.filesScanned.WithLabelValues(arch).Inc() }

// Parsed counts a module file extracted into a record.
func (c *Collection) Parsed(arch string) { c.filesParsed.WithLabelValues(arch).Inc() }

// Broken counts a module file recorded in the ledger.
func (c *Collection) Broken(arch string) { c.filesBroken.WithLabelValues(arch).Inc() }

// SandboxFailed counts a module file that failed in the sandbox.
func (c *Collection) SandboxFailed(arch string) { c.sandboxFailures.WithLabelValues(arch).Inc() }

// Unexpected counts a path skipped for its structure.
func (c *Collection) Unexpected(arch string) { c.unexpectedPaths.WithLabelValues(arch).Inc() }

// SetPackages records the number of distinct packages.
func (c *Collection) SetPackages(n int) { c.packages.Set(float64(n)) }

// Finish records the run duration and completion time.
func (c *Collection) Finish(start, end time.Time) {
	c.lastRunSeconds.Set(end.Sub(start).Seconds())
	c.lastRunTime.Set(float64(end.Unix()))
}

// WriteTextfile writes all metrics to path atomically.
func (c *Collection) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.reg)
}
