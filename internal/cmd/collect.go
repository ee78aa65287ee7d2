package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hpcdocs/mods2docs/internal/cmdtypes"
	"github.com/hpcdocs/mods2docs/internal/cmdutil"
	"github.com/hpcdocs/mods2docs/internal/output"
)

type collectOptions struct {
	metricsFile string
}

// NewCollectCmd creates the collect command.
func NewCollectCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &collectOptions{}

	c := &cobra.Command{
		Use:   "collect",
		Short: "Scan module trees and save the collected data",
		Long: `Scan the module tree of every configured architecture, extract what
each module file declares and save the result as a snapshot in the data
directory.

Unreadable module files are recorded in the broken files ledger, followed
by a listing of each file and its symlink target.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runCollect(c, gc, opts)
		},
	}

	c.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "Write a Prometheus textfile with scan counters (env: MODS2DOCS_METRICS_FILE)")

	return c
}

func runCollect(c *cobra.Command, gc *cmdtypes.GlobalConfig, opts *collectOptions) error {
	cfg, err := validConfig(gc)
	if err != nil {
		return err
	}

	result, err := cmdutil.Collect(c.Context(), cmdutil.CollectOpts{
		Config:      cfg,
		Verbose:     gc.Verbose,
		MetricsFile: opts.metricsFile,
	})
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

	fmt.Fprintln(c.OutOrStdout(), output.RenderCollectSummary(result.Summary))

	if n := len(result.Broken); n > 0 {
		output.Warn("some module files could not be read",
			"count", n,
			"ledger", cfg.LedgerPath(),
		)
	}
	output.Info("collected data saved", "path", cfg.SnapshotPath())
	return nil
}
