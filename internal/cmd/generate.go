package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hpcdocs/mods2docs/internal/cmdtypes"
	"github.com/hpcdocs/mods2docs/internal/cmdutil"
	"github.com/hpcdocs/mods2docs/internal/output"
	"github.com/hpcdocs/mods2docs/internal/render"
)

type generateOptions struct {
	writer string

	// recollect replaces the collect subprocess. Used by tests.
	recollect cmdutil.Recollector
}

// NewGenerateCmd creates the generate command.
func NewGenerateCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &generateOptions{}

	c := &cobra.Command{
		Use:   "generate",
		Short: "Render documentation from the collected data",
		Long: `Render documentation for every configured output set from the saved
snapshot. When no snapshot exists, collect is run first in a separate
process.

Writers:
  rest      reStructuredText pages, includes and indexes
  obsidian  one markdown note per package, tagged by category`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runGenerate(c, gc, opts)
		},
	}

	c.Flags().StringVar(&opts.writer, "writer", "", fmt.Sprintf("Writer to use: %v (env: MODS2DOCS_WRITER)", render.Names()))

	return c
}

func runGenerate(c *cobra.Command, gc *cmdtypes.GlobalConfig, opts *generateOptions) error {
	cfg, err := validConfig(gc)
	if err != nil {
		return err
	}

	writerName := cfg.Writer
	if opts.writer != "" {
		writerName = opts.writer
	}

	mainLog, err := output.OpenFileLogger(cfg.MainLogPath(), gc.Verbose)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}
	defer mainLog.Close()

	w, err := render.New(writerName, cmdutil.WriterOptions(cfg, time.Now(), mainLog.Logger))
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitValidationError, Err: err}
	}

	recollect := opts.recollect
	if recollect == nil {
		recollect = cmdutil.SubprocessCollector(gc.ConfigFlag, gc.Verbose)
	}

	data, err := cmdutil.EnsureSnapshot(c.Context(), cfg.SnapshotPath(), recollect, mainLog.Logger)
	if err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitNoData, Err: err}
	}

	if err := cmdutil.Generate(c.Context(), cfg, data, w); err != nil {
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

	output.Println(output.FormatCheckmark(fmt.Sprintf("documentation written to %s", cfg.DataDir)))
	return nil
}
