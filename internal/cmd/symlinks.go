package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hpcdocs/mods2docs/internal/attribution"
	"github.com/hpcdocs/mods2docs/internal/cmdtypes"
	"github.com/hpcdocs/mods2docs/internal/diagnostics"
	oerrors "github.com/hpcdocs/mods2docs/internal/errors"
	"github.com/hpcdocs/mods2docs/internal/output"
)

type symlinksOptions struct {
	explain bool
}

// NewSymlinksCmd creates the symlinks command.
func NewSymlinksCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	opts := &symlinksOptions{}

	c := &cobra.Command{
		Use:   "symlinks",
		Short: "Show module files the last collection could not read",
		Long: `Show the module files recorded in the broken files ledger by the last
collection, each with the final target of its symlink chain.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runSymlinks(c, gc, opts)
		},
	}

	c.Flags().BoolVar(&opts.explain, "explain", false, "Append a listing of each file and its target to the ledger")

	return c
}

func runSymlinks(c *cobra.Command, gc *cmdtypes.GlobalConfig, opts *symlinksOptions) error {
	cfg, err := validConfig(gc)
	if err != nil {
		return err
	}

	ledger := diagnostics.NewLedger(cfg.LedgerPath())
	entries, err := ledger.Entries()
	if errors.Is(err, diagnostics.ErrNoLedger) {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitNotFound,
			Err: oerrors.NewNotFoundError("broken files ledger not found", cfg.LedgerPath(),
				"Run 'mods2docs collect' first."),
		}
	}
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		output.Println(output.FormatCheckmark("no broken module files"))
		return nil
	}

	files := make(map[string]string, len(entries))
	for _, entry := range entries {
		desc := "-> " + diagnostics.ResolveTarget(entry)
		if _, err := os.Stat(entry); err != nil {
			desc += " (missing)"
		}
		files[strings.TrimPrefix(entry, "/")] = desc
	}
	fmt.Fprint(c.OutOrStdout(), output.RenderFileTree("", files))

	if opts.explain {
		lister := attribution.NewCommandLister(cfg.ListCommand)
		if err := ledger.ExplainSymlinks(c.Context(), lister); err != nil {
			return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
		}
		output.Info("listings appended", "ledger", ledger.Path())
	}
	return nil
}
