// Package cmd provides CLI command implementations.
package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	configcmd "github.com/hpcdocs/mods2docs/internal/cmd/config"
	"github.com/hpcdocs/mods2docs/internal/cmdtypes"
	"github.com/hpcdocs/mods2docs/internal/config"
	"github.com/hpcdocs/mods2docs/internal/output"
)

// NewRootCmd creates the root command for the mods2docs CLI.
func NewRootCmd() *cobra.Command {
	gc := &cmdtypes.GlobalConfig{}
	var timestamps bool

	rootCmd := &cobra.Command{
		Use:   "mods2docs",
		Short: "Lmod module documentation generator",
		Long: `mods2docs scans Lmod module trees for several CPU architectures,
extracts what every module file declares and renders documentation sites
from the collected data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(c *cobra.Command, _ []string) error {
			return initializeGlobals(c, gc, timestamps)
		},
	}

	rootCmd.PersistentFlags().StringVar(&gc.ConfigFlag, "config", "", "Path to config file (env: MODS2DOCS_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&gc.Verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestamps, "timestamps", true, "Show timestamps in log output")

	rootCmd.AddCommand(
		NewCollectCmd(gc),
		NewGenerateCmd(gc),
		NewSymlinksCmd(gc),
		configcmd.NewConfigCmd(gc),
		NewVersionCmd(gc),
	)

	return rootCmd
}

// initializeGlobals loads configuration and sets up logging.
func initializeGlobals(c *cobra.Command, gc *cmdtypes.GlobalConfig, timestamps bool) error {
	resolved, err := config.ResolveConfigPath(config.ResolveConfigPathOptions{
		FlagValue: gc.ConfigFlag,
	})
	if err != nil {
		return err
	}
	gc.ConfigPath = resolved.ConfigPath

	// Don't fail here: config init and version work without a valid file.
	cfg, err := config.NewLoader().Load(gc.ConfigPath)
	gc.Config = cfg
	gc.LoadErr = err

	logCfg := output.LogConfig{Verbose: gc.Verbose}
	if c.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestamps)
	} else if cfg != nil && cfg.Log.Timestamps != nil {
		logCfg.Timestamps = cfg.Log.Timestamps
	}
	output.SetupLogging(logCfg)

	resolved.LogResolved()
	if err != nil {
		output.Debug("config load error", "error", err)
	}
	return nil
}

// validConfig returns the loaded configuration once it passed schema
// validation.
func validConfig(gc *cmdtypes.GlobalConfig) (*config.Config, error) {
	if gc.LoadErr != nil {
		return nil, &cmdtypes.ExitError{
			Code: cmdtypes.ExitGeneralError,
			Err:  fmt.Errorf("loading config %s: %w", gc.ConfigPath, gc.LoadErr),
		}
	}
	if gc.Config == nil {
		return nil, &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: errors.New("configuration not loaded")}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("creating validator: %w", err)
	}
	if err := validator.Validate(gc.Config); err != nil {
		return nil, &cmdtypes.ExitError{Code: cmdtypes.ExitValidationError, Err: err}
	}
	return gc.Config, nil
}
