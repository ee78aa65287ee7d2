package config

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hpcdocs/mods2docs/internal/cmdtypes"
	"github.com/hpcdocs/mods2docs/internal/config"
	oerrors "github.com/hpcdocs/mods2docs/internal/errors"
	"github.com/hpcdocs/mods2docs/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd(gc *cmdtypes.GlobalConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "vet",
		Short: "Validate the configuration file",
		Long: `Validate the configuration file against the embedded schema.

Checks the file at ~/.mods2docs/config.yaml by default.
Use --config or MODS2DOCS_CONFIG to choose a different location.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			return runConfigVet(c, gc)
		},
	}
}

func runConfigVet(c *cobra.Command, gc *cmdtypes.GlobalConfig) error {
	path, err := configPath(gc)
	if err != nil {
		return err
	}

	exists, err := config.ConfigFileExists(path)
	if err != nil {
		return fmt.Errorf("checking config file: %w", err)
	}
	if !exists {
		return &cmdtypes.ExitError{
			Code: cmdtypes.ExitNotFound,
			Err: oerrors.NewNotFoundError("config file not found", path,
				"Run 'mods2docs config init' to create one."),
		}
	}

	validator, err := config.NewValidator()
	if err != nil {
		return fmt.Errorf("creating validator: %w", err)
	}

	if err := validator.ValidateFile(path); err != nil {
		var verrs config.ValidationErrors
		if errors.As(err, &verrs) {
			for _, e := range verrs {
				output.Error("invalid field", "field", e.Field, "message", e.Message)
			}
			return &cmdtypes.ExitError{
				Code: cmdtypes.ExitValidationError,
				Err: oerrors.NewValidationError(fmt.Sprintf("%d invalid field(s)", len(verrs)), path, verrs[0].Field,
					"Compare with the defaults written by 'mods2docs config init'."),
			}
		}
		return &cmdtypes.ExitError{Code: cmdtypes.ExitGeneralError, Err: err}
	}

	fmt.Fprintln(c.OutOrStdout(), output.FormatVetCheck("Config file is valid", path))
	return nil
}
