// Package cmdtypes provides shared types for the cmd package and its sub-packages.
// It is separate from internal/cmd to avoid import cycles between internal/cmd
// and its sub-packages (internal/cmd/config).
package cmdtypes

import (
	"github.com/hpcdocs/mods2docs/internal/config"
	oerrors "github.com/hpcdocs/mods2docs/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during PersistentPreRunE.
// It is populated once at startup and passed explicitly into every sub-command
// constructor.
type GlobalConfig struct {
	// Config is the loaded configuration. Nil until PersistentPreRunE ran.
	Config *config.Config

	// ConfigPath is the resolved config file path.
	ConfigPath string

	// ConfigFlag is the raw --config flag value, forwarded to child processes.
	ConfigFlag string

	// LoadErr is kept so commands that need no config can still run.
	LoadErr error

	Verbose bool
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess          = oerrors.ExitSuccess
	ExitGeneralError     = oerrors.ExitGeneralError
	ExitValidationError  = oerrors.ExitValidationError
	ExitPermissionDenied = oerrors.ExitPermissionDenied
	ExitNotFound         = oerrors.ExitNotFound
	ExitNoData           = oerrors.ExitNoData
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError
