package output

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/term"
)

// IsTTY reports whether stderr is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stderr.Fd()))
}

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title string
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// RunWithSpinner runs action while a spinner is shown on stderr and returns
// the action's error. Without a terminal the action simply runs.
// The spinner stops when the action returns or ctx is done; the action itself
// is expected to observe ctx.
func RunWithSpinner(ctx context.Context, action func() error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{title: "Working..."}
	for _, opt := range opts {
		opt(cfg)
	}

	if !IsTTY() {
		return action()
	}

	errc := make(chan error, 1)
	go func() {
		errc <- action()
	}()

	var actionErr error
	finished := false
	spinnerErr := spinner.New().Title(cfg.title).Action(func() {
		select {
		case actionErr = <-errc:
			finished = true
		case <-ctx.Done():
		}
	}).Run()
	if spinnerErr != nil {
		return fmt.Errorf("spinner error: %w", spinnerErr)
	}

	if !finished {
		return ctx.Err()
	}
	return actionErr
}
