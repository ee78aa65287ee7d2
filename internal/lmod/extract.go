package lmod

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"
	"unicode/utf8"
)

var (
	// ErrUnreadable is returned when a module file cannot be read or is not
	// valid UTF-8.
	ErrUnreadable = errors.New("unreadable module file")

	// ErrSandbox is returned when the module file fails to load or run in the
	// sandbox.
	ErrSandbox = errors.New("sandbox execution failed")
)

// Options configures an Extractor.
type Options struct {
	// Timeout bounds sandbox execution of a single file. Zero means no limit.
	Timeout time.Duration

	// Getenv backs os.getenv inside the sandbox. Defaults to os.Getenv.
	Getenv func(string) string
}

// Extractor reads module files and returns their raw facts.
type Extractor struct {
	opts Options
}

// NewExtractor creates an Extractor.
func NewExtractor(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

// ExtractFile reads and extracts path.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (*Facts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: %s is not valid UTF-8", ErrUnreadable, path)
	}
	return e.Extract(ctx, path, string(data))
}

// Extract runs src through the sandbox and then the regular-expression pass.
// Literal setenv pairs take precedence over values computed in the sandbox.
func (e *Extractor) Extract(ctx context.Context, path, src string) (*Facts, error) {
	if e.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.opts.Timeout)
		defer cancel()
	}

	env, err := execute(ctx, path, src, e.opts.Getenv)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrSandbox, path, err)
	}

	facts := &Facts{Path: path}
	scanStatic(src, facts, env)
	facts.Env = env.assignments()
	return facts, nil
}
