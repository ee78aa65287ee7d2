package attribution

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
)

// Lister produces a long-format directory listing for a path.
type Lister interface {
	List(ctx context.Context, path string) (string, error)
}

// CommandLister runs an external listing command with the path appended as
// the last argument.
type CommandLister struct {
	// Path is the command to run. If empty, "ls" is used from PATH.
	Path string

	// Args are passed before the file path.
	Args []string
}

// NewCommandLister returns a lister for argv, e.g. ["ls", "-lrath"].
func NewCommandLister(argv []string) *CommandLister {
	if len(argv) == 0 {
		return &CommandLister{Path: "ls", Args: []string{"-lrath"}}
	}
	return &CommandLister{Path: argv[0], Args: append([]string(nil), argv[1:]...)}
}

// List implements Lister. Stdout and stderr are returned together on
// failure so callers can record them.
func (c *CommandLister) List(ctx context.Context, path string) (string, error) {
	bin := c.Path
	if bin == "" {
		bin = "ls"
	}
	args := append(append([]string(nil), c.Args...), path)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return stdout.String() + stderr.String(), fmt.Errorf("running %s: %w", bin, err)
	}
	return stdout.String(), nil
}
