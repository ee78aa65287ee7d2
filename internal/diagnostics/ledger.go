// Package diagnostics maintains the broken-files ledger: one unreadable
// module path per line, followed after collection by listing output for each
// entry and its resolved target.
package diagnostics

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpcdocs/mods2docs/internal/attribution"
)

// ErrNoLedger is returned when the ledger file does not exist.
var ErrNoLedger = errors.New("broken files ledger not found")

const (
	linkHeader   = "\n\nls -lrtah <file not found>\n"
	targetHeader = "\nls -lrath <symlink target>\n\n"
)

// maxLinkHops bounds symlink resolution.
const maxLinkHops = 40

// Ledger is an append-only record of unreadable module files.
type Ledger struct {
	path string
}

// NewLedger returns a ledger stored at path.
func NewLedger(path string) *Ledger {
	return &Ledger{path: path}
}

// Path returns the ledger file path.
func (l *Ledger) Path() string {
	return l.path
}

// Reset truncates the ledger, creating it if needed.
func (l *Ledger) Reset() error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}
	return os.WriteFile(l.path, nil, 0o644)
}

// Record appends path as a new line.
func (l *Ledger) Record(path string) error {
	return l.append(path + "\n")
}

func (l *Ledger) append(s string) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	if _, err := f.WriteString(s); err != nil {
		f.Close()
		return fmt.Errorf("writing ledger: %w", err)
	}
	return f.Close()
}

// Entries returns the recorded paths, stopping at the first blank line so
// listing output appended by ExplainSymlinks is not returned.
func (l *Ledger) Entries() ([]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoLedger
		}
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			break
		}
		out = append(out, line)
	}
	return out, sc.Err()
}

// ExplainSymlinks appends listing output for every recorded path and for the
// final target of its symlink chain.
func (l *Ledger) ExplainSymlinks(ctx context.Context, lister attribution.Lister) error {
	entries, err := l.Entries()
	if err != nil {
		return err
	}

	if err := l.append(linkHeader); err != nil {
		return err
	}
	if err := l.append(targetHeader); err != nil {
		return err
	}

	for _, entry := range entries {
		out, _ := lister.List(ctx, entry)
		if err := l.append(out); err != nil {
			return err
		}
		if target := ResolveTarget(entry); target != "" {
			out, _ := lister.List(ctx, target)
			if err := l.append(out); err != nil {
				return err
			}
		}
	}
	return nil
}

// ResolveTarget follows the symlink chain starting at path as far as it
// exists and returns the last path reached. Unlike filepath.EvalSymlinks it
// does not fail on a dangling link.
func ResolveTarget(path string) string {
	p, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	for range maxLinkHops {
		target, err := os.Readlink(p)
		if err != nil {
			return p
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(p), target)
		}
		p = filepath.Clean(target)
	}
	return p
}
