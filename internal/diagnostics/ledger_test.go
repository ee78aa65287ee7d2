package diagnostics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoLister struct{}

func (echoLister) List(_ context.Context, path string) (string, error) {
	return "listing " + path + "\n", nil
}

func TestLedgerRecordAndEntries(t *testing.T) {
	l := NewLedger(filepath.Join(t.TempDir(), "data", "broken-symlinks.log"))
	require.NoError(t, l.Reset())

	require.NoError(t, l.Record("/mods/bio/BLAST/2.14.0.lua"))
	require.NoError(t, l.Record("/mods/bio/BLAST/2.13.0.lua"))

	entries, err := l.Entries()
	require.NoError(t, err)
	assert.Equal(t, []string{"/mods/bio/BLAST/2.14.0.lua", "/mods/bio/BLAST/2.13.0.lua"}, entries)

	require.NoError(t, l.Reset())
	entries, err = l.Entries()
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLedgerMissing(t *testing.T) {
	l := NewLedger(filepath.Join(t.TempDir(), "nope.log"))
	_, err := l.Entries()
	assert.True(t, errors.Is(err, ErrNoLedger))
	assert.True(t, errors.Is(l.ExplainSymlinks(context.Background(), echoLister{}), ErrNoLedger))
}

func TestExplainSymlinks(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "1.0.lua")
	require.NoError(t, os.Symlink(filepath.Join(dir, "gone", "1.0.lua"), link))

	l := NewLedger(filepath.Join(dir, "broken.log"))
	require.NoError(t, l.Reset())
	require.NoError(t, l.Record(link))

	require.NoError(t, l.ExplainSymlinks(context.Background(), echoLister{}))

	data, err := os.ReadFile(l.Path())
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, link+"\n"))
	assert.Contains(t, content, "ls -lrtah <file not found>")
	assert.Contains(t, content, "ls -lrath <symlink target>")
	assert.Contains(t, content, "listing "+link+"\n")
	assert.Contains(t, content, "listing "+filepath.Join(dir, "gone", "1.0.lua")+"\n")

	entries, err := l.Entries()
	require.NoError(t, err)
	assert.Equal(t, []string{link}, entries)
}

func TestResolveTarget(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a")
	b := filepath.Join(dir, "b")
	require.NoError(t, os.Symlink("b", a))
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), b))

	assert.Equal(t, filepath.Join(dir, "missing"), ResolveTarget(a))
}
