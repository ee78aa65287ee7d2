package render

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/rest/*.tmpl
var restFS embed.FS

//go:embed templates/obsidian/*.tmpl
var obsidianFS embed.FS

var funcs = template.FuncMap{
	"underline": func(s, ch string) string {
		return strings.Repeat(ch, len(s))
	},
}

// templateSet is a parsed family of page templates addressed by file stem.
type templateSet struct {
	t *template.Template
}

func parseTemplates(fsys embed.FS, pattern string) (*templateSet, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("parsing templates %s: %w", pattern, err)
	}
	return &templateSet{t: t}, nil
}

func mustParseTemplates(fsys embed.FS, pattern string) *templateSet {
	ts, err := parseTemplates(fsys, pattern)
	if err != nil {
		panic(err)
	}
	return ts
}

// Render executes the named template (without the .tmpl suffix).
func (ts *templateSet) Render(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := ts.t.ExecuteTemplate(&buf, name+".tmpl", data); err != nil {
		return nil, fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

// WriteFile renders the named template into path, replacing it.
func (ts *templateSet) WriteFile(path, name string, data any) error {
	content, err := ts.Render(name, data)
	if err != nil {
		return err
	}
	return writeFile(path, content)
}

func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
