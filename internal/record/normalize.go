// Package record turns raw module-file facts into normalized records.
package record

import (
	"strings"

	"github.com/hpcdocs/mods2docs/internal/lmod"
	"github.com/hpcdocs/mods2docs/internal/modules"
)

const (
	// BuildPrefix marks EasyBuild environment variables.
	BuildPrefix = "EB"

	// RootMarker precedes the package suffix in the EasyBuild root variable.
	RootMarker = "EBROOT"

	// VersionKey is the normalized key of the EasyBuild version variable.
	VersionKey = "VERSION"
)

// PackageSuffix returns the text after RootMarker in the first assignment
// whose name starts with it, or "" when there is none.
func PackageSuffix(env []lmod.Assignment) string {
	for _, a := range env {
		if strings.HasPrefix(a.Name, RootMarker) {
			return strings.TrimPrefix(a.Name, RootMarker)
		}
	}
	return ""
}

// NormalizeKey strips suffix from the end of name and then BuildPrefix from
// its start.
func NormalizeKey(name, suffix string) string {
	if suffix != "" {
		name = strings.TrimSuffix(name, suffix)
	}
	return strings.TrimPrefix(name, BuildPrefix)
}

// BuildVars extracts the EasyBuild variables from env, keyed by normalized
// name.
func BuildVars(env []lmod.Assignment) map[string]modules.BuildVar {
	suffix := PackageSuffix(env)
	vars := make(map[string]modules.BuildVar)
	for _, a := range env {
		if !strings.HasPrefix(a.Name, BuildPrefix) {
			continue
		}
		key := NormalizeKey(a.Name, suffix)
		if key == "" {
			continue
		}
		vars[key] = modules.BuildVar{Value: a.Value, VarName: a.Name}
	}
	return vars
}

// Normalize builds a Record from facts. It does not modify facts.
func Normalize(facts *lmod.Facts) *modules.Record {
	rec := &modules.Record{
		Whatis:       trimAll(facts.Whatis),
		Help:         append([]string(nil), facts.Help...),
		Dependencies: dedupe(facts.Loads),
		InstallRoot:  facts.Root,
		BuildVars:    BuildVars(facts.Env),
	}
	if v, ok := rec.BuildVars[VersionKey]; ok {
		rec.DeclaredVersion = v.Value
	}
	return rec
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, strings.TrimSpace(s))
	}
	return out
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
