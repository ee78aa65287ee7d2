// Package modules defines the data model shared by the collection pipeline,
// the snapshot store, and the writers.
package modules

import "strings"

// NotAvailable is the sentinel used when a metadata field could not be
// determined.
const NotAvailable = "N/A"

// BuildVar is one EasyBuild environment variable, keyed in Record.BuildVars by
// its normalized name.
type BuildVar struct {
	// Value is the raw value assigned to the variable.
	Value string `json:"value"`

	// VarName is the original variable name, e.g. EBROOTGCC.
	VarName string `json:"var_name"`
}

// Record is the normalized content of one module-definition file.
type Record struct {
	// Whatis holds the whatis blocks in file order, trimmed.
	Whatis []string `json:"whatis"`

	// Help holds the help blocks in file order.
	Help []string `json:"help,omitempty"`

	// Dependencies holds "package/version" strings from load() calls, in file
	// order with duplicates removed.
	Dependencies []string `json:"dependencies"`

	// InstallRoot is the value of `local root = "..."`, empty when absent.
	InstallRoot string `json:"install_root,omitempty"`

	// BuildVars maps normalized EasyBuild variable names to their values.
	BuildVars map[string]BuildVar `json:"build_vars"`

	// DeclaredVersion is BuildVars["VERSION"], empty when absent.
	DeclaredVersion string `json:"declared_version,omitempty"`
}

// Description returns the first whatis line carrying a "Description:" label,
// or an empty string.
func (r *Record) Description() string {
	if r == nil {
		return ""
	}
	for _, line := range r.Whatis {
		if strings.Contains(line, "Description:") {
			return line
		}
	}
	return ""
}

// HomepageURL returns the URL from the first "URL:" whatis line.
func (r *Record) HomepageURL() string {
	if r == nil {
		return NotAvailable
	}
	for _, line := range r.Whatis {
		if !strings.HasPrefix(line, "URL:") {
			continue
		}
		if _, url, ok := strings.Cut(line, ": "); ok {
			return strings.TrimSpace(url)
		}
	}
	return NotAvailable
}

// RootVar returns the build variable holding the EasyBuild install root.
func (r *Record) RootVar() (BuildVar, bool) {
	if r == nil {
		return BuildVar{}, false
	}
	v, ok := r.BuildVars["ROOT"]
	return v, ok
}
