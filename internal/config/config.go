// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Architecture is one hardware target and the Lmod module path scanned for it.
type Architecture struct {
	// Name identifies the architecture in logs, snapshots and rendered pages.
	Name string `mapstructure:"name" yaml:"name" json:"name"`

	// ModulePath is a colon-separated list of module roots, scanned in order.
	ModulePath string `mapstructure:"modulepath" yaml:"modulepath" json:"modulepath"`
}

// ScanConfig controls how module roots are enumerated.
type ScanConfig struct {
	// TrimSuffix is removed from each root before enumeration.
	// Default: "/all"
	TrimSuffix string `mapstructure:"trim_suffix" yaml:"trim_suffix" json:"trim_suffix"`

	// Extension selects module-definition files.
	// Default: ".lua"
	Extension string `mapstructure:"extension" yaml:"extension" json:"extension"`
}

// OutputSet is one rendered documentation stack.
type OutputSet struct {
	Title string `mapstructure:"title" yaml:"title" json:"title"`
	Dir   string `mapstructure:"dir" yaml:"dir" json:"dir"`
}

// SiteConfig locates the documentation tree the writers populate.
// All directories are relative to the data directory.
type SiteConfig struct {
	StacksDir  string `mapstructure:"stacks_dir" yaml:"stacks_dir" json:"stacks_dir"`
	ImportsDir string `mapstructure:"imports_dir" yaml:"imports_dir" json:"imports_dir"`
	CustomDir  string `mapstructure:"custom_dir" yaml:"custom_dir" json:"custom_dir"`

	// InteractiveInclude is the site-relative page included at the top of
	// every package page.
	InteractiveInclude string `mapstructure:"interactive_include" yaml:"interactive_include" json:"interactive_include"`

	// SoftwareRef is the reference target named by the autogenerated note.
	SoftwareRef string `mapstructure:"software_ref" yaml:"software_ref" json:"software_ref"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true when verbose.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty" json:"timestamps,omitempty"`
}

// Config represents the mods2docs configuration.
// Loaded from ~/.mods2docs/config.yaml, validated against the embedded CUE schema.
type Config struct {
	// DataDir holds the snapshot, the logs and the generated site.
	// Env: MODS2DOCS_DATA_DIR, Default: "data"
	DataDir string `mapstructure:"data_dir" yaml:"data_dir" json:"data_dir"`

	SnapshotFile string `mapstructure:"snapshot_file" yaml:"snapshot_file" json:"snapshot_file"`
	LedgerFile   string `mapstructure:"ledger_file" yaml:"ledger_file" json:"ledger_file"`
	TraceLogFile string `mapstructure:"trace_log_file" yaml:"trace_log_file" json:"trace_log_file"`
	MainLogFile  string `mapstructure:"main_log_file" yaml:"main_log_file" json:"main_log_file"`

	// MetricsFile is an optional Prometheus textfile written after collection.
	// Env: MODS2DOCS_METRICS_FILE
	MetricsFile string `mapstructure:"metrics_file" yaml:"metrics_file,omitempty" json:"metrics_file,omitempty"`

	// Architectures are scanned in list order. The first one with data for a
	// package supplies its description and dependencies.
	Architectures []Architecture `mapstructure:"architectures" yaml:"architectures" json:"architectures"`

	Scan ScanConfig `mapstructure:"scan" yaml:"scan" json:"scan"`

	// InstallerPrefix marks service-account owners in directory listings.
	InstallerPrefix string `mapstructure:"installer_prefix" yaml:"installer_prefix" json:"installer_prefix"`

	// CatchAllCategory is the category that yields to any other category.
	CatchAllCategory string `mapstructure:"catch_all_category" yaml:"catch_all_category" json:"catch_all_category"`

	// SandboxTimeout bounds the execution of a single module file.
	SandboxTimeout string `mapstructure:"sandbox_timeout" yaml:"sandbox_timeout" json:"sandbox_timeout"`

	// ListCommand is the argv prefix used to list a file's owner.
	ListCommand []string `mapstructure:"list_command" yaml:"list_command" json:"list_command"`

	// Writer selects the renderer: "rest" or "obsidian".
	// Env: MODS2DOCS_WRITER
	Writer string `mapstructure:"writer" yaml:"writer" json:"writer"`

	Outputs []OutputSet `mapstructure:"outputs" yaml:"outputs" json:"outputs"`

	Site SiteConfig `mapstructure:"site" yaml:"site" json:"site"`

	// ModuleClasses maps a lower-cased category to its description.
	ModuleClasses map[string]string `mapstructure:"module_classes" yaml:"module_classes" json:"module_classes"`

	Log LogConfig `mapstructure:"log" yaml:"log,omitempty" json:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `mods2docs config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		DataDir:      "data",
		SnapshotFile: "collected-data.db",
		LedgerFile:   "broken-symlinks.log",
		TraceLogFile: "log-collect-data.log",
		MainLogFile:  "main-update-packages.log",
		Architectures: []Architecture{
			{
				Name:       "icelake",
				ModulePath: "/opt/apps/tuos/el9/modules/live/all:/opt/apps/tuos/common/modules/easybuild-only/all:/opt/apps/tuos/common/modules/live/all",
			},
			{
				Name:       "znver3",
				ModulePath: "/opt/apps/tuos/el9-znver3/modules/live/all:/opt/apps/tuos/common/modules/easybuild-only/all:/opt/apps/tuos/common/modules/live/all",
			},
		},
		Scan: ScanConfig{
			TrimSuffix: "/all",
			Extension:  ".lua",
		},
		InstallerPrefix:  "sa_",
		CatchAllCategory: "All",
		SandboxTimeout:   "10s",
		ListCommand:      []string{"ls", "-lrath"},
		Writer:           "rest",
		Outputs: []OutputSet{
			{Title: "Icelake and Znver (OS: Rocky 9) Package Versions", Dir: "el9-icelake-znver-stanage"},
		},
		Site: SiteConfig{
			StacksDir:          "stanage/software/stubs",
			ImportsDir:         "referenceinfo/imports/stanage/packages",
			CustomDir:          "referenceinfo/imports/stanage/packages/custom",
			InteractiveInclude: "referenceinfo/imports/scheduler/SLURM/common_commands/srun_start_interactive_session_import_stanage.rst",
			SoftwareRef:        "stanage-software",
		},
		ModuleClasses: DefaultModuleClasses(),
	}
}

// DefaultModuleClasses returns the EasyBuild module class descriptions.
func DefaultModuleClasses() map[string]string {
	return map[string]string{
		"base":      "Default module class",
		"ai":        "Artificial Intelligence (incl. Machine Learning)",
		"astro":     "Astronomy, Astrophysics and Cosmology",
		"bio":       "Bioinformatics, biology and biomedical",
		"cae":       "Computer Aided Engineering (incl. CFD)",
		"chem":      "Chemistry, Computational Chemistry and Quantum Chemistry",
		"compiler":  "Compilers",
		"data":      "Data management & processing tools",
		"debugger":  "Debuggers",
		"devel":     "Development tools",
		"geo":       "Earth Sciences",
		"ide":       "Integrated Development Environments (e.g. editors)",
		"lang":      "Languages and programming aids",
		"lib":       "General purpose libraries",
		"math":      "High-level mathematical software",
		"mpi":       "MPI stacks",
		"numlib":    "Numerical Libraries",
		"perf":      "Performance tools",
		"quantum":   "Quantum Computing",
		"phys":      "Physics and physical systems simulations",
		"system":    "System utilities (e.g. highly depending on system OS and hardware)",
		"toolchain": "EasyBuild toolchains",
		"tools":     "General purpose tools",
		"vis":       "Visualisation, plotting, documentation and typesetting",
	}
}

// DataPath joins name onto the data directory.
func (c *Config) DataPath(name string) string {
	return filepath.Join(c.DataDir, name)
}

func (c *Config) SnapshotPath() string { return c.DataPath(c.SnapshotFile) }

func (c *Config) LedgerPath() string { return c.DataPath(c.LedgerFile) }

func (c *Config) TraceLogPath() string { return c.DataPath(c.TraceLogFile) }

func (c *Config) MainLogPath() string { return c.DataPath(c.MainLogFile) }

// Timeout parses SandboxTimeout. An empty value means no limit.
func (c *Config) Timeout() (time.Duration, error) {
	if c.SandboxTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.SandboxTimeout)
	if err != nil {
		return 0, fmt.Errorf("parsing sandbox_timeout %q: %w", c.SandboxTimeout, err)
	}
	return d, nil
}

// ArchitectureNames returns the configured architecture names in order.
func (c *Config) ArchitectureNames() []string {
	names := make([]string, 0, len(c.Architectures))
	for _, a := range c.Architectures {
		names = append(names, a.Name)
	}
	return names
}

// ModuleClass returns the description for category, or "" when unknown.
func (c *Config) ModuleClass(category string) string {
	return c.ModuleClasses[strings.ToLower(category)]
}
