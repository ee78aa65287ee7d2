package cmdutil

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/charmbracelet/log"

	"github.com/hpcdocs/mods2docs/internal/config"
	oerrors "github.com/hpcdocs/mods2docs/internal/errors"
	"github.com/hpcdocs/mods2docs/internal/modules"
	"github.com/hpcdocs/mods2docs/internal/output"
	"github.com/hpcdocs/mods2docs/internal/reconcile"
	"github.com/hpcdocs/mods2docs/internal/render"
	"github.com/hpcdocs/mods2docs/internal/snapshot"
)

// Recollector produces a snapshot when none exists.
type Recollector func(ctx context.Context) error

// SubprocessCollector re-runs `collect` using the current executable, so a
// crash in collection cannot take down the caller.
func SubprocessCollector(configFlag string, verbose bool) Recollector {
	return func(ctx context.Context) error {
		exe, err := os.Executable()
		if err != nil {
			return fmt.Errorf("locating executable: %w", err)
		}
		args := []string{"collect"}
		if configFlag != "" {
			args = append(args, "--config", configFlag)
		}
		if verbose {
			args = append(args, "--verbose")
		}
		c := exec.CommandContext(ctx, exe, args...)
		c.Stdout = os.Stderr
		c.Stderr = os.Stderr
		return c.Run()
	}
}

// EnsureSnapshot loads the snapshot at path, invoking recollect first when it
// is missing or was written with another schema. It fails with ErrNoData when
// there is still nothing to render.
func EnsureSnapshot(ctx context.Context, path string, recollect Recollector, mainLog *log.Logger) (*modules.Collected, error) {
	var (
		data *modules.Collected
		err  error
		msg  = "Collected data not found. Running collect..."
	)
	stale := !snapshot.Exists(path)
	if !stale {
		data, err = snapshot.Load(ctx, path)
		if errors.Is(err, snapshot.ErrSchemaMismatch) {
			stale = true
			msg = "Collected data has an incompatible schema. Running collect..."
		}
	}

	if stale {
		output.Info(msg)
		if mainLog != nil {
			mainLog.Info(msg)
		}
		if err := recollect(ctx); err != nil {
			output.Warn("collect failed", "error", err)
		}
		data, err = snapshot.Load(ctx, path)
	}

	if err != nil {
		if mainLog != nil {
			mainLog.Error("No collected data found even after running collect.", "error", err)
		}
		return nil, oerrors.NewNoDataError(path, err)
	}
	if data.Empty() {
		return nil, oerrors.NewNoDataError(path, nil)
	}
	return data, nil
}

// WriterOptions builds render options from configuration.
func WriterOptions(cfg *config.Config, now time.Time, mainLog *log.Logger) render.Options {
	dirs := make([]string, 0, len(cfg.Outputs))
	for _, o := range cfg.Outputs {
		dirs = append(dirs, o.Dir)
	}
	return render.Options{
		Root:               cfg.DataDir,
		StacksDir:          cfg.Site.StacksDir,
		ImportsDir:         cfg.Site.ImportsDir,
		CustomDir:          cfg.Site.CustomDir,
		InteractiveInclude: cfg.Site.InteractiveInclude,
		SoftwareRef:        cfg.Site.SoftwareRef,
		CatchAll:           cfg.CatchAllCategory,
		ModuleClasses:      cfg.ModuleClasses,
		Date:               now.Format(time.DateOnly),
		OutputDirs:         dirs,
		MainLog:            mainLog,
	}
}

// Generate renders every configured output set with w, then the global files.
func Generate(ctx context.Context, cfg *config.Config, data *modules.Collected, w render.Writer) error {
	if err := w.Setup(); err != nil {
		return err
	}

	ref := reconcile.PackageRef(data.Latest, cfg.CatchAllCategory)
	for cat, pkgs := range reconcile.Categories(ref) {
		output.Debug("primary category", "category", cat, "packages", len(pkgs))
	}

	for _, o := range cfg.Outputs {
		output.Info("processing output set", "title", o.Title, "dir", o.Dir)
		err := w.WriteAll(ctx, render.Site{
			Title:     o.Title,
			Dir:       o.Dir,
			Collected: data,
			Ref:       ref,
		})
		if err != nil {
			return fmt.Errorf("rendering %s: %w", o.Dir, err)
		}
	}

	return w.WriteGlobal()
}
