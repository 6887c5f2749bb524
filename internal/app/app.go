// Package app implements the application layer for redo.
package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.trai.ch/redo/internal/core/domain"
	"go.trai.ch/redo/internal/core/ports"
	"go.trai.ch/redo/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// Options carries the per-process inputs of a command.
type Options struct {
	// WorkDir is the directory target names are relative to.
	WorkDir string
	// Environ is the base environment handed to rule scripts.
	Environ []string
	// ConfigPath overrides config discovery when set.
	ConfigPath string
	// Trace forces "sh -x" regardless of the config.
	Trace bool
	// FailFast forces stopping at the first failure regardless of the config.
	FailFast bool
	// Verbose enables debug logging.
	Verbose bool
}

// CleanOptions selects what Clean removes.
type CleanOptions struct {
	Options
	// State also removes build records and lock files.
	State bool
}

// levelSetter is implemented by loggers whose format and level can change
// after construction.
type levelSetter interface {
	SetJSON(enable bool)
	SetLevel(level domain.LogLevel)
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	scheduler    *scheduler.Scheduler
	sweeper      ports.Sweeper
	telemetry    ports.Telemetry
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	sweeper ports.Sweeper,
	telemetry ports.Telemetry,
	logger ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		scheduler:    sched,
		sweeper:      sweeper,
		telemetry:    telemetry,
		logger:       logger,
	}
}

// Redo builds every missing target in order. Existing targets are sources.
func (a *App) Redo(ctx context.Context, targets []string, opts Options) error {
	cfg, err := a.loadConfig(opts)
	if err != nil {
		return err
	}

	inv := domain.NewInvocation(opts.WorkDir, opts.Environ, cfg)
	runErr := a.scheduler.Run(ctx, inv, targets, scheduler.Options{FailFast: cfg.FailFast})
	return errors.Join(runErr, a.closeTelemetry())
}

// IfChange behaves like Redo. Without dependency tracking a target that
// exists is always considered current.
func (a *App) IfChange(ctx context.Context, targets []string, opts Options) error {
	return a.Redo(ctx, targets, opts)
}

// IfCreate records the targets and builds nothing.
func (a *App) IfCreate(ctx context.Context, targets []string, opts Options) error {
	if _, err := a.loadConfig(opts); err != nil {
		return err
	}
	if len(targets) == 0 {
		return domain.ErrNoTargetsSpecified
	}

	for _, name := range targets {
		_, vertex := a.telemetry.Record(ctx, name)
		vertex.Log(domain.LogLevelDebug, "ifcreate dependencies are not tracked")
		vertex.Cached()
		vertex.Complete(nil)
		a.logger.Debug(fmt.Sprintf("redo-ifcreate %s: nothing to do", name))
	}
	return a.closeTelemetry()
}

// Clean removes leftover scratch files below roots, which default to the
// working directory. It must not run while builds are in progress.
func (a *App) Clean(ctx context.Context, roots []string, opts CleanOptions) ([]string, error) {
	if _, err := a.loadConfig(opts.Options); err != nil {
		return nil, err
	}

	if len(roots) == 0 {
		roots = []string{"."}
	}
	abs := make([]string, 0, len(roots))
	for _, root := range roots {
		if !filepath.IsAbs(root) {
			root = filepath.Join(opts.WorkDir, root)
		}
		abs = append(abs, filepath.Clean(root))
	}

	removed, err := a.sweeper.Sweep(ctx, abs, ports.SweepOptions{Records: opts.State})
	if err != nil {
		return removed, zerr.Wrap(err, "clean failed")
	}
	a.logger.Debug(fmt.Sprintf("removed %d files", len(removed)))
	return removed, nil
}

func (a *App) loadConfig(opts Options) (*domain.Config, error) {
	var (
		cfg *domain.Config
		err error
	)
	if opts.ConfigPath != "" {
		cfg, err = a.configLoader.LoadFile(opts.ConfigPath)
	} else {
		cfg, err = a.configLoader.Load(opts.WorkDir)
	}
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	cfg.Trace = cfg.Trace || opts.Trace
	cfg.FailFast = cfg.FailFast || opts.FailFast
	if opts.Verbose {
		cfg.LogLevel = domain.LogLevelDebug
	}
	a.configureLogger(cfg)

	return cfg, nil
}

func (a *App) configureLogger(cfg *domain.Config) {
	l, ok := a.logger.(levelSetter)
	if !ok {
		return
	}
	l.SetJSON(cfg.LogFormat == domain.LogFormatJSON)
	l.SetLevel(cfg.LogLevel)
}

func (a *App) closeTelemetry() error {
	if err := a.telemetry.Close(); err != nil {
		return zerr.Wrap(err, "failed to flush telemetry")
	}
	return nil
}
