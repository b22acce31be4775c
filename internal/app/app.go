// Package app wires the scanner, picker and launcher into the planpick flow:
//
//	explicit path  -> launch
//	auto mode      -> scan -> launch newest
//	interactive    -> scan -> format -> pick -> launch (or stop on abort)
package app

import (
	"context"
	"os"
	"time"

	"github.com/kingrea/planpick/internal/config"
	"github.com/kingrea/planpick/internal/display"
	apperrors "github.com/kingrea/planpick/internal/errors"
	"github.com/kingrea/planpick/internal/launcher"
	"github.com/kingrea/planpick/internal/logging"
	"github.com/kingrea/planpick/internal/picker"
	"github.com/kingrea/planpick/internal/scanner"
)

// Request is what the user asked for on the command line.
type Request struct {
	// Path, when set, is opened directly and Interactive is ignored.
	Path        string
	Interactive bool
}

// ScanFunc lists plan files in a directory, newest first.
type ScanFunc func(dir string) ([]scanner.Entry, error)

// Option customizes App construction for tests and alternate front-ends.
type Option func(*App)

// WithSelector replaces the terminal picker.
func WithSelector(s picker.Selector) Option {
	return func(a *App) {
		if s != nil {
			a.selector = s
		}
	}
}

// WithLauncher replaces the process launcher.
func WithLauncher(l launcher.Launcher) Option {
	return func(a *App) {
		if l != nil {
			a.launcher = l
		}
	}
}

// WithScanner replaces the directory scanner.
func WithScanner(fn ScanFunc) Option {
	return func(a *App) {
		if fn != nil {
			a.scan = fn
		}
	}
}

// WithLocation sets the zone picker timestamps are shown in.
func WithLocation(loc *time.Location) Option {
	return func(a *App) {
		if loc != nil {
			a.formatter.Location = loc
		}
	}
}

// WithLogger attaches a diagnostic logger.
func WithLogger(l *logging.Logger) Option {
	return func(a *App) {
		a.logger = l
	}
}

// App runs one planpick invocation.
type App struct {
	cfg       *config.Config
	selector  picker.Selector
	launcher  launcher.Launcher
	scan      ScanFunc
	formatter display.Formatter
	logger    *logging.Logger
}

// New builds an App around cfg using the real terminal picker and process
// launcher unless overridden.
func New(cfg *config.Config, opts ...Option) *App {
	a := &App{
		cfg:       cfg,
		selector:  picker.NewTUI(picker.Options{PromptTop: cfg.Picker.PromptTop}),
		launcher:  launcher.Exec{},
		scan:      scanner.Scan,
		formatter: display.Formatter{Location: time.Local},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run executes the request to completion. An aborted picker session is a
// success that launches nothing.
func (a *App) Run(ctx context.Context, req Request) error {
	if req.Path != "" {
		if req.Interactive {
			a.logger.Printf("explicit path given, skipping interactive picker")
		}
		return a.openExplicit(req.Path)
	}

	entries, err := a.scan(a.cfg.PlansDir)
	if err != nil {
		a.logger.Printf("scan %s failed: %v", a.cfg.PlansDir, err)
		return err
	}
	a.logger.Printf("found %d plan files in %s", len(entries), a.cfg.PlansDir)
	if len(entries) == 0 {
		return apperrors.NoFiles(a.cfg.PlansDir)
	}

	if !req.Interactive {
		return a.launch(entries[0].Path)
	}
	return a.pick(ctx, entries)
}

func (a *App) openExplicit(path string) error {
	if _, err := os.Stat(path); err != nil {
		return apperrors.IO(err, "path not found: %s", path)
	}
	return a.launch(path)
}

func (a *App) pick(ctx context.Context, entries []scanner.Entry) error {
	candidates := a.formatter.Candidates(entries)
	outcome, err := a.selector.Select(ctx, candidates)
	if err != nil {
		a.logger.Printf("picker failed: %v", err)
		if apperrors.Is(err, apperrors.ErrSelector) {
			return err
		}
		return apperrors.Selector(err, "picker")
	}
	if outcome.Aborted {
		a.logger.Printf("picker aborted")
		return nil
	}
	if outcome.Index < 0 || outcome.Index >= len(entries) {
		return apperrors.Selector(nil, "picker returned index %d for %d entries", outcome.Index, len(entries))
	}
	return a.launch(entries[outcome.Index].Path)
}

func (a *App) launch(path string) error {
	a.logger.Printf("launching %q with %s", a.cfg.Command, path)
	if err := a.launcher.Launch(a.cfg.Command, path); err != nil {
		a.logger.Printf("launch failed: %v", err)
		return err
	}
	return nil
}
