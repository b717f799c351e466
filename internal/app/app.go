// Package app wires configuration, the target board and the three surfaces
// (browser, terminal dashboard, one-shot play) into a runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/ecodash/internal/cli"
	"github.com/agbru/ecodash/internal/config"
	apperrors "github.com/agbru/ecodash/internal/errors"
	"github.com/agbru/ecodash/internal/logging"
	"github.com/agbru/ecodash/internal/metrics"
	"github.com/agbru/ecodash/internal/portfolio"
	"github.com/agbru/ecodash/internal/server"
	"github.com/agbru/ecodash/internal/tui"
	"github.com/agbru/ecodash/internal/ui"
)

const programName = "ecodash"

// Application represents the ecodash application instance.
type Application struct {
	Config    config.AppConfig
	Board     portfolio.Board
	Logger    logging.Logger
	Recorder  *metrics.Recorder
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the console logger built from the configuration.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithRecorder sets the metrics recorder shared by every surface.
func WithRecorder(r *metrics.Recorder) AppOption {
	return func(a *Application) { a.Recorder = r }
}

// New creates a new Application by parsing command-line arguments and
// loading the target board. args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	name := programName
	var cmdArgs []string
	if len(args) > 0 {
		name = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(name, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app := &Application{Config: cfg, ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Logger == nil {
		app.Logger = newLogger(cfg, errWriter)
	}
	if app.Recorder == nil {
		app.Recorder = metrics.NewRecorder()
	}

	if cfg.Completion != "" {
		return app, nil
	}

	board, err := portfolio.Load(cfg.TargetsFile)
	if err != nil {
		app.Recorder.ConfigRejected()
		fmt.Fprintln(errWriter, "Configuration error:", err)
		return nil, err
	}
	if cfg.Duration > 0 {
		board = board.WithDuration(cfg.Duration)
	}
	app.Board = board
	return app, nil
}

// newLogger returns the logger for cfg. The terminal dashboard owns the
// screen, so it gets a discarding logger; the server writes JSON lines tagged
// with its listen address; play mode logs for a human.
func newLogger(cfg config.AppConfig, w io.Writer) logging.Logger {
	switch cfg.Mode {
	case config.ModeTUI:
		return logging.Nop()
	case config.ModeServe:
		return logging.NewLogger(w, programName).With(logging.String("addr", cfg.Addr))
	}
	level := zerolog.InfoLevel
	if cfg.Verbose {
		level = zerolog.DebugLevel
	}
	return logging.NewConsoleLogger(w, programName, level)
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)
	if ui.GetCurrentTheme().Name != ui.NoColorTheme.Name {
		ui.SetTheme(a.Config.Theme)
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	switch a.Config.Mode {
	case config.ModeTUI:
		return tui.Run(ctx, a.Board, a.Config, a.Logger, a.Recorder, Version)
	case config.ModePlay:
		return a.runPlay(ctx, out)
	default:
		return a.runServe(ctx)
	}
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, programName); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runPlay animates the board once in the terminal.
func (a *Application) runPlay(ctx context.Context, out io.Writer) int {
	err := cli.Play(ctx, a.Board, a.Config, a.Logger, a.Recorder, out)
	if err != nil {
		a.Logger.Error("play failed", err)
	}
	return apperrors.ExitCodeFor(err)
}

// runServe serves the browser dashboard until ctx is cancelled.
func (a *Application) runServe(ctx context.Context) int {
	srv := server.New(a.Board, a.Config, a.Logger, a.Recorder, server.WithSecurityConfig(securityConfig(a.Config)))
	if err := srv.Serve(ctx); err != nil {
		a.Logger.Error("server stopped", err)
		return apperrors.ExitCodeFor(err)
	}
	return apperrors.ExitSuccess
}

// securityConfig applies the configured CORS origins to the default
// security settings. An empty origin list disables CORS headers.
func securityConfig(cfg config.AppConfig) server.SecurityConfig {
	sc := server.DefaultSecurityConfig()
	sc.AllowedOrigins = cfg.Origins()
	sc.EnableCORS = len(sc.AllowedOrigins) > 0
	return sc
}

// IsHelpError checks if the error is a help flag error (-help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
