// Package config parses the ecodash command line and its ECODASH_*
// environment overrides into an AppConfig.
package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/ecodash/internal/errors"
)

// EnvPrefix is prepended to every environment override key.
const EnvPrefix = "ECODASH_"

// Run modes.
const (
	ModeServe = "serve"
	ModeTUI   = "tui"
	ModePlay  = "play"
)

// Defaults.
const (
	DefaultAddr          = ":8080"
	DefaultStartDelay    = 300 * time.Millisecond
	DefaultFrameInterval = 16 * time.Millisecond
	DefaultTimeout       = 30 * time.Second
	DefaultTheme         = "green"
	DefaultCORSOrigins   = "*"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Mode selects the surface: serve, tui or play.
	Mode string
	// Addr is the HTTP listen address in serve mode.
	Addr string
	// StartDelay is the pause between mount and the first animated frame.
	StartDelay time.Duration
	// FrameInterval is the display-refresh tick spacing.
	FrameInterval time.Duration
	// Duration, when positive, replaces every target's animation duration.
	Duration time.Duration
	// TargetsFile is an optional YAML file replacing the built-in board.
	TargetsFile string
	// Timeout bounds a play-mode run.
	Timeout time.Duration
	NoColor bool
	Verbose bool
	// Theme names the terminal palette: green or light.
	Theme string
	// CORSOrigins is a comma-separated list of origins allowed to call the
	// HTTP surface; "*" allows any origin.
	CORSOrigins string
	// Completion, when set, names a shell whose completion script is printed
	// instead of running the dashboard.
	Completion string
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	switch c.Mode {
	case ModeServe, ModeTUI, ModePlay:
	default:
		return apperrors.ValidationError{Field: "mode", Message: fmt.Sprintf("must be one of serve, tui, play; got %q", c.Mode)}
	}
	if c.StartDelay < 0 {
		return apperrors.ValidationError{Field: "delay", Message: "must be non-negative"}
	}
	if c.FrameInterval <= 0 {
		return apperrors.ValidationError{Field: "frame", Message: "must be positive"}
	}
	if c.Duration < 0 {
		return apperrors.ValidationError{Field: "duration", Message: "must be non-negative"}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: "must be positive"}
	}
	switch c.Theme {
	case "green", "light":
	default:
		return apperrors.ValidationError{Field: "theme", Message: fmt.Sprintf("must be green or light; got %q", c.Theme)}
	}
	if c.Mode == ModeServe && strings.TrimSpace(c.Addr) == "" {
		return apperrors.ValidationError{Field: "addr", Message: "must not be empty in serve mode"}
	}
	return nil
}

// ParseConfig parses command-line arguments, applies environment overrides
// for flags that were not set explicitly, and validates the result.
//
// Priority: CLI flags > ECODASH_* environment variables > defaults.
func ParseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.StringVar(&config.Mode, "mode", ModeServe, "Run mode: serve (browser dashboard), tui (terminal dashboard) or play (one-shot).")
	fs.StringVar(&config.Addr, "addr", DefaultAddr, "HTTP listen address in serve mode.")
	fs.DurationVar(&config.StartDelay, "delay", DefaultStartDelay, "Pause between mount and the start of every animation.")
	fs.DurationVar(&config.FrameInterval, "frame", DefaultFrameInterval, "Display-refresh interval.")
	fs.DurationVar(&config.Duration, "duration", 0, "Override every target's animation duration (0 keeps the board's).")
	fs.StringVar(&config.TargetsFile, "targets", "", "YAML file with dashboard targets.")
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum run time in play mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&config.Verbose, "v", false, "Verbose (debug) logging.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Verbose (debug) logging.")
	fs.StringVar(&config.Theme, "theme", DefaultTheme, "Terminal color theme: green or light.")
	fs.StringVar(&config.CORSOrigins, "cors-origins", DefaultCORSOrigins, "Comma-separated origins allowed by the HTTP surface (* for any).")
	fs.StringVar(&config.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish) and exit.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	applyEnvOverrides(&config, fs)
	if fs.NArg() > 0 {
		config.Mode = fs.Arg(0)
	}
	config.Mode = strings.ToLower(strings.TrimSpace(config.Mode))

	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		return AppConfig{}, err
	}
	return config, nil
}

// Origins splits CORSOrigins into trimmed, non-empty entries.
func (c AppConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
