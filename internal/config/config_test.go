package config

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/ecodash/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	cfg, err := ParseConfig("ecodash", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	want := AppConfig{
		Mode:          ModeServe,
		Addr:          DefaultAddr,
		StartDelay:    DefaultStartDelay,
		FrameInterval: DefaultFrameInterval,
		Timeout:       DefaultTimeout,
		Theme:         DefaultTheme,
		CORSOrigins:   DefaultCORSOrigins,
	}
	if cfg != want {
		t.Errorf("ParseConfig() = %+v, want %+v", cfg, want)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	cfg, err := ParseConfig("ecodash", []string{
		"-mode", "TUI", "-delay", "0s", "-frame", "33ms", "-duration", "2s",
		"-targets", "board.yaml", "-no-color", "-v",
	}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Mode != ModeTUI {
		t.Errorf("Mode = %q, want tui", cfg.Mode)
	}
	if cfg.StartDelay != 0 || cfg.FrameInterval != 33*time.Millisecond || cfg.Duration != 2*time.Second {
		t.Errorf("durations = %v/%v/%v", cfg.StartDelay, cfg.FrameInterval, cfg.Duration)
	}
	if cfg.TargetsFile != "board.yaml" || !cfg.NoColor || !cfg.Verbose {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestParseConfig_PositionalMode(t *testing.T) {
	t.Setenv(EnvPrefix+"MODE", "tui")
	cfg, err := ParseConfig("ecodash", []string{"play"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Mode != ModePlay {
		t.Errorf("Mode = %q, want play", cfg.Mode)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"MODE", "play")
	t.Setenv(EnvPrefix+"ADDR", ":9999")
	t.Setenv(EnvPrefix+"START_DELAY", "500ms")
	t.Setenv(EnvPrefix+"FRAME_INTERVAL", "not-a-duration")
	t.Setenv(EnvPrefix+"VERBOSE", "yes")
	t.Setenv(EnvPrefix+"TARGETS", "/etc/ecodash.yaml")
	t.Setenv(EnvPrefix+"THEME", "LIGHT")
	t.Setenv(EnvPrefix+"CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := ParseConfig("ecodash", []string{"-addr", ":7070"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Mode != ModePlay {
		t.Errorf("Mode = %q, want play from env", cfg.Mode)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("Addr = %q, flag must win over env", cfg.Addr)
	}
	if cfg.StartDelay != 500*time.Millisecond {
		t.Errorf("StartDelay = %v, want 500ms", cfg.StartDelay)
	}
	if cfg.FrameInterval != DefaultFrameInterval {
		t.Errorf("FrameInterval = %v, invalid env must keep default", cfg.FrameInterval)
	}
	if !cfg.Verbose || cfg.TargetsFile != "/etc/ecodash.yaml" {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, want light from env", cfg.Theme)
	}
	if got := cfg.Origins(); len(got) != 2 || got[0] != "https://a.example" || got[1] != "https://b.example" {
		t.Errorf("Origins() = %q, want both env origins trimmed", got)
	}
}

func TestAppConfig_Origins(t *testing.T) {
	t.Parallel()
	tests := []struct {
		raw  string
		want []string
	}{
		{"*", []string{"*"}},
		{"", nil},
		{" , ", nil},
		{"https://x.example,,https://y.example ", []string{"https://x.example", "https://y.example"}},
	}
	for _, tt := range tests {
		got := AppConfig{CORSOrigins: tt.raw}.Origins()
		if len(got) != len(tt.want) {
			t.Errorf("Origins(%q) = %q, want %q", tt.raw, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("Origins(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseConfig_NoColorConvention(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	cfg, err := ParseConfig("ecodash", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if !cfg.NoColor {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"unknown mode", []string{"-mode", "gui"}, "mode"},
		{"negative delay", []string{"-delay", "-1s"}, "delay"},
		{"zero frame", []string{"-frame", "0s"}, "frame"},
		{"negative duration", []string{"-duration", "-5ms"}, "duration"},
		{"zero timeout", []string{"-timeout", "0s"}, "timeout"},
		{"empty addr", []string{"-addr", " "}, "addr"},
		{"unknown theme", []string{"-theme", "purple"}, "theme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := ParseConfig("ecodash", tt.args, &buf)

			var valErr apperrors.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if valErr.Field != tt.field {
				t.Errorf("Field = %q, want %q", valErr.Field, tt.field)
			}
			if buf.Len() == 0 {
				t.Error("configuration error should be reported on the error writer")
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := ParseConfig("ecodash", []string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("error = %v, want flag.ErrHelp", err)
	}
}

func TestParseBoolEnv(t *testing.T) {
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"true", false, true},
		{"YES", false, true},
		{"1", false, true},
		{"false", true, false},
		{"No", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}
