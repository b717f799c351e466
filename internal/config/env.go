// This file contains environment variable utilities for configuration override.

package config

import (
	"flag"
	"os"
	"strings"
	"time"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// This is useful for aliased flags where either the short or long form may be used.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the ECODASH_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

func durationOverride(set func(*AppConfig, time.Duration)) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			set(c, parsed)
		}
	}
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Duration overrides
	{"START_DELAY", []string{"delay"}, durationOverride(func(c *AppConfig, d time.Duration) { c.StartDelay = d })},
	{"FRAME_INTERVAL", []string{"frame"}, durationOverride(func(c *AppConfig, d time.Duration) { c.FrameInterval = d })},
	{"DURATION", []string{"duration"}, durationOverride(func(c *AppConfig, d time.Duration) { c.Duration = d })},
	{"TIMEOUT", []string{"timeout"}, durationOverride(func(c *AppConfig, d time.Duration) { c.Timeout = d })},

	// String overrides
	{"MODE", []string{"mode"}, func(c *AppConfig, v string) { c.Mode = v }},
	{"ADDR", []string{"addr"}, func(c *AppConfig, v string) { c.Addr = v }},
	{"TARGETS", []string{"targets"}, func(c *AppConfig, v string) { c.TargetsFile = v }},
	{"THEME", []string{"theme"}, func(c *AppConfig, v string) { c.Theme = strings.ToLower(v) }},
	{"CORS_ORIGINS", []string{"cors-origins"}, func(c *AppConfig, v string) { c.CORSOrigins = v }},

	// Boolean overrides
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) {
		c.NoColor = parseBoolEnv(v, c.NoColor)
	}},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
}

// parseBoolEnv parses a boolean environment variable value.
// Accepts "true", "1", "yes" as true; "false", "0", "no" as false (case-insensitive).
// Returns defaultVal if the value is not recognized.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > Defaults.
//
// Supported environment variables (all prefixed with ECODASH_):
//   - MODE, ADDR, TARGETS, THEME, CORS_ORIGINS, START_DELAY,
//     FRAME_INTERVAL, DURATION, TIMEOUT, NO_COLOR, VERBOSE
//
// The conventional NO_COLOR variable is honoured as well.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
	if !isFlagSet(fs, "no-color") && os.Getenv("NO_COLOR") != "" {
		config.NoColor = true
	}
}
