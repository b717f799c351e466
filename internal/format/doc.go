// Package format renders durations, progress and metric values for the
// terminal, CLI and browser surfaces.
package format
