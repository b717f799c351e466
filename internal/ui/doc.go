// Package ui provides theme and color support for the application's user interface.
// It defines color schemes and provides ANSI escape code functions for consistent
// styling across the CLI and the terminal dashboard.
//
// This package is a shared dependency for packages that need color output,
// keeping presentation concerns out of the animation engine.
package ui
