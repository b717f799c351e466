// Package logging provides a unified logging interface for the dashboard engine.
// It abstracts the underlying logging implementation so the animation
// coordinator, the HTTP server and the terminal UI log the same way while
// supporting multiple backends (zerolog, or none).
package logging
