// Package animation implements the per-value interpolation used to reveal
// dashboard figures: one Animator moves one scalar from a start value to a
// target value over a fixed wall-clock duration.
//
// Animators are pull-based. They never schedule themselves; the owner calls
// Sample with the current timestamp on every display-refresh tick, which keeps
// the interpolation math independent of any clock and lets tests drive it with
// synthetic timestamps.
package animation
