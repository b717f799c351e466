// Package orchestration coordinates the animated reveal of a dashboard: a
// Coordinator owns one animation.Animator per named target, starts them all
// from one shared anchor after a fixed mount delay, and aggregates their
// values into snapshots. Run drives a Coordinator from a display-refresh
// Ticker and hands snapshots to a Publisher, decoupling the engine from the
// rendering layer.
package orchestration
