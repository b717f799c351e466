package tui

import "github.com/agbru/ecodash/internal/orchestration"

// SnapshotMsg carries one published dashboard snapshot.
type SnapshotMsg struct {
	Snapshot   orchestration.Snapshot
	Progress   orchestration.AggregatedProgress
	Generation uint64
}

// RunCompleteMsg is sent when a coordinator run ends.
type RunCompleteMsg struct {
	Err        error
	Generation uint64
}

// ContextCancelledMsg is sent when the parent context ends.
type ContextCancelledMsg struct {
	Err error
}
