package tui

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/ecodash/internal/orchestration"
)

// programRef is a shared reference to the tea.Program.
// Because bubbletea copies the model on every Update, we need a pointer
// that survives copies so the run goroutine can send messages.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference (thread-safe).
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends a message to the bubbletea program (thread-safe).
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUIPublisher implements orchestration.Publisher by forwarding snapshots to
// the bubbletea program. It runs on the coordinator's loop goroutine, so it
// may query the coordinator for its remaining time.
type TUIPublisher struct {
	ref        *programRef
	coord      *orchestration.Coordinator
	agg        *orchestration.ProgressAggregator
	generation uint64
}

// Verify interface compliance.
var _ orchestration.Publisher = (*TUIPublisher)(nil)

// NewTUIPublisher creates a publisher for one view mount.
func NewTUIPublisher(ref *programRef, coord *orchestration.Coordinator, generation uint64) *TUIPublisher {
	return &TUIPublisher{
		ref:        ref,
		coord:      coord,
		agg:        orchestration.NewProgressAggregator(),
		generation: generation,
	}
}

// Publish sends the snapshot and its aggregated progress as a SnapshotMsg.
func (p *TUIPublisher) Publish(ctx context.Context, snap orchestration.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	progress := p.agg.Update(snap, p.coord.Remaining(snap.At))
	p.ref.Send(SnapshotMsg{Snapshot: snap, Progress: progress, Generation: p.generation})
	return nil
}

// startRunCmd returns a tea.Cmd that drives coord until it settles or ctx is
// cancelled, then tears it down. coord is owned by the command's goroutine.
func startRunCmd(ref *programRef, ctx context.Context, coord *orchestration.Coordinator, frame time.Duration, gen uint64) tea.Cmd {
	return func() tea.Msg {
		err := orchestration.Run(ctx, coord, orchestration.NewFrameTicker(frame), NewTUIPublisher(ref, coord, gen))
		coord.Unmount()
		return RunCompleteMsg{Err: err, Generation: gen}
	}
}
