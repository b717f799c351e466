package orchestration

import (
	"maps"
	"time"

	"github.com/agbru/ecodash/internal/animation"
)

// Phase is the lifecycle stage of a Coordinator.
type Phase int

const (
	// Unmounted coordinators have no animators and no renderable snapshot.
	Unmounted Phase = iota
	// Pending coordinators show start values while waiting for the mount delay.
	Pending
	// Animating coordinators sample every animator on every tick.
	Animating
	// AllSettled coordinators show the final values and sample nothing.
	AllSettled
	// TornDown coordinators were unmounted and discard every request.
	TornDown
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case Unmounted:
		return "unmounted"
	case Pending:
		return "pending"
	case Animating:
		return "animating"
	case AllSettled:
		return "settled"
	case TornDown:
		return "torn_down"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only view of every target's current value, handed to the
// rendering layer. Each snapshot owns its maps; mutating one never affects the
// coordinator or other snapshots. At is the instant the values were sampled
// at; remaining-time estimates are measured from it.
type Snapshot struct {
	Phase  Phase
	At     time.Time
	Values map[string]float64
	States map[string]animation.State
}

// Value returns the current value of id and whether it is known.
func (s Snapshot) Value(id string) (float64, bool) {
	v, ok := s.Values[id]
	return v, ok
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Phase:  s.Phase,
		At:     s.At,
		Values: maps.Clone(s.Values),
		States: maps.Clone(s.States),
	}
}
