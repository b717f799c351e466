package animation

import (
	"math"
	"time"

	apperrors "github.com/agbru/ecodash/internal/errors"
)

// Phase is the lifecycle stage of an Animator.
type Phase int

const (
	// Idle animators show their start value and have no anchor.
	Idle Phase = iota
	// Running animators interpolate on every sample.
	Running
	// Settled animators show exactly their end value. Terminal until Reset.
	Settled
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Settled:
		return "settled"
	default:
		return "unknown"
	}
}

// State is the observable state of an Animator at one sample.
type State struct {
	ID    string
	Value float64
	// Ratio is the elapsed fraction of the duration, in [0, 1].
	Ratio float64
	Phase Phase
}

// Settled reports whether the state is terminal.
func (s State) Settled() bool { return s.Phase == Settled }

// Running reports whether the state is still interpolating.
func (s State) Running() bool { return s.Phase == Running }

// Animator interpolates one scalar from Target.Start to Target.End.
// It is not safe for concurrent use; its owner samples it from a single
// scheduling loop.
type Animator struct {
	target Target
	anchor time.Time
	state  State
}

// NewAnimator creates an Idle animator showing the target's start value.
func NewAnimator(target Target) *Animator {
	a := &Animator{target: target}
	a.Reset()
	return a
}

// Target returns the transition this animator runs.
func (a *Animator) Target() Target { return a.target }

// State returns the most recently computed state without sampling.
func (a *Animator) State() State { return a.state }

// Start anchors the run at now and moves the animator to Running.
// An animator that is already Running or Settled is left untouched; a restart
// requires an explicit Reset. This keeps at most one interpolation active per
// target even when Start is triggered twice.
//
// Returns:
//   - State: the state after the call.
//   - error: an apperrors.LifecycleError when the call was ignored.
func (a *Animator) Start(now time.Time) (State, error) {
	if a.state.Phase != Idle {
		return a.state, apperrors.LifecycleError{Op: "start", State: a.state.Phase.String()}
	}
	a.anchor = now
	a.state.Phase = Running
	a.state.Ratio = 0
	a.state.Value = a.target.Start
	return a.state, nil
}

// Sample computes the state at now.
//
// While the elapsed ratio is below 1 the phase stays Running and the value is
// the linear interpolation floored to an integer. When the ratio reaches 1 the
// phase becomes Settled and the value is set to exactly Target.End. Sampling a
// Settled animator returns the same state; sampling an Idle one returns the
// idle state. Timestamps earlier than a previous sample never move the ratio
// backwards.
func (a *Animator) Sample(now time.Time) State {
	if a.state.Phase != Running {
		return a.state
	}

	ratio := a.ratioAt(now)
	if ratio < a.state.Ratio {
		ratio = a.state.Ratio
	}

	if ratio >= 1 {
		a.state.Ratio = 1
		a.state.Value = a.target.End
		a.state.Phase = Settled
		return a.state
	}

	a.state.Ratio = ratio
	a.state.Value = displayValue(a.target, ratio)
	return a.state
}

// Reset returns the animator to Idle at its start value.
func (a *Animator) Reset() {
	a.anchor = time.Time{}
	a.state = State{
		ID:    a.target.ID,
		Value: a.target.Start,
		Phase: Idle,
	}
}

func (a *Animator) ratioAt(now time.Time) float64 {
	if a.target.Duration <= 0 {
		return 1
	}
	elapsed := now.Sub(a.anchor)
	return Clamp(float64(elapsed)/float64(a.target.Duration), 0, 1)
}

// Interpolate returns the exact linear value at ratio, without flooring.
func Interpolate(start, end, ratio float64) float64 {
	return start + (end-start)*ratio
}

// displayValue floors the interpolated value and keeps it between start and
// end, so a count never passes its target and never drops behind its start.
// Ratio 0 shows the start value exactly.
func displayValue(t Target, ratio float64) float64 {
	if ratio <= 0 {
		return t.Start
	}
	v := math.Floor(Interpolate(t.Start, t.End, ratio))
	lo, hi := t.Start, t.End
	if lo > hi {
		lo, hi = hi, lo
	}
	return Clamp(v, lo, hi)
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
