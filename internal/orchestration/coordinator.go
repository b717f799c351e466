package orchestration

import (
	"time"

	"github.com/google/uuid"

	"github.com/agbru/ecodash/internal/animation"
	apperrors "github.com/agbru/ecodash/internal/errors"
	"github.com/agbru/ecodash/internal/logging"
	"github.com/agbru/ecodash/internal/metrics"
)

// DefaultStartDelay is the pause between mount and the start of every
// animation, so nothing moves during the initial paint.
const DefaultStartDelay = 300 * time.Millisecond

// Coordinator orchestrates a fixed set of animators as one unit with a single
// delayed start.
//
// Lifecycle: Unmounted → Pending → Animating → AllSettled, and TornDown after
// Unmount. All animators start with the same anchor (mount + delay), so equal
// durations settle on the same tick and shorter durations never settle after
// longer ones.
//
// A Coordinator is owned by one view mount and is not safe for concurrent
// use: it is mutated only from the loop that samples it.
type Coordinator struct {
	id        string
	targets   []animation.Target
	animators []*animation.Animator
	delay     time.Duration
	clock     func() time.Time

	phase     Phase
	mountedAt time.Time
	anchor    time.Time
	settled   int

	logger   logging.Logger
	recorder *metrics.Recorder
}

// Option configures a Coordinator during construction.
type Option func(*Coordinator)

// WithStartDelay overrides DefaultStartDelay.
func WithStartDelay(d time.Duration) Option {
	return func(c *Coordinator) { c.delay = d }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l logging.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRecorder attaches Prometheus instrumentation.
func WithRecorder(r *metrics.Recorder) Option {
	return func(c *Coordinator) { c.recorder = r }
}

// WithClock sets the time source Run uses for the mount instant.
func WithClock(now func() time.Time) Option {
	return func(c *Coordinator) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithID sets the coordinator identifier used in logs and traces.
func WithID(id string) Option {
	return func(c *Coordinator) {
		if id != "" {
			c.id = id
		}
	}
}

// NewCoordinator validates targets and returns an Unmounted coordinator.
//
// Malformed targets (empty or duplicate id, negative duration, non-finite
// start or end) and a negative start delay are rejected with a configuration
// error. There is no recovery path: a rejected target set never mounts.
func NewCoordinator(targets []animation.Target, opts ...Option) (*Coordinator, error) {
	c := &Coordinator{
		id:     uuid.NewString(),
		delay:  DefaultStartDelay,
		clock:  time.Now,
		logger: logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if err := validateTargets(targets, c.delay); err != nil {
		c.recorder.ConfigRejected()
		c.logger.Error("rejected dashboard targets", err, logging.String("coordinator", c.id))
		return nil, err
	}

	c.targets = append([]animation.Target(nil), targets...)
	return c, nil
}

func validateTargets(targets []animation.Target, delay time.Duration) error {
	if len(targets) == 0 {
		return apperrors.NewConfigError("dashboard has no targets")
	}
	if delay < 0 {
		return apperrors.ValidationError{Field: "start_delay", Message: "must be non-negative, got " + delay.String()}
	}
	seen := make(map[string]struct{}, len(targets))
	for i, t := range targets {
		if err := t.Validate(); err != nil {
			return apperrors.WrapError(err, "target %d (%q)", i, t.ID)
		}
		if _, dup := seen[t.ID]; dup {
			return apperrors.NewConfigError("target %d: duplicate id %q", i, t.ID)
		}
		seen[t.ID] = struct{}{}
	}
	return nil
}

// ID returns the coordinator identifier.
func (c *Coordinator) ID() string { return c.id }

// Phase returns the current lifecycle stage.
func (c *Coordinator) Phase() Phase { return c.phase }

// Len returns the number of targets.
func (c *Coordinator) Len() int { return len(c.targets) }

// StartDelay returns the configured mount delay.
func (c *Coordinator) StartDelay() time.Duration { return c.delay }

// Targets returns a copy of the target definitions in construction order.
func (c *Coordinator) Targets() []animation.Target {
	return append([]animation.Target(nil), c.targets...)
}

// Done reports whether the coordinator will never publish a changed
// snapshot again.
func (c *Coordinator) Done() bool {
	return c.phase == AllSettled || c.phase == TornDown
}

// Mount creates one Idle animator per target and returns the initial
// snapshot, in which every value equals its start value. Mounting twice, or
// after teardown, is ignored.
func (c *Coordinator) Mount(now time.Time) Snapshot {
	if c.phase != Unmounted {
		c.misuse("mount")
		return c.snapshot(now)
	}

	c.animators = make([]*animation.Animator, len(c.targets))
	for i, t := range c.targets {
		c.animators[i] = animation.NewAnimator(t)
	}
	c.mountedAt = now
	c.phase = Pending
	c.recorder.Mounted()
	c.logger.Debug("dashboard mounted",
		logging.String("coordinator", c.id),
		logging.Int("targets", len(c.targets)),
		logging.Duration("start_delay", c.delay))
	return c.snapshot(now)
}

// Sample advances the coordinator to now and returns the resulting snapshot.
//
// In Pending nothing moves until now reaches mount+delay; at that point every
// animator is started with that shared anchor and sampled. In Animating every
// animator is re-sampled and the phase becomes AllSettled once all of them
// report Settled. AllSettled is terminal and returns the final snapshot
// without sampling.
//
// The boolean is false when the coordinator is not mounted (never mounted or
// torn down); such calls are ignored.
func (c *Coordinator) Sample(now time.Time) (Snapshot, bool) {
	switch c.phase {
	case Unmounted, TornDown:
		c.misuse("sample")
		return Snapshot{Phase: c.phase, At: now}, false
	case Pending:
		start := c.mountedAt.Add(c.delay)
		if now.Before(start) {
			return c.snapshot(now), true
		}
		c.startAll(start)
		c.sampleAll(now)
	case Animating:
		c.sampleAll(now)
	case AllSettled:
	}
	return c.snapshot(now), true
}

// Unmount discards every animator. Later calls to Sample return no snapshot.
func (c *Coordinator) Unmount() {
	switch c.phase {
	case TornDown:
		return
	case Pending, Animating, AllSettled:
		c.recorder.Unmounted()
		c.logger.Debug("dashboard unmounted",
			logging.String("coordinator", c.id),
			logging.String("phase", c.phase.String()))
	}
	c.animators = nil
	c.phase = TornDown
}

// Progress returns the mean elapsed ratio across all animators, in [0, 1].
func (c *Coordinator) Progress() float64 {
	if len(c.animators) == 0 {
		if c.phase == AllSettled {
			return 1
		}
		return 0
	}
	var sum float64
	for _, a := range c.animators {
		sum += a.State().Ratio
	}
	return sum / float64(len(c.animators))
}

// Remaining estimates the time until every value settles, measured from now.
func (c *Coordinator) Remaining(now time.Time) time.Duration {
	var anchor time.Time
	switch c.phase {
	case Pending:
		anchor = c.mountedAt.Add(c.delay)
	case Animating:
		anchor = c.anchor
	case Unmounted:
		return c.delay + c.longest()
	default:
		return 0
	}
	if rem := anchor.Add(c.longest()).Sub(now); rem > 0 {
		return rem
	}
	return 0
}

func (c *Coordinator) longest() time.Duration {
	var d time.Duration
	for _, t := range c.targets {
		if t.Duration > d {
			d = t.Duration
		}
	}
	return d
}

func (c *Coordinator) startAll(anchor time.Time) {
	c.anchor = anchor
	for _, a := range c.animators {
		if _, err := a.Start(anchor); err != nil {
			c.logger.Debug("animator start ignored", logging.String("coordinator", c.id), logging.Err(err))
		}
	}
	c.phase = Animating
	c.logger.Debug("dashboard animating", logging.String("coordinator", c.id))
}

func (c *Coordinator) sampleAll(now time.Time) {
	c.recorder.FrameSampled()

	settled := 0
	for _, a := range c.animators {
		if a.Sample(now).Settled() {
			settled++
		}
	}
	if delta := settled - c.settled; delta > 0 {
		c.recorder.AnimatorsSettled(delta)
	}
	c.settled = settled

	if settled == len(c.animators) {
		c.phase = AllSettled
		c.recorder.AllSettled(now.Sub(c.mountedAt))
		c.logger.Info("dashboard settled",
			logging.String("coordinator", c.id),
			logging.Duration("since_mount", now.Sub(c.mountedAt)))
	}
}

func (c *Coordinator) snapshot(at time.Time) Snapshot {
	snap := Snapshot{
		Phase:  c.phase,
		At:     at,
		Values: make(map[string]float64, len(c.animators)),
		States: make(map[string]animation.State, len(c.animators)),
	}
	for _, a := range c.animators {
		s := a.State()
		snap.Values[s.ID] = s.Value
		snap.States[s.ID] = s
	}
	return snap
}

func (c *Coordinator) misuse(op string) {
	err := apperrors.LifecycleError{Op: op, State: c.phase.String()}
	c.logger.Debug("ignored coordinator call", logging.String("coordinator", c.id), logging.Err(err))
}
