//go:generate mockgen -source=interfaces.go -destination=mocks/mock_interfaces.go -package=mocks

package orchestration

import (
	"context"
	"time"
)

// Publisher receives snapshots from the scheduling loop. It is the output
// contract towards the rendering layer (SSE stream, terminal, CLI).
//
// Publish is called from the loop goroutine; a returned error ends the run
// and tears the coordinator down.
type Publisher interface {
	Publish(ctx context.Context, snap Snapshot) error
}

// PublisherFunc is a function adapter that implements Publisher.
type PublisherFunc func(ctx context.Context, snap Snapshot) error

// Publish calls the underlying function.
func (f PublisherFunc) Publish(ctx context.Context, snap Snapshot) error {
	return f(ctx, snap)
}

// NullPublisher discards every snapshot. Useful for headless runs and tests.
type NullPublisher struct{}

// Publish does nothing.
func (NullPublisher) Publish(context.Context, Snapshot) error { return nil }

// Ticker is the display-refresh signal. Tick spacing is not guaranteed; the
// coordinator only relies on the timestamps it delivers.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = 16 * time.Millisecond

// frameTicker adapts time.Ticker to Ticker.
type frameTicker struct {
	t *time.Ticker
}

// NewFrameTicker returns a wall-clock Ticker firing every interval.
// Non-positive intervals fall back to DefaultFrameInterval.
func NewFrameTicker(interval time.Duration) Ticker {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	return &frameTicker{t: time.NewTicker(interval)}
}

func (f *frameTicker) C() <-chan time.Time { return f.t.C }
func (f *frameTicker) Stop()               { f.t.Stop() }
