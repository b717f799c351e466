package server

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/agbru/ecodash/internal/format"
	"github.com/agbru/ecodash/internal/orchestration"
	"github.com/agbru/ecodash/internal/portfolio"
)

// Signals is the datastar signal tree patched into the page on every
// snapshot. Values holds the display text per metric id; Bars holds the
// numeric value of allocation metrics for bar widths.
type Signals struct {
	Phase    string             `json:"phase"`
	Progress float64            `json:"progress"`
	ETA      string             `json:"eta"`
	Values   map[string]string  `json:"values"`
	Bars     map[string]float64 `json:"bars"`
}

// SignalsFor renders snap for board. Metrics missing from snap show their
// start value.
func SignalsFor(board portfolio.Board, snap orchestration.Snapshot, progress orchestration.AggregatedProgress) Signals {
	sig := Signals{
		Phase:    snap.Phase.String(),
		Progress: math.Round(progress.Average*1000) / 10,
		ETA:      format.FormatETA(progress.ETA),
		Values:   make(map[string]string, len(board.Metrics)),
		Bars:     make(map[string]float64),
	}
	for _, m := range board.Metrics {
		v, ok := snap.Value(m.ID)
		if !ok {
			v = m.Start
		}
		sig.Values[m.ID] = board.Display(m, v)
		if m.Kind == portfolio.KindAllocation {
			sig.Bars[m.ID] = v
		}
	}
	return sig
}

// SSEPublisher implements orchestration.Publisher over a datastar SSE
// stream. One publisher serves one view mount.
type SSEPublisher struct {
	sse   *datastar.ServerSentEventGenerator
	board portfolio.Board
	coord *orchestration.Coordinator
	agg   *orchestration.ProgressAggregator
}

// Verify interface compliance.
var _ orchestration.Publisher = (*SSEPublisher)(nil)

// NewSSEPublisher creates a publisher that patches board signals for coord.
func NewSSEPublisher(sse *datastar.ServerSentEventGenerator, board portfolio.Board, coord *orchestration.Coordinator) *SSEPublisher {
	return &SSEPublisher{
		sse:   sse,
		board: board,
		coord: coord,
		agg:   orchestration.NewProgressAggregator(),
	}
}

// Publish patches the page signals with snap.
func (p *SSEPublisher) Publish(ctx context.Context, snap orchestration.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	progress := p.agg.Update(snap, p.coord.Remaining(snap.At))
	if err := p.sse.MarshalAndPatchSignals(SignalsFor(p.board, snap, progress)); err != nil {
		return fmt.Errorf("patch signals: %w", err)
	}
	return nil
}

// streamOptions are the per-view timings a client may request.
type streamOptions struct {
	delay    time.Duration
	duration time.Duration
}

// parseStreamOptions reads the optional delay and duration query
// parameters, bounded by max.
func parseStreamOptions(r *http.Request, defaultDelay, max time.Duration) (streamOptions, error) {
	opts := streamOptions{delay: defaultDelay}
	q := r.URL.Query()
	for _, p := range []struct {
		name string
		dst  *time.Duration
	}{
		{"delay", &opts.delay},
		{"duration", &opts.duration},
	} {
		raw := q.Get(p.name)
		if raw == "" {
			continue
		}
		d, err := time.ParseDuration(raw)
		if err != nil {
			return streamOptions{}, fmt.Errorf("invalid %s %q: %w", p.name, raw, err)
		}
		if d < 0 || (max > 0 && d > max) {
			return streamOptions{}, fmt.Errorf("%s must be between 0 and %s, got %s", p.name, max, d)
		}
		*p.dst = d
	}
	return opts, nil
}

// encode returns the query string that requests the same timings, omitting
// values left at their defaults.
func (o streamOptions) encode(defaultDelay time.Duration) string {
	q := url.Values{}
	if o.delay != defaultDelay {
		q.Set("delay", o.delay.String())
	}
	if o.duration > 0 {
		q.Set("duration", o.duration.String())
	}
	return q.Encode()
}
