package cli

import (
	"context"
	"fmt"

	"github.com/agbru/ecodash/internal/format"
	"github.com/agbru/ecodash/internal/orchestration"
)

// SpinnerPublisher implements orchestration.Publisher for the play mode. It
// keeps the latest snapshot for the final table and renders the aggregated
// progress into the spinner suffix.
type SpinnerPublisher struct {
	spinner Spinner
	coord   *orchestration.Coordinator
	agg     *orchestration.ProgressAggregator
	last    orchestration.Snapshot
}

// Verify interface compliance.
var _ orchestration.Publisher = (*SpinnerPublisher)(nil)

// NewSpinnerPublisher creates a publisher bound to coord's remaining-time
// estimate.
func NewSpinnerPublisher(s Spinner, coord *orchestration.Coordinator) *SpinnerPublisher {
	return &SpinnerPublisher{
		spinner: s,
		coord:   coord,
		agg:     orchestration.NewProgressAggregator(),
	}
}

// Publish records snap and refreshes the spinner suffix.
func (p *SpinnerPublisher) Publish(ctx context.Context, snap orchestration.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.last = snap
	progress := p.agg.Update(snap, p.coord.Remaining(snap.At))
	p.spinner.UpdateSuffix(" " + FormatProgressLine(snap.Phase, progress))
	return nil
}

// Last returns the most recent published snapshot.
func (p *SpinnerPublisher) Last() orchestration.Snapshot { return p.last }

// Progress returns the most recent aggregated progress.
func (p *SpinnerPublisher) Progress() orchestration.AggregatedProgress { return p.agg.Last() }

// FormatProgressLine renders the phase, the settled count and the progress
// bar with ETA on one line.
func FormatProgressLine(phase orchestration.Phase, p orchestration.AggregatedProgress) string {
	return fmt.Sprintf("%-9s %d/%d %s", phase, p.Settled, p.Total,
		format.FormatProgressBarWithETA(p.Average, p.ETA, ProgressBarWidth))
}
