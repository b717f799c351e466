package orchestration

import "time"

// AggregatedProgress summarises a snapshot for progress displays.
type AggregatedProgress struct {
	// Average is the mean elapsed ratio across all targets (0.0 to 1.0).
	Average float64
	// Settled is the number of targets showing their final value.
	Settled int
	// Total is the number of targets in the snapshot.
	Total int
	// ETA is the time left until every target settles.
	ETA time.Duration
}

// Done reports whether every target has settled.
func (p AggregatedProgress) Done() bool {
	return p.Total > 0 && p.Settled == p.Total
}

// ProgressAggregator turns snapshots into overall progress for the CLI
// spinner and the terminal sparkline. It never reports a lower average than
// it reported before, so a progress bar fed from it only moves forward.
type ProgressAggregator struct {
	last AggregatedProgress
}

// NewProgressAggregator returns an empty aggregator.
func NewProgressAggregator() *ProgressAggregator {
	return &ProgressAggregator{}
}

// Update folds snap into the aggregate. remaining is the coordinator's
// estimate of the time left (see Coordinator.Remaining).
func (a *ProgressAggregator) Update(snap Snapshot, remaining time.Duration) AggregatedProgress {
	p := AggregatedProgress{Total: len(snap.States), ETA: remaining}
	var sum float64
	for _, s := range snap.States {
		sum += s.Ratio
		if s.Settled() {
			p.Settled++
		}
	}
	if p.Total > 0 {
		p.Average = sum / float64(p.Total)
	}
	if snap.Phase == AllSettled {
		p.Average = 1
		p.ETA = 0
	}
	if p.Average < a.last.Average {
		p.Average = a.last.Average
	}
	if p.ETA < 0 {
		p.ETA = 0
	}

	a.last = p
	return p
}

// Last returns the most recent aggregate without updating it.
func (a *ProgressAggregator) Last() AggregatedProgress {
	return a.last
}
