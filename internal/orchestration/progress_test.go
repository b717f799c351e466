package orchestration

import (
	"testing"
	"time"

	"github.com/agbru/ecodash/internal/animation"
)

func TestProgressAggregator_Update(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator()

	p := agg.Update(Snapshot{
		Phase: Animating,
		States: map[string]animation.State{
			"a": {ID: "a", Ratio: 1, Phase: animation.Settled},
			"b": {ID: "b", Ratio: 0.5, Phase: animation.Running},
		},
	}, 750*time.Millisecond)

	if p.Average != 0.75 || p.Settled != 1 || p.Total != 2 || p.ETA != 750*time.Millisecond {
		t.Errorf("Update() = %+v", p)
	}
	if p.Done() {
		t.Error("Done() = true with one target running")
	}
	if agg.Last() != p {
		t.Errorf("Last() = %+v, want %+v", agg.Last(), p)
	}
}

func TestProgressAggregator_NeverGoesBackwards(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator()
	running := func(r float64) Snapshot {
		return Snapshot{Phase: Animating, States: map[string]animation.State{"a": {Ratio: r, Phase: animation.Running}}}
	}

	agg.Update(running(0.6), time.Second)
	if p := agg.Update(running(0.2), time.Second); p.Average != 0.6 {
		t.Errorf("Average = %v after a lower sample, want 0.6", p.Average)
	}
}

func TestProgressAggregator_SettledSnapshot(t *testing.T) {
	t.Parallel()
	agg := NewProgressAggregator()
	p := agg.Update(Snapshot{
		Phase:  AllSettled,
		States: map[string]animation.State{"a": {Ratio: 1, Phase: animation.Settled}},
	}, time.Second)

	if p.Average != 1 || p.ETA != 0 || !p.Done() {
		t.Errorf("Update(settled) = %+v, want complete", p)
	}
}
