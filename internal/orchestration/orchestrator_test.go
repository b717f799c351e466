package orchestration_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/ecodash/internal/animation"
	"github.com/agbru/ecodash/internal/metrics"
	"github.com/agbru/ecodash/internal/orchestration"
	"github.com/agbru/ecodash/internal/orchestration/mocks"
)

var epoch = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// manualTicker delivers a fixed, pre-buffered sequence of frame timestamps.
type manualTicker struct {
	ch      chan time.Time
	stopped bool
}

func newManualTicker(offsetsMs ...int) *manualTicker {
	ch := make(chan time.Time, len(offsetsMs))
	for _, ms := range offsetsMs {
		ch <- epoch.Add(time.Duration(ms) * time.Millisecond)
	}
	return &manualTicker{ch: ch}
}

func (m *manualTicker) C() <-chan time.Time { return m.ch }
func (m *manualTicker) Stop()               { m.stopped = true }

// frames returns tick offsets from 0 to last inclusive, step ms apart.
func frames(step, last int) []int {
	var out []int
	for ms := 0; ms <= last; ms += step {
		out = append(out, ms)
	}
	return out
}

func newCoordinator(t *testing.T, opts ...orchestration.Option) *orchestration.Coordinator {
	t.Helper()
	targets := []animation.Target{
		{ID: "esg", End: 84, Duration: 1500 * time.Millisecond},
		{ID: "renewable", End: 35, Duration: 1000 * time.Millisecond},
	}
	opts = append([]orchestration.Option{orchestration.WithClock(func() time.Time { return epoch })}, opts...)
	c, err := orchestration.NewCoordinator(targets, opts...)
	if err != nil {
		t.Fatalf("NewCoordinator() error = %v", err)
	}
	return c
}

func TestRun_PublishesUntilSettled(t *testing.T) {
	t.Parallel()
	c := newCoordinator(t)
	ticker := newManualTicker(frames(50, 3000)...)

	var published []orchestration.Snapshot
	pub := orchestration.PublisherFunc(func(_ context.Context, snap orchestration.Snapshot) error {
		published = append(published, snap)
		return nil
	})

	if err := orchestration.Run(context.Background(), c, ticker, pub); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !ticker.stopped {
		t.Error("Run did not stop the ticker")
	}

	first := published[0]
	if first.Phase != orchestration.Pending || first.Values["esg"] != 0 {
		t.Errorf("first snapshot = %+v, want pending at start values", first)
	}
	last := published[len(published)-1]
	if last.Phase != orchestration.AllSettled {
		t.Fatalf("last snapshot phase = %v, want settled", last.Phase)
	}
	if last.Values["esg"] != 84 || last.Values["renewable"] != 35 {
		t.Errorf("settled values = %v", last.Values)
	}

	settledCount := 0
	prev := map[string]float64{}
	for i, snap := range published {
		if snap.Phase == orchestration.AllSettled {
			settledCount++
		}
		if i > 0 && snap.Phase == orchestration.Pending {
			t.Errorf("snapshot %d published during the start delay", i)
		}
		for id, v := range snap.Values {
			if v < prev[id] {
				t.Errorf("snapshot %d: %s regressed from %v to %v", i, id, prev[id], v)
			}
			prev[id] = v
		}
	}
	if settledCount != 1 {
		t.Errorf("settled snapshot published %d times, want once", settledCount)
	}

	// Mount + one snapshot per tick from 300ms through 1800ms inclusive.
	if want := 1 + (1800-300)/50 + 1; len(published) != want {
		t.Errorf("published %d snapshots, want %d", len(published), want)
	}
}

func TestRun_CancelTearsDown(t *testing.T) {
	t.Parallel()
	c := newCoordinator(t)
	ticker := newManualTicker(frames(100, 3000)...)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var count int
	pub := orchestration.PublisherFunc(func(context.Context, orchestration.Snapshot) error {
		count++
		if count == 3 {
			cancel()
		}
		return nil
	})

	err := orchestration.Run(ctx, c, ticker, pub)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() error = %v, want context.Canceled", err)
	}
	if count != 3 {
		t.Errorf("published %d snapshots, want 3 (none after cancel)", count)
	}
	if c.Phase() != orchestration.TornDown {
		t.Errorf("Phase after cancel = %v, want torn_down", c.Phase())
	}
}

func TestRun_PublishErrorTearsDown(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	pub := mocks.NewMockPublisher(ctrl)
	c := newCoordinator(t)

	broken := errors.New("broken pipe")
	gomock.InOrder(
		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil),
		pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(broken),
	)

	err := orchestration.Run(context.Background(), c, newManualTicker(frames(100, 3000)...), pub)
	if !errors.Is(err, broken) {
		t.Fatalf("Run() error = %v, want wrapped %v", err, broken)
	}
	if c.Phase() != orchestration.TornDown {
		t.Errorf("Phase after publish error = %v, want torn_down", c.Phase())
	}
}

func TestRun_UsesTickerInterface(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	ticker := mocks.NewMockTicker(ctrl)
	pub := mocks.NewMockPublisher(ctrl)

	ch := make(chan time.Time, 1)
	ch <- epoch.Add(2 * time.Second)
	var recv <-chan time.Time = ch

	ticker.EXPECT().C().Return(recv).AnyTimes()
	ticker.EXPECT().Stop().Times(1)
	pub.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	if err := orchestration.Run(context.Background(), newCoordinator(t), ticker, pub); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
}

func TestRun_RecordsMetrics(t *testing.T) {
	t.Parallel()
	rec := metrics.NewRecorder()
	c := newCoordinator(t, orchestration.WithRecorder(rec))

	if err := orchestration.Run(context.Background(), c, newManualTicker(frames(500, 2000)...), orchestration.NullPublisher{}); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	body := w.Body.String()
	for _, want := range []string{
		"ecodash_coordinator_mounts_total 1",
		"ecodash_animators_settled_total 2",
		"ecodash_settle_duration_seconds_count 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics should contain %q", want)
		}
	}
}
