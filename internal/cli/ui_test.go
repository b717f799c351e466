package cli

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/ecodash/internal/animation"
	"github.com/agbru/ecodash/internal/orchestration"
)

// MockSpinner for testing
type MockSpinner struct {
	started  bool
	stopped  bool
	suffix   string
	suffixes []string
}

func (m *MockSpinner) Start() {
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.suffix = suffix
	m.suffixes = append(m.suffixes, suffix)
}

func newCoordinator(t *testing.T, d time.Duration) *orchestration.Coordinator {
	t.Helper()
	coord, err := orchestration.NewCoordinator([]animation.Target{
		{ID: "esg", End: 84, Duration: d},
		{ID: "diversity", End: 78, Duration: d},
	}, orchestration.WithStartDelay(0))
	if err != nil {
		t.Fatalf("NewCoordinator() error = %v", err)
	}
	return coord
}

func TestSpinnerPublisher_UpdatesSuffix(t *testing.T) {
	s := &MockSpinner{}
	coord := newCoordinator(t, time.Second)
	pub := NewSpinnerPublisher(s, coord)

	mount := time.Now()
	snap := coord.Mount(mount)
	if err := pub.Publish(context.Background(), snap); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if !strings.Contains(s.suffix, "pending") || !strings.Contains(s.suffix, "0/2") {
		t.Errorf("suffix = %q, want pending phase and 0/2 settled", s.suffix)
	}

	snap, _ = coord.Sample(mount.Add(2 * time.Second))
	if err := pub.Publish(context.Background(), snap); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if !strings.Contains(s.suffix, "2/2") || !strings.Contains(s.suffix, "100.0%") {
		t.Errorf("suffix = %q, want 2/2 settled at 100%%", s.suffix)
	}
	if got := pub.Last().Values["esg"]; got != 84 {
		t.Errorf("Last() esg = %v, want 84", got)
	}
	if !pub.Progress().Done() {
		t.Error("Progress() should be done after the settled snapshot")
	}
}

func TestSpinnerPublisher_ETAFromSampleTime(t *testing.T) {
	s := &MockSpinner{}
	coord := newCoordinator(t, 2*time.Second)
	pub := NewSpinnerPublisher(s, coord)

	// A mount far in the past: wall-clock time would report no time left.
	mount := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	coord.Mount(mount)
	snap, ok := coord.Sample(mount.Add(500 * time.Millisecond))
	if !ok {
		t.Fatal("Sample() rejected a mounted coordinator")
	}
	if err := pub.Publish(context.Background(), snap); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if got := pub.Progress().ETA; got != 1500*time.Millisecond {
		t.Errorf("ETA = %v, want 1.5s measured from the sample", got)
	}
	if !strings.Contains(s.suffix, "ETA 2s") {
		t.Errorf("suffix = %q, want ETA 2s", s.suffix)
	}
}

func TestSpinnerPublisher_CancelledContext(t *testing.T) {
	s := &MockSpinner{}
	coord := newCoordinator(t, time.Second)
	pub := NewSpinnerPublisher(s, coord)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := pub.Publish(ctx, coord.Mount(time.Now())); !errors.Is(err, context.Canceled) {
		t.Errorf("Publish() error = %v, want context.Canceled", err)
	}
	if len(s.suffixes) != 0 {
		t.Errorf("cancelled publish should not touch the spinner, got %v", s.suffixes)
	}
}

func TestFormatProgressLine(t *testing.T) {
	t.Parallel()
	got := FormatProgressLine(orchestration.Animating, orchestration.AggregatedProgress{
		Average: 0.5, Settled: 3, Total: 9, ETA: 2 * time.Second,
	})
	for _, want := range []string{"animating", "3/9", "50.0%", "ETA 2s"} {
		if !strings.Contains(got, want) {
			t.Errorf("FormatProgressLine() = %q, should contain %q", got, want)
		}
	}
}
