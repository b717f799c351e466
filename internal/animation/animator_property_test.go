package animation

import (
	"math"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func propertyParameters() *gopter.TestParameters {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	return parameters
}

// TestAnimator_Properties checks the interpolation invariants over random
// targets and sampling instants.
func TestAnimator_Properties(t *testing.T) {
	properties := gopter.NewProperties(propertyParameters())

	values := gen.Float64Range(-1e6, 1e6)
	durations := gen.Int64Range(0, 10_000)

	properties.Property("sample at anchor shows the start value", prop.ForAll(
		func(start, end float64, durMs int64) bool {
			a := NewAnimator(Target{ID: "p", Start: start, End: end, Duration: time.Duration(durMs) * time.Millisecond})
			_, _ = a.Start(epoch)
			s := a.Sample(epoch)
			if durMs == 0 {
				return s.Settled() && s.Value == end
			}
			return s.Ratio == 0 && s.Value == start && s.Running()
		},
		values, values, durations,
	))

	properties.Property("sample at or after anchor+duration settles exactly on end", prop.ForAll(
		func(start, end float64, durMs, extraMs int64) bool {
			d := time.Duration(durMs) * time.Millisecond
			a := NewAnimator(Target{ID: "p", Start: start, End: end, Duration: d})
			_, _ = a.Start(epoch)
			s := a.Sample(epoch.Add(d + time.Duration(extraMs)*time.Millisecond))
			return s.Settled() && s.Value == end && s.Ratio == 1
		},
		values, values, durations, gen.Int64Range(0, 10_000),
	))

	properties.Property("values are monotonic towards the end and never pass it", prop.ForAll(
		func(start, end float64, durMs int64, t1, t2 int64) bool {
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			d := time.Duration(durMs) * time.Millisecond
			a := NewAnimator(Target{ID: "p", Start: start, End: end, Duration: d})
			_, _ = a.Start(epoch)
			s1 := a.Sample(epoch.Add(time.Duration(t1) * time.Millisecond))
			s2 := a.Sample(epoch.Add(time.Duration(t2) * time.Millisecond))

			lo, hi := math.Min(start, end), math.Max(start, end)
			if s1.Value < lo || s1.Value > hi || s2.Value < lo || s2.Value > hi {
				return false
			}
			if end >= start {
				return s1.Value <= s2.Value
			}
			return s1.Value >= s2.Value
		},
		values, values, gen.Int64Range(1, 10_000), gen.Int64Range(0, 12_000), gen.Int64Range(0, 12_000),
	))

	properties.Property("repeated samples at one instant are identical", prop.ForAll(
		func(start, end float64, durMs, tMs int64) bool {
			a := NewAnimator(Target{ID: "p", Start: start, End: end, Duration: time.Duration(durMs) * time.Millisecond})
			_, _ = a.Start(epoch)
			now := epoch.Add(time.Duration(tMs) * time.Millisecond)
			return a.Sample(now) == a.Sample(now)
		},
		values, values, durations, gen.Int64Range(0, 12_000),
	))

	properties.Property("intermediate values are whole numbers", prop.ForAll(
		func(end float64, durMs, tMs int64) bool {
			a := NewAnimator(Target{ID: "p", Start: 0, End: end, Duration: time.Duration(durMs) * time.Millisecond})
			_, _ = a.Start(epoch)
			s := a.Sample(epoch.Add(time.Duration(tMs) * time.Millisecond))
			if !s.Running() || s.Ratio == 0 {
				return true
			}
			return s.Value == math.Trunc(s.Value)
		},
		gen.Float64Range(0, 1e6), gen.Int64Range(1, 10_000), gen.Int64Range(0, 10_000),
	))

	properties.TestingRun(t)
}
