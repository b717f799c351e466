package animation

import (
	"math"
	"time"

	apperrors "github.com/agbru/ecodash/internal/errors"
)

// DefaultDuration is the reveal duration used when a target does not
// specify one.
const DefaultDuration = 1500 * time.Millisecond

// Target describes one value transition. It is immutable once a run begins.
type Target struct {
	// ID identifies the value within its dashboard (e.g. "esg").
	ID string
	// Start is the value shown before and at the very beginning of the run.
	Start float64
	// End is the value shown once the run has settled.
	End float64
	// Duration is the wall-clock length of the transition. Zero settles on
	// the first sample.
	Duration time.Duration
}

// Validate reports a malformed target definition.
//
// Returns:
//   - error: an apperrors.ValidationError naming the offending field, or nil.
func (t Target) Validate() error {
	switch {
	case t.ID == "":
		return apperrors.ValidationError{Field: "id", Message: "must not be empty"}
	case t.Duration < 0:
		return apperrors.ValidationError{Field: "duration", Message: "must be non-negative, got " + t.Duration.String()}
	case !isFinite(t.Start):
		return apperrors.ValidationError{Field: "start", Message: "must be a finite number"}
	case !isFinite(t.End):
		return apperrors.ValidationError{Field: "end", Message: "must be a finite number"}
	}
	return nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
