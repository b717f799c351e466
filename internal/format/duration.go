package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats an elapsed time for the dashboards.
// Sub-second values keep their unit (µs or ms); longer runs are rounded to a
// tenth of a second so "settled in 1.8s" does not flicker in the last digits.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return d.Round(100 * time.Millisecond).String()
	}
}
