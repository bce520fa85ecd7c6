package format

import (
	"fmt"
	"math"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds for durations less than a millisecond, milliseconds for
// durations less than a second, and the default string representation otherwise.
// This approach provides a more human-readable output for short durations.
//
// Parameters:
//   - d: The duration to format.
//
// Returns:
//   - string: A formatted string representing the duration.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatMB renders a megabyte figure as a whole number, the precision the
// report format guarantees for memory columns.
func FormatMB(mb float64) string {
	return fmt.Sprintf("%.0f", math.Round(mb))
}

// FormatPercent renders a percentage with one decimal place, the precision
// the report format guarantees for CPU and memory utilization.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f", pct)
}

// FormatAverage renders a per-sample average, such as a mean thread count,
// with one decimal place.
func FormatAverage(v float64) string {
	return fmt.Sprintf("%.1f", v)
}
