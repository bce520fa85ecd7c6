// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayRunConfig], [DisplaySummary].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatLiveStatus].

package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/resmon/internal/config"
	"github.com/agbru/resmon/internal/format"
	"github.com/agbru/resmon/internal/stats"
	"github.com/agbru/resmon/internal/ui"
)

// DisplayRunConfig displays the monitoring run configuration to the user.
// It shows the duration, interval, tick count, output destination, and
// environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - variant: The selected platform provider variant name.
//   - ticks: The number of samples a full run will take.
//   - out: The writer for standard output.
func DisplayRunConfig(cfg config.AppConfig, variant string, ticks int, out io.Writer) {
	fmt.Fprintf(out, "--- Monitoring Configuration ---\n")
	fmt.Fprintf(out, "Sampling for %s%s%s every %s%s%s (%s%d%s samples).\n",
		ui.ColorPrimary(), cfg.Duration, ui.ColorReset(),
		ui.ColorWarning(), cfg.Interval, ui.ColorReset(),
		ui.ColorInfo(), ticks, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, %s%s%s metrics, Go %s%s%s.\n",
		ui.ColorInfo(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorInfo(), variant, ui.ColorReset(),
		ui.ColorInfo(), runtime.Version(), ui.ColorReset())
	if cfg.OutputFile != "" {
		fmt.Fprintf(out, "Report will be written to %s%s%s.\n",
			ui.ColorInfo(), cfg.OutputFile, ui.ColorReset())
	}
	fmt.Fprintf(out, "\n--- Starting Monitoring ---\n")
}

// DisplaySummary displays the end-of-run statistics table: CPU and memory
// min/avg/max plus the heaviest processes by average working set.
// Uses manual padding to correctly handle ANSI color codes.
func DisplaySummary(runStats stats.RunStatistics, sampleCount int, out io.Writer) {
	fmt.Fprintf(out, "\n--- Run Summary (%d samples) ---\n", sampleCount)

	fmt.Fprintf(out, "%s%-10s%s %8s %8s %8s\n",
		ui.ColorUnderline(), "", ui.ColorReset(), "Min", "Avg", "Max")
	fmt.Fprintf(out, "%-10s %s%8s %8s %8s%s\n", "CPU %",
		ui.ColorWarning(),
		format.FormatPercent(runStats.MinCPUPercent),
		format.FormatPercent(runStats.AvgCPUPercent),
		format.FormatPercent(runStats.MaxCPUPercent),
		ui.ColorReset())
	fmt.Fprintf(out, "%-10s %s%8s %8s %8s%s\n", "Memory %",
		ui.ColorWarning(),
		format.FormatPercent(runStats.MinMemPercent),
		format.FormatPercent(runStats.AvgMemPercent),
		format.FormatPercent(runStats.MaxMemPercent),
		ui.ColorReset())

	if len(runStats.Rollups) == 0 {
		return
	}
	fmt.Fprintf(out, "\nTop processes by average working set:\n")
	for _, r := range runStats.Rollups {
		fmt.Fprintf(out, "  %s%-28.28s%s %s%7s MB%s avg, %s%7s MB%s peak, %s threads\n",
			ui.ColorPrimary(), r.Name, ui.ColorReset(),
			ui.ColorInfo(), format.FormatMB(r.AvgWorkingSetMB), ui.ColorReset(),
			ui.ColorInfo(), format.FormatMB(r.MaxWorkingSetMB), ui.ColorReset(),
			format.FormatAverage(r.AvgThreads))
	}
}

// DisplayNoSamples informs the user that the run ended before any sample
// was collected.
func DisplayNoSamples(out io.Writer) {
	fmt.Fprintf(out, "\n%sNo samples were collected.%s\n", ui.ColorWarning(), ui.ColorReset())
}

// DisplayReportSaved confirms the report destination after a successful write.
func DisplayReportSaved(path string, out io.Writer) {
	fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
		ui.ColorSuccess(), ui.ColorInfo(), path, ui.ColorReset())
}

// DisplayInterrupted notes that the run was cut short; the samples taken so
// far are still summarized and reported.
func DisplayInterrupted(out io.Writer) {
	fmt.Fprintf(out, "\n%sMonitoring interrupted; reporting partial results.%s\n",
		ui.ColorWarning(), ui.ColorReset())
}
