// Package config defines the application configuration and its resolution
// chain. Values are resolved with the priority: CLI flags > environment
// variables (RESMON_ prefix) > built-in defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/agbru/resmon/internal/errors"
	"github.com/agbru/resmon/internal/stats"
)

// EnvPrefix is prepended to every environment variable the tool reads.
const EnvPrefix = "RESMON_"

// Default values applied when neither a flag nor an environment variable
// sets the option.
const (
	DefaultDuration   = 60 * time.Second
	DefaultInterval   = 5 * time.Second
	DefaultOutputFile = "resmon-report.txt"
	DefaultSummaryTop = stats.SummaryTopN
)

// MinInterval is the smallest supported sampling interval. Sub-second
// sampling is not supported.
const MinInterval = time.Second

// AppConfig holds the complete runtime configuration of a monitoring run.
type AppConfig struct {
	// Duration is the total length of the monitoring run.
	Duration time.Duration
	// Interval is the spacing between consecutive samples.
	Interval time.Duration
	// OutputFile is the path the plain-text report is written to.
	// Empty disables report persistence.
	OutputFile string
	// SummaryTop is the number of process rollup rows shown in the
	// end-of-run terminal summary.
	SummaryTop int
	// Quiet suppresses the live progress line and the terminal summary.
	Quiet bool
	// Verbose enables debug-level logging.
	Verbose bool
	// NoColor disables ANSI colors in terminal output.
	NoColor bool
}

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment variable overrides for flags that were not set explicitly,
// and validates the result.
//
// Parameters:
//   - args: The command-line arguments (without the program name).
//   - errWriter: The writer for flag parsing error messages and usage.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: A ConfigError or ValidationError describing why the
//     configuration cannot be used.
func ParseConfig(args []string, errWriter io.Writer) (AppConfig, error) {
	cfg := AppConfig{}

	fs := flag.NewFlagSet("resmon", flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.DurationVar(&cfg.Duration, "duration", DefaultDuration, "Total monitoring duration (e.g. 2m, 90s)")
	fs.DurationVar(&cfg.Interval, "interval", DefaultInterval, "Sampling interval (minimum 1s)")
	fs.StringVar(&cfg.OutputFile, "output", DefaultOutputFile, "Report output file (empty to disable)")
	fs.StringVar(&cfg.OutputFile, "o", DefaultOutputFile, "Report output file (shorthand)")
	fs.IntVar(&cfg.SummaryTop, "top", DefaultSummaryTop, "Process rollup rows in the terminal summary")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Suppress live progress and the terminal summary")
	fs.BoolVar(&cfg.Quiet, "q", false, "Suppress live progress and the terminal summary (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable debug logging")
	fs.BoolVar(&cfg.Verbose, "v", false, "Enable debug logging (shorthand)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output")

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.NewConfigError("invalid arguments: %v", err)
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected argument: %q", fs.Arg(0))
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the configuration invariants. It returns a
// ValidationError naming the first offending option.
func (c AppConfig) Validate() error {
	if c.Duration <= 0 {
		return apperrors.ValidationError{
			Field:   "duration",
			Message: fmt.Sprintf("must be positive, got %s", c.Duration),
		}
	}
	if c.Interval < MinInterval {
		return apperrors.ValidationError{
			Field:   "interval",
			Message: fmt.Sprintf("must be at least %s, got %s", MinInterval, c.Interval),
		}
	}
	if c.Interval > c.Duration {
		return apperrors.ValidationError{
			Field:   "interval",
			Message: fmt.Sprintf("must not exceed duration (%s > %s)", c.Interval, c.Duration),
		}
	}
	if c.SummaryTop <= 0 {
		return apperrors.ValidationError{
			Field:   "top",
			Message: fmt.Sprintf("must be positive, got %d", c.SummaryTop),
		}
	}
	return nil
}
