package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	apperrors "github.com/agbru/resmon/internal/errors"
)

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig(nil, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Duration != DefaultDuration {
		t.Errorf("Duration = %s, want %s", cfg.Duration, DefaultDuration)
	}
	if cfg.Interval != DefaultInterval {
		t.Errorf("Interval = %s, want %s", cfg.Interval, DefaultInterval)
	}
	if cfg.OutputFile != DefaultOutputFile {
		t.Errorf("OutputFile = %q, want %q", cfg.OutputFile, DefaultOutputFile)
	}
	if cfg.SummaryTop != DefaultSummaryTop {
		t.Errorf("SummaryTop = %d, want %d", cfg.SummaryTop, DefaultSummaryTop)
	}
	if cfg.Quiet || cfg.Verbose || cfg.NoColor {
		t.Error("Boolean options should default to false")
	}
}

func TestParseConfigFlags(t *testing.T) {
	args := []string{
		"-duration", "2m",
		"-interval", "10s",
		"-o", "run.txt",
		"-top", "3",
		"-q",
		"-verbose",
		"-no-color",
	}
	cfg, err := ParseConfig(args, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Duration != 2*time.Minute {
		t.Errorf("Duration = %s, want 2m", cfg.Duration)
	}
	if cfg.Interval != 10*time.Second {
		t.Errorf("Interval = %s, want 10s", cfg.Interval)
	}
	if cfg.OutputFile != "run.txt" {
		t.Errorf("OutputFile = %q, want %q", cfg.OutputFile, "run.txt")
	}
	if cfg.SummaryTop != 3 {
		t.Errorf("SummaryTop = %d, want 3", cfg.SummaryTop)
	}
	if !cfg.Quiet || !cfg.Verbose || !cfg.NoColor {
		t.Error("Boolean flags not applied")
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("RESMON_DURATION", "90s")
	t.Setenv("RESMON_INTERVAL", "3s")
	t.Setenv("RESMON_OUTPUT", "env.txt")
	t.Setenv("RESMON_QUIET", "yes")

	cfg, err := ParseConfig(nil, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Duration != 90*time.Second {
		t.Errorf("Duration = %s, want 90s", cfg.Duration)
	}
	if cfg.Interval != 3*time.Second {
		t.Errorf("Interval = %s, want 3s", cfg.Interval)
	}
	if cfg.OutputFile != "env.txt" {
		t.Errorf("OutputFile = %q, want %q", cfg.OutputFile, "env.txt")
	}
	if !cfg.Quiet {
		t.Error("Quiet env override not applied")
	}
}

func TestParseConfigFlagBeatsEnv(t *testing.T) {
	t.Setenv("RESMON_DURATION", "5m")
	t.Setenv("RESMON_OUTPUT", "env.txt")

	cfg, err := ParseConfig([]string{"-duration", "30s", "-o", "flag.txt"}, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Duration != 30*time.Second {
		t.Errorf("Duration = %s, want flag value 30s", cfg.Duration)
	}
	if cfg.OutputFile != "flag.txt" {
		t.Errorf("OutputFile = %q, want flag value", cfg.OutputFile)
	}
}

func TestParseConfigInvalidEnvIgnored(t *testing.T) {
	t.Setenv("RESMON_INTERVAL", "not-a-duration")

	cfg, err := ParseConfig(nil, io.Discard)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cfg.Interval != DefaultInterval {
		t.Errorf("Interval = %s, want default %s", cfg.Interval, DefaultInterval)
	}
}

func TestParseConfigErrors(t *testing.T) {
	testCases := []struct {
		name  string
		args  []string
		field string
	}{
		{name: "Zero duration", args: []string{"-duration", "0s"}, field: "duration"},
		{name: "Negative duration", args: []string{"-duration", "-10s"}, field: "duration"},
		{name: "Sub-second interval", args: []string{"-interval", "500ms"}, field: "interval"},
		{name: "Interval exceeds duration", args: []string{"-duration", "5s", "-interval", "10s"}, field: "interval"},
		{name: "Zero top", args: []string{"-top", "0"}, field: "top"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseConfig(tc.args, io.Discard)
			if err == nil {
				t.Fatal("Expected validation error, got nil")
			}
			var valErr apperrors.ValidationError
			if !errors.As(err, &valErr) {
				t.Fatalf("Expected ValidationError, got %T: %v", err, err)
			}
			if valErr.Field != tc.field {
				t.Errorf("Field = %q, want %q", valErr.Field, tc.field)
			}
		})
	}
}

func TestParseConfigUnknownFlag(t *testing.T) {
	_, err := ParseConfig([]string{"-bogus"}, io.Discard)
	if err == nil {
		t.Fatal("Expected error for unknown flag")
	}
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError, got %T: %v", err, err)
	}
}

func TestParseConfigPositionalArgument(t *testing.T) {
	_, err := ParseConfig([]string{"extra"}, io.Discard)
	if err == nil {
		t.Fatal("Expected error for positional argument")
	}
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("Expected ConfigError, got %T: %v", err, err)
	}
}

func TestParseConfigHelp(t *testing.T) {
	_, err := ParseConfig([]string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("Expected flag.ErrHelp, got %v", err)
	}
}
