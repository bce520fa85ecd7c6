package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/agbru/resmon/internal/cli"
	apperrors "github.com/agbru/resmon/internal/errors"
	"github.com/agbru/resmon/internal/format"
	"github.com/agbru/resmon/internal/logging"
	"github.com/agbru/resmon/internal/orchestration"
	"github.com/agbru/resmon/internal/report"
	"github.com/agbru/resmon/internal/sampler"
	"github.com/agbru/resmon/internal/snapshot"
	"github.com/agbru/resmon/internal/stats"
	"github.com/agbru/resmon/internal/ui"
)

// Run executes a full monitoring run and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	a.initLogging()
	ui.InitTheme(a.Config.NoColor)

	// An unwritable report destination must fail before minutes of
	// sampling, so the file is created (and truncated) up front.
	if err := report.PrepareOutputFile(a.Config.OutputFile); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	provider := a.newProvider(a.log)
	defer func() {
		if err := provider.Close(); err != nil {
			a.log.Debug("provider close failed", logging.Err(err))
		}
	}()

	ticks := sampler.TickCount(a.Config.Duration, a.Config.Interval)
	if !a.Config.Quiet {
		cli.DisplayRunConfig(a.Config, provider.Variant(), ticks, out)
	}

	smp := sampler.New(provider, snapshot.New(a.log), a.Config.Duration, a.Config.Interval, a.log, a.samplerOpts...)

	var display sampler.Sink = sampler.NullSink{}
	if !a.Config.Quiet {
		live := cli.NewLiveSink(out, ticks)
		live.Start()
		display = live
	}

	startedAt := time.Now()
	result := orchestration.ExecuteRun(ctx, smp, display)

	if live, ok := display.(*cli.LiveSink); ok {
		live.Stop()
	}

	if result.Err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: sampling failed: %v\n", result.Err)
		return apperrors.ExitErrorGeneric
	}

	interrupted := ctx.Err() != nil
	if interrupted && !a.Config.Quiet {
		cli.DisplayInterrupted(out)
	}

	a.log.Info("run finished",
		logging.Int("samples", len(result.Samples)),
		logging.String("elapsed", format.FormatExecutionDuration(result.Duration)))

	if !a.Config.Quiet {
		if runStats, ok := stats.Summarize(result.Samples, a.Config.SummaryTop); ok {
			cli.DisplaySummary(runStats, len(result.Samples), out)
		} else {
			cli.DisplayNoSamples(out)
		}
	}

	if a.Config.OutputFile != "" {
		meta := report.RunMeta{
			GeneratedAt: startedAt,
			Platform:    hostPlatform(),
			Processors:  runtime.NumCPU(),
			Duration:    a.Config.Duration,
			Interval:    a.Config.Interval,
		}
		doc := report.Format(result.Samples, meta)
		if err := report.WriteReportToFile(a.Config.OutputFile, doc); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitErrorReport
		}
		if !a.Config.Quiet {
			cli.DisplayReportSaved(a.Config.OutputFile, out)
		}
	}

	if interrupted && len(result.Samples) == 0 {
		// Nothing was measured; exit like a conventional SIGINT.
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// hostPlatform returns a human-readable platform description for the report
// header, e.g. "linux/ubuntu 24.04".
func hostPlatform() string {
	info, err := host.Info()
	if err != nil || info.Platform == "" {
		return runtime.GOOS
	}
	if info.PlatformVersion == "" {
		return fmt.Sprintf("%s/%s", info.OS, info.Platform)
	}
	return fmt.Sprintf("%s/%s %s", info.OS, info.Platform, info.PlatformVersion)
}
