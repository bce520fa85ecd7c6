// Package app wires the application together: configuration, logging,
// platform detection, the sampling run, and the final report.
package app

import (
	"errors"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/resmon/internal/config"
	"github.com/agbru/resmon/internal/logging"
	"github.com/agbru/resmon/internal/platform"
	"github.com/agbru/resmon/internal/sampler"
)

// Application represents the resmon application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer

	newProvider func(logging.Logger) platform.Provider
	samplerOpts []sampler.Option
	log         logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithProviderFactory sets a custom platform provider factory. Tests use
// this to substitute deterministic metrics.
func WithProviderFactory(f func(logging.Logger) platform.Provider) AppOption {
	return func(a *Application) { a.newProvider = f }
}

// WithSamplerOptions passes extra options to the sampler. Tests shrink the
// settle delay with this.
func WithSamplerOptions(opts ...sampler.Option) AppOption {
	return func(a *Application) { a.samplerOpts = opts }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.newProvider == nil {
		app.newProvider = platform.NewProvider
	}

	var cmdArgs []string
	if len(args) > 0 {
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// initLogging configures the global log level and builds the application
// logger.
func (a *Application) initLogging() {
	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	a.log = logging.NewDefaultLogger()
}
