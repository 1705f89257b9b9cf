package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/config"
	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/event"
	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/logging"
	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/notify"
	"github.com/LISSConsulting/LISSTech.NZBNotify/internal/pipeline"
)

const banner = `*** NZBGet post-processing script ***
This script is supposed to be called from NZBGet (11.0 or later).
`

// eventContext snapshots the process environment, with the --env-file
// values filling in anything the environment does not set.
func (a *app) eventContext() (event.Context, error) {
	ec := event.FromEnviron(a.environ)
	if a.envFile == "" {
		return ec, nil
	}
	vars, err := event.LoadEnvFile(a.envFile)
	if err != nil {
		return event.Context{}, err
	}
	return ec.WithDefaults(vars), nil
}

// loadConfig layers defaults, the optional TOML file and the NZBPO_* options.
func (a *app) loadConfig(ec event.Context) (*config.Config, error) {
	cfg, err := config.Load(config.Locate(a.configPath, ec))
	if err != nil {
		return nil, err
	}
	cfg.ApplyOptions(ec)
	return cfg, nil
}

func (a *app) logger() *slog.Logger {
	return logging.NewLogger(a.out, a.verbose)
}

// executeEvent is the NZBGet entry point: it runs whichever flow the
// environment describes and returns the exit status.
func (a *app) executeEvent(ctx context.Context) int {
	return a.execute(ctx, true, (*pipeline.Pipeline).Run)
}

// executeTest sends the connectivity-test notification.
func (a *app) executeTest(ctx context.Context) int {
	return a.execute(ctx, false, (*pipeline.Pipeline).Test)
}

func (a *app) execute(ctx context.Context, requireNZBGet bool, runFn func(*pipeline.Pipeline, context.Context, event.Context) pipeline.Result) int {
	logger := a.logger()

	ec, err := a.eventContext()
	if err != nil {
		logger.Error(err.Error())
		return pipeline.ExitError
	}
	if requireNZBGet && !ec.FromNZBGet() {
		fmt.Fprint(a.out, banner)
		return pipeline.ExitError
	}

	cfg, err := a.loadConfig(ec)
	if err != nil {
		logger.Error(err.Error())
		return pipeline.ExitError
	}

	ctx, cancel := signalContext(ctx)
	defer cancel()

	p := &pipeline.Pipeline{
		Config: cfg,
		Sender: notify.FromConfig(*cfg),
		Logger: logger,
	}
	res := runFn(p, ctx, ec)
	logger.Debug("finished", "outcome", res.Outcome.String(), "exit", res.Outcome.ExitCode())
	return res.Outcome.ExitCode()
}

// signalContext returns a context cancelled on SIGINT or SIGTERM, so an
// in-flight delivery is abandoned when NZBGet stops the extension.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
}
