package app

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/getsentry/sentry-go"
	"go.uber.org/fx"

	"liftoff/internal/app/cli"
	"liftoff/internal/app/mission"
	"liftoff/internal/app/monitor"
	"liftoff/internal/app/telemetry"
	"liftoff/internal/app/transport"
	"liftoff/internal/app/ui"
	"liftoff/internal/app/watcher"
	"liftoff/internal/config"
	"liftoff/internal/config/logger"
)

// App represents the main application container
type App struct {
	cfg     *config.Config
	opts    *cli.Options
	mission *mission.Context
	trans   transport.Transport
	bus     telemetry.Bus
	metrics *telemetry.Metrics
	monitor monitor.Monitor
	watcher watcher.Watcher
	log     logger.Logger

	cancel context.CancelFunc
}

// NewApp creates a new application instance with its dependencies
func NewApp(
	cfg *config.Config,
	opts *cli.Options,
	missionCtx *mission.Context,
	trans transport.Transport,
	bus telemetry.Bus,
	metrics *telemetry.Metrics,
	mon monitor.Monitor,
	w watcher.Watcher,
	log logger.Logger,
) *App {
	return &App{
		cfg:     cfg,
		opts:    opts,
		mission: missionCtx,
		trans:   trans,
		bus:     bus,
		metrics: metrics,
		monitor: mon,
		watcher: w,
		log:     log.WithComponent("APP"),
	}
}

// Start brings the mission loop and its observers up
func (a *App) Start(shutdowner fx.Shutdowner) error {
	runCtx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel

	if err := a.mission.Init(runCtx); err != nil {
		cancel()
		return err
	}

	go func() {
		a.mission.Run(runCtx)
	}()

	a.monitor.Start(runCtx)
	a.metrics.Serve(runCtx, a.cfg.Telemetry.MetricsAddress)

	if a.cfg.Watch.Enabled {
		if err := a.watcher.Start(); err != nil {
			a.log.Warn().Err(err).Msg("Config watch unavailable")
		}
	}

	go a.reportTerminalEvents(runCtx)

	if !a.opts.NoUI {
		go a.runDashboard(runCtx, shutdowner)
	}

	return nil
}

// Stop tears everything down
func (a *App) Stop() error {
	if a.cancel != nil {
		a.cancel()
	}

	a.watcher.Close()
	a.bus.Close()

	return a.trans.Close()
}

// runDashboard blocks on the dashboard program and shuts the app down
// when the operator quits
func (a *App) runDashboard(ctx context.Context, shutdowner fx.Shutdowner) {
	model := ui.NewModel(ctx, a.mission, a.bus, a.log)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		a.log.Error().Err(err).Msg("Dashboard failed")
	}

	_ = shutdowner.Shutdown()
}

// reportTerminalEvents forwards aborts and completion to the error sink
func (a *App) reportTerminalEvents(ctx context.Context) {
	events := a.bus.Subscribe(ctx)

	for event := range events {
		switch event.Type {
		case telemetry.EventMissionAborted:
			reason := ""
			if data, ok := event.Data.(telemetry.MissionAbortedData); ok {
				reason = data.Reason
			}

			sentry.CaptureMessage(fmt.Sprintf("mission aborted: %s", reason))
		case telemetry.EventMissionComplete:
			a.log.Info().Msg("Mission complete")
		}
	}
}

// Register registers the application's lifecycle hooks with fx
func Register(lifecycle fx.Lifecycle, app *App, shutdowner fx.Shutdowner) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return app.Start(shutdowner)
		},
		OnStop: func(ctx context.Context) error {
			return app.Stop()
		},
	})
}
