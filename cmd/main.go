package main

import (
	"fmt"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"liftoff/internal/app"
	"liftoff/internal/app/cli"
	"liftoff/internal/config"
	"liftoff/internal/config/logger"
)

// main is the entry point for the application
func main() {
	runApp()
}

// runApp contains the main application logic
func runApp() {
	_ = godotenv.Load()

	cmd, err := cli.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if cmd.Type == cli.CommandVersion {
		fmt.Printf("%s %s\n", config.AppName, config.Version)
		return
	}

	cfg, err := config.Load(cmd.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cmd.Apply(cfg)

	initSentry()
	defer sentry.Flush(2 * time.Second)

	createApp(cfg, cmd).Run()
}

// initSentry enables crash and abort reporting when a DSN is configured
func initSentry() {
	dsn := os.Getenv("LIFTOFF_SENTRY_DSN")
	if dsn == "" {
		return
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:     dsn,
		Release: config.AppName + "@" + config.Version,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Sentry init failed: %v\n", err)
	}
}

// createApp creates the FX application with the given config and options
func createApp(cfg *config.Config, cmd *cli.Options) *fx.App {
	return fx.New(
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg, cmd),
		fx.Provide(func() logger.Logger {
			return logger.NewLogger(cfg)
		}),
		app.Module,
	)
}

// createFxLogger returns an FX logger based on the config
func createFxLogger(cfg *config.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel {
			return &fxevent.ConsoleLogger{W: os.Stdout}
		}

		return fxevent.NopLogger
	}
}
