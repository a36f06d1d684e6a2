package cli

import (
	"github.com/spf13/cobra"

	"liftoff/internal/config"
)

// CommandType represents the type of CLI command
type CommandType int

// Command type values
const (
	CommandRun CommandType = iota
	CommandVersion
)

// Options contains the parsed command-line arguments
type Options struct {
	Type       CommandType
	ConfigPath string
	NoUI       bool
	Metrics    string
	LogLevel   string
}

// Parse parses command-line args and returns an Options struct
func Parse(args []string) (*Options, error) {
	result := &Options{
		Type:       CommandRun,
		ConfigPath: config.ConfigFile,
	}

	root := &cobra.Command{
		Use:           config.AppName,
		Short:         "Mission control core for a liquid-propellant rocket",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&result.ConfigPath, "config", "c", config.ConfigFile, "hardware configuration file")
	root.PersistentFlags().BoolVar(&result.NoUI, "no-ui", false, "run headless without the dashboard")
	root.PersistentFlags().StringVar(&result.Metrics, "metrics", "", "address to serve prometheus metrics on")
	root.PersistentFlags().StringVar(&result.LogLevel, "log-level", "", "override the configured log level")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			result.Type = CommandVersion
		},
	})

	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		return nil, err
	}

	return result, nil
}

// Apply folds CLI overrides into the loaded configuration
func (o *Options) Apply(cfg *config.Config) {
	if o.LogLevel != "" {
		cfg.Logging.Level = o.LogLevel
	}

	if o.Metrics != "" {
		cfg.Telemetry.MetricsAddress = o.Metrics
	}
}
