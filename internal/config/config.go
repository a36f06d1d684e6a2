package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"

	"liftoff/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	Devices   Devices `yaml:"devices"`
	Transport struct {
		Address        string        `yaml:"address"`
		DialTimeout    time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
		ReceiveTimeout time.Duration `yaml:"receive_timeout" mapstructure:"receive_timeout"`
	} `yaml:"transport"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Telemetry struct {
		MetricsAddress string `yaml:"metrics_address" mapstructure:"metrics_address"`
		Buffer         int    `yaml:"buffer"`
	} `yaml:"telemetry"`
	Loop struct {
		Tick time.Duration `yaml:"tick"`
	} `yaml:"loop"`
	Watch struct {
		Enabled  bool          `yaml:"enabled"`
		Debounce time.Duration `yaml:"debounce"`
	} `yaml:"watch"`

	// Path records where the config was loaded from, for the watcher.
	Path string
}

// Devices holds the declarative hardware layout
type Devices struct {
	Servo map[string]*Servo `yaml:"servo"`
	Relay map[string]*Relay `yaml:"relay"`
}

// Servo describes a positional actuator
type Servo struct {
	DeviceID  uint16  `yaml:"device_id" mapstructure:"device_id"`
	ClosedPos float64 `yaml:"closed_pos" mapstructure:"closed_pos"`
}

// Relay describes a binary actuator
type Relay struct {
	DeviceID uint16 `yaml:"device_id" mapstructure:"device_id"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Devices.Servo = make(map[string]*Servo)
	cfg.Devices.Relay = make(map[string]*Relay)

	cfg.Transport.Address = DefaultEndpoint
	cfg.Transport.DialTimeout = DialTimeout
	cfg.Transport.ReceiveTimeout = ReceiveTimeout

	cfg.Logging.Level = LogLevel
	cfg.Logging.Format = LogFormat

	cfg.Telemetry.Buffer = EventBufferSize

	cfg.Loop.Tick = TickInterval

	cfg.Watch.Debounce = WatchDebounce

	return cfg
}

// Load loads the configuration from the given file
func Load(path string) (*Config, error) {
	if path == "" {
		path = ConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", errors.ErrFailedToReadConfig, path)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	cfg.Path = path

	return cfg, nil
}

// Parse parses a configuration document
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return nil, errors.ErrFailedToReadConfig
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if len(c.Devices.Servo) == 0 && len(c.Devices.Relay) == 0 {
		return errors.ErrNoDevicesConfigured
	}

	if c.Loop.Tick <= 0 {
		return errors.ErrInvalidTickInterval
	}

	seenServo := make(map[uint16]string)

	for name, servo := range c.Devices.Servo {
		if prev, dup := seenServo[servo.DeviceID]; dup {
			return fmt.Errorf("%w: servo %s and %s share id %d", errors.ErrDuplicateDeviceID, prev, name, servo.DeviceID)
		}

		seenServo[servo.DeviceID] = name

		if servo.ClosedPos < 0 || servo.ClosedPos > 100 {
			return fmt.Errorf("%w: servo %s", errors.ErrInvalidClosedPos, name)
		}
	}

	seenRelay := make(map[uint16]string)

	for name, relay := range c.Devices.Relay {
		if prev, dup := seenRelay[relay.DeviceID]; dup {
			return fmt.Errorf("%w: relay %s and %s share id %d", errors.ErrDuplicateDeviceID, prev, name, relay.DeviceID)
		}

		seenRelay[relay.DeviceID] = name
	}

	return nil
}
