package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liftoff/internal/config"
)

func testConfig(level, format string) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Logging.Level = level
	cfg.Logging.Format = format

	return cfg
}

func Test_NewLogger(t *testing.T) {
	log := NewLogger(testConfig("info", "console"))

	assert.NotNil(t, log)
	assert.NotNil(t, log.Debug())
	assert.NotNil(t, log.Info())
	assert.NotNil(t, log.Warn())
	assert.NotNil(t, log.Error())
}

func Test_NewLoggerWithOutput_JSON(t *testing.T) {
	var buf bytes.Buffer

	log := NewLoggerWithOutput(testConfig("debug", JSONFormat), &buf)

	log.Info().Str("device", "igniter").Int("id", 1).Msg("Relay commanded")

	out := buf.String()
	require.NotEmpty(t, out)
	assert.Contains(t, out, `"message":"Relay commanded"`)
	assert.Contains(t, out, `"device":"igniter"`)
	assert.Contains(t, out, `"id":1`)
	assert.Contains(t, out, `"version":"`+config.Version+`"`)
}

func Test_NewLoggerWithOutput_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	log := NewLoggerWithOutput(testConfig("warn", JSONFormat), &buf)

	log.Debug().Msg("hidden")
	log.Info().Msg("hidden")
	log.Warn().Msg("visible")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "visible")
}

func Test_NewLoggerWithOutput_DefaultsApplied(t *testing.T) {
	var buf bytes.Buffer

	cfg := testConfig("", "")
	log := NewLoggerWithOutput(cfg, &buf)

	require.NotNil(t, log)
	assert.Equal(t, InfoLevel, cfg.Logging.Level)
	assert.Equal(t, ConsoleFormat, cfg.Logging.Format)
}

func Test_WithComponent(t *testing.T) {
	var buf bytes.Buffer

	log := NewLoggerWithOutput(testConfig("info", JSONFormat), &buf)

	log.WithComponent("MISSION").Info().Msg("tagged")

	assert.Contains(t, buf.String(), `"component":"MISSION"`)
}

func Test_NewNop_Discards(t *testing.T) {
	log := NewNop()

	log.Info().Float("value", 1.5).Msg("dropped")
	log.Error().Err(assert.AnError).Msgf("dropped %d", 1)
}

func Test_NoopEvent_Chains(t *testing.T) {
	event := &NoopEvent{}

	event.Str("a", "b").Int("c", 1).Float("d", 2).Err(nil).Msg("nothing")
}

func Test_GetLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{DebugLevel, "debug"},
		{InfoLevel, "info"},
		{WarnLevel, "warn"},
		{ErrorLevel, "error"},
		{TraceLevel, "trace"},
		{"bogus", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, strings.ToLower(getLogLevel(tt.level).String()))
		})
	}
}
