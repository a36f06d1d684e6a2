package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"liftoff/internal/app/telemetry"
	"liftoff/internal/config"
	"liftoff/internal/config/logger"
)

const watchedConfig = `
devices:
  relay:
    igniter: {device_id: 1}
`

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func Test_Watcher_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mission.yaml")
	writeConfig(t, path, watchedConfig)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	cfg.Watch.Debounce = 20 * time.Millisecond

	bus := telemetry.NewBus(8)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := bus.Subscribe(ctx)
	reloaded := make(chan *config.Config, 1)

	w, err := NewWatcher(cfg, bus, func(next *config.Config) {
		reloaded <- next
	}, logger.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Start())

	writeConfig(t, path, watchedConfig+"    parachute: {device_id: 2}\n")

	select {
	case next := <-reloaded:
		assert.Len(t, next.Devices.Relay, 2)
	case <-time.After(3 * time.Second):
		t.Fatal("Expected reload callback")
	}

	select {
	case event := <-events:
		assert.Equal(t, telemetry.EventConfigChanged, event.Type)
	case <-time.After(time.Second):
		t.Fatal("Expected config changed event")
	}
}

func Test_Watcher_KeepsDevicesOnBadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mission.yaml")
	writeConfig(t, path, watchedConfig)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	cfg.Watch.Debounce = 20 * time.Millisecond

	reloaded := make(chan *config.Config, 1)

	w, err := NewWatcher(cfg, telemetry.NewNoOpBus(), func(next *config.Config) {
		reloaded <- next
	}, logger.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Start())

	writeConfig(t, path, "devices: {}\n")

	select {
	case <-reloaded:
		t.Fatal("Invalid config must not reach the reload callback")
	case <-time.After(300 * time.Millisecond):
	}
}

func Test_Watcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mission.yaml")
	writeConfig(t, path, watchedConfig)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	cfg.Watch.Debounce = 20 * time.Millisecond

	reloaded := make(chan *config.Config, 1)

	w, err := NewWatcher(cfg, telemetry.NewNoOpBus(), func(next *config.Config) {
		reloaded <- next
	}, logger.NewNop())
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Start())

	writeConfig(t, filepath.Join(dir, "notes.txt"), "unrelated")

	select {
	case <-reloaded:
		t.Fatal("Sibling file changes must not trigger a reload")
	case <-time.After(300 * time.Millisecond):
	}
}
