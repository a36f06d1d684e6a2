package watcher

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"liftoff/internal/app/telemetry"
	"liftoff/internal/config"
	"liftoff/internal/config/logger"
)

// Watcher monitors the hardware configuration file. Changes are
// debounced, announced on the bus, and handed to the reload callback
// with the freshly parsed config. The mission core applies a reload
// only while Idle.
type Watcher interface {
	Start() error
	Close()
}

// manager implements the Watcher interface
type manager struct {
	cfg       *config.Config
	bus       telemetry.Bus
	reload    func(cfg *config.Config)
	fsWatcher *fsnotify.Watcher
	debouncer Debouncer
	log       logger.Logger
}

// NewWatcher creates a new Watcher instance
func NewWatcher(cfg *config.Config, bus telemetry.Bus, reload func(cfg *config.Config), log logger.Logger) (Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	m := &manager{
		cfg:       cfg,
		bus:       bus,
		reload:    reload,
		fsWatcher: fsw,
		log:       log.WithComponent("WATCHER"),
	}

	m.debouncer = NewDebouncer(cfg.Watch.Debounce, m.onChanged)

	return m, nil
}

// Start begins watching the config file's directory
func (m *manager) Start() error {
	dir := filepath.Dir(m.cfg.Path)

	if err := m.fsWatcher.Add(dir); err != nil {
		return err
	}

	go m.processEvents()

	m.log.Info().Str("file", m.cfg.Path).Msg("Watching hardware config")

	return nil
}

// processEvents filters fsnotify events down to the config file
func (m *manager) processEvents() {
	target, _ := filepath.Abs(m.cfg.Path)

	for {
		select {
		case event, ok := <-m.fsWatcher.Events:
			if !ok {
				return
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			path, _ := filepath.Abs(event.Name)
			if path == target {
				m.debouncer.Trigger(path)
			}
		case err, ok := <-m.fsWatcher.Errors:
			if !ok {
				return
			}

			m.log.Warn().Err(err).Msg("Watch error")
		}
	}
}

// onChanged re-parses the config and hands it to the reload callback
func (m *manager) onChanged(files []string) {
	cfg, err := config.Load(m.cfg.Path)
	if err != nil {
		m.log.Warn().Err(err).Msg("Changed config did not parse, keeping current devices")
		return
	}

	m.log.Info().Str("file", m.cfg.Path).Msg("Hardware config changed")

	m.bus.Publish(telemetry.Event{
		Type: telemetry.EventConfigChanged,
		Data: telemetry.ConfigChangedData{Path: m.cfg.Path},
	})

	if m.reload != nil {
		m.reload(cfg)
	}
}

// Close stops watching
func (m *manager) Close() {
	m.debouncer.Stop()
	_ = m.fsWatcher.Close()
}
