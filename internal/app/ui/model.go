package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"liftoff/internal/app/mission"
	"liftoff/internal/app/telemetry"
	"liftoff/internal/config"
	"liftoff/internal/config/logger"
)

// Mission is the read-only surface the dashboard observes, plus the
// operator's arm request
type Mission interface {
	Snapshot() mission.Snapshot
	Arm()
}

// tickMsg drives the snapshot poll
type tickMsg time.Time

// busMsg carries one mission event from the bus subscription
type busMsg telemetry.Event

// busClosedMsg signals the subscription ended
type busClosedMsg struct{}

// Model represents the Bubble Tea model for the mission dashboard
type Model struct {
	ctx     context.Context
	mission Mission
	msgChan <-chan telemetry.Event

	snapshot mission.Snapshot
	events   []string
	cpu      float64
	mem      float64

	width  int
	height int
	keys   KeyMap

	log logger.Logger
}

// NewModel creates a new dashboard model
func NewModel(ctx context.Context, m Mission, bus telemetry.Bus, log logger.Logger) Model {
	log = log.WithComponent("UI")

	return Model{
		ctx:      ctx,
		mission:  m,
		msgChan:  bus.Subscribe(ctx),
		snapshot: m.Snapshot(),
		events:   make([]string, 0, config.EventLogDepth),
		keys:     DefaultKeyMap(),
		log:      log,
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		waitForEventCmd(m.msgChan),
	)
}

// tickCmd schedules the next snapshot poll
func tickCmd() tea.Cmd {
	return tea.Tick(config.DashboardRefresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitForEventCmd relays the next bus event into the program
func waitForEventCmd(ch <-chan telemetry.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return busClosedMsg{}
		}

		return busMsg(event)
	}
}
