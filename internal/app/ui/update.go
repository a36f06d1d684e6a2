package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"liftoff/internal/app/mission"
	"liftoff/internal/app/telemetry"
	"liftoff/internal/config"
)

// Update handles incoming messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.ForceQuit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Arm):
			if m.snapshot.State == mission.StateIdle {
				m.mission.Arm()
				m.appendEvent("arm requested")
			}

			return m, nil
		}

		return m, nil

	case tickMsg:
		m.snapshot = m.mission.Snapshot()

		return m, tickCmd()

	case busMsg:
		m.applyEvent(telemetry.Event(msg))

		return m, waitForEventCmd(m.msgChan)

	case busClosedMsg:
		return m, nil
	}

	return m, nil
}

// applyEvent folds a bus event into the displayed history
func (m *Model) applyEvent(event telemetry.Event) {
	switch event.Type {
	case telemetry.EventStateChanged:
		if data, ok := event.Data.(telemetry.StateChangedData); ok {
			if data.From == "" {
				m.appendEvent(fmt.Sprintf("entered %s", data.To))
			} else {
				m.appendEvent(fmt.Sprintf("%s -> %s", data.From, data.To))
			}
		}
	case telemetry.EventRetryEmitted:
		if data, ok := event.Data.(telemetry.RetryEmittedData); ok {
			m.appendEvent(fmt.Sprintf("retry in %s: %s", data.State, data.Frame.String()))
		}
	case telemetry.EventMissionAborted:
		if data, ok := event.Data.(telemetry.MissionAbortedData); ok {
			m.appendEvent(fmt.Sprintf("ABORT: %s", data.Reason))
		}
	case telemetry.EventMissionComplete:
		m.appendEvent("mission complete")
	case telemetry.EventConfigChanged:
		if data, ok := event.Data.(telemetry.ConfigChangedData); ok {
			m.appendEvent(fmt.Sprintf("config changed: %s", data.Path))
		}
	case telemetry.EventStatsSampled:
		if data, ok := event.Data.(telemetry.StatsSampledData); ok {
			m.cpu = data.CPU
			m.mem = data.MEM
		}
	}
}

// appendEvent keeps the most recent entries up to the display depth
func (m *Model) appendEvent(line string) {
	m.events = append(m.events, line)

	if len(m.events) > config.EventLogDepth {
		m.events = m.events[len(m.events)-config.EventLogDepth:]
	}
}
