package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"liftoff/internal/app/mission"
)

// View renders the dashboard
func (m Model) View() string {
	sections := []string{
		titleStyle.Render("liftoff mission control"),
		m.renderState(),
		lipgloss.JoinHorizontal(lipgloss.Top, m.renderSensors(), m.renderDevices()),
		m.renderEvents(),
		m.renderFooter(),
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderState shows the active mission state
func (m Model) renderState() string {
	var style lipgloss.Style

	switch m.snapshot.State {
	case mission.StateAbort:
		style = stateAbortStyle
	case mission.StateLanded, mission.StateIdle:
		style = stateNominalStyle
	default:
		style = stateActiveStyle
	}

	return panelStyle.Render(labelStyle.Render("state ") + style.Render(m.snapshot.State))
}

// renderSensors lists sensor readouts
func (m Model) renderSensors() string {
	lines := make([]string, 0, len(m.snapshot.Registry.Sensors)+1)
	lines = append(lines, labelStyle.Render("sensors"))

	for _, name := range sortedKeys(m.snapshot.Registry.Sensors) {
		lines = append(lines, fmt.Sprintf("%-18s %8.2f", name, m.snapshot.Registry.Sensors[name]))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

// renderDevices lists servo positions and relay states
func (m Model) renderDevices() string {
	lines := make([]string, 0, len(m.snapshot.Registry.Servos)+len(m.snapshot.Registry.Relays)+2)
	lines = append(lines, labelStyle.Render("servos"))

	for _, name := range sortedKeys(m.snapshot.Registry.Servos) {
		lines = append(lines, fmt.Sprintf("%-18s %8.1f", name, m.snapshot.Registry.Servos[name]))
	}

	lines = append(lines, labelStyle.Render("relays"))

	for _, name := range sortedKeys(m.snapshot.Registry.Relays) {
		state := "closed"
		if m.snapshot.Registry.Relays[name] != 0 {
			state = "open"
		}

		lines = append(lines, fmt.Sprintf("%-18s %8s", name, state))
	}

	return panelStyle.Render(strings.Join(lines, "\n"))
}

// renderEvents shows the recent mission events
func (m Model) renderEvents() string {
	if len(m.events) == 0 {
		return panelStyle.Render(labelStyle.Render("no events yet"))
	}

	return panelStyle.Render(strings.Join(m.events, "\n"))
}

// renderFooter shows process stats and key help
func (m Model) renderFooter() string {
	stats := fmt.Sprintf("cpu %.1f%%  mem %.1fMB", m.cpu, m.mem)

	return helpStyle.Render(stats + "  ·  a arm · q quit")
}

// sortedKeys returns map keys in stable order
func sortedKeys(values map[string]float64) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}
