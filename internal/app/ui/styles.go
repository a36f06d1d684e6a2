package ui

import "github.com/charmbracelet/lipgloss"

const (
	ColorPrimary = lipgloss.Color("#7D56F4") // Purple - titles and borders
	ColorBorder  = lipgloss.Color("8")       // Gray - help text
	ColorNominal = lipgloss.Color("10")      // Green - nominal states
	ColorActive  = lipgloss.Color("11")      // Yellow - in-progress states
	ColorAbort   = lipgloss.Color("9")       // Red - abort
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(0, 1)

	stateNominalStyle = lipgloss.NewStyle().
				Foreground(ColorNominal).
				Bold(true)

	stateActiveStyle = lipgloss.NewStyle().
				Foreground(ColorActive).
				Bold(true)

	stateAbortStyle = lipgloss.NewStyle().
			Foreground(ColorAbort).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorBorder).
			Padding(0, 1)
)
