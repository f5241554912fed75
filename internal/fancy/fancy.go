// Package fancy provides pretty printing utilities and styling for CLI output
package fancy

import (
	"github.com/charmbracelet/lipgloss"
)

// Common colors for different types of elements
var (
	ColorBlue     = lipgloss.Color("39")  // Blue
	ColorOrange   = lipgloss.Color("208") // Orange
	ColorGreen    = lipgloss.Color("82")  // Green
	ColorYellow   = lipgloss.Color("228") // Yellow
	ColorCyan     = lipgloss.Color("45")  // Cyan
	ColorRed      = lipgloss.Color("196") // Red
	ColorGray     = lipgloss.Color("250") // Light gray
	ColorDarkGray = lipgloss.Color("240") // Dark gray for branches
)

// Common styles that can be used across the application
var (
	// Style for the machine root element
	MachineStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	// Style for state names
	StateStyle = lipgloss.NewStyle().
			Foreground(ColorCyan)

	// Style for the active or initial state marker
	ActiveStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	// Style for script hook annotations
	ScriptStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	// Style for descriptive information
	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	// Style for branch connectors in trees
	BranchStyle = lipgloss.NewStyle().
			Foreground(ColorDarkGray)

	// Style for boundary flag annotations
	BoundaryStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)
)

// MachineText styles the machine name
func MachineText(text string) string {
	return MachineStyle.Render(text)
}

// StateText styles a state name
func StateText(text string) string {
	return StateStyle.Render(text)
}

// ActiveText styles the active/initial state marker
func ActiveText(text string) string {
	return ActiveStyle.Render(text)
}

// ScriptText styles a script hook annotation
func ScriptText(text string) string {
	return ScriptStyle.Render(text)
}

// InfoText styles descriptive information
func InfoText(text string) string {
	return InfoStyle.Render(text)
}

// ErrorText styles error text
func ErrorText(text string) string {
	return ErrorStyle.Render(text)
}
