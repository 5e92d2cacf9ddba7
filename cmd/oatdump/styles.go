package main

import "github.com/charmbracelet/lipgloss"

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4")
	secondaryColor = lipgloss.Color("#00D7FF")
	successColor   = lipgloss.Color("#04B575")
	warningColor   = lipgloss.Color("#FFA500")
	mutedColor     = lipgloss.Color("#666666")

	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	labelStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	pathStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Italic(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	classStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(successColor)
)

// render applies s unless --no-color is set.
func render(s lipgloss.Style, v string) string {
	if noColor {
		return v
	}
	return s.Render(v)
}
