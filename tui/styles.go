package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent    = lipgloss.Color("#C0392B")
	white     = lipgloss.Color("#F9FAFB")
	dimGray   = lipgloss.Color("#6B7280")
	lightGray = lipgloss.Color("#9CA3AF")
	red       = lipgloss.Color("#EF4444")
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(white).
			Background(accent).
			Bold(true).
			Padding(0, 1)

	fieldStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimGray).
			Padding(0, 1)

	focusedFieldStyle = fieldStyle.
				BorderForeground(accent)

	buttonStyle = lipgloss.NewStyle().
			Foreground(lightGray).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dimGray).
			Padding(0, 2)

	focusedButtonStyle = buttonStyle.
				Foreground(white).
				Background(accent).
				BorderForeground(accent)

	titleStyle    = lipgloss.NewStyle().Foreground(white).Bold(true)
	subtitleStyle = lipgloss.NewStyle().Foreground(lightGray)
	linkStyle     = lipgloss.NewStyle().Foreground(accent).Underline(true)
	dimStyle      = lipgloss.NewStyle().Foreground(dimGray)
	errorStyle    = lipgloss.NewStyle().Foreground(red)
)
