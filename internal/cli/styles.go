package cli

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle renders section headers in status and report output.
	TitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	// SuccessStyle marks habits completed today.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// DangerStyle marks streaks at risk of breaking.
	DangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	// WarningStyle marks dropped or degraded output.
	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	// MutedStyle renders secondary detail lines.
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)
