package theme

import "github.com/charmbracelet/lipgloss"

// Dracula theme, dark with vibrant colors
// https://draculatheme.com/
var Dracula = Theme{
	Name: "dracula",

	Background: lipgloss.Color("#282A36"),
	Foreground: lipgloss.Color("#F8F8F2"),
	Subtle:     lipgloss.Color("#6272A4"),
	Highlight:  lipgloss.Color("#44475A"),
	Border:     lipgloss.Color("#6272A4"),

	Primary:   lipgloss.Color("#BD93F9"), // Purple
	Secondary: lipgloss.Color("#8BE9FD"), // Cyan
	Info:      lipgloss.Color("#8BE9FD"), // Cyan
	Success:   lipgloss.Color("#50FA7B"), // Green
	Warning:   lipgloss.Color("#F1FA8C"), // Yellow
	Error:     lipgloss.Color("#FF5555"), // Red

	PriorityToday:     lipgloss.Color("#FF5555"),
	PriorityThisWeek:  lipgloss.Color("#FFB86C"),
	PriorityLater:     lipgloss.Color("#F1FA8C"),
	PriorityRecurring: lipgloss.Color("#FF79C6"),
	PrioritySomeday:   lipgloss.Color("#6272A4"),

	StatusToSolve: lipgloss.Color("#F8F8F2"),
	StatusSolving: lipgloss.Color("#8BE9FD"),
	StatusBlocked: lipgloss.Color("#FF5555"),
	StatusOngoing: lipgloss.Color("#FF79C6"),
	StatusSolved:  lipgloss.Color("#50FA7B"),

	PhaseWork:  lipgloss.Color("#FF5555"),
	PhaseBreak: lipgloss.Color("#50FA7B"),
}
