package theme

import "github.com/charmbracelet/lipgloss"

// Gruvbox theme, retro groove
// https://github.com/morhetz/gruvbox
var Gruvbox = Theme{
	Name: "gruvbox",

	Background: lipgloss.Color("#282828"),
	Foreground: lipgloss.Color("#EBDBB2"),
	Subtle:     lipgloss.Color("#928374"),
	Highlight:  lipgloss.Color("#3C3836"),
	Border:     lipgloss.Color("#504945"),

	Primary:   lipgloss.Color("#83A598"), // Aqua
	Secondary: lipgloss.Color("#8EC07C"), // Green
	Info:      lipgloss.Color("#83A598"), // Aqua
	Success:   lipgloss.Color("#B8BB26"), // Green
	Warning:   lipgloss.Color("#FABD2F"), // Yellow
	Error:     lipgloss.Color("#FB4934"), // Red

	PriorityToday:     lipgloss.Color("#FB4934"),
	PriorityThisWeek:  lipgloss.Color("#FE8019"),
	PriorityLater:     lipgloss.Color("#FABD2F"),
	PriorityRecurring: lipgloss.Color("#D3869B"),
	PrioritySomeday:   lipgloss.Color("#928374"),

	StatusToSolve: lipgloss.Color("#EBDBB2"),
	StatusSolving: lipgloss.Color("#83A598"),
	StatusBlocked: lipgloss.Color("#FB4934"),
	StatusOngoing: lipgloss.Color("#D3869B"),
	StatusSolved:  lipgloss.Color("#B8BB26"),

	PhaseWork:  lipgloss.Color("#FB4934"),
	PhaseBreak: lipgloss.Color("#B8BB26"),
}
