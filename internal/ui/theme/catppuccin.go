package theme

import "github.com/charmbracelet/lipgloss"

// Catppuccin theme, soothing pastels (Mocha)
// https://github.com/catppuccin/catppuccin
var Catppuccin = Theme{
	Name: "catppuccin",

	Background: lipgloss.Color("#1E1E2E"),
	Foreground: lipgloss.Color("#CDD6F4"),
	Subtle:     lipgloss.Color("#6C7086"),
	Highlight:  lipgloss.Color("#313244"),
	Border:     lipgloss.Color("#45475A"),

	Primary:   lipgloss.Color("#89B4FA"), // Blue
	Secondary: lipgloss.Color("#CBA6F7"), // Mauve
	Info:      lipgloss.Color("#74C7EC"), // Sapphire
	Success:   lipgloss.Color("#A6E3A1"), // Green
	Warning:   lipgloss.Color("#F9E2AF"), // Yellow
	Error:     lipgloss.Color("#F38BA8"), // Red

	PriorityToday:     lipgloss.Color("#F38BA8"),
	PriorityThisWeek:  lipgloss.Color("#FAB387"),
	PriorityLater:     lipgloss.Color("#F9E2AF"),
	PriorityRecurring: lipgloss.Color("#F5C2E7"),
	PrioritySomeday:   lipgloss.Color("#6C7086"),

	StatusToSolve: lipgloss.Color("#CDD6F4"),
	StatusSolving: lipgloss.Color("#89B4FA"),
	StatusBlocked: lipgloss.Color("#F38BA8"),
	StatusOngoing: lipgloss.Color("#F5C2E7"),
	StatusSolved:  lipgloss.Color("#A6E3A1"),

	PhaseWork:  lipgloss.Color("#F38BA8"),
	PhaseBreak: lipgloss.Color("#A6E3A1"),
}
