package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Normal       lipgloss.Style
	Faint        lipgloss.Style
	Selected     lipgloss.Style
	Highlighted  lipgloss.Style
	Income       lipgloss.Style
	Expense      lipgloss.Style
	Panel        lipgloss.Style
	FocusedPanel lipgloss.Style
	Dialog       lipgloss.Style
	StatusError  lipgloss.Style
	StatusInfo   lipgloss.Style
	Help         lipgloss.Style
	Primary      lipgloss.Color
	Muted        lipgloss.Color
	Border       lipgloss.Color
	Foreground   lipgloss.Color
	Error        lipgloss.Color
	Success      lipgloss.Color
}

func build(primary, fg, muted, border, success, errColor lipgloss.Color) Theme {
	return Theme{
		Primary:    primary,
		Foreground: fg,
		Muted:      muted,
		Border:     border,
		Success:    success,
		Error:      errColor,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(fg).
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		Normal: lipgloss.NewStyle().
			Foreground(fg),
		Faint: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Selected: lipgloss.NewStyle().
			Background(primary).
			Foreground(fg).
			Bold(true),
		Highlighted: lipgloss.NewStyle().
			Background(border).
			Foreground(fg),
		Income: lipgloss.NewStyle().
			Foreground(success),
		Expense: lipgloss.NewStyle().
			Foreground(errColor),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
		FocusedPanel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(primary).
			Padding(1, 2),

		StatusError: lipgloss.NewStyle().
			Foreground(errColor).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(primary),
		Help: lipgloss.NewStyle().
			Foreground(muted),
	}
}

// Default is the default theme.
var Default = build(
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#10b981"),
	lipgloss.Color("#ef4444"),
)

// CatppuccinMocha is the Catppuccin Mocha theme.
var CatppuccinMocha = build(
	lipgloss.Color("#cba6f7"),
	lipgloss.Color("#cdd6f4"),
	lipgloss.Color("#6c7086"),
	lipgloss.Color("#45475a"),
	lipgloss.Color("#a6e3a1"),
	lipgloss.Color("#f38ba8"),
)

// GetTheme returns a theme by name.
func GetTheme(name string) Theme {
	switch name {
	case "catppuccin-mocha":
		return CatppuccinMocha
	default:
		return Default
	}
}
