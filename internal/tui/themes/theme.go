// Package themes holds the colour schemes of the chat screen.
package themes

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the TUI.
type Theme struct {
	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	UserBubble lipgloss.Style
	BotBubble  lipgloss.Style
	Suggestion lipgloss.Style
	Selected   lipgloss.Style
	Prompt     lipgloss.Style
	Help       lipgloss.Style
	RoundedBox lipgloss.Style
	Name       string
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Foreground lipgloss.Color
	Background lipgloss.Color
}

func build(name string, primary, muted, border, fg, bg, userBg, botBg lipgloss.Color) Theme {
	return Theme{
		Name:       name,
		Primary:    primary,
		Muted:      muted,
		Border:     border,
		Foreground: fg,
		Background: bg,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Subtitle: lipgloss.NewStyle().
			Foreground(muted),
		UserBubble: lipgloss.NewStyle().
			Background(userBg).
			Foreground(lipgloss.Color("#fafafa")).
			Padding(0, 1),
		BotBubble: lipgloss.NewStyle().
			Background(botBg).
			Foreground(fg).
			Padding(0, 1),
		Suggestion: lipgloss.NewStyle().
			Foreground(fg).
			PaddingLeft(2),
		Selected: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			PaddingLeft(2),
		Prompt: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(muted),
		RoundedBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(0, 1),
	}
}

// Dark is used when dark mode is on.
var Dark = build("dark",
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#737373"),
	lipgloss.Color("#404040"),
	lipgloss.Color("#fafafa"),
	lipgloss.Color("#1a1a1a"),
	lipgloss.Color("#6d28d9"),
	lipgloss.Color("#262626"),
)

// Light is used when dark mode is off.
var Light = build("light",
	lipgloss.Color("#6d28d9"),
	lipgloss.Color("#6b7280"),
	lipgloss.Color("#d4d4d8"),
	lipgloss.Color("#18181b"),
	lipgloss.Color("#ffffff"),
	lipgloss.Color("#7c3aed"),
	lipgloss.Color("#f4f4f5"),
)

// ForMode returns Dark or Light.
func ForMode(dark bool) Theme {
	if dark {
		return Dark
	}
	return Light
}
