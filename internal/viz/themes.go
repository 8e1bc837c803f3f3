package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the grid colors.
type Theme struct {
	Name   string
	Live   lipgloss.Color
	Dead   lipgloss.Color
	Cursor lipgloss.Color
	Accent lipgloss.Color
	Muted  lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:   "cyberpunk",
		Live:   lipgloss.Color("#00ffff"),
		Dead:   lipgloss.Color("#333344"),
		Cursor: lipgloss.Color("#ff00ff"),
		Accent: lipgloss.Color("#ffff00"),
		Muted:  lipgloss.Color("#666666"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Live:   lipgloss.Color("#00ff00"), // Green phosphor
		Dead:   lipgloss.Color("#003300"),
		Cursor: lipgloss.Color("#88ff88"),
		Accent: lipgloss.Color("#ffff00"),
		Muted:  lipgloss.Color("#005500"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Live:   lipgloss.Color("#ffffff"),
		Dead:   lipgloss.Color("#444444"),
		Cursor: lipgloss.Color("#0088ff"),
		Accent: lipgloss.Color("#0088ff"),
		Muted:  lipgloss.Color("#888888"),
	}
)

var themes = []Theme{ThemeCyberpunk, ThemeRetroGreen, ThemeMinimal}

// CurrentTheme is the active theme
var CurrentTheme = ThemeCyberpunk

func ThemeNames() []string {
	names := make([]string, len(themes))
	for i, t := range themes {
		names[i] = t.Name
	}
	return names
}

// SetTheme switches to the named theme and reports whether it exists.
func SetTheme(name string) bool {
	for _, t := range themes {
		if t.Name == name {
			CurrentTheme = t
			return true
		}
	}
	return false
}

// NextTheme cycles to the theme after the current one.
func NextTheme() {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			return
		}
	}
}
