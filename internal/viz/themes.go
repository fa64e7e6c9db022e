package viz

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/neonfolio/internal/particles"
)

// Theme defines the colour scheme for the backdrop, the cube and the text
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Accent     lipgloss.Color
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color

	// Wash is the three-stop diagonal haze, painted at WashAlpha.
	Wash      [3]lipgloss.Color
	WashAlpha float64
	Particle  lipgloss.Color
	Link      lipgloss.Color
	CubeEdge  lipgloss.Color
	CubeLabel lipgloss.Color
}

// Available themes
var (
	ThemeNeon = Theme{
		Name:       "neon",
		Primary:    lipgloss.Color("#22d3ee"), // Cyan
		Secondary:  lipgloss.Color("#d946ef"), // Fuchsia
		Accent:     lipgloss.Color("#a78bfa"), // Violet
		Background: lipgloss.Color("#05060b"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#6b7280"),
		Wash:       [3]lipgloss.Color{"#00ffff", "#ff00ff", "#8257e5"},
		WashAlpha:  0.06,
		Particle:   lipgloss.Color("#ffffff"),
		Link:       lipgloss.Color("#a855f7"),
		CubeEdge:   lipgloss.Color("#22d3ee"),
		CubeLabel:  lipgloss.Color("#f5f5f5"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"), // Green phosphor
		Secondary:  lipgloss.Color("#00cc00"),
		Accent:     lipgloss.Color("#88ff88"),
		Background: lipgloss.Color("#001100"),
		Text:       lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Wash:       [3]lipgloss.Color{"#003300", "#00aa00", "#005500"},
		WashAlpha:  0.1,
		Particle:   lipgloss.Color("#88ff88"),
		Link:       lipgloss.Color("#00cc00"),
		CubeEdge:   lipgloss.Color("#00ff00"),
		CubeLabel:  lipgloss.Color("#ccffcc"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Secondary:  lipgloss.Color("#cccccc"),
		Accent:     lipgloss.Color("#0088ff"),
		Background: lipgloss.Color("#000000"),
		Text:       lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Wash:       [3]lipgloss.Color{"#111111", "#222222", "#111111"},
		WashAlpha:  0.5,
		Particle:   lipgloss.Color("#ffffff"),
		Link:       lipgloss.Color("#888888"),
		CubeEdge:   lipgloss.Color("#cccccc"),
		CubeLabel:  lipgloss.Color("#ffffff"),
	}

	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#0077be"), // Ocean blue
		Secondary:  lipgloss.Color("#00a8cc"),
		Accent:     lipgloss.Color("#ffd700"),
		Background: lipgloss.Color("#001a33"),
		Text:       lipgloss.Color("#e0f0ff"),
		Muted:      lipgloss.Color("#4488aa"),
		Wash:       [3]lipgloss.Color{"#0077be", "#00a8cc", "#004466"},
		WashAlpha:  0.12,
		Particle:   lipgloss.Color("#e0f0ff"),
		Link:       lipgloss.Color("#00a8cc"),
		CubeEdge:   lipgloss.Color("#ffd700"),
		CubeLabel:  lipgloss.Color("#e0f0ff"),
	}

	ThemeSunset = Theme{
		Name:       "sunset",
		Primary:    lipgloss.Color("#ff6b6b"), // Coral
		Secondary:  lipgloss.Color("#feca57"),
		Accent:     lipgloss.Color("#ff9ff3"),
		Background: lipgloss.Color("#2d1b2e"),
		Text:       lipgloss.Color("#fff5f5"),
		Muted:      lipgloss.Color("#8b6b8c"),
		Wash:       [3]lipgloss.Color{"#ff6b6b", "#feca57", "#ff9ff3"},
		WashAlpha:  0.08,
		Particle:   lipgloss.Color("#fff5f5"),
		Link:       lipgloss.Color("#ff9ff3"),
		CubeEdge:   lipgloss.Color("#feca57"),
		CubeLabel:  lipgloss.Color("#fff5f5"),
	}

	// Default theme
	CurrentTheme = ThemeNeon

	// All available themes
	Themes = []Theme{
		ThemeNeon,
		ThemeRetroGreen,
		ThemeMinimal,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeNeon
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Palette converts the theme to the colours the particle field paints with.
func (t Theme) Palette() particles.Palette {
	return particles.Palette{
		Wash: []particles.Stop{
			{Offset: 0, Paint: particles.Paint{Color: Colorful(t.Wash[0]), Alpha: t.WashAlpha}},
			{Offset: 0.5, Paint: particles.Paint{Color: Colorful(t.Wash[1]), Alpha: t.WashAlpha}},
			{Offset: 1, Paint: particles.Paint{Color: Colorful(t.Wash[2]), Alpha: t.WashAlpha}},
		},
		Particle: particles.Paint{Color: Colorful(t.Particle), Alpha: 0.7},
		Link:     Colorful(t.Link),
	}
}

// Colorful parses a hex lipgloss colour, falling back to white.
func Colorful(c lipgloss.Color) colorful.Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return colorful.Color{R: 1, G: 1, B: 1}
	}
	return col
}
