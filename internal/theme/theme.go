// Package theme provides the colour palettes used by prompts and output.
package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/chmouel/lazycommit/internal/models"
)

// Theme defines all colors used in the application UI.
type Theme struct {
	Accent    lipgloss.Color
	AccentFg  lipgloss.Color // Foreground color for text on Accent background
	Border    lipgloss.Color
	BorderDim lipgloss.Color
	MutedFg   lipgloss.Color
	TextFg    lipgloss.Color
	SuccessFg lipgloss.Color
	WarnFg    lipgloss.Color
	ErrorFg   lipgloss.Color
	Blue      lipgloss.Color
	Cyan      lipgloss.Color
	Pink      lipgloss.Color
	Yellow    lipgloss.Color
}

// Theme names.
const (
	DraculaName         = "dracula"
	DraculaLightName    = "dracula-light"
	NordName            = "nord"
	GruvboxDarkName     = "gruvbox-dark"
	SolarizedDarkName   = "solarized-dark"
	CatppuccinMochaName = "catppuccin-mocha"
)

var registry = map[string]func() *Theme{
	DraculaName:         Dracula,
	DraculaLightName:    DraculaLight,
	NordName:            Nord,
	GruvboxDarkName:     GruvboxDark,
	SolarizedDarkName:   SolarizedDark,
	CatppuccinMochaName: CatppuccinMocha,
}

// Dracula returns the Dracula theme, the default.
func Dracula() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#BD93F9"), // Purple
		AccentFg:  lipgloss.Color("#282A36"),
		Border:    lipgloss.Color("#6272A4"),
		BorderDim: lipgloss.Color("#44475A"),
		MutedFg:   lipgloss.Color("#6272A4"),
		TextFg:    lipgloss.Color("#F8F8F2"),
		SuccessFg: lipgloss.Color("#50FA7B"),
		WarnFg:    lipgloss.Color("#FFB86C"),
		ErrorFg:   lipgloss.Color("#FF5555"),
		Blue:      lipgloss.Color("#6272A4"),
		Cyan:      lipgloss.Color("#8BE9FD"),
		Pink:      lipgloss.Color("#FF79C6"),
		Yellow:    lipgloss.Color("#F1FA8C"),
	}
}

// DraculaLight returns Dracula adapted for light backgrounds.
func DraculaLight() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#7C3AED"),
		AccentFg:  lipgloss.Color("#FFFFFF"),
		Border:    lipgloss.Color("#D0D7DE"),
		BorderDim: lipgloss.Color("#E8E8E8"),
		MutedFg:   lipgloss.Color("#6E7781"),
		TextFg:    lipgloss.Color("#24292F"),
		SuccessFg: lipgloss.Color("#059669"),
		WarnFg:    lipgloss.Color("#D97706"),
		ErrorFg:   lipgloss.Color("#DC2626"),
		Blue:      lipgloss.Color("#2563EB"),
		Cyan:      lipgloss.Color("#0891B2"),
		Pink:      lipgloss.Color("#DB2777"),
		Yellow:    lipgloss.Color("#CA8A04"),
	}
}

// Nord returns the Nord theme.
func Nord() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#88C0D0"),
		AccentFg:  lipgloss.Color("#2E3440"),
		Border:    lipgloss.Color("#4C566A"),
		BorderDim: lipgloss.Color("#434C5E"),
		MutedFg:   lipgloss.Color("#81A1C1"),
		TextFg:    lipgloss.Color("#E5E9F0"),
		SuccessFg: lipgloss.Color("#A3BE8C"),
		WarnFg:    lipgloss.Color("#D08770"),
		ErrorFg:   lipgloss.Color("#BF616A"),
		Blue:      lipgloss.Color("#5E81AC"),
		Cyan:      lipgloss.Color("#8FBCBB"),
		Pink:      lipgloss.Color("#B48EAD"),
		Yellow:    lipgloss.Color("#EBCB8B"),
	}
}

// GruvboxDark returns the Gruvbox dark theme.
func GruvboxDark() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#FABD2F"),
		AccentFg:  lipgloss.Color("#282828"),
		Border:    lipgloss.Color("#504945"),
		BorderDim: lipgloss.Color("#3C3836"),
		MutedFg:   lipgloss.Color("#928374"),
		TextFg:    lipgloss.Color("#EBDBB2"),
		SuccessFg: lipgloss.Color("#B8BB26"),
		WarnFg:    lipgloss.Color("#FE8019"),
		ErrorFg:   lipgloss.Color("#FB4934"),
		Blue:      lipgloss.Color("#83A598"),
		Cyan:      lipgloss.Color("#8EC07C"),
		Pink:      lipgloss.Color("#D3869B"),
		Yellow:    lipgloss.Color("#FABD2F"),
	}
}

// SolarizedDark returns the Solarized dark theme.
func SolarizedDark() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#268BD2"),
		AccentFg:  lipgloss.Color("#FDF6E3"),
		Border:    lipgloss.Color("#586E75"),
		BorderDim: lipgloss.Color("#073642"),
		MutedFg:   lipgloss.Color("#586E75"),
		TextFg:    lipgloss.Color("#EEE8D5"),
		SuccessFg: lipgloss.Color("#859900"),
		WarnFg:    lipgloss.Color("#CB4B16"),
		ErrorFg:   lipgloss.Color("#DC322F"),
		Blue:      lipgloss.Color("#268BD2"),
		Cyan:      lipgloss.Color("#2AA198"),
		Pink:      lipgloss.Color("#D33682"),
		Yellow:    lipgloss.Color("#B58900"),
	}
}

// CatppuccinMocha returns the Catppuccin Mocha theme.
func CatppuccinMocha() *Theme {
	return &Theme{
		Accent:    lipgloss.Color("#B4BEFE"),
		AccentFg:  lipgloss.Color("#1E1E2E"),
		Border:    lipgloss.Color("#45475A"),
		BorderDim: lipgloss.Color("#313244"),
		MutedFg:   lipgloss.Color("#6C7086"),
		TextFg:    lipgloss.Color("#CDD6F4"),
		SuccessFg: lipgloss.Color("#A6E3A1"),
		WarnFg:    lipgloss.Color("#FAB387"),
		ErrorFg:   lipgloss.Color("#F38BA8"),
		Blue:      lipgloss.Color("#89B4FA"),
		Cyan:      lipgloss.Color("#89DCEB"),
		Pink:      lipgloss.Color("#F5C2E7"),
		Yellow:    lipgloss.Color("#F9E2AF"),
	}
}

// GetTheme returns a theme by name, or Dracula if not found.
func GetTheme(name string) *Theme {
	if ctor, ok := registry[name]; ok {
		return ctor()
	}
	return Dracula()
}

// IsKnown reports whether name is a registered theme.
func IsKnown(name string) bool {
	_, ok := registry[name]
	return ok
}

// AvailableThemes returns the registered theme names, sorted.
func AvailableThemes() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Color maps a models colour name onto the palette.
func (t *Theme) Color(name string) lipgloss.Color {
	switch name {
	case models.ColorMagenta:
		return t.Pink
	case models.ColorGreen:
		return t.SuccessFg
	case models.ColorRed:
		return t.ErrorFg
	case models.ColorBlue:
		return t.Blue
	case models.ColorCyan:
		return t.Cyan
	case models.ColorYellow:
		return t.Yellow
	default:
		return t.TextFg
	}
}

// KindColor returns the colour used to render a change of the given kind.
func (t *Theme) KindColor(kind models.ChangeKind) lipgloss.Color {
	return t.Color(kind.Color())
}
