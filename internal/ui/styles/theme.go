package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/morphpop/internal/morph/decoration"
	"github.com/riordanpawley/morphpop/internal/morph/geometry"
	"github.com/riordanpawley/morphpop/internal/morph/session"
)

// Catppuccin Macchiato palette
var (
	// Base colors
	Base     = lipgloss.Color("#24273a")
	Mantle   = lipgloss.Color("#1e2030")
	Crust    = lipgloss.Color("#181926")
	Surface0 = lipgloss.Color("#363a4f")
	Surface1 = lipgloss.Color("#494d64")
	Surface2 = lipgloss.Color("#5b6078")
	Overlay0 = lipgloss.Color("#6e738d")
	Overlay1 = lipgloss.Color("#8087a2")
	Subtext0 = lipgloss.Color("#a5adcb")
	Subtext1 = lipgloss.Color("#b8c0e0")
	Text     = lipgloss.Color("#cad3f5")

	// Accent colors
	Mauve    = lipgloss.Color("#c6a0f6")
	Red      = lipgloss.Color("#ed8796")
	Peach    = lipgloss.Color("#f5a97f")
	Yellow   = lipgloss.Color("#eed49f")
	Green    = lipgloss.Color("#a6da95")
	Teal     = lipgloss.Color("#8bd5ca")
	Blue     = lipgloss.Color("#8aadf4")
	Lavender = lipgloss.Color("#b7bdf8")
)

// StatusColors maps overlay status to its badge color
var StatusColors = map[session.Status]lipgloss.Color{
	session.Idle:    Overlay1,
	session.Opening: Yellow,
	session.Open:    Green,
	session.Closing: Peach,
}

// Color converts a palette entry into a decoration color. Anything that is
// not a hex color comes back transparent.
func Color(c lipgloss.Color) decoration.Color {
	parsed, err := decoration.ParseColor(string(c))
	if err != nil {
		return decoration.Transparent
	}
	return parsed
}

// Theme supplies cell-sized decorations for the trigger and the panel
type Theme struct{}

// ChildDecoration is the look of the collapsed trigger card
func (Theme) ChildDecoration() decoration.Decoration {
	return decoration.New(
		decoration.WithFill(Color(Surface0)),
		decoration.WithBorder(decoration.Border{Color: Color(Surface2), Width: 1}),
		decoration.WithRadius(decoration.UniformRadius(1)),
		decoration.WithPadding(geometry.SymmetricInsets(1, 0)),
	)
}

// PopupDecoration is the look of the expanded panel
func (Theme) PopupDecoration() decoration.Decoration {
	return decoration.New(
		decoration.WithFill(Color(Base)),
		decoration.WithBorder(decoration.Border{Color: Color(Lavender), Width: 1}),
		decoration.WithShadow(decoration.Shadow{
			Color:  Color(Crust).WithAlpha(0.9),
			Offset: geometry.Point{X: 2, Y: 1},
		}),
		decoration.WithRadius(decoration.UniformRadius(1)),
		decoration.WithPadding(geometry.SymmetricInsets(2, 1)),
	)
}
