// Package styles holds the palette, lipgloss styles and decoration theme of
// the terminal UI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/morphpop/internal/morph/session"
)

// Styles holds all the UI styles
type Styles struct {
	// Screen
	App   lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
	Muted lipgloss.Style

	// Trigger card content
	TriggerLabel lipgloss.Style
	TriggerHint  lipgloss.Style

	// Panel content
	PanelTitle  lipgloss.Style
	PanelFooter lipgloss.Style
	Separator   lipgloss.Style

	// Input dock
	Dock        lipgloss.Style
	DockFocused lipgloss.Style
	DockPrompt  lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		App: lipgloss.NewStyle().
			Background(Base).
			Foreground(Text),

		Title: lipgloss.NewStyle().
			Foreground(Lavender).
			Bold(true),

		Body: lipgloss.NewStyle().
			Foreground(Text),

		Muted: lipgloss.NewStyle().
			Foreground(Overlay1),

		TriggerLabel: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		TriggerHint: lipgloss.NewStyle().
			Foreground(Subtext0),

		PanelTitle: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			MarginBottom(1),

		PanelFooter: lipgloss.NewStyle().
			Foreground(Subtext0).
			MarginTop(1),

		Separator: lipgloss.NewStyle().
			Foreground(Surface1),

		Dock: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(0, 1),

		DockFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Mauve).
			Padding(0, 1),

		DockPrompt: lipgloss.NewStyle().
			Foreground(Mauve).
			Bold(true),

		StatusBar: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Subtext0).
			Padding(0, 1),

		StatusMode: lipgloss.NewStyle().
			Background(Blue).
			Foreground(Base).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext0),

		ToastInfo: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Blue).
			Foreground(Blue).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Green).
			Foreground(Green).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Yellow).
			Foreground(Yellow).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Red).
			Foreground(Red).
			Padding(0, 1),
	}
}

// OverlayStatus returns the badge style for an overlay status
func (s *Styles) OverlayStatus(status session.Status) lipgloss.Style {
	color, ok := StatusColors[status]
	if !ok {
		color = Overlay0
	}
	return lipgloss.NewStyle().
		Background(color).
		Foreground(Base).
		Bold(true).
		Padding(0, 1)
}
