package toast

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/morphpop/internal/morph/geometry"
	"github.com/riordanpawley/morphpop/internal/morph/host"
	"github.com/riordanpawley/morphpop/internal/types"
	"github.com/riordanpawley/morphpop/internal/ui/styles"
)

// maxWidth caps the width of a single toast
const maxWidth = 40

// ToastRenderer handles rendering of toast notifications
type ToastRenderer struct {
	styles *styles.Styles
}

// New creates a new ToastRenderer with the given styles
func New(styles *styles.Styles) *ToastRenderer {
	return &ToastRenderer{
		styles: styles,
	}
}

// Render renders a stack of toasts, right aligned.
// Returns empty string if no toasts to display
func (r *ToastRenderer) Render(toasts []types.Toast, width int) string {
	if len(toasts) == 0 {
		return ""
	}

	toastWidth := min(width/3, maxWidth)
	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		style := r.styleForLevel(t.Level)
		rendered = append(rendered, style.Width(toastWidth).Render(t.Message))
	}

	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

// styleForLevel returns the appropriate style for a toast level
func (r *ToastRenderer) styleForLevel(level types.ToastLevel) lipgloss.Style {
	switch level {
	case types.ToastSuccess:
		return r.styles.ToastSuccess
	case types.ToastWarning:
		return r.styles.ToastWarning
	case types.ToastError:
		return r.styles.ToastError
	default:
		return r.styles.ToastInfo
	}
}

// Layer is a surface entry that keeps the toast stack in the bottom-right
// corner, above a bottom inset
type Layer struct {
	renderer *ToastRenderer
	toasts   []types.Toast
	screen   geometry.Size
	bottom   float64
}

// Layer creates an empty toast layer
func (r *ToastRenderer) Layer() *Layer {
	return &Layer{renderer: r}
}

// Set replaces the toasts and the space they are placed in
func (l *Layer) Set(toasts []types.Toast, screen geometry.Size, bottomInset float64) {
	l.toasts = toasts
	l.screen = screen
	l.bottom = bottomInset
}

// Render draws the stack
func (l *Layer) Render(host.Constraints) string {
	return l.renderer.Render(l.toasts, int(l.screen.Width))
}

// Placement anchors the stack to the bottom-right corner
func (l *Layer) Placement() geometry.Point {
	out := l.Render(host.Constraints{})
	if out == "" {
		return geometry.Point{X: l.screen.Width, Y: l.screen.Height}
	}
	return geometry.Point{
		X: l.screen.Width - float64(lipgloss.Width(out)),
		Y: l.screen.Height - l.bottom - float64(lipgloss.Height(out)),
	}
}
