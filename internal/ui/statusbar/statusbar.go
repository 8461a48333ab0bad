package statusbar

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/morphpop/internal/morph/session"
	"github.com/riordanpawley/morphpop/internal/types"
	"github.com/riordanpawley/morphpop/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	mode     types.Mode
	status   session.Status
	progress float64
	spinner  string
	hints    []key.Binding
	width    int
	styles   *styles.Styles
}

// New creates a new StatusBar with the given mode, width, and styles
func New(mode types.Mode, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		mode:   mode,
		width:  width,
		styles: styles,
	}
}

// WithOverlay adds the overlay status badge and its animation progress
func (sb StatusBar) WithOverlay(status session.Status, progress float64) StatusBar {
	sb.status = status
	sb.progress = progress
	return sb
}

// WithSpinner shows a spinner frame, used while content is being measured
func (sb StatusBar) WithSpinner(view string) StatusBar {
	sb.spinner = view
	return sb
}

// WithHints sets the key bindings listed on the right of the badges
func (sb StatusBar) WithHints(bindings ...key.Binding) StatusBar {
	sb.hints = bindings
	return sb
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	modeBadge := sb.styles.StatusMode.Render(sb.mode.String())
	overlayBadge := sb.styles.OverlayStatus(sb.status).Render(sb.status.String())

	parts := []string{modeBadge, " ", overlayBadge}
	if sb.status == session.Opening || sb.status == session.Closing {
		parts = append(parts, sb.styles.StatusInfo.Render(fmt.Sprintf(" %3.0f%%", min(max(sb.progress, 0), 1)*100)))
	}
	if sb.spinner != "" {
		parts = append(parts, " ", sb.spinner)
	}

	if hints := FormatHints(sb.hints...); hints != "" {
		separator := sb.styles.StatusHint.Render(" │ ")
		parts = append(parts, separator, sb.styles.StatusHint.Render(hints))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return sb.styles.StatusBar.Width(sb.width).MaxWidth(sb.width).Render(content)
}
