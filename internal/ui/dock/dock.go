// Package dock is the input bar along the bottom of the screen. While it
// has focus it plays the on-screen keyboard: its height is the inset the
// overlay keeps clear of.
package dock

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/morphpop/internal/ui/styles"
)

// Rows is the height of the dock while it is raised
const Rows = 3

// SubmittedMsg carries the text entered when the user pressed enter
type SubmittedMsg struct {
	Value string
}

// Dock wraps a text input that is only on screen while focused
type Dock struct {
	input  textinput.Model
	width  int
	styles *styles.Styles
}

// New creates a lowered dock
func New(s *styles.Styles) *Dock {
	ti := textinput.New()
	ti.Placeholder = "type a note"
	ti.Prompt = "› "
	ti.PromptStyle = s.DockPrompt
	ti.CharLimit = 256
	return &Dock{input: ti, styles: s}
}

// Focus raises the dock
func (d *Dock) Focus() tea.Cmd {
	return d.input.Focus()
}

// DismissFocus lowers the dock, keeping what was typed
func (d *Dock) DismissFocus() {
	d.input.Blur()
}

// Focused reports whether the dock is raised
func (d *Dock) Focused() bool {
	return d.input.Focused()
}

// Inset is the number of rows the dock takes from the bottom of the screen
func (d *Dock) Inset() float64 {
	if !d.input.Focused() {
		return 0
	}
	return Rows
}

// Value returns the current text
func (d *Dock) Value() string {
	return d.input.Value()
}

// SetWidth sizes the dock to the terminal
func (d *Dock) SetWidth(width int) {
	d.width = width
	// border and padding take four columns, the cursor one
	d.input.Width = max(0, width-5-lipgloss.Width(d.input.Prompt))
}

// Update handles keys while focused. Enter submits and clears the input;
// esc is left to the caller.
func (d *Dock) Update(msg tea.Msg) tea.Cmd {
	if !d.input.Focused() {
		return nil
	}
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEnter {
		value := d.input.Value()
		d.input.Reset()
		return func() tea.Msg { return SubmittedMsg{Value: value} }
	}
	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return cmd
}

// View renders the raised dock, or nothing while lowered
func (d *Dock) View() string {
	if !d.input.Focused() {
		return ""
	}
	return d.styles.DockFocused.
		Width(max(0, d.width-2)).
		Render(d.input.View())
}
