// Package probe measures popup content before it is shown. The content is
// inserted into the host surface far outside the viewport, given one layout
// pass, read back, and removed again.
package probe

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/morphpop/internal/domain"
	"github.com/riordanpawley/morphpop/internal/morph/geometry"
	"github.com/riordanpawley/morphpop/internal/morph/host"
)

// Offscreen is where probe entries are placed. No viewport reaches it.
var Offscreen = geometry.Point{X: -100000, Y: -100000}

// layoutPassMsg resumes a pending measurement after the event loop has had
// a turn
type layoutPassMsg struct {
	probe int
}

// Result is the outcome of one measurement
type Result struct {
	Size geometry.Size
	Err  error
}

// Prober runs at most one measurement at a time against a surface
type Prober struct {
	surface host.Surface
	lastID  int
	pending *pendingProbe
}

type pendingProbe struct {
	id     int
	handle host.Handle
}

// New creates a prober for the given surface
func New(surface host.Surface) *Prober {
	return &Prober{surface: surface}
}

// Measure inserts the padded content off-screen and returns the command that
// resumes the measurement on the next turn of the event loop. The result is
// delivered through Resume. A measurement already in flight is cancelled.
func (p *Prober) Measure(build host.Builder, padding geometry.Insets, maxWidth float64) tea.Cmd {
	p.Cancel()
	p.lastID++

	h := p.surface.Insert(Padded(build, padding, maxWidth), Offscreen)
	p.pending = &pendingProbe{id: p.lastID, handle: h}

	id := p.lastID
	return func() tea.Msg {
		return layoutPassMsg{probe: id}
	}
}

// Pending reports whether a measurement is waiting for its layout pass
func (p *Prober) Pending() bool {
	return p.pending != nil
}

// Resume finishes the pending measurement when msg is its layout pass.
// The second return value is false for any other message.
func (p *Prober) Resume(msg tea.Msg) (Result, bool) {
	m, ok := msg.(layoutPassMsg)
	if !ok || p.pending == nil || m.probe != p.pending.id {
		return Result{}, false
	}
	h := p.pending.handle
	p.pending = nil

	p.surface.LayoutPass()
	size, err := p.surface.Resolve(h)
	p.surface.Remove(h)
	if err != nil {
		return Result{Err: &domain.MeasurementError{Op: "resolve", Handle: int(h), Err: err}}, true
	}
	return Result{Size: size}, true
}

// Cancel drops the pending measurement and its surface entry
func (p *Prober) Cancel() {
	if p.pending == nil {
		return
	}
	p.surface.Remove(p.pending.handle)
	p.pending = nil
}

// Padded wraps built content in padding and keeps the result within
// maxWidth. The content itself is built against the width left after
// padding.
func Padded(build host.Builder, padding geometry.Insets, maxWidth float64) host.Renderable {
	padding = padding.Normalize()
	return host.RenderFunc(func(c host.Constraints) string {
		inner := host.Constraints{
			MaxWidth:  math.Max(0, maxWidth-padding.Horizontal()),
			MaxHeight: c.MaxHeight,
		}
		content := ""
		if build != nil {
			if r := build(inner); r != nil {
				content = r.Render(inner)
			}
		}
		style := lipgloss.NewStyle().Padding(
			cells(padding.Top), cells(padding.Right), cells(padding.Bottom), cells(padding.Left),
		)
		if maxWidth > 0 {
			style = style.MaxWidth(cells(maxWidth))
		}
		return style.Render(content)
	})
}

func cells(v float64) int {
	return int(math.Round(v))
}
