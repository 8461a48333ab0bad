// Package surface is the terminal host for overlay entries. It keeps
// renderables in insertion order above the application view and splices
// them into the rendered frame cell by cell.
package surface

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/riordanpawley/morphpop/internal/domain"
	"github.com/riordanpawley/morphpop/internal/morph/decoration"
	"github.com/riordanpawley/morphpop/internal/morph/geometry"
	"github.com/riordanpawley/morphpop/internal/morph/host"
)

// minScrimAlpha is the weakest tint worth repainting the base for
const minScrimAlpha = 0.02

type entry struct {
	r  host.Renderable
	at geometry.Point

	size    geometry.Size
	laidOut bool
}

// Surface implements host.Surface for a fixed-size terminal viewport
type Surface struct {
	width  int
	height int

	background colorful.Color
	foreground colorful.Color

	next    host.Handle
	order   []host.Handle
	entries map[host.Handle]*entry
	closed  bool
}

// Option configures a Surface
type Option func(*Surface)

// WithColors sets the colors the scrim assumes for the base view
func WithColors(background, foreground decoration.Color) Option {
	return func(s *Surface) {
		s.background = background.Over(colorful.Color{})
		s.foreground = foreground.Over(s.background)
	}
}

// New creates an empty surface of the given size in cells
func New(width, height int, opts ...Option) *Surface {
	s := &Surface{
		entries:    make(map[host.Handle]*entry),
		foreground: colorful.Color{R: 1, G: 1, B: 1},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.Resize(width, height)
	return s
}

// Resize changes the viewport
func (s *Surface) Resize(width, height int) {
	s.width = max(0, width)
	s.height = max(0, height)
}

// Size returns the viewport in cells
func (s *Surface) Size() geometry.Size {
	return geometry.Size{Width: float64(s.width), Height: float64(s.height)}
}

// Len returns the number of entries
func (s *Surface) Len() int {
	return len(s.order)
}

// Insert adds r on top of every existing entry. After Teardown the handle
// is returned but nothing is kept.
func (s *Surface) Insert(r host.Renderable, at geometry.Point) host.Handle {
	s.next++
	if s.closed {
		return s.next
	}
	s.entries[s.next] = &entry{r: r, at: at}
	s.order = append(s.order, s.next)
	return s.next
}

// Remove drops an entry. Unknown handles are ignored.
func (s *Surface) Remove(h host.Handle) {
	if _, ok := s.entries[h]; !ok {
		return
	}
	delete(s.entries, h)
	for i, o := range s.order {
		if o == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// LayoutPass renders every entry against the viewport and records its size
func (s *Surface) LayoutPass() {
	c := s.constraints()
	for _, h := range s.order {
		e := s.entries[h]
		out := e.r.Render(c)
		e.size = geometry.Size{
			Width:  float64(lipgloss.Width(out)),
			Height: float64(height(out)),
		}
		e.laidOut = true
	}
}

// Resolve returns the size recorded for h by the last layout pass
func (s *Surface) Resolve(h host.Handle) (geometry.Size, error) {
	if s.closed {
		return geometry.Size{}, domain.ErrSurfaceUnavailable
	}
	e, ok := s.entries[h]
	if !ok {
		return geometry.Size{}, domain.ErrUnknownHandle
	}
	if !e.laidOut {
		return geometry.Size{}, domain.ErrNotLaidOut
	}
	return e.size, nil
}

// Teardown drops every entry. The surface stays unusable afterwards.
func (s *Surface) Teardown() {
	s.closed = true
	s.entries = make(map[host.Handle]*entry)
	s.order = nil
}

// Compose draws every entry over base, bottom to top. Entries that fall
// completely outside the viewport are skipped.
func (s *Surface) Compose(base string) string {
	if s.width == 0 || s.height == 0 {
		return base
	}
	lines := s.normalize(base)
	c := s.constraints()

	for _, h := range s.order {
		e := s.entries[h]
		at := e.at
		if p, ok := e.r.(host.Placed); ok {
			at = p.Placement()
		}
		x, y := cell(at.X), cell(at.Y)
		if x >= s.width || y >= s.height {
			continue
		}

		if sc, ok := e.r.(host.Scrimmed); ok {
			s.applyScrim(lines, sc.Scrim())
		}

		block := strings.Split(e.r.Render(c), "\n")
		if y+len(block) <= 0 {
			continue
		}
		s.splice(lines, block, x, y)
	}
	return strings.Join(lines, "\n")
}

func (s *Surface) constraints() host.Constraints {
	return host.Constraints{MaxWidth: float64(s.width), MaxHeight: float64(s.height)}
}

// normalize pads or cuts base to exactly the viewport
func (s *Surface) normalize(base string) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < s.height {
		lines = append(lines, "")
	}
	lines = lines[:s.height]

	for i, line := range lines {
		w := ansi.StringWidth(line)
		switch {
		case w > s.width:
			lines[i] = ansi.Cut(line, 0, s.width)
		case w < s.width:
			lines[i] = line + strings.Repeat(" ", s.width-w)
		}
	}
	return lines
}

// splice writes block into lines with its top-left cell at (x, y). Each
// block line only covers its own width, so ragged edges leave the base
// visible.
func (s *Surface) splice(lines, block []string, x, y int) {
	for i, line := range block {
		row := y + i
		if row < 0 {
			continue
		}
		if row >= s.height {
			break
		}

		left := x
		if left < 0 {
			line = ansi.Cut(line, -left, ansi.StringWidth(line))
			left = 0
		}
		w := ansi.StringWidth(line)
		if left+w > s.width {
			line = ansi.Cut(line, 0, s.width-left)
			w = s.width - left
		}
		if w <= 0 {
			continue
		}

		base := lines[row]
		lines[row] = ansi.Cut(base, 0, left) + line + ansi.Cut(base, left+w, s.width)
	}
}

// applyScrim repaints the base in colors tinted toward the scrim. Styling
// of the covered text is dropped.
func (s *Surface) applyScrim(lines []string, sc host.Scrim) {
	alpha := sc.Color.A * math.Min(math.Max(sc.Opacity, 0), 1)
	if alpha < minScrimAlpha {
		return
	}
	tint := sc.Color.WithAlpha(alpha)
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(tint.Over(s.foreground).Hex())).
		Background(lipgloss.Color(tint.Over(s.background).Hex()))

	for i, line := range lines {
		lines[i] = style.Render(ansi.Strip(line))
	}
}

func height(s string) int {
	if s == "" {
		return 0
	}
	return strings.Count(s, "\n") + 1
}

func cell(v float64) int {
	return int(math.Round(v))
}
