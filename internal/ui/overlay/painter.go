package overlay

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/riordanpawley/morphpop/internal/morph/compositor"
	"github.com/riordanpawley/morphpop/internal/morph/decoration"
)

// Content below these opacities is faded, then hidden
const (
	fadeOpacity = 0.85
	hideOpacity = 0.35
)

// Painter draws one composed frame as a lipgloss box of exactly the frame's
// size in cells
type Painter struct {
	background colorful.Color
	foreground colorful.Color
}

// NewPainter creates a painter for a screen of the given colors. Translucent
// decoration colors are blended onto background.
func NewPainter(background, foreground decoration.Color) *Painter {
	bg := background.Over(colorful.Color{})
	return &Painter{
		background: bg,
		foreground: foreground.Over(bg),
	}
}

// Paint renders content inside the frame's decoration. A frame smaller than
// one cell renders nothing.
func (p *Painter) Paint(frame compositor.Output, content string) string {
	w, h := cells(frame.Rect.Size.Width), cells(frame.Rect.Size.Height)
	if w <= 0 || h <= 0 {
		return ""
	}
	d := frame.Decoration

	style := lipgloss.NewStyle().Foreground(hex(p.foreground))
	fillBg := p.background
	fill, filled := d.Fill.Get()
	if filled {
		fillBg = fill.Over(p.background)
		style = style.Background(hex(fillBg))
	}

	// The border takes one cell of its side's inset so the text area
	// matches the size the content was measured at.
	in := d.ContentInsets()
	left, top, right, bottom := cells(in.Left), cells(in.Top), cells(in.Right), cells(in.Bottom)
	innerW, innerH := w, h
	if b, ok := d.Border.Get(); ok && b.Width >= 0.5 && w >= 3 && h >= 3 {
		style = style.
			BorderStyle(borderFor(b.Width, d.Radius.Max())).
			BorderForeground(hex(b.Color.Over(fillBg)))
		if filled {
			style = style.BorderBackground(hex(fillBg))
		}
		innerW, innerH = w-2, h-2
		left, top, right, bottom = max(0, left-1), max(0, top-1), max(0, right-1), max(0, bottom-1)
	}

	left, right = shrink(left, right, innerW-1)
	top, bottom = shrink(top, bottom, innerH-1)
	style = style.
		Padding(top, right, bottom, left).
		Width(innerW).
		Height(innerH).
		MaxWidth(w).
		MaxHeight(h)

	body := fit(content, innerW-left-right, innerH-top-bottom, frame.ContentOpacity)
	return p.shadow(style.Render(body), d.Shadow)
}

// shadow adds the shadow to the right of the box, starting offset rows
// down. Rows below the box are left to the base so it shows through.
func (p *Painter) shadow(box string, s decoration.Shadow) string {
	dx, dy := cells(s.Offset.X), cells(s.Offset.Y)
	if s.Color.A < 0.05 || dx <= 0 || dy < 0 {
		return box
	}
	strip := lipgloss.NewStyle().
		Background(hex(s.Color.Over(p.background))).
		Render(strings.Repeat(" ", dx))

	lines := strings.Split(box, "\n")
	for i := dy; i < len(lines); i++ {
		lines[i] += strip
	}
	return strings.Join(lines, "\n")
}

// fit cuts content to the text area and fades it with the opacity
func fit(content string, width, height int, opacity float64) string {
	if width <= 0 || height <= 0 || opacity < hideOpacity || content == "" {
		return ""
	}
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	faint := opacity < fadeOpacity
	for i, line := range lines {
		line = ansi.Truncate(line, width, "")
		if faint {
			line = lipgloss.NewStyle().Faint(true).Render(ansi.Strip(line))
		}
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

func borderFor(width, radius float64) lipgloss.Border {
	switch {
	case width >= 2:
		return lipgloss.ThickBorder()
	case radius >= 0.5:
		return lipgloss.RoundedBorder()
	default:
		return lipgloss.NormalBorder()
	}
}

// shrink reduces a pair of paddings, larger side first, until they fit in
// room
func shrink(a, b, room int) (int, int) {
	room = max(0, room)
	for a+b > room {
		if a >= b {
			a--
		} else {
			b--
		}
	}
	return a, b
}

func hex(c colorful.Color) lipgloss.Color {
	return lipgloss.Color(c.Clamped().Hex())
}

func cells(v float64) int {
	return int(math.Round(v))
}
