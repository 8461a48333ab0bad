package surface

import (
	"strings"
	"testing"

	"github.com/riordanpawley/morphpop/internal/domain"
	"github.com/riordanpawley/morphpop/internal/morph/decoration"
	"github.com/riordanpawley/morphpop/internal/morph/geometry"
	"github.com/riordanpawley/morphpop/internal/morph/host"
	"github.com/riordanpawley/morphpop/internal/morph/probe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) host.Renderable {
	return host.RenderFunc(func(host.Constraints) string { return s })
}

type placedText struct {
	s     string
	at    geometry.Point
	scrim host.Scrim
}

func (p placedText) Render(host.Constraints) string { return p.s }
func (p placedText) Placement() geometry.Point     { return p.at }
func (p placedText) Scrim() host.Scrim             { return p.scrim }

func blank(width, height int) string {
	rows := make([]string, height)
	for i := range rows {
		rows[i] = strings.Repeat(".", width)
	}
	return strings.Join(rows, "\n")
}

func TestSurface_ResolveBeforeLayoutPass(t *testing.T) {
	s := New(20, 5)
	h := s.Insert(text("abc"), geometry.Point{})

	_, err := s.Resolve(h)

	assert.ErrorIs(t, err, domain.ErrNotLaidOut)
}

func TestSurface_LayoutPassResolvesSize(t *testing.T) {
	s := New(20, 5)
	h := s.Insert(text("abc\nde"), probe.Offscreen)

	s.LayoutPass()
	size, err := s.Resolve(h)

	require.NoError(t, err)
	assert.Equal(t, geometry.Size{Width: 3, Height: 2}, size)
}

func TestSurface_ResolveUnknownHandle(t *testing.T) {
	s := New(20, 5)
	h := s.Insert(text("abc"), geometry.Point{})
	s.LayoutPass()
	s.Remove(h)

	_, err := s.Resolve(h)

	assert.ErrorIs(t, err, domain.ErrUnknownHandle)
	assert.Equal(t, 0, s.Len())
}

func TestSurface_Teardown(t *testing.T) {
	s := New(20, 5)
	h := s.Insert(text("abc"), geometry.Point{})
	s.LayoutPass()

	s.Teardown()

	_, err := s.Resolve(h)
	assert.ErrorIs(t, err, domain.ErrSurfaceUnavailable)
	assert.Equal(t, 0, s.Len())

	s.Insert(text("late"), geometry.Point{})
	assert.Equal(t, 0, s.Len())
}

func TestSurface_RemoveUnknownIgnored(t *testing.T) {
	s := New(20, 5)
	s.Insert(text("abc"), geometry.Point{})

	s.Remove(99)

	assert.Equal(t, 1, s.Len())
}

func TestSurface_ComposeSplicesAtPosition(t *testing.T) {
	s := New(10, 3)
	s.Insert(text("XX\nYY"), geometry.Point{X: 2, Y: 1})

	out := s.Compose(blank(10, 3))

	assert.Equal(t, "..........\n..XX......\n..YY......", out)
}

func TestSurface_ComposeNormalizesBase(t *testing.T) {
	s := New(4, 2)

	out := s.Compose("abcdef")

	assert.Equal(t, "abcd\n    ", out)
}

func TestSurface_ComposeSkipsOffscreenEntries(t *testing.T) {
	s := New(10, 3)
	s.Insert(text("probe"), probe.Offscreen)
	s.Insert(text("far"), geometry.Point{X: 40, Y: 1})

	out := s.Compose(blank(10, 3))

	assert.Equal(t, blank(10, 3), out)
}

func TestSurface_ComposeClipsAtEdges(t *testing.T) {
	s := New(6, 2)
	s.Insert(text("ABCD"), geometry.Point{X: 4, Y: 0})
	s.Insert(text("wxyz"), geometry.Point{X: -2, Y: 1})

	out := s.Compose(blank(6, 2))

	assert.Equal(t, "....AB\nyz....", out)
}

func TestSurface_ComposeRaggedLinesKeepBase(t *testing.T) {
	s := New(6, 2)
	s.Insert(text("ABC\nA"), geometry.Point{X: 1, Y: 0})

	out := s.Compose(blank(6, 2))

	assert.Equal(t, ".ABC..\n.A....", out)
}

func TestSurface_ComposeUsesPlacement(t *testing.T) {
	s := New(6, 2)
	s.Insert(placedText{s: "P", at: geometry.Point{X: 5, Y: 1}}, geometry.Point{})

	out := s.Compose(blank(6, 2))

	assert.Equal(t, "......\n.....P", out)
}

func TestSurface_LaterEntriesOnTop(t *testing.T) {
	s := New(6, 1)
	s.Insert(text("aaaa"), geometry.Point{X: 0})
	s.Insert(text("bb"), geometry.Point{X: 1})

	out := s.Compose(blank(6, 1))

	assert.Equal(t, "abba..", out)
}

func TestSurface_ScrimDropsBaseStyling(t *testing.T) {
	base := "\x1b[1mbold\x1b[0m"

	s := New(8, 1)
	s.Insert(placedText{
		s:     "",
		at:    geometry.Point{},
		scrim: host.Scrim{Color: decoration.Black.WithAlpha(0.6), Opacity: 0},
	}, geometry.Point{})
	assert.Contains(t, s.Compose(base), "\x1b[1m", "a transparent scrim leaves the base alone")

	s = New(8, 1)
	s.Insert(placedText{
		s:     "",
		at:    geometry.Point{},
		scrim: host.Scrim{Color: decoration.Black.WithAlpha(0.6), Opacity: 1},
	}, geometry.Point{})
	out := s.Compose(base)
	assert.NotContains(t, out, "\x1b[1m")
	assert.Contains(t, out, "bold")
}

func TestSurface_Resize(t *testing.T) {
	s := New(4, 1)
	s.Resize(8, 2)

	assert.Equal(t, geometry.Size{Width: 8, Height: 2}, s.Size())
	assert.Equal(t, "........\n........", s.Compose(blank(8, 2)))

	s.Resize(-1, 3)
	assert.Equal(t, 0.0, s.Size().Width)
}
