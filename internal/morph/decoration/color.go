package decoration

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an sRGB color with straight (non-premultiplied) alpha.
// All channels are in [0,1].
type Color struct {
	RGB colorful.Color
	A   float64
}

// Common colors
var (
	Transparent = Color{}
	Black       = Color{RGB: colorful.Color{}, A: 1}
	White       = Color{RGB: colorful.Color{R: 1, G: 1, B: 1}, A: 1}
)

// RGBA builds a color from 8-bit channels and a [0,1] alpha
func RGBA(r, g, b uint8, a float64) Color {
	return Color{
		RGB: colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255},
		A:   a,
	}.Normalize()
}

// ParseColor accepts "#rrggbb" or "#rrggbbaa"
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := 1.0
	if len(s) == 9 && strings.HasPrefix(s, "#") {
		a, err := strconv.ParseUint(s[7:], 16, 8)
		if err != nil {
			return Color{}, fmt.Errorf("invalid alpha in color %q: %w", s, err)
		}
		alpha = float64(a) / 255
		s = s[:7]
	}
	rgb, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{RGB: rgb, A: alpha}, nil
}

// Hex returns the opaque "#rrggbb" form, ignoring alpha
func (c Color) Hex() string {
	return c.RGB.Clamped().Hex()
}

// WithAlpha returns the same color with a different alpha
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// Over composites c onto an opaque background and returns the opaque result
func (c Color) Over(bg colorful.Color) colorful.Color {
	return bg.BlendRgb(c.RGB, clamp01(c.A)).Clamped()
}

// Normalize clamps every channel into [0,1]
func (c Color) Normalize() Color {
	return Color{RGB: c.RGB.Clamped(), A: clamp01(c.A)}
}

// LerpColor interpolates channels linearly in sRGB space. Each channel moves
// monotonically from a to b.
func LerpColor(a, b Color, t float64) Color {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return Color{
		RGB: a.RGB.BlendRgb(b.RGB, t),
		A:   a.A + (b.A-a.A)*t,
	}.Normalize()
}

func clamp01(v float64) float64 {
	return math.Min(math.Max(v, 0), 1)
}
