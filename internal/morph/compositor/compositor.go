// Package compositor computes what the morphing panel looks like at one
// instant of its animation. Compose is a pure function of its input.
package compositor

import (
	"math"

	"github.com/riordanpawley/morphpop/internal/morph/decoration"
	"github.com/riordanpawley/morphpop/internal/morph/geometry"
)

// Layout holds the margins the panel keeps from the screen edges and the
// keyboard
type Layout struct {
	// MinTop is the highest the panel may be raised to avoid the keyboard
	MinTop float64
	// KeyboardMargin is the gap left above the keyboard when raising
	KeyboardMargin float64
	// ReservedHeight is the vertical space never given to the panel
	ReservedHeight float64
}

// DefaultLayout returns the reference margins, in pixels
func DefaultLayout() Layout {
	return Layout{MinTop: 100, KeyboardMargin: 20, ReservedHeight: 140}
}

// CellLayout returns margins scaled for a terminal, in cells
func CellLayout() Layout {
	return Layout{MinTop: 2, KeyboardMargin: 1, ReservedHeight: 4}
}

// Input is everything one frame depends on
type Input struct {
	Progress        float64
	Start           geometry.Frame
	Target          geometry.Frame
	ChildDecoration *decoration.Decoration
	PopupDecoration *decoration.Decoration
	Screen          geometry.Size
	KeyboardInset   float64
	Layout          Layout
}

// Output is a fully resolved drawable frame
type Output struct {
	Rect           geometry.Frame
	Decoration     decoration.Decoration
	BarrierOpacity float64
	ContentOpacity float64
}

// Compose interpolates the panel between its collapsed and expanded state,
// then moves it clear of the keyboard and fits it to the available height.
func Compose(in Input) Output {
	t := in.Progress

	rect := geometry.LerpFrame(in.Start, in.Target, t)
	deco := decoration.Default()
	if d := decoration.Lerp(in.ChildDecoration, in.PopupDecoration, t); d != nil {
		deco = *d
	}

	screenH := in.Screen.Height
	inset := math.Max(0, in.KeyboardInset)

	if inset > 0 {
		overlap := rect.Bottom() - (screenH - inset)
		if overlap > 0 {
			y := rect.Position.Y
			rect.Position.Y = geometry.Clamp(y-overlap-in.Layout.KeyboardMargin, in.Layout.MinTop, y)
		}
	}

	available := math.Max(0, screenH-in.Layout.ReservedHeight-inset)
	rect.Size.Height = geometry.Clamp(rect.Size.Height, 0, available)

	opacity := math.Min(math.Max(t, 0), 1)
	return Output{
		Rect:           rect,
		Decoration:     deco,
		BarrierOpacity: opacity,
		ContentOpacity: opacity,
	}
}
