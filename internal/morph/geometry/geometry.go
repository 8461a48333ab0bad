// Package geometry holds the position/size value types the overlay morphs
// between, and their interpolation.
package geometry

import "math"

// Point is a position in screen coordinates
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair. Both dimensions are non-negative.
type Size struct {
	Width  float64
	Height float64
}

// Frame is a rectangle described by its top-left position and size
type Frame struct {
	Position Point
	Size     Size
}

// Insets are per-edge distances, used for padding
type Insets struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

// NewFrame builds a frame from raw coordinates, clamping negative sizes to zero
func NewFrame(x, y, width, height float64) Frame {
	return Frame{
		Position: Point{X: x, Y: y},
		Size:     Size{Width: width, Height: height}.Normalize(),
	}
}

// Normalize clamps negative dimensions to zero
func (s Size) Normalize() Size {
	return Size{Width: math.Max(0, s.Width), Height: math.Max(0, s.Height)}
}

// Right returns the x coordinate of the frame's right edge
func (f Frame) Right() float64 {
	return f.Position.X + f.Size.Width
}

// Bottom returns the y coordinate of the frame's bottom edge
func (f Frame) Bottom() float64 {
	return f.Position.Y + f.Size.Height
}

// Contains reports whether p lies inside the frame
func (f Frame) Contains(p Point) bool {
	return p.X >= f.Position.X && p.X < f.Right() &&
		p.Y >= f.Position.Y && p.Y < f.Bottom()
}

// Centered returns a frame of the given size centered within screen
func Centered(size Size, screen Size) Frame {
	size = size.Normalize()
	return Frame{
		Position: Point{
			X: (screen.Width - size.Width) / 2,
			Y: (screen.Height - size.Height) / 2,
		},
		Size: size,
	}
}

// UniformInsets returns insets with the same value on every edge
func UniformInsets(v float64) Insets {
	return Insets{Left: v, Top: v, Right: v, Bottom: v}
}

// SymmetricInsets returns insets with separate horizontal and vertical values
func SymmetricInsets(horizontal, vertical float64) Insets {
	return Insets{Left: horizontal, Top: vertical, Right: horizontal, Bottom: vertical}
}

// Horizontal returns the combined left and right inset
func (i Insets) Horizontal() float64 {
	return i.Left + i.Right
}

// Vertical returns the combined top and bottom inset
func (i Insets) Vertical() float64 {
	return i.Top + i.Bottom
}

// Normalize clamps negative edges to zero
func (i Insets) Normalize() Insets {
	return Insets{
		Left:   math.Max(0, i.Left),
		Top:    math.Max(0, i.Top),
		Right:  math.Max(0, i.Right),
		Bottom: math.Max(0, i.Bottom),
	}
}

// Inflate grows a size by the insets
func (s Size) Inflate(i Insets) Size {
	return Size{Width: s.Width + i.Horizontal(), Height: s.Height + i.Vertical()}
}

// Lerp interpolates between a and b. t=0 yields exactly a and t=1 exactly b.
// Values of t outside [0,1] extrapolate.
func Lerp(a, b, t float64) float64 {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return a + (b-a)*t
}

// LerpPoint interpolates each coordinate independently
func LerpPoint(a, b Point, t float64) Point {
	return Point{X: Lerp(a.X, b.X, t), Y: Lerp(a.Y, b.Y, t)}
}

// LerpSize interpolates each dimension independently, never going negative
func LerpSize(a, b Size, t float64) Size {
	return Size{Width: Lerp(a.Width, b.Width, t), Height: Lerp(a.Height, b.Height, t)}.Normalize()
}

// LerpInsets interpolates each edge independently, never going negative
func LerpInsets(a, b Insets, t float64) Insets {
	return Insets{
		Left:   Lerp(a.Left, b.Left, t),
		Top:    Lerp(a.Top, b.Top, t),
		Right:  Lerp(a.Right, b.Right, t),
		Bottom: Lerp(a.Bottom, b.Bottom, t),
	}.Normalize()
}

// LerpFrame interpolates position and size independently
func LerpFrame(a, b Frame, t float64) Frame {
	return Frame{
		Position: LerpPoint(a.Position, b.Position, t),
		Size:     LerpSize(a.Size, b.Size, t),
	}
}

// Clamp limits v to [lo, hi]. When hi < lo the upper bound wins.
func Clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
