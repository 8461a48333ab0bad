// Package decoration models the visual style of a box (fill, border, shadow,
// corner radius, padding) as an immutable value that can be interpolated.
package decoration

import (
	"math"

	"github.com/riordanpawley/morphpop/internal/morph/geometry"
)

const (
	// DefaultRadius is the corner radius of a default decoration
	DefaultRadius = 10
	// DefaultPadding is the padding of a default decoration
	DefaultPadding = 8
)

// Optional holds a value that may be absent. It stays comparable so that
// Decoration keeps structural equality.
type Optional[T comparable] struct {
	value T
	ok    bool
}

// Some wraps a present value
func Some[T comparable](v T) Optional[T] {
	return Optional[T]{value: v, ok: true}
}

// None returns an absent value
func None[T comparable]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.ok
}

// IsSet reports whether the value is present
func (o Optional[T]) IsSet() bool {
	return o.ok
}

// Border is a uniform stroke around the box
type Border struct {
	Color Color
	Width float64
}

// Shadow is a drop shadow cast by the box
type Shadow struct {
	Color  Color
	Offset geometry.Point
	Blur   float64
	Spread float64
}

// RadiusSet holds one radius per corner
type RadiusSet struct {
	TopLeft     float64
	TopRight    float64
	BottomRight float64
	BottomLeft  float64
}

// UniformRadius returns the same radius on every corner
func UniformRadius(r float64) RadiusSet {
	return RadiusSet{TopLeft: r, TopRight: r, BottomRight: r, BottomLeft: r}
}

// Max returns the largest corner radius
func (r RadiusSet) Max() float64 {
	return math.Max(math.Max(r.TopLeft, r.TopRight), math.Max(r.BottomRight, r.BottomLeft))
}

// Decoration is an immutable style snapshot. The zero value is not the
// default; use Default or New.
type Decoration struct {
	Fill    Optional[Color]
	Border  Optional[Border]
	Shadow  Shadow
	Radius  RadiusSet
	Padding geometry.Insets
}

// Option replaces one field of a decoration
type Option func(*Decoration)

// Default returns the decoration used when none is supplied:
// no fill, no border, transparent shadow, radius 10, padding 8.
func Default() Decoration {
	return Decoration{
		Shadow:  Shadow{Color: Transparent},
		Radius:  UniformRadius(DefaultRadius),
		Padding: geometry.UniformInsets(DefaultPadding),
	}
}

// New returns Default with the given overrides applied
func New(opts ...Option) Decoration {
	return Default().With(opts...)
}

// With returns a copy of d with the overrides applied. d is unchanged.
func (d Decoration) With(opts ...Option) Decoration {
	for _, opt := range opts {
		opt(&d)
	}
	return d.Normalize()
}

// WithFill sets the fill color
func WithFill(c Color) Option {
	return func(d *Decoration) { d.Fill = Some(c) }
}

// WithoutFill removes the fill color
func WithoutFill() Option {
	return func(d *Decoration) { d.Fill = None[Color]() }
}

// WithBorder sets the border
func WithBorder(b Border) Option {
	return func(d *Decoration) { d.Border = Some(b) }
}

// WithoutBorder removes the border
func WithoutBorder() Option {
	return func(d *Decoration) { d.Border = None[Border]() }
}

// WithShadow sets the shadow
func WithShadow(s Shadow) Option {
	return func(d *Decoration) { d.Shadow = s }
}

// WithRadius sets the corner radii
func WithRadius(r RadiusSet) Option {
	return func(d *Decoration) { d.Radius = r }
}

// WithPadding sets the padding
func WithPadding(p geometry.Insets) Option {
	return func(d *Decoration) { d.Padding = p }
}

// ContentInsets is the space between the decoration's outer edge and its
// content: the padding plus the border width on every side.
func (d Decoration) ContentInsets() geometry.Insets {
	in := d.Padding.Normalize()
	if b, ok := d.Border.Get(); ok && b.Width > 0 {
		in.Left += b.Width
		in.Top += b.Width
		in.Right += b.Width
		in.Bottom += b.Width
	}
	return in
}

// Normalize clamps geometric fields to be non-negative and colors into range
func (d Decoration) Normalize() Decoration {
	if c, ok := d.Fill.Get(); ok {
		d.Fill = Some(c.Normalize())
	}
	if b, ok := d.Border.Get(); ok {
		d.Border = Some(Border{Color: b.Color.Normalize(), Width: math.Max(0, b.Width)})
	}
	d.Shadow = Shadow{
		Color:  d.Shadow.Color.Normalize(),
		Offset: d.Shadow.Offset,
		Blur:   math.Max(0, d.Shadow.Blur),
		Spread: math.Max(0, d.Shadow.Spread),
	}
	d.Radius = RadiusSet{
		TopLeft:     math.Max(0, d.Radius.TopLeft),
		TopRight:    math.Max(0, d.Radius.TopRight),
		BottomRight: math.Max(0, d.Radius.BottomRight),
		BottomLeft:  math.Max(0, d.Radius.BottomLeft),
	}
	d.Padding = d.Padding.Normalize()
	return d
}

// Lerp interpolates between two optional decorations. An absent side is
// replaced by Default. The result is nil only when both sides are nil.
func Lerp(a, b *Decoration, t float64) *Decoration {
	if a == nil && b == nil {
		return nil
	}
	from, to := Default(), Default()
	if a != nil {
		from = *a
	}
	if b != nil {
		to = *b
	}
	out := Interpolate(from, to, t)
	return &out
}

// Interpolate blends every field of a and b independently.
// Interpolate(a, b, 0) == a and Interpolate(a, b, 1) == b.
func Interpolate(a, b Decoration, t float64) Decoration {
	switch t {
	case 0:
		return a
	case 1:
		return b
	}
	return Decoration{
		Fill:    lerpFill(a.Fill, b.Fill, t),
		Border:  lerpBorder(a.Border, b.Border, t),
		Shadow:  lerpShadow(a.Shadow, b.Shadow, t),
		Radius:  lerpRadius(a.Radius, b.Radius, t),
		Padding: geometry.LerpInsets(a.Padding, b.Padding, t),
	}.Normalize()
}

// An absent fill blends against a transparent copy of the present one, so
// only alpha changes.
func lerpFill(a, b Optional[Color], t float64) Optional[Color] {
	ca, okA := a.Get()
	cb, okB := b.Get()
	switch {
	case !okA && !okB:
		return None[Color]()
	case !okA:
		ca = cb.WithAlpha(0)
	case !okB:
		cb = ca.WithAlpha(0)
	}
	return Some(LerpColor(ca, cb, t))
}

func lerpBorder(a, b Optional[Border], t float64) Optional[Border] {
	ba, okA := a.Get()
	bb, okB := b.Get()
	switch {
	case !okA && !okB:
		return None[Border]()
	case !okA:
		ba = Border{Color: bb.Color.WithAlpha(0)}
	case !okB:
		bb = Border{Color: ba.Color.WithAlpha(0)}
	}
	return Some(Border{
		Color: LerpColor(ba.Color, bb.Color, t),
		Width: geometry.Lerp(ba.Width, bb.Width, t),
	})
}

func lerpShadow(a, b Shadow, t float64) Shadow {
	return Shadow{
		Color:  LerpColor(a.Color, b.Color, t),
		Offset: geometry.LerpPoint(a.Offset, b.Offset, t),
		Blur:   geometry.Lerp(a.Blur, b.Blur, t),
		Spread: geometry.Lerp(a.Spread, b.Spread, t),
	}
}

func lerpRadius(a, b RadiusSet, t float64) RadiusSet {
	return RadiusSet{
		TopLeft:     geometry.Lerp(a.TopLeft, b.TopLeft, t),
		TopRight:    geometry.Lerp(a.TopRight, b.TopRight, t),
		BottomRight: geometry.Lerp(a.BottomRight, b.BottomRight, t),
		BottomLeft:  geometry.Lerp(a.BottomLeft, b.BottomLeft, t),
	}
}
