// Package host defines what the overlay core needs from the surface that
// actually draws it. The core never renders itself; it inserts renderables
// into a Surface and reads back their laid-out size.
package host

import (
	"github.com/riordanpawley/morphpop/internal/morph/decoration"
	"github.com/riordanpawley/morphpop/internal/morph/geometry"
)

// Constraints bound the size a renderable may lay itself out at.
// A zero bound means unconstrained.
type Constraints struct {
	MaxWidth  float64
	MaxHeight float64
}

// Renderable is anything a Surface can host
type Renderable interface {
	Render(c Constraints) string
}

// RenderFunc adapts a function to Renderable
type RenderFunc func(c Constraints) string

// Render calls f
func (f RenderFunc) Render(c Constraints) string {
	return f(c)
}

// Builder produces the content of the popup. It is called once to measure
// and again for every drawn frame, and must give the same result for the
// same constraints.
type Builder func(c Constraints) Renderable

// Handle identifies an entry inserted into a Surface
type Handle int

// Surface hosts top-level renderables above normal content
type Surface interface {
	// Insert adds r at the given position and returns its handle
	Insert(r Renderable, at geometry.Point) Handle
	// Remove takes an entry out. Unknown handles are ignored.
	Remove(h Handle)
	// LayoutPass resolves the size of every entry
	LayoutPass()
	// Resolve returns the size of an entry as of the last layout pass
	Resolve(h Handle) (geometry.Size, error)
}

// Placed is implemented by renderables whose position changes every frame.
// The surface asks for the position at draw time instead of using the
// insertion point.
type Placed interface {
	Placement() geometry.Point
}

// Scrim is a full-screen tint drawn beneath an entry
type Scrim struct {
	Color   decoration.Color
	Opacity float64
}

// Scrimmed is implemented by renderables that dim the content behind them
type Scrimmed interface {
	Scrim() Scrim
}
