// Package easing provides the curves that map linear animation time to
// eased progress.
package easing

import (
	"fmt"
	"math"
	"strings"
)

// Curve maps linear progress in [0,1] to eased progress. Curves must return
// 0 for 0 and 1 for 1.
type Curve func(t float64) float64

// Linear is the identity curve
func Linear(t float64) float64 { return t }

// Standard curves, matching the CSS keyword timings
var (
	Ease      = CubicBezier(0.25, 0.1, 0.25, 1.0)
	EaseIn    = CubicBezier(0.42, 0, 1.0, 1.0)
	EaseOut   = CubicBezier(0, 0, 0.58, 1.0)
	EaseInOut = CubicBezier(0.42, 0, 0.58, 1.0)

	// Emphasized starts slowly, then snaps into place. It is the default
	// curve for both directions of the morph.
	Emphasized = CubicBezier(1.0, 0.155, 0.155, 1.0)
)

// Flipped returns the curve mirrored around the center, so that an ease-in
// becomes an ease-out.
func Flipped(c Curve) Curve {
	return func(t float64) float64 {
		return 1 - c(1-t)
	}
}

// CubicBezier returns the curve defined by the control points (x1,y1) and
// (x2,y2), with fixed end points (0,0) and (1,1). x1 and x2 are clamped to
// [0,1] so that the curve is a function of t.
func CubicBezier(x1, y1, x2, y2 float64) Curve {
	x1 = math.Min(math.Max(x1, 0), 1)
	x2 = math.Min(math.Max(x2, 0), 1)
	b := bezier{x1: x1, y1: y1, x2: x2, y2: y2}
	return b.transform
}

type bezier struct {
	x1, y1, x2, y2 float64
}

const (
	newtonIterations = 8
	bisectIterations = 40
	solveEpsilon     = 1e-7
)

func (b bezier) transform(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return sample(b.y1, b.y2, b.solve(t))
}

// solve finds the curve parameter s with x(s) == x, using Newton steps and
// falling back to bisection where the slope is too flat.
func (b bezier) solve(x float64) float64 {
	s := x
	for i := 0; i < newtonIterations; i++ {
		err := sample(b.x1, b.x2, s) - x
		if math.Abs(err) < solveEpsilon {
			return s
		}
		d := slope(b.x1, b.x2, s)
		if math.Abs(d) < 1e-6 {
			break
		}
		s -= err / d
		if s < 0 || s > 1 {
			break
		}
	}

	lo, hi := 0.0, 1.0
	s = x
	for i := 0; i < bisectIterations; i++ {
		v := sample(b.x1, b.x2, s)
		if math.Abs(v-x) < solveEpsilon {
			return s
		}
		if v < x {
			lo = s
		} else {
			hi = s
		}
		s = (lo + hi) / 2
	}
	return s
}

// sample evaluates one axis of the bezier with end points 0 and 1
func sample(p1, p2, s float64) float64 {
	inv := 1 - s
	return 3*inv*inv*s*p1 + 3*inv*s*s*p2 + s*s*s
}

func slope(p1, p2, s float64) float64 {
	inv := 1 - s
	return 3*inv*inv*p1 + 6*inv*s*(p2-p1) + 3*s*s*(1-p2)
}

// Parse resolves a curve name used in configuration:
// linear, ease, easeIn, easeOut, easeInOut, emphasized, spring, or
// cubic-bezier(x1, y1, x2, y2).
func Parse(name string) (Curve, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "", "emphasized":
		return Emphasized, nil
	case "linear":
		return Linear, nil
	case "ease":
		return Ease, nil
	case "easein", "ease-in":
		return EaseIn, nil
	case "easeout", "ease-out":
		return EaseOut, nil
	case "easeinout", "ease-in-out":
		return EaseInOut, nil
	case "spring":
		return DefaultSpring(), nil
	}

	if strings.HasPrefix(n, "cubic-bezier(") && strings.HasSuffix(n, ")") {
		args := strings.ReplaceAll(n[len("cubic-bezier("):len(n)-1], " ", "")
		var x1, y1, x2, y2 float64
		if _, err := fmt.Sscanf(args, "%g,%g,%g,%g", &x1, &y1, &x2, &y2); err != nil {
			return nil, fmt.Errorf("invalid cubic-bezier %q: %w", name, err)
		}
		return CubicBezier(x1, y1, x2, y2), nil
	}

	return nil, fmt.Errorf("unknown easing curve %q", name)
}
