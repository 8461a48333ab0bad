package easing

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

const (
	springSamples   = 240
	springFPS       = 120
	springFrequency = 7.0
	springDamping   = 0.8
)

// DefaultSpring is a slightly under-damped spring that overshoots a little
// before settling.
func DefaultSpring() Curve {
	return Spring(springFrequency, springDamping)
}

// Spring returns a curve that follows a damped spring released from 0 toward
// 1. The spring is simulated once over a fixed window and the trajectory is
// rescaled so that t=1 lands exactly on 1. Values between samples are linearly
// interpolated. Under-damped springs overshoot above 1 mid-curve.
func Spring(angularFrequency, dampingRatio float64) Curve {
	s := harmonica.NewSpring(harmonica.FPS(springFPS), angularFrequency, dampingRatio)

	samples := make([]float64, springSamples+1)
	pos, vel := 0.0, 0.0
	for i := 1; i <= springSamples; i++ {
		pos, vel = s.Update(pos, vel, 1)
		samples[i] = pos
	}
	end := samples[springSamples]
	if end == 0 {
		return Linear
	}
	for i := range samples {
		samples[i] /= end
	}

	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}
		x := t * springSamples
		i := int(math.Floor(x))
		frac := x - float64(i)
		return samples[i] + (samples[i+1]-samples[i])*frac
	}
}
