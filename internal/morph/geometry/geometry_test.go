package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp_Endpoints(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
	}{
		{"ascending", 0.1, 0.7},
		{"descending", 500, 290},
		{"negative", -3.3, 12.9},
		{"equal", 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.a, Lerp(tt.a, tt.b, 0))
			assert.Equal(t, tt.b, Lerp(tt.a, tt.b, 1))
		})
	}
}

func TestLerp_Monotonic(t *testing.T) {
	prev := Lerp(10, 320, 0)
	for i := 1; i <= 100; i++ {
		v := Lerp(10, 320, float64(i)/100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestLerpFrame(t *testing.T) {
	start := NewFrame(20, 500, 150, 40)
	target := NewFrame(40, 290, 320, 220)

	assert.Equal(t, start, LerpFrame(start, target, 0))
	assert.Equal(t, target, LerpFrame(start, target, 1))

	mid := LerpFrame(start, target, 0.5)
	assert.InDelta(t, 30, mid.Position.X, 1e-9)
	assert.InDelta(t, 395, mid.Position.Y, 1e-9)
	assert.InDelta(t, 235, mid.Size.Width, 1e-9)
	assert.InDelta(t, 130, mid.Size.Height, 1e-9)
}

func TestLerpSize_NeverNegative(t *testing.T) {
	s := LerpSize(Size{Width: 0, Height: 0}, Size{Width: 10, Height: 10}, -0.5)
	assert.Equal(t, Size{}, s)
}

func TestCentered(t *testing.T) {
	f := Centered(Size{Width: 320, Height: 220}, Size{Width: 400, Height: 800})

	assert.Equal(t, Point{X: 40, Y: 290}, f.Position)
	assert.Equal(t, Size{Width: 320, Height: 220}, f.Size)
}

func TestFrame_Edges(t *testing.T) {
	f := NewFrame(10, 20, 30, 40)

	assert.Equal(t, 40.0, f.Right())
	assert.Equal(t, 60.0, f.Bottom())
	assert.True(t, f.Contains(Point{X: 10, Y: 20}))
	assert.False(t, f.Contains(Point{X: 40, Y: 20}))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 100.0, Clamp(50, 100, 290))
	assert.Equal(t, 260.0, Clamp(260, 100, 290))
	assert.Equal(t, 290.0, Clamp(300, 100, 290))
	// inverted bounds: upper bound wins
	assert.Equal(t, 50.0, Clamp(20, 100, 50))
}

func TestInsets(t *testing.T) {
	i := SymmetricInsets(2, 1)

	assert.Equal(t, 4.0, i.Horizontal())
	assert.Equal(t, 2.0, i.Vertical())
	assert.Equal(t, Size{Width: 14, Height: 7}, Size{Width: 10, Height: 5}.Inflate(i))
	assert.Equal(t, Insets{Top: 3}, Insets{Left: -1, Top: 3}.Normalize())
}
