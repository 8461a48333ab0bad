package toast

import (
	"strings"
	"testing"
	"time"

	"github.com/riordanpawley/morphpop/internal/morph/geometry"
	"github.com/riordanpawley/morphpop/internal/morph/host"
	"github.com/riordanpawley/morphpop/internal/types"
	"github.com/riordanpawley/morphpop/internal/ui/styles"
	"github.com/stretchr/testify/assert"
)

func TestToastRenderer_Render_Empty(t *testing.T) {
	renderer := New(styles.New())

	result := renderer.Render([]types.Toast{}, 80)

	assert.Equal(t, "", result, "Empty toast list should return empty string")
}

func TestToastRenderer_Render_MultipleToasts(t *testing.T) {
	renderer := New(styles.New())
	now := time.Now()

	toasts := []types.Toast{
		types.NewToast(types.ToastInfo, "First toast", now, 5*time.Second),
		types.NewToast(types.ToastError, "Second toast", now, 5*time.Second),
	}

	result := renderer.Render(toasts, 80)

	assert.Contains(t, result, "First toast")
	assert.Contains(t, result, "Second toast")
	assert.Greater(t, len(strings.Split(result, "\n")), 1, "toasts stack vertically")
}

func TestToastRenderer_Render_DifferentLevels(t *testing.T) {
	renderer := New(styles.New())

	for name, level := range map[string]types.ToastLevel{
		"Info":    types.ToastInfo,
		"Success": types.ToastSuccess,
		"Warning": types.ToastWarning,
		"Error":   types.ToastError,
	} {
		t.Run(name, func(t *testing.T) {
			toasts := []types.Toast{types.NewToast(level, "Test "+name, time.Now(), time.Second)}

			result := renderer.Render(toasts, 80)

			assert.Contains(t, result, "Test "+name)
		})
	}
}

func TestToastRenderer_WidthCapped(t *testing.T) {
	renderer := New(styles.New())
	toasts := []types.Toast{types.NewToast(types.ToastInfo, "x", time.Now(), time.Second)}

	for _, line := range strings.Split(renderer.Render(toasts, 300), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), maxWidth+2)
	}
}

func TestLayer_Placement(t *testing.T) {
	layer := New(styles.New()).Layer()
	var _ host.Placed = layer

	screen := geometry.Size{Width: 90, Height: 30}
	layer.Set([]types.Toast{types.NewToast(types.ToastError, "boom", time.Now(), time.Second)}, screen, 1)

	out := layer.Render(host.Constraints{})
	at := layer.Placement()

	// 90/3 = 30 wide plus the border; three rows tall
	assert.Equal(t, 58.0, at.X)
	assert.Equal(t, 26.0, at.Y)
	assert.Contains(t, out, "boom")
}

func TestLayer_EmptyIsOffscreen(t *testing.T) {
	layer := New(styles.New()).Layer()
	screen := geometry.Size{Width: 90, Height: 30}
	layer.Set(nil, screen, 0)

	assert.Empty(t, layer.Render(host.Constraints{}))
	assert.Equal(t, geometry.Point{X: 90, Y: 30}, layer.Placement())
}
