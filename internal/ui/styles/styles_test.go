package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/morphpop/internal/morph/decoration"
	"github.com/riordanpawley/morphpop/internal/morph/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New()
	require.NotNil(t, s)
}

func TestOverlayStatus(t *testing.T) {
	s := New()

	for _, status := range []session.Status{session.Idle, session.Opening, session.Open, session.Closing, session.Status(9)} {
		t.Run(status.String(), func(t *testing.T) {
			rendered := s.OverlayStatus(status).Render(status.String())
			assert.Contains(t, rendered, status.String())
		})
	}
}

func TestThemeColors(t *testing.T) {
	for name, c := range map[string]string{
		"Base":     string(Base),
		"Blue":     string(Blue),
		"Red":      string(Red),
		"Lavender": string(Lavender),
		"Crust":    string(Crust),
	} {
		t.Run(name, func(t *testing.T) {
			require.NotEmpty(t, c)
			assert.Equal(t, byte('#'), c[0])
			assert.Equal(t, 1.0, Color(lipgloss.Color(c)).A)
		})
	}
}

func TestColor(t *testing.T) {
	c := Color(Base)
	assert.Equal(t, "#24273a", c.Hex())
	assert.Equal(t, 1.0, c.A)

	assert.Equal(t, decoration.Transparent, Color("212"))
}

func TestTheme_Decorations(t *testing.T) {
	var th session.ThemeProvider = Theme{}

	child := th.ChildDecoration()
	popup := th.PopupDecoration()

	fill, ok := child.Fill.Get()
	require.True(t, ok)
	assert.Equal(t, "#363a4f", fill.Hex())

	border, ok := popup.Border.Get()
	require.True(t, ok)
	assert.Equal(t, 1.0, border.Width)
	assert.Equal(t, "#b7bdf8", border.Color.Hex())

	// cell sized, not pixel sized
	assert.LessOrEqual(t, popup.Padding.Horizontal(), 4.0)
	assert.LessOrEqual(t, child.Radius.Max(), 1.0)
	assert.Greater(t, popup.Shadow.Color.A, 0.0)
}
