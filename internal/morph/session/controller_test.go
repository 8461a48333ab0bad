package session

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/morphpop/internal/domain"
	"github.com/riordanpawley/morphpop/internal/morph/compositor"
	"github.com/riordanpawley/morphpop/internal/morph/decoration"
	"github.com/riordanpawley/morphpop/internal/morph/geometry"
	"github.com/riordanpawley/morphpop/internal/morph/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type entry struct {
	r  host.Renderable
	at geometry.Point
}

type fakeSurface struct {
	next     host.Handle
	entries  map[host.Handle]entry
	inserts  int
	tornDown bool
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{entries: make(map[host.Handle]entry)}
}

func (s *fakeSurface) Insert(r host.Renderable, at geometry.Point) host.Handle {
	s.next++
	s.inserts++
	s.entries[s.next] = entry{r: r, at: at}
	return s.next
}

func (s *fakeSurface) Remove(h host.Handle) { delete(s.entries, h) }

func (s *fakeSurface) LayoutPass() {}

// Resolve reports a fixed content size of 300x220 for any live entry
func (s *fakeSurface) Resolve(h host.Handle) (geometry.Size, error) {
	if s.tornDown {
		return geometry.Size{}, domain.ErrSurfaceUnavailable
	}
	if _, ok := s.entries[h]; !ok {
		return geometry.Size{}, domain.ErrUnknownHandle
	}
	return testContent, nil
}

type fakeFocus struct {
	dismissed int
}

func (f *fakeFocus) DismissFocus() { f.dismissed++ }

type fakePainter struct{}

func (fakePainter) Paint(frame compositor.Output, content string) string {
	return "[" + content + "]"
}

type harness struct {
	c        *Controller
	surface  *fakeSurface
	focus    *fakeFocus
	keyboard float64
}

func newHarness() *harness {
	h := &harness{surface: newFakeSurface(), focus: &fakeFocus{}}
	opts := DefaultOptions()
	opts.Duration = 0
	h.c = NewController(
		func(host.Constraints) host.Renderable {
			return host.RenderFunc(func(host.Constraints) string { return "content" })
		},
		opts,
		Deps{
			Surface:       h.surface,
			Painter:       fakePainter{},
			Trigger:       func() geometry.Frame { return testTrigger },
			Screen:        func() geometry.Size { return testScreen },
			KeyboardInset: func() float64 { return h.keyboard },
			Focus:         h.focus,
			Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		},
	)
	return h
}

// pump runs cmd and every command it leads to, feeding each message back
// into the controller. It returns the messages seen.
func (h *harness) pump(cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0 && i < 1000; i++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		seen = append(seen, msg)
		queue = append(queue, h.c.Update(msg))
	}
	return seen
}

func hasMsg[T any](msgs []tea.Msg) bool {
	for _, m := range msgs {
		if _, ok := m.(T); ok {
			return true
		}
	}
	return false
}

func TestController_OpenAndClose(t *testing.T) {
	h := newHarness()

	msgs := h.pump(h.c.Activate())

	assert.True(t, hasMsg[ShownMsg](msgs))
	assert.Equal(t, Open, h.c.Status())
	assert.Equal(t, 0.0, h.c.TriggerOpacity())
	assert.Len(t, h.surface.entries, 1, "only the panel entry remains")
	assert.Equal(t, 2, h.surface.inserts, "probe entry then panel entry")

	frame, ok := h.c.Frame()
	require.True(t, ok)
	assert.Equal(t, geometry.NewFrame(40, 290, 320, 220), frame.Rect)
	assert.Equal(t, 1.0, frame.BarrierOpacity)

	msgs = h.pump(h.c.RequestClose())

	assert.True(t, hasMsg[DismissedMsg](msgs))
	assert.Equal(t, Idle, h.c.Status())
	assert.Equal(t, 1.0, h.c.TriggerOpacity())
	assert.Empty(t, h.surface.entries)
	_, ok = h.c.Frame()
	assert.False(t, ok)
}

func TestController_DoubleActivateIgnored(t *testing.T) {
	h := newHarness()

	first := h.c.Activate()
	require.NotNil(t, first)
	assert.Equal(t, Opening, h.c.Status())

	second := h.c.Activate()
	assert.Nil(t, second)
	assert.Equal(t, 1, h.surface.inserts)
	assert.Equal(t, 1, h.c.State().Generation)

	h.pump(first)
	assert.Equal(t, Open, h.c.Status())
	assert.Equal(t, 2, h.surface.inserts)
}

func TestController_KeyboardRaisesPanel(t *testing.T) {
	h := newHarness()
	h.c.opts.Layout = compositor.DefaultLayout()
	h.pump(h.c.Activate())

	h.keyboard = 300
	frame, ok := h.c.Frame()

	require.True(t, ok)
	assert.Equal(t, 260.0, frame.Rect.Position.Y)
	assert.Equal(t, 220.0, frame.Rect.Size.Height)
}

func TestController_CloseWithKeyboardDismissesIt(t *testing.T) {
	h := newHarness()
	h.pump(h.c.Activate())
	h.keyboard = 300

	cmd := h.c.RequestClose()

	assert.Nil(t, cmd)
	assert.Equal(t, Open, h.c.Status())
	assert.Equal(t, 1, h.focus.dismissed)
	assert.Equal(t, 1.0, h.c.Progress())

	// once the keyboard is gone the same request closes
	h.keyboard = 0
	h.pump(h.c.RequestClose())
	assert.Equal(t, Idle, h.c.Status())
}

func TestController_CloseWhileMeasuring(t *testing.T) {
	h := newHarness()

	measure := h.c.Activate()
	require.True(t, h.c.Measuring())

	msgs := h.pump(h.c.RequestClose())
	assert.True(t, hasMsg[DismissedMsg](msgs))
	assert.Equal(t, Idle, h.c.Status())
	assert.Empty(t, h.surface.entries)

	// the layout pass arriving late does nothing
	assert.Empty(t, h.pump(measure)[1:])
	assert.Equal(t, Idle, h.c.Status())
	assert.Empty(t, h.surface.entries)
}

func TestController_MeasurementFailure(t *testing.T) {
	h := newHarness()
	cmd := h.c.Activate()
	h.surface.tornDown = true

	msgs := h.pump(cmd)

	var failed FailedMsg
	for _, m := range msgs {
		if f, ok := m.(FailedMsg); ok {
			failed = f
		}
	}
	require.Error(t, failed.Err)
	assert.True(t, errors.Is(failed.Err, domain.ErrMeasurementFailed))
	assert.Equal(t, Idle, h.c.Status())
	assert.Empty(t, h.surface.entries)
	assert.Equal(t, 1.0, h.c.TriggerOpacity())
}

func TestController_ForceImmediateClose(t *testing.T) {
	h := newHarness()
	h.pump(h.c.Activate())
	require.Len(t, h.surface.entries, 1)

	h.c.ForceImmediateClose()

	assert.Equal(t, Idle, h.c.Status())
	assert.Empty(t, h.surface.entries)
	assert.Equal(t, 0.0, h.c.Progress())

	// idempotent
	h.c.ForceImmediateClose()
	assert.Equal(t, Idle, h.c.Status())
}

func TestController_ForceCloseWhileMeasuring(t *testing.T) {
	h := newHarness()
	h.c.Activate()
	require.Len(t, h.surface.entries, 1)

	h.c.ForceImmediateClose()

	assert.Empty(t, h.surface.entries)
	assert.False(t, h.c.Measuring())
}

func TestController_RedundantCloseIgnored(t *testing.T) {
	h := newHarness()

	assert.Nil(t, h.c.RequestClose())
	assert.Equal(t, Idle, h.c.Status())
}

func TestController_PanelEntryRenders(t *testing.T) {
	h := newHarness()
	h.pump(h.c.Activate())

	var panelEntry entry
	for _, e := range h.surface.entries {
		panelEntry = e
	}
	require.NotNil(t, panelEntry.r)

	assert.Equal(t, "[content]", panelEntry.r.Render(host.Constraints{}))

	placed, ok := panelEntry.r.(host.Placed)
	require.True(t, ok)
	assert.Equal(t, geometry.Point{X: 40, Y: 290}, placed.Placement())

	scrim, ok := panelEntry.r.(host.Scrimmed)
	require.True(t, ok)
	assert.Equal(t, 1.0, scrim.Scrim().Opacity)
	assert.Equal(t, decoration.Black.WithAlpha(0.6), scrim.Scrim().Color)
}

type fakeTheme struct{}

func (fakeTheme) ChildDecoration() decoration.Decoration {
	return decoration.New(decoration.WithRadius(decoration.UniformRadius(1)))
}

func (fakeTheme) PopupDecoration() decoration.Decoration {
	return decoration.New(decoration.WithRadius(decoration.UniformRadius(2)))
}

func TestController_DecorationResolution(t *testing.T) {
	h := newHarness()
	h.c.deps.Theme = fakeTheme{}
	explicit := decoration.New(decoration.WithFill(decoration.White))
	h.c.opts.PopupDecoration = &explicit

	h.c.Activate()

	assert.Equal(t, fakeTheme{}.ChildDecoration(), h.c.State().ChildDecoration)
	assert.Equal(t, explicit, h.c.State().PopupDecoration)
}

func TestController_TracesSession(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	h := newHarness()
	h.c.tracer = tp.Tracer("test")

	h.pump(h.c.Activate())
	assert.Empty(t, recorder.Ended(), "span stays open while the panel is shown")
	h.pump(h.c.RequestClose())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "overlay.session", spans[0].Name())
	var moves []string
	for _, ev := range spans[0].Events() {
		for _, kv := range ev.Attributes {
			if kv.Key == "to" {
				moves = append(moves, kv.Value.AsString())
			}
		}
	}
	assert.Equal(t, []string{Opening.String(), Open.String(), Closing.String(), Idle.String()}, moves)
}

func TestController_TracesFailure(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	h := newHarness()
	h.c.tracer = tp.Tracer("test")
	cmd := h.c.Activate()
	h.surface.tornDown = true

	h.pump(cmd)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "Error", spans[0].Status().Code.String())
}
