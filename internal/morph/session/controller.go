package session

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/morphpop/internal/morph/compositor"
	"github.com/riordanpawley/morphpop/internal/morph/decoration"
	"github.com/riordanpawley/morphpop/internal/morph/easing"
	"github.com/riordanpawley/morphpop/internal/morph/geometry"
	"github.com/riordanpawley/morphpop/internal/morph/host"
	"github.com/riordanpawley/morphpop/internal/morph/probe"
	"github.com/riordanpawley/morphpop/internal/morph/progress"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// DefaultDuration is the length of one opening or closing animation
const DefaultDuration = 350 * time.Millisecond

// Options configure the look and timing of the morph
type Options struct {
	Duration     time.Duration
	ForwardCurve easing.Curve
	ReverseCurve easing.Curve
	BarrierColor decoration.Color
	// ChildDecoration and PopupDecoration fall back to the theme when nil
	ChildDecoration *decoration.Decoration
	PopupDecoration *decoration.Decoration
	Layout          compositor.Layout
}

// DefaultOptions returns 350ms emphasized curves over a 60% black barrier
func DefaultOptions() Options {
	return Options{
		Duration:     DefaultDuration,
		ForwardCurve: easing.Emphasized,
		ReverseCurve: easing.Emphasized,
		BarrierColor: decoration.Black.WithAlpha(0.6),
		Layout:       compositor.DefaultLayout(),
	}
}

// ThemeProvider supplies decorations when none are configured. It is only
// consulted when a session is activated.
type ThemeProvider interface {
	ChildDecoration() decoration.Decoration
	PopupDecoration() decoration.Decoration
}

// FocusDismisser retracts the on-screen keyboard
type FocusDismisser interface {
	DismissFocus()
}

// Painter draws the panel box for one composed frame. The result is placed
// at the frame's position by the host surface.
type Painter interface {
	Paint(frame compositor.Output, content string) string
}

// Deps are the collaborators a Controller talks to
type Deps struct {
	Surface       host.Surface
	Painter       Painter
	Trigger       func() geometry.Frame
	Screen        func() geometry.Size
	KeyboardInset func() float64
	Focus         FocusDismisser
	Theme         ThemeProvider
	Logger        *slog.Logger
	Tracer        trace.Tracer
	DriverOptions []progress.Option
}

// ShownMsg is sent when the overlay has finished opening
type ShownMsg struct {
	Generation int
}

// DismissedMsg is sent when the session is over and the trigger is back
type DismissedMsg struct {
	Generation int
}

// FailedMsg is sent when a show attempt had to be abandoned
type FailedMsg struct {
	Generation int
	Err        error
}

// Controller owns one overlay at a time and its entry in the host surface
type Controller struct {
	opts    Options
	deps    Deps
	content host.Builder
	logger  *slog.Logger
	tracer  trace.Tracer

	state  State
	driver *progress.Driver
	prober *probe.Prober

	overlay       host.Handle
	hasOverlay    bool
	triggerHidden bool

	span trace.Span
}

// NewController creates an idle controller for the given popup content
func NewController(content host.Builder, opts Options, deps Deps) *Controller {
	defaults := DefaultOptions()
	if opts.Duration < 0 {
		opts.Duration = defaults.Duration
	}
	if opts.ForwardCurve == nil {
		opts.ForwardCurve = defaults.ForwardCurve
	}
	if opts.ReverseCurve == nil {
		opts.ReverseCurve = defaults.ReverseCurve
	}
	if opts.Layout == (compositor.Layout{}) {
		opts.Layout = defaults.Layout
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	tracer := deps.Tracer
	if tracer == nil {
		tracer = otel.Tracer("morphpop/session")
	}

	return &Controller{
		opts:    opts,
		deps:    deps,
		content: content,
		logger:  logger,
		tracer:  tracer,
		driver:  progress.New(deps.DriverOptions...),
		prober:  probe.New(deps.Surface),
	}
}

// Status returns the current lifecycle phase
func (c *Controller) Status() Status {
	return c.state.Status
}

// State returns a copy of the session state
func (c *Controller) State() State {
	return c.state
}

// Progress returns the eased animation progress
func (c *Controller) Progress() float64 {
	return c.driver.Value()
}

// Measuring reports whether the content is still being measured
func (c *Controller) Measuring() bool {
	return c.prober.Pending()
}

// TriggerOpacity is 0 while the overlay stands in for the trigger
func (c *Controller) TriggerOpacity() float64 {
	if c.triggerHidden {
		return 0
	}
	return 1
}

// Activate starts a session. It does nothing unless the controller is idle.
func (c *Controller) Activate() tea.Cmd {
	if c.state.Status != Idle {
		c.logger.Debug("activation ignored", "status", c.state.Status, "session", c.state.Generation)
		return nil
	}
	child, popup := c.resolveDecorations()
	trigger := geometry.Frame{}
	if c.deps.Trigger != nil {
		trigger = c.deps.Trigger()
	}
	return c.dispatch(Activate{Trigger: trigger, Child: child, Popup: popup, Screen: c.screen()})
}

// RequestClose closes the overlay, or only retracts the keyboard while one
// is showing
func (c *Controller) RequestClose() tea.Cmd {
	if c.state.Status == Idle {
		c.logger.Debug("close ignored while idle")
		return nil
	}
	return c.dispatch(RequestClose{KeyboardInset: c.keyboardInset()})
}

// ForceImmediateClose removes the overlay synchronously without animating.
// It is safe to call in any state and sends no messages.
func (c *Controller) ForceImmediateClose() {
	c.dispatch(ForceClose{})
}

// Update routes probe, frame and completion messages into the machine
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	if res, ok := c.prober.Resume(msg); ok {
		if res.Err != nil {
			return c.dispatch(MeasureFailed{Err: res.Err})
		}
		return c.dispatch(Measured{Content: res.Size, Screen: c.screen()})
	}

	if done, ok := c.driver.IsCompletion(msg); ok {
		c.state, _ = Transition(c.state, Tick{Progress: c.driver.Value()})
		if done.Direction == progress.Forward {
			return c.dispatch(ForwardCompleted{})
		}
		return c.dispatch(ReverseCompleted{})
	}

	if _, ok := msg.(progress.FrameMsg); ok {
		cmd := c.driver.Update(msg)
		c.state, _ = Transition(c.state, Tick{Progress: c.driver.Value()})
		return cmd
	}

	return nil
}

// Frame composes the panel for the current instant. The second value is
// false while there is nothing on screen.
func (c *Controller) Frame() (compositor.Output, bool) {
	if c.state.Status == Idle || !c.state.Measured {
		return compositor.Output{}, false
	}
	return compositor.Compose(compositor.Input{
		Progress:        c.driver.Value(),
		Start:           c.state.Start,
		Target:          c.state.Target,
		ChildDecoration: &c.state.ChildDecoration,
		PopupDecoration: &c.state.PopupDecoration,
		Screen:          c.screen(),
		KeyboardInset:   c.keyboardInset(),
		Layout:          c.opts.Layout,
	}), true
}

func (c *Controller) dispatch(e Event) tea.Cmd {
	prev := c.state
	next, effects := Transition(c.state, e)
	c.state = next

	if prev.Status == Idle && next.Status != Idle {
		_, c.span = c.tracer.Start(context.Background(), "overlay.session",
			trace.WithAttributes(attribute.Int("session.generation", next.Generation)),
		)
	}

	var cmds []tea.Cmd
	for _, eff := range effects {
		if cmd := c.apply(eff); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	if prev.Status != next.Status {
		c.logger.Debug("overlay status changed",
			"session", next.Generation,
			"from", prev.Status,
			"to", next.Status,
		)
		c.traceStatus(prev, next)
	}
	return tea.Batch(cmds...)
}

func (c *Controller) apply(eff Effect) tea.Cmd {
	gen := c.state.Generation
	switch eff := eff.(type) {
	case StartMeasure:
		return c.prober.Measure(c.content, eff.Padding, eff.MaxWidth)
	case CancelMeasure:
		c.prober.Cancel()
	case InsertOverlay:
		if !c.hasOverlay {
			c.overlay = c.deps.Surface.Insert(&panel{c: c}, geometry.Point{})
			c.hasOverlay = true
		}
	case RemoveOverlay:
		if c.hasOverlay {
			c.deps.Surface.Remove(c.overlay)
			c.hasOverlay = false
		}
	case RunForward:
		return c.driver.RunForward(c.opts.Duration, c.opts.ForwardCurve)
	case RunReverse:
		return c.driver.RunReverse(c.opts.Duration, c.opts.ReverseCurve)
	case StopDriver:
		c.driver.Reset()
	case DismissFocus:
		c.logger.Debug("close redirected to keyboard dismissal", "session", gen)
		if c.deps.Focus != nil {
			c.deps.Focus.DismissFocus()
		}
	case HideTrigger:
		c.triggerHidden = true
	case ShowTrigger:
		c.triggerHidden = false
	case Shown:
		return func() tea.Msg { return ShownMsg{Generation: gen} }
	case Dismissed:
		c.driver.Reset()
		return func() tea.Msg { return DismissedMsg{Generation: gen} }
	case Report:
		c.logger.Warn("overlay show aborted", "session", gen, "error", eff.Err)
		if c.span != nil {
			c.span.RecordError(eff.Err)
			c.span.SetStatus(codes.Error, eff.Err.Error())
		}
		err := eff.Err
		return func() tea.Msg { return FailedMsg{Generation: gen, Err: err} }
	}
	return nil
}

func (c *Controller) traceStatus(prev, next State) {
	if c.span == nil {
		return
	}
	c.span.AddEvent("status", trace.WithAttributes(
		attribute.String("from", prev.Status.String()),
		attribute.String("to", next.Status.String()),
	))
	if next.Status == Idle {
		c.span.End()
		c.span = nil
	}
}

func (c *Controller) resolveDecorations() (child, popup decoration.Decoration) {
	child, popup = decoration.Default(), decoration.Default()
	if c.deps.Theme != nil {
		child, popup = c.deps.Theme.ChildDecoration(), c.deps.Theme.PopupDecoration()
	}
	if c.opts.ChildDecoration != nil {
		child = *c.opts.ChildDecoration
	}
	if c.opts.PopupDecoration != nil {
		popup = *c.opts.PopupDecoration
	}
	return child, popup
}

func (c *Controller) screen() geometry.Size {
	if c.deps.Screen == nil {
		return geometry.Size{}
	}
	return c.deps.Screen()
}

func (c *Controller) keyboardInset() float64 {
	if c.deps.KeyboardInset == nil {
		return 0
	}
	return c.deps.KeyboardInset()
}

// panel is the overlay entry in the host surface. Every draw composes a
// fresh frame, polling the keyboard inset.
type panel struct {
	c *Controller
}

func (p *panel) frame() compositor.Output {
	out, _ := p.c.Frame()
	return out
}

// Render draws the panel box with its content
func (p *panel) Render(host.Constraints) string {
	out := p.frame()
	pad := out.Decoration.ContentInsets()
	inner := host.Constraints{
		MaxWidth:  max(0, out.Rect.Size.Width-pad.Horizontal()),
		MaxHeight: max(0, out.Rect.Size.Height-pad.Vertical()),
	}
	content := ""
	if p.c.content != nil {
		if r := p.c.content(inner); r != nil {
			content = r.Render(inner)
		}
	}
	if p.c.deps.Painter == nil {
		return content
	}
	return p.c.deps.Painter.Paint(out, content)
}

// Placement puts the panel at the composed position
func (p *panel) Placement() geometry.Point {
	return p.frame().Rect.Position
}

// Scrim dims the screen behind the panel in step with the animation
func (p *panel) Scrim() host.Scrim {
	return host.Scrim{Color: p.c.opts.BarrierColor, Opacity: p.frame().BarrierOpacity}
}
