// Package app contains the demo application model and TEA implementation.
package app

import (
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/morphpop/internal/config"
	"github.com/riordanpawley/morphpop/internal/morph/compositor"
	"github.com/riordanpawley/morphpop/internal/morph/decoration"
	"github.com/riordanpawley/morphpop/internal/morph/geometry"
	"github.com/riordanpawley/morphpop/internal/morph/progress"
	"github.com/riordanpawley/morphpop/internal/morph/session"
	"github.com/riordanpawley/morphpop/internal/types"
	"github.com/riordanpawley/morphpop/internal/ui/dock"
	"github.com/riordanpawley/morphpop/internal/ui/overlay"
	"github.com/riordanpawley/morphpop/internal/ui/statusbar"
	"github.com/riordanpawley/morphpop/internal/ui/styles"
	"github.com/riordanpawley/morphpop/internal/ui/surface"
	"github.com/riordanpawley/morphpop/internal/ui/toast"
	"go.opentelemetry.io/otel/trace"
)

// Screen layout, in cells
const (
	statusRows   = 1
	triggerTop   = 3
	triggerRows  = 3
	triggerWidth = 30
	maxNotes     = 5
)

const toastTTL = 4 * time.Second

const defaultContent = `# Morphing overlay

This panel grew out of the card you activated. Its position, size,
fill, border, corner radius and padding were all interpolated on the way.

* Press **i** to raise the input dock. The panel moves up to stay clear.
* Press **esc** to close. With the dock raised, esc lowers it first.
* Press **x** to snap the panel shut without animating.
* Click outside the panel to close it.
`

// Option customizes a Model
type Option func(*options)

type options struct {
	logger        *slog.Logger
	tracer        trace.Tracer
	markdown      string
	driverOptions []progress.Option
	now           func() time.Time
}

// WithLogger sets the logger used by the model and the overlay controller
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithTracer sets the tracer for overlay session spans
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) { o.tracer = tracer }
}

// WithMarkdown replaces the built-in panel text
func WithMarkdown(source string) Option {
	return func(o *options) { o.markdown = source }
}

// WithDriverOptions passes options to the animation driver
func WithDriverOptions(opts ...progress.Option) Option {
	return func(o *options) { o.driverOptions = opts }
}

// WithClock replaces time.Now for toast expiry
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Model is the main application state
type Model struct {
	// Overlay
	ctrl    *session.Controller
	surface *surface.Surface
	painter *overlay.Painter
	opts    session.Options

	// Input dock, standing in for the on-screen keyboard
	dock  *dock.Dock
	notes []string

	// Toasts
	toasts     []types.Toast
	toastLayer *toast.Layer

	styles  *styles.Styles
	keys    keyMap
	spinner spinner.Model

	config *config.Config
	logger *slog.Logger
	now    func() time.Time
}

// New creates the application model for the given config
func New(cfg *config.Config, opts ...Option) (Model, error) {
	o := options{logger: slog.Default(), now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	sessionOpts, err := cfg.Options()
	if err != nil {
		return Model{}, fmt.Errorf("invalid configuration: %w", err)
	}

	st := styles.New()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Blue)

	background, foreground := styles.Color(styles.Base), styles.Color(styles.Text)
	surf := surface.New(0, 0, surface.WithColors(background, foreground))
	painter := overlay.NewPainter(background, foreground)
	d := dock.New(st)

	// Toasts go in first so the panel is drawn above them
	layer := toast.New(st).Layer()
	surf.Insert(layer, geometry.Point{})

	source := o.markdown
	if source == "" {
		source = defaultContent
	}
	body := overlay.NewMarkdown(source, cfg.Content.Style)
	content := overlay.NewContent(cfg.Content.Title, body.Builder(), "esc close · x snap shut", st)

	ctrl := session.NewController(content.Builder(), sessionOpts, session.Deps{
		Surface:       surf,
		Painter:       painter,
		Trigger:       func() geometry.Frame { return triggerFrame(surf.Size()) },
		Screen:        surf.Size,
		KeyboardInset: keyboardInset(d),
		Focus:         d,
		Theme:         styles.Theme{},
		Logger:        o.logger,
		Tracer:        o.tracer,
		DriverOptions: o.driverOptions,
	})

	return Model{
		ctrl:       ctrl,
		surface:    surf,
		painter:    painter,
		opts:       sessionOpts,
		dock:       d,
		toastLayer: layer,
		styles:     st,
		keys:       defaultKeyMap(),
		spinner:    s,
		config:     cfg,
		logger:     o.logger,
		now:        o.now,
	}, nil
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.surface.Resize(msg.Width, msg.Height)
		m.dock.SetWidth(msg.Width)
		m.syncToasts()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		if len(m.toasts) > 0 {
			m.toasts = types.ExpireToasts(m.toasts, m.now())
			m.syncToasts()
		}
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case dock.SubmittedMsg:
		if strings.TrimSpace(msg.Value) == "" {
			return m, nil
		}
		m.notes = append(m.notes, msg.Value)
		if len(m.notes) > maxNotes {
			m.notes = m.notes[len(m.notes)-maxNotes:]
		}
		m.addToast(types.ToastSuccess, "Note saved")
		return m, nil

	case session.ShownMsg:
		m.logger.Debug("overlay shown", "session", msg.Generation)
		return m, nil

	case session.DismissedMsg:
		m.logger.Debug("overlay dismissed", "session", msg.Generation)
		return m, nil

	case session.FailedMsg:
		m.addToast(types.ToastError, fmt.Sprintf("Could not open panel: %v", msg.Err))
		return m, nil
	}

	// Probe, frame and completion messages belong to the controller; the
	// dock needs cursor blinks while raised
	cmds := []tea.Cmd{m.ctrl.Update(msg)}
	if m.dock.Focused() {
		cmds = append(cmds, m.dock.Update(msg))
	}
	return m, tea.Batch(cmds...)
}

// handleKey processes keyboard input. The dock takes every key while it is
// raised, except esc which closes the overlay or lowers the dock.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.dock.Focused() {
		if key.Matches(msg, m.keys.Close) {
			if m.ctrl.Status() != session.Idle {
				// The controller retracts the keyboard instead of closing
				return m, m.ctrl.RequestClose()
			}
			m.dock.DismissFocus()
			return m, nil
		}
		return m, m.dock.Update(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Open):
		if m.surface.Size().Width == 0 {
			return m, nil
		}
		return m, m.ctrl.Activate()
	case key.Matches(msg, m.keys.Close):
		return m, m.ctrl.RequestClose()
	case key.Matches(msg, m.keys.Snap):
		m.ctrl.ForceImmediateClose()
		return m, nil
	case key.Matches(msg, m.keys.Input):
		return m, m.dock.Focus()
	}
	return m, nil
}

// handleMouse activates on a click on the trigger card and closes on a
// click on the barrier around the panel
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	at := geometry.Point{X: float64(msg.X), Y: float64(msg.Y)}

	switch m.ctrl.Status() {
	case session.Idle:
		if triggerFrame(m.surface.Size()).Contains(at) {
			return m, m.ctrl.Activate()
		}
	case session.Opening, session.Open:
		if frame, ok := m.ctrl.Frame(); !ok || !frame.Rect.Contains(at) {
			return m, m.ctrl.RequestClose()
		}
	}
	return m, nil
}

// quit removes the overlay before the program exits
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.ctrl.ForceImmediateClose()
	return m, tea.Quit
}

// Controller exposes the overlay controller for teardown by the caller
func (m Model) Controller() *session.Controller {
	return m.ctrl
}

// addToast adds a toast notification to the list
func (m *Model) addToast(level types.ToastLevel, message string) {
	m.toasts = append(m.toasts, types.NewToast(level, message, m.now(), toastTTL))
	m.syncToasts()
}

// syncToasts hands the current toasts to their surface entry
func (m *Model) syncToasts() {
	bottom := float64(statusRows)
	if m.dock.Focused() {
		bottom += m.dock.Inset()
	}
	m.toastLayer.Set(m.toasts, m.surface.Size(), bottom)
}

// View renders the current state as a string
func (m Model) View() string {
	size := m.surface.Size()
	width, height := int(size.Width), int(size.Height)
	if width == 0 || height == 0 {
		return "Loading..."
	}

	dockView := m.dock.View()
	mainHeight := height - statusRows - lipgloss.Height(dockView)
	if dockView == "" {
		mainHeight = height - statusRows
	}

	parts := []string{m.renderMain(width, max(0, mainHeight))}
	if dockView != "" {
		parts = append(parts, dockView)
	}
	parts = append(parts, m.renderStatusBar(width))

	return m.surface.Compose(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// renderMain draws the title, the trigger card and the saved notes
func (m Model) renderMain(width, height int) string {
	lines := make([]string, 0, height)
	lines = append(lines,
		m.styles.Title.Render(m.config.Content.Title),
		m.styles.Muted.Render("A card that morphs into a panel"),
		"",
	)

	frame := triggerFrame(m.surface.Size())
	pad := strings.Repeat(" ", int(frame.Position.X))
	card := m.renderTrigger(frame)
	for _, line := range strings.Split(card, "\n") {
		lines = append(lines, pad+line)
	}

	if len(m.notes) > 0 {
		lines = append(lines, "", m.styles.Muted.Render("Notes"))
		for _, note := range m.notes {
			lines = append(lines, m.styles.Body.Render("  "+note))
		}
	}

	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(lines, "\n"))
}

// renderTrigger paints the card in the collapsed decoration. While the
// overlay stands in for it only blank rows are left.
func (m Model) renderTrigger(frame geometry.Frame) string {
	rows := int(frame.Size.Height)
	if m.ctrl.TriggerOpacity() == 0 {
		return strings.Repeat("\n", max(0, rows-1))
	}
	label := m.styles.TriggerLabel.Render("Open panel") + " " + m.styles.TriggerHint.Render("(enter)")
	return m.painter.Paint(compositor.Output{
		Rect:           frame,
		Decoration:     m.childDecoration(),
		ContentOpacity: 1,
	}, label)
}

func (m Model) childDecoration() decoration.Decoration {
	if m.opts.ChildDecoration != nil {
		return *m.opts.ChildDecoration
	}
	return styles.Theme{}.ChildDecoration()
}

// renderStatusBar shows the mode, overlay status and the relevant keys
func (m Model) renderStatusBar(width int) string {
	mode := types.ModeNormal
	if m.dock.Focused() {
		mode = types.ModeInput
	}
	status := m.ctrl.Status()

	sb := statusbar.New(mode, width, m.styles).
		WithOverlay(status, m.ctrl.Progress()).
		WithHints(m.keys.hints(status != session.Idle, m.dock.Focused())...)
	if m.ctrl.Measuring() {
		sb = sb.WithSpinner(m.spinner.View())
	}
	return sb.Render()
}

// triggerFrame places the trigger card centered below the title
func triggerFrame(screen geometry.Size) geometry.Frame {
	w := math.Min(triggerWidth, math.Max(screen.Width-4, 0))
	x := math.Floor((screen.Width - w) / 2)
	return geometry.NewFrame(math.Max(x, 0), triggerTop, w, triggerRows)
}

// keyboardInset is the height the raised dock and the status bar below it
// take from the bottom of the screen
func keyboardInset(d *dock.Dock) func() float64 {
	return func() float64 {
		if !d.Focused() {
			return 0
		}
		return d.Inset() + statusRows
	}
}
