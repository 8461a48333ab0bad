// Package progress drives a single animation value between 0 and 1 over
// time. It schedules its own frames with tea.Tick and reports the end of
// every run exactly once.
package progress

import (
	"math"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/morphpop/internal/morph/easing"
)

// Direction is the way a run moves the value
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// String returns the string representation of the direction
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

func (d Direction) target() float64 {
	if d == Reverse {
		return 0
	}
	return 1
}

// DefaultFrameInterval is the tick rate of a running driver (60 fps)
const DefaultFrameInterval = time.Second / 60

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// FrameMsg advances a running driver. Frames from another driver or from a
// superseded run are ignored.
type FrameMsg struct {
	id   int
	tag  int
	Time time.Time
}

// CompletedMsg is sent once when a run reaches its end value
type CompletedMsg struct {
	ID        int
	Tag       int
	Direction Direction
}

// Driver holds the linear controller value and the active run
type Driver struct {
	id  int
	tag int

	raw     float64
	dir     Direction
	running bool

	curve      easing.Curve
	duration   time.Duration
	startValue float64
	started    time.Time

	// eased value when the run started, and the run's own curve there
	resumeFrom  float64
	curveAtFrom float64

	frameInterval time.Duration
	now           func() time.Time
}

// Option configures a Driver
type Option func(*Driver)

// WithClock replaces time.Now for run start times
func WithClock(now func() time.Time) Option {
	return func(d *Driver) { d.now = now }
}

// WithFrameInterval changes the tick rate
func WithFrameInterval(interval time.Duration) Option {
	return func(d *Driver) {
		if interval > 0 {
			d.frameInterval = interval
		}
	}
}

// New creates an idle driver at value 0
func New(opts ...Option) *Driver {
	d := &Driver{
		id:            nextID(),
		curve:         easing.Linear,
		frameInterval: DefaultFrameInterval,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// ID identifies the driver in its messages
func (d *Driver) ID() int {
	return d.id
}

// Raw returns the linear controller value in [0,1]
func (d *Driver) Raw() float64 {
	return d.raw
}

// Value returns the eased progress. It is 0 and 1 at the ends of a run and
// may leave [0,1] in between when the curve overshoots.
//
// A run that takes over mid-way with a different curve is rescaled so it
// starts from the value on screen and still ends on its target.
func (d *Driver) Value() float64 {
	v := d.curve(d.raw)
	target := d.dir.target()
	if d.resumeFrom == d.curveAtFrom || math.Abs(d.curveAtFrom-target) < 1e-9 {
		return v
	}
	return target + (d.resumeFrom-target)*(v-target)/(d.curveAtFrom-target)
}

// Running reports whether a run is in flight
func (d *Driver) Running() bool {
	return d.running
}

// Direction returns the direction of the current or last run
func (d *Driver) Direction() Direction {
	return d.dir
}

// RunForward animates toward 1. A run already in flight is replaced and the
// new one starts from the current value.
func (d *Driver) RunForward(duration time.Duration, curve easing.Curve) tea.Cmd {
	return d.run(Forward, duration, curve)
}

// RunReverse animates toward 0, starting from the current value
func (d *Driver) RunReverse(duration time.Duration, curve easing.Curve) tea.Cmd {
	return d.run(Reverse, duration, curve)
}

// Stop halts the current run without completing it
func (d *Driver) Stop() {
	d.running = false
	d.tag++
}

// Reset stops the driver and puts the value back to 0
func (d *Driver) Reset() {
	d.Stop()
	d.raw = 0
	d.dir = Forward
	d.resumeFrom, d.curveAtFrom = 0, 0
}

func (d *Driver) run(dir Direction, duration time.Duration, curve easing.Curve) tea.Cmd {
	if curve == nil {
		curve = easing.Linear
	}
	from := d.Value()
	d.tag++
	d.dir = dir
	d.curve = curve
	d.resumeFrom, d.curveAtFrom = from, curve(d.raw)
	d.duration = duration
	d.startValue = d.raw
	d.started = d.now()

	if d.raw == dir.target() || duration <= 0 {
		d.raw = dir.target()
		d.running = false
		return d.complete()
	}

	d.running = true
	return d.tick()
}

// Update handles frame messages for this driver. It returns the next frame,
// the completion message, or nil.
func (d *Driver) Update(msg tea.Msg) tea.Cmd {
	frame, ok := msg.(FrameMsg)
	if !ok || frame.id != d.id || frame.tag != d.tag || !d.running {
		return nil
	}
	if d.Advance(frame.Time) {
		return d.complete()
	}
	return d.tick()
}

// Advance moves the value to where the run should be at now. It returns true
// when the run reached its end; the driver then stops.
func (d *Driver) Advance(now time.Time) bool {
	if !d.running {
		return false
	}
	target := d.dir.target()
	span := time.Duration(float64(d.duration) * math.Abs(target-d.startValue))

	frac := 1.0
	if span > 0 {
		frac = math.Min(math.Max(float64(now.Sub(d.started))/float64(span), 0), 1)
	}
	if frac >= 1 {
		d.raw = target
		d.running = false
		return true
	}
	d.raw = d.startValue + (target-d.startValue)*frac
	return false
}

// IsCompletion reports whether msg is the completion of this driver's
// current run, as opposed to a stale one.
func (d *Driver) IsCompletion(msg tea.Msg) (CompletedMsg, bool) {
	done, ok := msg.(CompletedMsg)
	if !ok || done.ID != d.id || done.Tag != d.tag {
		return CompletedMsg{}, false
	}
	return done, true
}

func (d *Driver) tick() tea.Cmd {
	id, tag := d.id, d.tag
	return tea.Tick(d.frameInterval, func(t time.Time) tea.Msg {
		return FrameMsg{id: id, tag: tag, Time: t}
	})
}

func (d *Driver) complete() tea.Cmd {
	done := CompletedMsg{ID: d.id, Tag: d.tag, Direction: d.dir}
	return func() tea.Msg {
		return done
	}
}
