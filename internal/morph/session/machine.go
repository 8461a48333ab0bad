// Package session runs one show/open/close cycle of the morphing overlay.
//
// The lifecycle is a pure state machine: Transition maps a state and an event
// to the next state plus a list of effects. Controller is the thin shell that
// feeds it events from Bubble Tea messages and carries out the effects
// against the host surface, the progress driver and the content prober.
package session

import (
	"github.com/riordanpawley/morphpop/internal/morph/decoration"
	"github.com/riordanpawley/morphpop/internal/morph/geometry"
)

// Status is the lifecycle phase of the overlay
type Status int

const (
	Idle Status = iota
	Opening
	Open
	Closing
)

// String returns the string representation of the status
func (s Status) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Opening:
		return "OPENING"
	case Open:
		return "OPEN"
	case Closing:
		return "CLOSING"
	default:
		return "UNKNOWN"
	}
}

const (
	// TargetWidthFraction is the share of the screen width the panel takes
	TargetWidthFraction = 0.8
	// TargetHeightFraction caps the panel height as a share of the screen
	TargetHeightFraction = 0.6
)

// State is everything the machine knows about the current session
type State struct {
	Status     Status
	Generation int

	Start           geometry.Frame
	Target          geometry.Frame
	ChildDecoration decoration.Decoration
	PopupDecoration decoration.Decoration
	Progress        float64

	// Measured is set once the content size is known and the overlay entry
	// has been inserted
	Measured bool
}

// Event drives a transition
type Event interface{ isEvent() }

// Activate is the trigger being pressed
type Activate struct {
	Trigger geometry.Frame
	Child   decoration.Decoration
	Popup   decoration.Decoration
	Screen  geometry.Size
}

// Measured carries the natural size of the content
type Measured struct {
	Content geometry.Size
	Screen  geometry.Size
}

// MeasureFailed reports that the probe could not lay out the content
type MeasureFailed struct {
	Err error
}

// ForwardCompleted is the end of the opening animation
type ForwardCompleted struct{}

// ReverseCompleted is the end of the closing animation
type ReverseCompleted struct{}

// RequestClose is a close intent, from the barrier, a key or navigation
type RequestClose struct {
	KeyboardInset float64
}

// ForceClose tears the session down without animating
type ForceClose struct{}

// Tick reports the current animation progress
type Tick struct {
	Progress float64
}

func (Activate) isEvent()         {}
func (Measured) isEvent()         {}
func (MeasureFailed) isEvent()    {}
func (ForwardCompleted) isEvent() {}
func (ReverseCompleted) isEvent() {}
func (RequestClose) isEvent()     {}
func (ForceClose) isEvent()       {}
func (Tick) isEvent()             {}

// Effect is a side effect the controller must carry out, in order
type Effect interface{ isEffect() }

// StartMeasure begins probing the content size
type StartMeasure struct {
	Padding  geometry.Insets
	MaxWidth float64
}

type (
	// CancelMeasure drops an in-flight probe
	CancelMeasure struct{}
	// InsertOverlay adds the panel entry to the host surface
	InsertOverlay struct{}
	// RemoveOverlay takes the panel entry out of the host surface
	RemoveOverlay struct{}
	// RunForward starts the opening animation from the current value
	RunForward struct{}
	// RunReverse starts the closing animation from the current value
	RunReverse struct{}
	// StopDriver halts and resets the animation without completing it
	StopDriver struct{}
	// DismissFocus retracts the keyboard instead of closing
	DismissFocus struct{}
	// HideTrigger renders the trigger at zero opacity, keeping its layout
	HideTrigger struct{}
	// ShowTrigger restores the trigger
	ShowTrigger struct{}
	// Shown announces that the overlay is fully open
	Shown struct{}
	// Dismissed announces that the session is over
	Dismissed struct{}
)

// Report surfaces a recovered failure to diagnostics
type Report struct {
	Err error
}

func (StartMeasure) isEffect()  {}
func (CancelMeasure) isEffect() {}
func (InsertOverlay) isEffect() {}
func (RemoveOverlay) isEffect() {}
func (RunForward) isEffect()    {}
func (RunReverse) isEffect()    {}
func (StopDriver) isEffect()    {}
func (DismissFocus) isEffect()  {}
func (HideTrigger) isEffect()   {}
func (ShowTrigger) isEffect()   {}
func (Shown) isEffect()         {}
func (Dismissed) isEffect()     {}
func (Report) isEffect()        {}

// TargetFrame sizes the expanded panel: fixed at 80% of the screen width,
// content height capped at 60% of the screen height, centered.
func TargetFrame(content, screen geometry.Size) geometry.Frame {
	size := geometry.Size{
		Width:  TargetWidthFraction * screen.Width,
		Height: geometry.Clamp(content.Height, 0, TargetHeightFraction*screen.Height),
	}
	return geometry.Centered(size, screen)
}

// Transition computes the next state and the effects to run. Events that do
// not apply to the current state leave it unchanged with no effects.
func Transition(s State, e Event) (State, []Effect) {
	switch ev := e.(type) {
	case Activate:
		if s.Status != Idle {
			return s, nil
		}
		next := State{
			Status:          Opening,
			Generation:      s.Generation + 1,
			Start:           ev.Trigger,
			Target:          ev.Trigger,
			ChildDecoration: ev.Child,
			PopupDecoration: ev.Popup,
		}
		return next, []Effect{StartMeasure{
			Padding:  ev.Popup.ContentInsets(),
			MaxWidth: TargetWidthFraction * ev.Screen.Width,
		}}

	case Measured:
		if s.Status != Opening || s.Measured {
			return s, nil
		}
		s.Target = TargetFrame(ev.Content, ev.Screen)
		s.Measured = true
		return s, []Effect{InsertOverlay{}, HideTrigger{}, RunForward{}}

	case MeasureFailed:
		if s.Status != Opening || s.Measured {
			return s, nil
		}
		return idle(s), []Effect{RemoveOverlay{}, ShowTrigger{}, Report{Err: ev.Err}, Dismissed{}}

	case ForwardCompleted:
		if s.Status != Opening || !s.Measured {
			return s, nil
		}
		s.Status = Open
		s.Progress = 1
		return s, []Effect{Shown{}}

	case RequestClose:
		if s.Status != Opening && s.Status != Open {
			return s, nil
		}
		if ev.KeyboardInset > 0 {
			return s, []Effect{DismissFocus{}}
		}
		if !s.Measured {
			return idle(s), []Effect{CancelMeasure{}, ShowTrigger{}, Dismissed{}}
		}
		s.Status = Closing
		return s, []Effect{RunReverse{}}

	case ReverseCompleted:
		if s.Status != Closing {
			return s, nil
		}
		return idle(s), []Effect{RemoveOverlay{}, ShowTrigger{}, Dismissed{}}

	case ForceClose:
		if s.Status == Idle {
			return s, nil
		}
		if !s.Measured {
			return idle(s), []Effect{StopDriver{}, CancelMeasure{}, ShowTrigger{}, Dismissed{}}
		}
		return idle(s), []Effect{StopDriver{}, RemoveOverlay{}, ShowTrigger{}, Dismissed{}}

	case Tick:
		if s.Status == Idle {
			return s, nil
		}
		s.Progress = geometry.Clamp(ev.Progress, 0, 1)
		return s, nil
	}

	return s, nil
}

// idle keeps only the generation counter
func idle(s State) State {
	return State{Status: Idle, Generation: s.Generation}
}
