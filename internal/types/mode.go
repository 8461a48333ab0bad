// Package types contains shared types used across the application.
package types

// Mode says where key presses go
type Mode int

const (
	// ModeNormal routes keys to the trigger and the overlay
	ModeNormal Mode = iota
	// ModeInput routes keys to the raised input dock
	ModeInput
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "NORMAL"
	case ModeInput:
		return "INPUT"
	default:
		return "UNKNOWN"
	}
}
