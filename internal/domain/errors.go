package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrMeasurementFailed  = errors.New("measurement failed")
	ErrSurfaceUnavailable = errors.New("host surface unavailable")
	ErrUnknownHandle      = errors.New("unknown surface handle")
	ErrNotLaidOut         = errors.New("entry not laid out")
)

// MeasurementError is returned when the off-screen probe could not resolve
// the size of the popup content. It matches ErrMeasurementFailed.
type MeasurementError struct {
	Op      string // "insert", "layout", "resolve"
	Handle  int    // probe entry, 0 if none
	Session int    // session generation, 0 if unknown
	Err     error  // Underlying error
}

func (e *MeasurementError) Error() string {
	if e.Handle != 0 {
		return fmt.Sprintf("measure %s [entry %d]: %v", e.Op, e.Handle, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("measure %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("measure %s failed", e.Op)
}

func (e *MeasurementError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrMeasurementFailed) match any MeasurementError
func (e *MeasurementError) Is(target error) bool {
	return target == ErrMeasurementFailed
}

// ConfigError represents an invalid configuration value
type ConfigError struct {
	Field string
	Value string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("config %s [%s]: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("config %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
