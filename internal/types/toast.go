package types

import "time"

// Toast represents a notification message
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// ToastLevel indicates the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// NewToast creates a toast that expires ttl after now
func NewToast(level ToastLevel, message string, now time.Time, ttl time.Duration) Toast {
	return Toast{Level: level, Message: message, Expires: now.Add(ttl)}
}

// ExpireToasts returns the toasts still live at now, in order
func ExpireToasts(toasts []Toast, now time.Time) []Toast {
	live := make([]Toast, 0, len(toasts))
	for _, t := range toasts {
		if t.Expires.After(now) {
			live = append(live, t)
		}
	}
	return live
}
