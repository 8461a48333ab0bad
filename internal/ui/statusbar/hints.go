package statusbar

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// FormatHints renders enabled bindings as "key: description" pairs
func FormatHints(bindings ...key.Binding) string {
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if h.Key == "" {
			continue
		}
		hints = append(hints, h.Key+": "+h.Desc)
	}
	return strings.Join(hints, "  ")
}
