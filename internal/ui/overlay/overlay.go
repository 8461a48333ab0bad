// Package overlay draws the morphing panel in the terminal: the box for a
// composed frame and the content that goes inside it.
package overlay

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/riordanpawley/morphpop/internal/morph/host"
	"github.com/riordanpawley/morphpop/internal/ui/styles"
)

// Content is a titled popup body with an optional footer hint
type Content struct {
	Title  string
	Body   host.Builder
	Footer string
	styles *styles.Styles
}

// NewContent creates popup content rendered with the given styles
func NewContent(title string, body host.Builder, footer string, s *styles.Styles) Content {
	return Content{Title: title, Body: body, Footer: footer, styles: s}
}

// Builder lays out title, body and footer for the given constraints. The
// body gets the full width.
func (c Content) Builder() host.Builder {
	return func(cons host.Constraints) host.Renderable {
		return host.RenderFunc(func(host.Constraints) string {
			var parts []string
			if c.Title != "" {
				parts = append(parts, c.styles.PanelTitle.Render(c.Title))
			}
			if c.Body != nil {
				if r := c.Body(cons); r != nil {
					parts = append(parts, r.Render(cons))
				}
			}
			if c.Footer != "" {
				parts = append(parts, c.styles.PanelFooter.Render(c.Footer))
			}
			return lipgloss.JoinVertical(lipgloss.Left, parts...)
		})
	}
}
