package overlay

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/riordanpawley/morphpop/internal/morph/host"
)

// defaultWrap is used when the constraints leave the width open
const defaultWrap = 80

// Markdown renders a markdown document as popup content, wrapped to the
// width it is given. Renders are cached per width, so a frame only pays for
// glamour when the panel width changes.
type Markdown struct {
	source string
	style  string
	cache  map[int]string
}

// NewMarkdown creates markdown content. An empty style picks the glamour
// style matching the terminal background.
func NewMarkdown(source, style string) *Markdown {
	return &Markdown{
		source: source,
		style:  style,
		cache:  make(map[int]string),
	}
}

// Builder returns the markdown as a host builder
func (m *Markdown) Builder() host.Builder {
	return func(c host.Constraints) host.Renderable {
		return host.RenderFunc(func(host.Constraints) string {
			return m.Render(cells(c.MaxWidth))
		})
	}
}

// Render returns the document wrapped at width. It falls back to the raw
// source when glamour fails.
func (m *Markdown) Render(width int) string {
	if m.source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWrap
	}
	if cached, ok := m.cache[width]; ok {
		return cached
	}

	styleOpt := glamour.WithAutoStyle()
	if m.style != "" {
		styleOpt = glamour.WithStandardStyle(m.style)
	}
	renderer, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return m.source
	}
	rendered, err := renderer.Render(m.source)
	if err != nil {
		return m.source
	}

	rendered = strings.Trim(rendered, "\n")
	m.cache[width] = rendered
	return rendered
}
