package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"github.com/riordanpawley/morphpop/internal/domain"
	"github.com/riordanpawley/morphpop/internal/morph/compositor"
	"github.com/riordanpawley/morphpop/internal/morph/decoration"
	"github.com/riordanpawley/morphpop/internal/morph/easing"
	"github.com/riordanpawley/morphpop/internal/morph/geometry"
	"github.com/riordanpawley/morphpop/internal/morph/session"
	"gopkg.in/yaml.v3"
)

// Config file names, in lookup order
const (
	JSONFile = ".morphpop.json"
	TOMLFile = ".morphpop.toml"
	YAMLFile = ".morphpop.yaml"
)

// Config represents the full morphpop configuration
type Config struct {
	Animation   AnimationConfig   `json:"animation" toml:"animation" yaml:"animation"`
	Barrier     BarrierConfig     `json:"barrier" toml:"barrier" yaml:"barrier"`
	Decorations DecorationsConfig `json:"decorations" toml:"decorations" yaml:"decorations"`
	Layout      LayoutConfig      `json:"layout" toml:"layout" yaml:"layout"`
	Content     ContentConfig     `json:"content" toml:"content" yaml:"content"`
	Log         LogConfig         `json:"log" toml:"log" yaml:"log"`
	Telemetry   TelemetryConfig   `json:"telemetry" toml:"telemetry" yaml:"telemetry"`
}

// AnimationConfig controls the timing of the morph
type AnimationConfig struct {
	// DurationMs is the length of each run. Zero means the default, a
	// negative value turns the animation off.
	DurationMs   int    `json:"durationMs" toml:"durationMs" yaml:"durationMs"`
	ForwardCurve string `json:"forwardCurve" toml:"forwardCurve" yaml:"forwardCurve"`
	ReverseCurve string `json:"reverseCurve" toml:"reverseCurve" yaml:"reverseCurve"`
}

// BarrierConfig controls the scrim behind the open panel
type BarrierConfig struct {
	// Color is "#rrggbb" or "#rrggbbaa"
	Color string `json:"color" toml:"color" yaml:"color"`
}

// DecorationsConfig overrides the theme decorations. Nil keeps the theme.
type DecorationsConfig struct {
	Child *DecorationSpec `json:"child,omitempty" toml:"child,omitempty" yaml:"child,omitempty"`
	Popup *DecorationSpec `json:"popup,omitempty" toml:"popup,omitempty" yaml:"popup,omitempty"`
}

// DecorationSpec describes a decoration in cells. Empty colors leave the
// fill, border or shadow out.
type DecorationSpec struct {
	Fill        string  `json:"fill,omitempty" toml:"fill,omitempty" yaml:"fill,omitempty"`
	Border      string  `json:"border,omitempty" toml:"border,omitempty" yaml:"border,omitempty"`
	BorderWidth float64 `json:"borderWidth,omitempty" toml:"borderWidth,omitempty" yaml:"borderWidth,omitempty"`
	Radius      float64 `json:"radius,omitempty" toml:"radius,omitempty" yaml:"radius,omitempty"`
	PaddingX    float64 `json:"paddingX,omitempty" toml:"paddingX,omitempty" yaml:"paddingX,omitempty"`
	PaddingY    float64 `json:"paddingY,omitempty" toml:"paddingY,omitempty" yaml:"paddingY,omitempty"`
	Shadow      string  `json:"shadow,omitempty" toml:"shadow,omitempty" yaml:"shadow,omitempty"`
	ShadowX     float64 `json:"shadowX,omitempty" toml:"shadowX,omitempty" yaml:"shadowX,omitempty"`
	ShadowY     float64 `json:"shadowY,omitempty" toml:"shadowY,omitempty" yaml:"shadowY,omitempty"`
}

// LayoutConfig holds the panel margins in cells
type LayoutConfig struct {
	MinTop         float64 `json:"minTop" toml:"minTop" yaml:"minTop"`
	KeyboardMargin float64 `json:"keyboardMargin" toml:"keyboardMargin" yaml:"keyboardMargin"`
	ReservedHeight float64 `json:"reservedHeight" toml:"reservedHeight" yaml:"reservedHeight"`
}

// ContentConfig selects what the demo panel shows
type ContentConfig struct {
	Title string `json:"title" toml:"title" yaml:"title"`
	// File is a markdown file; empty shows the built-in text
	File string `json:"file" toml:"file" yaml:"file"`
	// Style is a glamour style name; empty follows the terminal
	Style string `json:"style" toml:"style" yaml:"style"`
}

// LogConfig controls the slog output
type LogConfig struct {
	Level string `json:"level" toml:"level" yaml:"level"`
	// File receives the log; empty discards it since the TUI owns stdout
	File string `json:"file" toml:"file" yaml:"file"`
}

// TelemetryConfig controls trace export
type TelemetryConfig struct {
	// Endpoint is an OTLP/HTTP host:port; empty falls back to
	// OTEL_EXPORTER_OTLP_ENDPOINT, and to no export at all
	Endpoint    string `json:"endpoint" toml:"endpoint" yaml:"endpoint"`
	ServiceName string `json:"serviceName" toml:"serviceName" yaml:"serviceName"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	cells := compositor.CellLayout()
	return &Config{
		Animation: AnimationConfig{
			DurationMs:   int(session.DefaultDuration / time.Millisecond),
			ForwardCurve: "emphasized",
			ReverseCurve: "emphasized",
		},
		Barrier: BarrierConfig{
			Color: "#00000099", // black at 60%
		},
		Layout: LayoutConfig{
			MinTop:         cells.MinTop,
			KeyboardMargin: cells.KeyboardMargin,
			ReservedHeight: cells.ReservedHeight,
		},
		Content: ContentConfig{
			Title: "morphpop",
		},
		Log: LogConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			ServiceName: "morphpop",
		},
	}
}

// LoadConfig loads configuration from a project directory with priority:
// 1. .morphpop.json (with version migration support)
// 2. .morphpop.toml
// 3. .morphpop.yaml
// 4. Defaults
func LoadConfig(dir string) (*Config, error) {
	for _, name := range []string{JSONFile, TOMLFile, YAMLFile} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFile(path)
	}
	return DefaultConfig(), nil
}

// LoadFile loads one config file, choosing the format by extension
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		cfg, err = ParseVersionedConfig(data)
	case ".toml":
		cfg = &Config{}
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		cfg = &Config{}
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return MergeWithDefaults(cfg), nil
}

// SaveConfig saves configuration to the specified path with version information
func SaveConfig(cfg *Config, path string) error {
	data, err := MarshalVersionedConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// MergeWithDefaults fills in missing values with defaults
func MergeWithDefaults(cfg *Config) *Config {
	defaults := DefaultConfig()

	if cfg.Animation.DurationMs == 0 {
		cfg.Animation.DurationMs = defaults.Animation.DurationMs
	}
	if cfg.Animation.ForwardCurve == "" {
		cfg.Animation.ForwardCurve = defaults.Animation.ForwardCurve
	}
	if cfg.Animation.ReverseCurve == "" {
		cfg.Animation.ReverseCurve = defaults.Animation.ReverseCurve
	}

	if cfg.Barrier.Color == "" {
		cfg.Barrier.Color = defaults.Barrier.Color
	}

	// An all-zero layout means none was given; single zero margins are kept
	if cfg.Layout == (LayoutConfig{}) {
		cfg.Layout = defaults.Layout
	}

	if cfg.Content.Title == "" {
		cfg.Content.Title = defaults.Content.Title
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = defaults.Log.Level
	}

	if cfg.Telemetry.ServiceName == "" {
		cfg.Telemetry.ServiceName = defaults.Telemetry.ServiceName
	}

	return cfg
}

// Load is a convenience function that loads config from current directory
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return LoadConfig(cwd)
}

// Duration returns the animation length
func (c *Config) Duration() time.Duration {
	if c.Animation.DurationMs < 0 {
		return 0
	}
	return time.Duration(c.Animation.DurationMs) * time.Millisecond
}

// Options converts the configuration into controller options. Invalid
// values are reported as *domain.ConfigError.
func (c *Config) Options() (session.Options, error) {
	opts := session.DefaultOptions()
	opts.Duration = c.Duration()
	opts.Layout = compositor.Layout{
		MinTop:         c.Layout.MinTop,
		KeyboardMargin: c.Layout.KeyboardMargin,
		ReservedHeight: c.Layout.ReservedHeight,
	}

	var err error
	if opts.ForwardCurve, err = easing.Parse(c.Animation.ForwardCurve); err != nil {
		return opts, &domain.ConfigError{Field: "animation.forwardCurve", Value: c.Animation.ForwardCurve, Err: err}
	}
	if opts.ReverseCurve, err = easing.Parse(c.Animation.ReverseCurve); err != nil {
		return opts, &domain.ConfigError{Field: "animation.reverseCurve", Value: c.Animation.ReverseCurve, Err: err}
	}
	if opts.BarrierColor, err = decoration.ParseColor(c.Barrier.Color); err != nil {
		return opts, &domain.ConfigError{Field: "barrier.color", Value: c.Barrier.Color, Err: err}
	}

	if c.Decorations.Child != nil {
		d, err := c.Decorations.Child.Decoration("decorations.child")
		if err != nil {
			return opts, err
		}
		opts.ChildDecoration = &d
	}
	if c.Decorations.Popup != nil {
		d, err := c.Decorations.Popup.Decoration("decorations.popup")
		if err != nil {
			return opts, err
		}
		opts.PopupDecoration = &d
	}

	return opts, nil
}

// Decoration builds the decoration described by s. field prefixes the
// name of an invalid value in the error.
func (s *DecorationSpec) Decoration(field string) (decoration.Decoration, error) {
	opts := []decoration.Option{
		decoration.WithRadius(decoration.UniformRadius(s.Radius)),
		decoration.WithPadding(geometry.SymmetricInsets(s.PaddingX, s.PaddingY)),
		decoration.WithoutFill(),
	}

	if s.Fill != "" {
		fill, err := decoration.ParseColor(s.Fill)
		if err != nil {
			return decoration.Decoration{}, &domain.ConfigError{Field: field + ".fill", Value: s.Fill, Err: err}
		}
		opts = append(opts, decoration.WithFill(fill))
	}
	if s.Border != "" {
		color, err := decoration.ParseColor(s.Border)
		if err != nil {
			return decoration.Decoration{}, &domain.ConfigError{Field: field + ".border", Value: s.Border, Err: err}
		}
		width := s.BorderWidth
		if width == 0 {
			width = 1
		}
		opts = append(opts, decoration.WithBorder(decoration.Border{Color: color, Width: width}))
	}
	if s.Shadow != "" {
		color, err := decoration.ParseColor(s.Shadow)
		if err != nil {
			return decoration.Decoration{}, &domain.ConfigError{Field: field + ".shadow", Value: s.Shadow, Err: err}
		}
		opts = append(opts, decoration.WithShadow(decoration.Shadow{
			Color:  color,
			Offset: geometry.Point{X: s.ShadowX, Y: s.ShadowY},
		}))
	}

	return decoration.New(opts...), nil
}

// SlogLevel parses the configured log level
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, &domain.ConfigError{Field: "log.level", Value: l.Level, Err: err}
	}
	return level, nil
}
