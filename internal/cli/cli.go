// Package cli wires the morphpop command line: the TUI itself and a few
// configuration helpers.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/riordanpawley/morphpop/internal/app"
	"github.com/riordanpawley/morphpop/internal/config"
	"github.com/riordanpawley/morphpop/internal/telemetry"
	"github.com/spf13/cobra"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// DebugLogPath receives the log when --debug is given without --log-file
const DebugLogPath = "morphpop-debug.log"

// App holds the CLI application state
type App struct {
	root *cobra.Command
	out  io.Writer

	configPath string
	durationMs int
	curve      string
	markdown   string
	logFile    string
	debug      bool
}

// NewApp creates the command tree writing its reports to out
func NewApp(out io.Writer) *App {
	a := &App{out: out}

	a.root = &cobra.Command{
		Use:   "morphpop",
		Short: "A card that morphs into a floating panel",
		Long: `morphpop shows a trigger card that animates into a centered panel.

The panel keeps clear of the input dock, which stands in for an on-screen
keyboard, and sizes itself to its content.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTUI(cmd)
		},
	}

	flags := a.root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default: .morphpop.{json,toml,yaml} in the current directory)")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug logging (to "+DebugLogPath+" unless --log-file is set)")
	flags.StringVar(&a.logFile, "log-file", "", "write logs to this file")

	a.root.Flags().IntVar(&a.durationMs, "duration", 0, "animation length in milliseconds, 0 or negative to disable")
	a.root.Flags().StringVar(&a.curve, "curve", "", "easing curve for both directions")
	a.root.Flags().StringVar(&a.markdown, "markdown", "", "markdown file shown in the panel")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.initConfigCmd())
	a.root.AddCommand(a.configCmd())

	return a
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetArgs replaces os.Args, for tests
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(a.out, "morphpop %s (commit: %s)\n", Version, Commit)
		},
	}
}

func (a *App) initConfigCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init-config [dir]",
		Short: "Write a default " + config.JSONFile,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			path := filepath.Join(dir, config.JSONFile)
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.SaveConfig(config.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "✓ Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the effective configuration",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if _, err := cfg.Options(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			printConfig(a.out, cfg)
			return nil
		},
	}
}

// printConfig lists the settings that change how the panel behaves
func printConfig(out io.Writer, cfg *config.Config) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SETTING\tVALUE")
	fmt.Fprintln(w, "-------\t-----")
	fmt.Fprintf(w, "animation.duration\t%s\n", cfg.Duration())
	fmt.Fprintf(w, "animation.forwardCurve\t%s\n", cfg.Animation.ForwardCurve)
	fmt.Fprintf(w, "animation.reverseCurve\t%s\n", cfg.Animation.ReverseCurve)
	fmt.Fprintf(w, "barrier.color\t%s\n", cfg.Barrier.Color)
	fmt.Fprintf(w, "decorations.child\t%s\n", describeDecoration(cfg.Decorations.Child))
	fmt.Fprintf(w, "decorations.popup\t%s\n", describeDecoration(cfg.Decorations.Popup))
	fmt.Fprintf(w, "layout\tminTop=%g keyboardMargin=%g reservedHeight=%g\n",
		cfg.Layout.MinTop, cfg.Layout.KeyboardMargin, cfg.Layout.ReservedHeight)
	fmt.Fprintf(w, "content.title\t%s\n", cfg.Content.Title)
	fmt.Fprintf(w, "log.level\t%s\n", cfg.Log.Level)
	endpoint := telemetry.Endpoint(cfg.Telemetry)
	if endpoint == "" {
		endpoint = "(disabled)"
	}
	fmt.Fprintf(w, "telemetry.endpoint\t%s\n", endpoint)
	w.Flush()
}

func describeDecoration(d *config.DecorationSpec) string {
	if d == nil {
		return "(theme)"
	}
	return fmt.Sprintf("fill=%q border=%q radius=%g", d.Fill, d.Border, d.Radius)
}

// loadConfig reads --config, or looks in the current directory
func (a *App) loadConfig() (*config.Config, error) {
	if a.configPath != "" {
		cfg, err := config.LoadFile(a.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// applyFlags lets explicit flags override the file
func (a *App) applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("duration") {
		cfg.Animation.DurationMs = a.durationMs
		if a.durationMs == 0 {
			cfg.Animation.DurationMs = -1
		}
	}
	if flags.Changed("curve") {
		cfg.Animation.ForwardCurve = a.curve
		cfg.Animation.ReverseCurve = a.curve
	}
	if a.markdown != "" {
		cfg.Content.File = a.markdown
	}
	if a.logFile != "" {
		cfg.Log.File = a.logFile
	}
	if a.debug {
		cfg.Log.Level = "debug"
		if cfg.Log.File == "" {
			cfg.Log.File = DebugLogPath
		}
	}
}

func (a *App) runTUI(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.applyFlags(cmd, cfg)

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()
	slog.SetDefault(logger)

	ctx := context.Background()
	provider, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(ctx); err != nil {
			logger.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	opts := []app.Option{
		app.WithLogger(logger),
		app.WithTracer(provider.Tracer("morphpop/session")),
	}
	if cfg.Content.File != "" {
		source, err := os.ReadFile(cfg.Content.File)
		if err != nil {
			return fmt.Errorf("reading panel content: %w", err)
		}
		opts = append(opts, app.WithMarkdown(string(source)))
	}

	model, err := app.New(cfg, opts...)
	if err != nil {
		return err
	}
	defer model.Controller().ForceImmediateClose()

	logger.Info("starting", "version", Version, "duration", cfg.Duration())
	p := tea.NewProgram(model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Enable mouse support
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// newLogger returns a logger for cfg and the function that closes its
// file. Without a file the log is discarded since the TUI owns stdout.
func newLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	if cfg.File == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level}))
	return logger, func() { _ = f.Close() }, nil
}
