package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/riordanpawley/morphpop/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	a := NewApp(&out)
	a.root.SetErr(&bytes.Buffer{})
	a.SetArgs(args)
	err := a.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")

	require.NoError(t, err)
	assert.Equal(t, "morphpop dev (commit: none)\n", out)
}

func TestInitConfig(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, "init-config", dir)

	require.NoError(t, err)
	path := filepath.Join(dir, config.JSONFile)
	assert.Contains(t, out, path)

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestInitConfigRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.JSONFile)
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 1}`), 0644))

	_, err := run(t, "init-config", dir)
	assert.ErrorContains(t, err, "already exists")

	_, err = run(t, "init-config", "--force", dir)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"animation"`)
}

func TestConfigShowsEffectiveValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte("[animation]\ndurationMs = 200\nforwardCurve = \"spring\"\n"), 0644))

	out, err := run(t, "config", "--config", path)

	require.NoError(t, err)
	assert.Contains(t, out, "SETTING")
	assert.Regexp(t, `animation\.duration\s+200ms`, out)
	assert.Regexp(t, `animation\.forwardCurve\s+spring`, out)
	assert.Regexp(t, `decorations\.popup\s+\(theme\)`, out)
}

func TestConfigRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("barrier:\n  color: nope\n"), 0644))

	_, err := run(t, "config", "--config", path)

	assert.ErrorContains(t, err, "barrier.color")
}

func TestConfigMissingFile(t *testing.T) {
	_, err := run(t, "config", "--config", filepath.Join(t.TempDir(), "none.json"))

	assert.ErrorContains(t, err, "loading config")
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, cfg *config.Config)
	}{
		{
			name: "no flags keep the file",
			args: nil,
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, config.DefaultConfig(), cfg)
			},
		},
		{
			name: "duration",
			args: []string{"--duration", "120"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, 120, cfg.Animation.DurationMs)
			},
		},
		{
			name: "zero duration disables the animation",
			args: []string{"--duration", "0"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, -1, cfg.Animation.DurationMs)
				assert.Zero(t, cfg.Duration())
			},
		},
		{
			name: "curve sets both directions",
			args: []string{"--curve", "linear"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "linear", cfg.Animation.ForwardCurve)
				assert.Equal(t, "linear", cfg.Animation.ReverseCurve)
			},
		},
		{
			name: "debug logs to the debug file",
			args: []string{"--debug"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "debug", cfg.Log.Level)
				assert.Equal(t, DebugLogPath, cfg.Log.File)
			},
		},
		{
			name: "log file wins over the debug file",
			args: []string{"--debug", "--log-file", "x.log", "--markdown", "doc.md"},
			check: func(t *testing.T, cfg *config.Config) {
				assert.Equal(t, "x.log", cfg.Log.File)
				assert.Equal(t, "doc.md", cfg.Content.File)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewApp(&bytes.Buffer{})
			require.NoError(t, a.root.ParseFlags(tt.args))
			cfg := config.DefaultConfig()

			a.applyFlags(a.root, cfg)

			tt.check(t, cfg)
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("discards without a file", func(t *testing.T) {
		logger, closeLog, err := newLogger(config.LogConfig{Level: "info"})
		require.NoError(t, err)
		defer closeLog()
		assert.NotNil(t, logger)
	})

	t.Run("writes to the file at the level", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "morphpop.log")
		logger, closeLog, err := newLogger(config.LogConfig{Level: "warn", File: path})
		require.NoError(t, err)

		logger.Info("hidden")
		logger.Warn("shown", "session", 3)
		closeLog()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "hidden")
		assert.Contains(t, string(data), "session=3")
	})

	t.Run("bad level", func(t *testing.T) {
		_, _, err := newLogger(config.LogConfig{Level: "chatty"})
		assert.Error(t, err)
	})
}
