package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseFillsDefaults(t *testing.T) {
	c, err := Parse([]byte(`
[window]
title = "viewer"
vsync = false

[engine]
frame_limit = 144
profiling = true
`))
	require.NoError(t, err)

	assert.Equal(t, "viewer", c.Window.Title)
	assert.Equal(t, 1280, c.Window.Width)
	require.NotNil(t, c.Window.VSync)
	assert.False(t, *c.Window.VSync)
	assert.Equal(t, 60, c.Engine.TickRate)
	assert.Equal(t, 144, c.Engine.FrameLimit)
	assert.True(t, c.Engine.Profiling)
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, wgpu.Color{R: 0.2, G: 0.2, B: 0.2, A: 1}, c.ClearColor())
}

func TestParseEmptyIsDefault(t *testing.T) {
	c, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestParseRejectsBadInput(t *testing.T) {
	_, err := Parse([]byte(`[window`))
	assert.Error(t, err)

	_, err = Parse([]byte("[window]\nfullscreen = true\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte("[render]\nclear_color = [0.0, 0.5, 1.0, 1.0]\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, wgpu.Color{R: 0, G: 0.5, B: 1, A: 1}, c.ClearColor())

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(LogConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(LogConfig{Level: "warn"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = NewLogger(LogConfig{Level: "loud"})
	assert.Error(t, err)
}
