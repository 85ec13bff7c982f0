// Package config loads the engine's TOML configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-frame/common"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// WindowConfig configures the main window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// VSync is left nil when the file does not mention it.
	VSync *bool `toml:"vsync"`
}

// EngineConfig configures the engine loops.
type EngineConfig struct {
	// TickRate is the number of game logic ticks per second.
	TickRate int `toml:"tick_rate"`
	// FrameLimit caps rendered frames per second; 0 leaves it to vsync.
	FrameLimit     int  `toml:"frame_limit"`
	ComputeWorkers int  `toml:"compute_workers"`
	Profiling      bool `toml:"profiling"`
}

// RenderConfig configures the default render pass.
type RenderConfig struct {
	// ClearColor is RGBA in [0, 1].
	ClearColor [4]float64 `toml:"clear_color"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `toml:"level"`
	Development bool   `toml:"development"`
}

// Config is the whole configuration file.
type Config struct {
	Window WindowConfig `toml:"window"`
	Engine EngineConfig `toml:"engine"`
	Render RenderConfig `toml:"render"`
	Log    LogConfig    `toml:"log"`
}

// Default returns the configuration used when no file is given.
//
// Returns:
//   - Config: the defaults
func Default() Config {
	vsync := true
	return Config{
		Window: WindowConfig{Title: "oxy-frame", Width: 1280, Height: 720, VSync: &vsync},
		Engine: EngineConfig{TickRate: 60},
		Render: RenderConfig{ClearColor: [4]float64{0.2, 0.2, 0.2, 1}},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads and parses the TOML file at path.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the configuration with defaults filled in
//   - error: if the file cannot be read or parsed
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes TOML data. Fields the data leaves out take their default values.
// Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the configuration with defaults filled in
//   - error: if the document is not valid TOML or has unknown keys
func Parse(data []byte) (Config, error) {
	var c Config
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return c.withDefaults(), nil
}

func (c Config) withDefaults() Config {
	d := Default()
	c.Window.Title = common.Coalesce(c.Window.Title, d.Window.Title)
	c.Window.Width = common.Coalesce(c.Window.Width, d.Window.Width)
	c.Window.Height = common.Coalesce(c.Window.Height, d.Window.Height)
	c.Window.VSync = common.Coalesce(c.Window.VSync, d.Window.VSync)
	c.Engine.TickRate = common.Coalesce(c.Engine.TickRate, d.Engine.TickRate)
	c.Render.ClearColor = common.Coalesce(c.Render.ClearColor, d.Render.ClearColor)
	c.Log.Level = common.Coalesce(c.Log.Level, d.Log.Level)
	return c
}

// ClearColor returns the configured clear color.
func (c Config) ClearColor() wgpu.Color {
	cc := c.Render.ClearColor
	return wgpu.Color{R: cc[0], G: cc[1], B: cc[2], A: cc[3]}
}

// NewLogger builds a zap logger at the configured level, production-encoded unless
// Development is set.
//
// Parameters:
//   - c: the log configuration
//
// Returns:
//   - *zap.Logger: the logger
//   - error: if the level is unknown or the logger cannot be built
func NewLogger(c LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
