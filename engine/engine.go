package engine

import (
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-frame/engine/loader"
	"github.com/Carmen-Shannon/oxy-frame/engine/profiler"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer"
	"github.com/Carmen-Shannon/oxy-frame/engine/scene"
	"github.com/Carmen-Shannon/oxy-frame/engine/window"
	"go.uber.org/zap"
)

// engine implements the Engine interface.
// Coordinates engine, render, and window threads.
type engine struct {
	mu sync.RWMutex

	tickRateChannel chan time.Duration // Channel for dynamic tick rate updates

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once // Ensures quitChannel is only closed once

	window window.Window
	logger *zap.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	loader       loader.Loader
	uploadBudget int

	engineTickRate    time.Duration
	tickCallback      func(deltaTime float32)
	preRenderCallback func(deltaTime float32)
	renderCallback    func(deltaTime float32)

	scenes []scene.Scene
	clear  renderer.ClearOptions

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped
}

// Engine is the main entry point for the engine.
// It orchestrates the engine loop, render loop, and window management.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// Every active scene is ticked at this rate, followed by the tick callback.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for game logic, physics and input processing.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetPreRenderCallback registers the function called once per frame on the render
	// thread before any scene is drawn. UI overlays prepare their frame here.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetPreRenderCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame after every
	// scene is drawn and before the buffers are swapped.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene. Active scenes are rendered in ascending ZOrder; scenes
	// with equal ZOrder keep the order they were added in.
	//
	// Parameters:
	//   - s: the Scene to register
	AddScene(s scene.Scene)

	// RemoveScene unregisters a scene.
	//
	// Parameters:
	//   - s: the Scene to remove
	RemoveScene(s scene.Scene)

	// Scenes returns the registered scenes in draw order.
	//
	// Returns:
	//   - []scene.Scene: a copy of the scene list
	Scenes() []scene.Scene

	// RenderFrame draws one frame: pending asset uploads, the pre-render callback, every
	// active scene, then the render callback. The first scene clears with the engine's
	// clear options and later scenes clear depth only, so they layer on top.
	// Must be called on the thread that owns the graphics context.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last frame in seconds
	//
	// Returns:
	//   - renderer.FrameStats: the summed stats of every scene pass
	//   - error: the bind failure that aborted a scene pass
	RenderFrame(deltaTime float32) (renderer.FrameStats, error)

	// Tick advances every active scene by deltaTime, then runs the tick callback.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last tick in seconds
	Tick(deltaTime float32)

	// Run starts the main engine loop (blocks until window closes).
	Run()

	// Quit signals all engine goroutines to stop and shuts down the engine.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Done is closed once Quit has been called.
	Done() <-chan struct{}
}

// NewEngine creates a new Engine instance with the provided options.
// Initializes message channels and profiler with sensible defaults.
// Options are applied directly to the engine struct via the option-builder pattern.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		tickRateChannel:  make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		logger:           zap.NewNop(),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		clear:            renderer.DefaultClearOptions(),
	}

	for _, opt := range options {
		opt(e)
	}

	if e.profiler == nil {
		e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))
	}

	if e.window != nil {
		e.window.SetResizeCallback(func(width, height int) {
			for _, s := range e.Scenes() {
				s.Renderer().Resize(width, height)
				if c := s.MainCamera(); c != nil && height > 0 {
					c.SetAspect(float32(width) / float32(height))
				}
			}
		})
		// The message loop runs on the main thread; stop it once the engine quits.
		e.window.SetUpdateCallback(func() {
			select {
			case <-e.quitChannel:
				e.window.RequestClose()
			default:
			}
		})
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

// Run hands the GL context to the render goroutine, starts the engine goroutines and
// runs the window's message loop on the calling thread until the window closes.
// Panics if the engine has no window.
func (e *engine) Run() {
	if e.window == nil {
		panic("engine: Run requires a Window")
	}
	e.window.DetachContext()
	e.handle()
	e.window.ProcessMessages()

	e.signalQuit()
	e.wg.Wait()
	if err := e.window.Close(); err != nil {
		e.logger.Warn("failed to close window", zap.Error(err))
	}
}

// Quit signals all engine goroutines to stop and shuts down the engine.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (e *engine) Quit() {
	e.signalQuit()
}

func (e *engine) Done() <-chan struct{} {
	return e.quitChannel
}

// signalQuit closes the quit channel to signal all goroutines to exit.
// Uses sync.Once to ensure the channel is only closed once.
func (e *engine) signalQuit() {
	e.quitOnce.Do(func() {
		e.mu.Lock()
		e.running = false
		e.mu.Unlock()
		close(e.quitChannel)
	})
}

// handle launches the engine and render goroutines.
// Each goroutine is tracked by the engine's WaitGroup.
func (e *engine) handle() {
	e.mu.Lock()
	e.running = true
	e.mu.Unlock()
	e.wg.Add(2)
	go e.handleEngine()
	go e.handleRender()
}

// handleEngine runs the fixed-rate engine tick loop in its own goroutine.
// Ticks every active scene at the configured tick rate and listens for dynamic rate changes
// via tickRateChannel. Exits when the quit channel is closed.
func (e *engine) handleEngine() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.tickRate())
	defer ticker.Stop()

	lastTick := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		case <-ticker.C:
			now := time.Now()
			dt := float32(now.Sub(lastTick).Seconds())
			lastTick = now
			e.Tick(dt)
		case newRate := <-e.tickRateChannel:
			ticker.Reset(newRate)
			e.mu.Lock()
			e.engineTickRate = newRate
			e.mu.Unlock()
		}
	}
}

func (e *engine) Tick(deltaTime float32) {
	for _, s := range e.Scenes() {
		if s.Active() {
			s.Tick(deltaTime)
		}
	}
	if e.tickCallback != nil {
		e.tickCallback(deltaTime)
	}
}

// handleRender runs the uncapped (or frame-limited) render loop on a locked OS thread
// that owns the window's GL context. A bind failure or a panic stops the engine.
func (e *engine) handleRender() {
	defer e.wg.Done()
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	e.window.MakeContextCurrent()
	defer e.window.DetachContext()

	// Recover from panics inside the render goroutine to avoid crashing the whole process.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("render goroutine recovered from panic", zap.Any("panic", r))
			e.signalQuit()
		}
	}()

	lastRender := time.Now()

	for {
		select {
		case <-e.quitChannel:
			return
		default:
		}

		now := time.Now()
		dt := float32(now.Sub(lastRender).Seconds())
		lastRender = now

		stats, err := e.RenderFrame(dt)
		if err != nil {
			e.logger.Error("render pass failed, stopping engine", zap.Error(err))
			e.signalQuit()
			return
		}
		e.window.SwapBuffers()

		if e.profilingEnabled && e.profiler != nil {
			e.profiler.Tick(stats)
		}

		// Frame rate limiting
		if e.renderFrameLimit > 0 {
			elapsed := time.Since(lastRender)
			if remaining := e.renderFrameLimit - elapsed; remaining > 0 {
				time.Sleep(remaining)
			}
		}
	}
}

func (e *engine) RenderFrame(deltaTime float32) (renderer.FrameStats, error) {
	var total renderer.FrameStats

	if e.loader != nil && e.loader.Pending() > 0 {
		if _, err := e.loader.Upload(e.uploadBudget); err != nil {
			// failed assets stay not ready and their draws are skipped
			e.logger.Warn("asset upload failed", zap.Error(err))
		}
	}

	if e.preRenderCallback != nil {
		e.preRenderCallback(deltaTime)
	}

	opts := e.clear
	for _, s := range e.Scenes() {
		if !s.Active() {
			continue
		}
		stats, err := s.Render(opts)
		total.Add(stats)
		if err != nil {
			return total, fmt.Errorf("engine: scene %q: %w", s.Name(), err)
		}
		opts = renderer.ClearOptions{Depth: true}
	}

	if e.renderCallback != nil {
		e.renderCallback(deltaTime)
	}
	return total, nil
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

// SetTickRate sets the engine tick rate in frames per second.
// If the engine is running, the change takes effect immediately.
func (e *engine) SetTickRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	e.mu.RLock()
	running := e.running
	e.mu.RUnlock()

	if running {
		// Non-blocking send - if channel is full, replace the pending value
		select {
		case e.tickRateChannel <- newRate:
		default:
			select {
			case <-e.tickRateChannel:
			default:
			}
			e.tickRateChannel <- newRate
		}
		return
	}
	e.mu.Lock()
	e.engineTickRate = newRate
	e.mu.Unlock()
}

func (e *engine) tickRate() time.Duration {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.engineTickRate
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetPreRenderCallback registers the function called before each frame is drawn.
func (e *engine) SetPreRenderCallback(callback func(deltaTime float32)) {
	e.preRenderCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

// SetRenderFrameLimit sets an optional render frame rate cap.
// Pass 0 to uncap the render loop.
func (e *engine) SetRenderFrameLimit(fps float64) {
	if fps <= 0 {
		e.renderFrameLimit = 0
		return
	}
	e.renderFrameLimit = time.Duration(float64(time.Second) / fps)
}

func (e *engine) AddScene(s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes = append(e.scenes, s)
}

func (e *engine) RemoveScene(s scene.Scene) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scenes = slices.DeleteFunc(e.scenes, func(other scene.Scene) bool { return other == s })
}

func (e *engine) Scenes() []scene.Scene {
	e.mu.RLock()
	out := slices.Clone(e.scenes)
	e.mu.RUnlock()
	slices.SortStableFunc(out, func(a, b scene.Scene) int {
		return a.ZOrder() - b.ZOrder()
	})
	return out
}
