package renderer

import (
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"go.uber.org/zap"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithLogger sets the logger skipped draws and bind failures are reported to.
//
// Parameters:
//   - logger: the logger; nil keeps the no-op default
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *zap.Logger) RendererBuilderOption {
	return func(r *renderer) {
		if logger != nil {
			r.logger = logger.Named("renderer")
		}
	}
}

// WithSize sets the initial size of the default render target.
//
// Parameters:
//   - width: the width in pixels
//   - height: the height in pixels
//
// Returns:
//   - RendererBuilderOption: a function that applies the size option to a renderer
func WithSize(width, height int) RendererBuilderOption {
	return func(r *renderer) {
		r.width, r.height = width, height
	}
}

// WithProgram pre-registers a shader program in the renderer's program cache under its name.
//
// Parameters:
//   - p: the program to cache
//
// Returns:
//   - RendererBuilderOption: a function that applies the program option to a renderer
func WithProgram(p *shader.Program) RendererBuilderOption {
	return func(r *renderer) {
		r.programCache[p.Name()] = p
	}
}
