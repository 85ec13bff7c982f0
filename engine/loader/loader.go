// Package loader creates shared shader, mesh and texture resources by name and uploads
// them to the GPU later on the render thread. Resources are handed out immediately in
// the not-ready state, so a scene can be assembled before its assets exist on the GPU;
// the renderer skips draws that need them until Upload resolves them.
package loader

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/buffer"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/texture"
	"go.uber.org/zap"
)

// upload is one queued GPU upload. run creates the GPU object and resolves the resource.
type upload struct {
	kind string
	name string
	run  func(b Backend) error
}

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.Mutex

	backend Backend
	logger  *zap.Logger

	programCache map[string]*shader.Program
	meshCache    map[string]*buffer.MeshBuffer
	textureCache map[string]*texture.Texture

	queue []upload
}

// Loader hands out named, shared GPU resources and uploads them in batches.
//
// Each cache holds one strong reference to every resource it created. Requesting a
// name that is already cached returns the cached resource and ignores the new data.
type Loader interface {
	// Program returns the program cached under name, queueing a compile of the given
	// sources if it is new.
	//
	// Parameters:
	//   - name: the cache key
	//   - vertexSource: GLSL vertex shader source
	//   - fragmentSource: GLSL fragment shader source
	//
	// Returns:
	//   - *shader.Program: the program, not ready until uploaded
	Program(name, vertexSource, fragmentSource string) *shader.Program

	// Mesh returns the mesh buffer cached under name, queueing an upload if it is new.
	//
	// Parameters:
	//   - name: the cache key
	//   - vertices: interleaved vertex data
	//   - indices: triangle list indices
	//
	// Returns:
	//   - *buffer.MeshBuffer: the buffer, not ready until uploaded
	Mesh(name string, vertices []float32, indices []uint32) *buffer.MeshBuffer

	// Texture returns the texture cached under name, queueing an upload if it is new.
	//
	// Parameters:
	//   - name: the cache key
	//   - pixels: RGBA data, 4 bytes per pixel
	//   - width, height: dimensions in pixels
	//
	// Returns:
	//   - *texture.Texture: the texture, not ready until uploaded
	//   - error: error if pixels does not match the dimensions
	Texture(name string, pixels []byte, width, height int) (*texture.Texture, error)

	// TextureImage is Texture for an image.Image of any color model.
	//
	// Parameters:
	//   - name: the cache key
	//   - img: the source image
	//
	// Returns:
	//   - *texture.Texture: the texture, not ready until uploaded
	//   - error: error if img is empty
	TextureImage(name string, img image.Image) (*texture.Texture, error)

	// Pending returns the number of queued uploads.
	Pending() int

	// Upload runs up to limit queued uploads (all of them when limit <= 0) in request order.
	// Must be called on the thread that owns the graphics context. A failed upload is
	// dropped from the queue and its resource stays not ready.
	//
	// Returns:
	//   - int: the number of uploads attempted
	//   - error: every failure joined, or nil
	Upload(limit int) (int, error)

	// Release drops the cache's references to every resource and empties the caches.
	Release()
}

var _ Loader = &loader{}

// NewLoader creates a new Loader uploading through backend.
//
// Parameters:
//   - backend: creates the GPU objects (must not be nil)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader
func NewLoader(backend Backend, options ...LoaderBuilderOption) Loader {
	if backend == nil {
		panic("loader: NewLoader requires a non-nil Backend")
	}
	l := &loader{
		backend:      backend,
		logger:       zap.NewNop(),
		programCache: make(map[string]*shader.Program),
		meshCache:    make(map[string]*buffer.MeshBuffer),
		textureCache: make(map[string]*texture.Texture),
	}
	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Program(name, vertexSource, fragmentSource string) *shader.Program {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.programCache[name]; ok {
		return cached
	}
	p := shader.NewProgram(name, 0, shader.WithPending())
	l.programCache[name] = p
	l.enqueue("program", name, func(b Backend) error {
		id, err := b.NewProgram(vertexSource, fragmentSource)
		if err != nil {
			return err
		}
		p.Resolve(id)
		return nil
	})
	return p
}

func (l *loader) Mesh(name string, vertices []float32, indices []uint32) *buffer.MeshBuffer {
	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.meshCache[name]; ok {
		return cached
	}
	m := buffer.NewMeshBuffer(name, 0, 0)
	l.meshCache[name] = m
	l.enqueue("mesh", name, func(b Backend) error {
		vao, count := b.NewMesh(vertices, indices)
		if vao == 0 {
			return errors.New("backend returned no vertex array")
		}
		m.Resolve(vao, count)
		return nil
	})
	return m
}

func (l *loader) Texture(name string, pixels []byte, width, height int) (*texture.Texture, error) {
	if width <= 0 || height <= 0 || len(pixels) != width*height*4 {
		return nil, fmt.Errorf("loader: texture %q: %d bytes, want %dx%dx4", name, len(pixels), width, height)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if cached, ok := l.textureCache[name]; ok {
		return cached, nil
	}
	t := texture.NewTexture(name, 0)
	l.textureCache[name] = t
	l.enqueue("texture", name, func(b Backend) error {
		id, err := b.NewTexture(pixels, width, height)
		if err != nil {
			return err
		}
		t.Resolve(id)
		return nil
	})
	return t, nil
}

func (l *loader) TextureImage(name string, img image.Image) (*texture.Texture, error) {
	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Stride != rgba.Rect.Dx()*4 || !rgba.Rect.Min.Eq(image.Point{}) {
		bounds := img.Bounds()
		rgba = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}
	return l.Texture(name, rgba.Pix, rgba.Rect.Dx(), rgba.Rect.Dy())
}

func (l *loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

func (l *loader) Upload(limit int) (int, error) {
	l.mu.Lock()
	n := len(l.queue)
	if limit > 0 && limit < n {
		n = limit
	}
	batch := make([]upload, n)
	copy(batch, l.queue[:n])
	l.queue = append(l.queue[:0], l.queue[n:]...)
	l.mu.Unlock()

	var errs []error
	for _, u := range batch {
		if err := u.run(l.backend); err != nil {
			l.logger.Error("upload failed", zap.String("kind", u.kind), zap.String("name", u.name), zap.Error(err))
			errs = append(errs, fmt.Errorf("loader: %s %q: %w", u.kind, u.name, err))
			continue
		}
		l.logger.Debug("uploaded", zap.String("kind", u.kind), zap.String("name", u.name))
	}
	return len(batch), errors.Join(errs...)
}

func (l *loader) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, p := range l.programCache {
		p.Release()
	}
	for _, m := range l.meshCache {
		m.Release()
	}
	for _, t := range l.textureCache {
		t.Release()
	}
	clear(l.programCache)
	clear(l.meshCache)
	clear(l.textureCache)
	l.queue = nil
}

// enqueue appends an upload. Caller must hold mu.
func (l *loader) enqueue(kind, name string, run func(b Backend) error) {
	l.queue = append(l.queue, upload{kind: kind, name: name, run: run})
}
