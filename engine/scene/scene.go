package scene

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-frame/engine/camera"
	"github.com/Carmen-Shannon/oxy-frame/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frame/engine/registry"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer"
	"go.uber.org/zap"
)

// Scene is a set of GameObjects drawn together through one Renderer.
//
// The scene does not own its objects. Add hands back a Ref holding the only strong
// reference; once every Ref to an object is released the object is no longer drawn
// and is forgotten at the end of the next Render. Scenes can be hot-swapped via the
// Active flag, and the engine renders active scenes in ascending ZOrder.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// ZOrder returns the scene's draw order; lower values are drawn first.
	ZOrder() int

	// SetZOrder sets the scene's draw order.
	//
	// Parameters:
	//   - z: the new draw order
	SetZOrder(z int)

	// MainCamera returns the camera Render draws through, or nil.
	MainCamera() camera.Camera

	// SetMainCamera replaces the main camera. With a nil camera Render only clears.
	//
	// Parameters:
	//   - cam: the new main camera
	SetMainCamera(cam camera.Camera)

	// Renderer returns the scene's renderer.
	Renderer() renderer.Renderer

	// Add inserts obj into the scene. Panics if obj is nil.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - Ref: the strong reference keeping obj in the scene
	Add(obj game_object.GameObject) Ref

	// Get retrieves a live GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Count returns the number of live GameObjects.
	//
	// Returns:
	//   - int: count of live objects
	Count() int

	// Each calls fn for every live GameObject in insertion order until fn returns false.
	//
	// Parameters:
	//   - fn: the visitor
	Each(fn func(obj game_object.GameObject) bool)

	// Prune forgets objects whose last Ref was released.
	//
	// Returns:
	//   - int: the number of objects forgotten
	Prune() int

	// Clear expires every object in the scene, whatever Refs are still held.
	Clear()

	// Tick advances every object's behaviour by deltaTime on the scene's worker pool and
	// updates the main camera. Each object is borrowed while its behaviour runs, so a
	// render pass running at the same time skips it.
	//
	// Parameters:
	//   - deltaTime: elapsed time since the last tick in seconds
	Tick(deltaTime float32)

	// RenderPass draws the scene through cam.
	//
	// Parameters:
	//   - cam: the camera to draw from (must not be nil)
	//   - clear: which buffers to clear first
	//
	// Returns:
	//   - renderer.FrameStats: what the pass did
	//   - error: a bind failure that aborted the pass
	RenderPass(cam camera.Camera, clear renderer.ClearOptions) (renderer.FrameStats, error)

	// Render draws the scene through the main camera, then prunes released objects.
	//
	// Parameters:
	//   - clear: which buffers to clear first
	//
	// Returns:
	//   - renderer.FrameStats: what the pass did
	//   - error: a bind failure that aborted the pass
	Render(clear renderer.ClearOptions) (renderer.FrameStats, error)
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu *sync.RWMutex

	name   string
	active bool
	zOrder int
	cam    camera.Camera
	r      renderer.Renderer
	logger *zap.Logger

	objects *registry.Registry[game_object.GameObject]

	// computePool runs object behaviours. Workers persist across frames.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

// Ensure scene implements Scene and renderer.Objects.
var (
	_ Scene            = &scene{}
	_ renderer.Objects = &scene{}
)

// NewScene creates a new Scene drawing through r. Panics if r is nil.
//
// Parameters:
//   - name: the name of the scene
//   - r: the renderer to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, r renderer.Renderer, options ...SceneBuilderOption) Scene {
	if r == nil {
		panic("scene: NewScene requires a non-nil Renderer")
	}

	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		active:         true,
		r:              r,
		logger:         zap.NewNop(),
		objects:        registry.New[game_object.GameObject](),
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}

	for _, option := range options {
		option(s)
	}

	// Initialize the compute pool after options so WithComputeWorkers can override the default.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) ZOrder() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.zOrder
}

func (s *scene) SetZOrder(z int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zOrder = z
}

func (s *scene) MainCamera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetMainCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Renderer() renderer.Renderer {
	return s.r
}

func (s *scene) Add(obj game_object.GameObject) Ref {
	if obj == nil {
		panic("scene: Add requires a non-nil GameObject")
	}
	h := s.objects.Insert(obj)
	s.logger.Debug("object added",
		zap.String("scene", s.Name()),
		zap.Uint64("object", obj.ID()),
		zap.Stringer("handle", h),
	)
	return Ref{handle: h, objects: s.objects}
}

func (s *scene) Get(id uint64) game_object.GameObject {
	var found game_object.GameObject
	s.objects.Each(func(_ registry.Handle, obj game_object.GameObject) bool {
		if obj.ID() == id {
			found = obj
			return false
		}
		return true
	})
	return found
}

func (s *scene) Count() int {
	n := 0
	s.objects.Each(func(registry.Handle, game_object.GameObject) bool {
		n++
		return true
	})
	return n
}

func (s *scene) Each(fn func(obj game_object.GameObject) bool) {
	s.objects.Each(func(_ registry.Handle, obj game_object.GameObject) bool {
		return fn(obj)
	})
}

func (s *scene) Prune() int {
	n := s.objects.Prune()
	if n > 0 {
		s.logger.Debug("objects pruned", zap.String("scene", s.Name()), zap.Int("count", n))
	}
	return n
}

func (s *scene) Clear() {
	s.objects.Each(func(h registry.Handle, _ game_object.GameObject) bool {
		s.objects.Drop(h)
		return true
	})
	s.objects.Prune()
}

func (s *scene) Tick(deltaTime float32) {
	// A WaitGroup provides the per-tick barrier; the pool's workers stay alive between ticks.
	var wg sync.WaitGroup
	taskID := 0
	s.Each(func(obj game_object.GameObject) bool {
		if !obj.Enabled() {
			return true
		}
		wg.Add(1)
		id := taskID
		taskID++
		s.computePool.SubmitTask(worker.Task{
			ID: id,
			Do: func() (any, error) {
				defer wg.Done()
				obj.Borrow()
				defer obj.Return()
				obj.Tick(deltaTime)
				return nil, nil
			},
		})
		return true
	})
	wg.Wait()

	if cam := s.MainCamera(); cam != nil {
		cam.Update()
	}
}

func (s *scene) RenderPass(cam camera.Camera, clear renderer.ClearOptions) (renderer.FrameStats, error) {
	return s.r.RenderPass(s, cam, clear)
}

func (s *scene) Render(clear renderer.ClearOptions) (renderer.FrameStats, error) {
	return s.r.Render(s, s.MainCamera(), clear)
}
