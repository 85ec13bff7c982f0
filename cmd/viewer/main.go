// Command viewer opens a window and renders a small lit scene: a grid of spinning
// textured cubes, translucent panes, orbiting point lights and a gradient sky.
package main

import (
	_ "embed"
	"flag"
	"fmt"
	"image/color"
	"math"
	"os"
	"sync"

	"github.com/Carmen-Shannon/oxy-frame/common"
	"github.com/Carmen-Shannon/oxy-frame/engine"
	"github.com/Carmen-Shannon/oxy-frame/engine/camera"
	"github.com/Carmen-Shannon/oxy-frame/engine/config"
	"github.com/Carmen-Shannon/oxy-frame/engine/game_object"
	"github.com/Carmen-Shannon/oxy-frame/engine/gfx/glgfx"
	"github.com/Carmen-Shannon/oxy-frame/engine/light"
	"github.com/Carmen-Shannon/oxy-frame/engine/loader"
	"github.com/Carmen-Shannon/oxy-frame/engine/model"
	"github.com/Carmen-Shannon/oxy-frame/engine/profiler"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer"
	"github.com/Carmen-Shannon/oxy-frame/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-frame/engine/scene"
	"github.com/Carmen-Shannon/oxy-frame/engine/window"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

var (
	//go:embed shaders/lit.vert
	litVert string
	//go:embed shaders/lit.frag
	litFrag string
	//go:embed shaders/sky.vert
	skyVert string
	//go:embed shaders/sky.frag
	skyFrag string
)

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	// ── Window + GL ─────────────────────────────────────────────────────
	win := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithWidth(cfg.Window.Width),
		window.WithHeight(cfg.Window.Height),
		window.WithVSync(*cfg.Window.VSync),
	)
	dev, err := glgfx.New(logger)
	if err != nil {
		return err
	}

	r := renderer.NewRenderer(dev,
		renderer.WithLogger(logger),
		renderer.WithSize(win.Width(), win.Height()),
	)
	assets := loader.NewLoader(glgfx.Uploader{}, loader.WithLogger(logger))

	// ── Camera ──────────────────────────────────────────────────────────
	cam := camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(45)),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithClipPlanes(0.1, 500),
		camera.WithController(camera.NewOrbitController(
			camera.WithOrbit(18, 0.6, 0.4),
			camera.WithRadiusBounds(4, 80),
		)),
	)

	sceneOpts := []scene.SceneBuilderOption{
		scene.WithMainCamera(cam),
		scene.WithLogger(logger),
	}
	if cfg.Engine.ComputeWorkers > 0 {
		sceneOpts = append(sceneOpts, scene.WithComputeWorkers(cfg.Engine.ComputeWorkers))
	}
	sc := scene.NewScene("viewer", r, sceneOpts...)
	refs := populate(sc, r, assets)
	defer func() {
		for _, ref := range refs {
			ref.Release()
		}
	}()

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithLogger(logger),
		engine.WithTickRate(float64(cfg.Engine.TickRate)),
		engine.WithRenderFrameLimit(float64(cfg.Engine.FrameLimit)),
		engine.WithProfiling(cfg.Engine.Profiling),
		engine.WithProfiler(profiler.NewProfiler(profiler.WithLogger(logger))),
		engine.WithLoader(assets, 4),
		engine.WithClearOptions(renderer.ClearOptions{Color: true, Depth: true, ClearColor: cfg.ClearColor()}),
		engine.WithScene(sc),
	)
	setupInput(eng, cam)

	logger.Info("starting viewer", zap.Int("objects", sc.Count()))
	eng.Run()
	return nil
}

// populate builds the demo scene and returns the refs keeping its objects alive.
func populate(sc scene.Scene, r renderer.Renderer, assets loader.Loader) []scene.Ref {
	lit := r.RegisterProgram(assets.Program("lit", litVert, litFrag))
	sky := r.RegisterProgram(assets.Program("sky", skyVert, skyFrag))

	vertices, indices := buildCube()
	cube := assets.Mesh("cube", vertices, indices)

	crate, _ := assets.TextureImage("checker", checker(64,
		color.RGBA{R: 200, G: 120, B: 60, A: 255},
		color.RGBA{R: 90, G: 50, B: 30, A: 255},
	))
	glass, _ := assets.TextureImage("glass", checker(16,
		color.RGBA{R: 120, G: 200, B: 255, A: 90},
		color.RGBA{R: 160, G: 230, B: 255, A: 120},
	))

	solid := material.NewMaterial(
		material.WithName("crate"),
		material.WithProgram(lit),
		material.WithTexture("uDiffuseMap", crate),
	)
	pane := material.NewMaterial(
		material.WithName("glass"),
		material.WithProgram(lit),
		material.WithQueue(material.QueueTransparent),
		material.WithTexture("uDiffuseMap", glass),
		material.WithShininess(96),
	)
	skybox := material.NewMaterial(
		material.WithName("sky"),
		material.WithProgram(sky),
		material.WithQueue(material.QueueSkybox),
	)

	var refs []scene.Ref
	add := func(obj game_object.GameObject) {
		refs = append(refs, sc.Add(obj))
	}

	add(game_object.NewGameObject(
		game_object.WithName("sky"),
		game_object.WithModel(model.NewModel(model.WithName("sky"), model.WithSurface(cube, skybox))),
	))
	add(game_object.NewGameObject(
		game_object.WithName("sun"),
		game_object.WithLight(light.NewLight(light.LightTypeDirectional,
			light.WithDirection(-0.4, -1, -0.3),
			light.WithAmbient(0.15, 0.15, 0.18),
		)),
	))

	crates := model.NewModel(model.WithName("crate"), model.WithSurface(cube, solid))
	for x := -2; x <= 2; x++ {
		for z := -2; z <= 2; z++ {
			add(game_object.NewGameObject(
				game_object.WithName(fmt.Sprintf("crate_%d_%d", x, z)),
				game_object.WithModel(crates),
				game_object.WithPosition(float32(x)*3, 0, float32(z)*3),
				game_object.WithRotationSpeed(0, 0.02*float32(x+3), 0),
			))
		}
	}

	panes := model.NewModel(model.WithName("pane"), model.WithSurface(cube, pane))
	for i := 0; i < 3; i++ {
		add(game_object.NewGameObject(
			game_object.WithName(fmt.Sprintf("pane_%d", i)),
			game_object.WithModel(panes),
			game_object.WithPosition(float32(i-1)*4, 2.5, 0),
			game_object.WithScale(2.5, 2.5, 0.1),
		))
	}

	colors := [][3]float32{{1, 0.3, 0.2}, {0.2, 0.5, 1}}
	for i, c := range colors {
		phase := float64(i) * math.Pi
		add(game_object.NewGameObject(
			game_object.WithName(fmt.Sprintf("lamp_%d", i)),
			game_object.WithLight(light.NewLight(light.LightTypePoint,
				light.WithDiffuse(c[0], c[1], c[2]),
				light.WithSpecular(c[0], c[1], c[2]),
			)),
			game_object.WithBehaviour(orbit(8, 1.5, phase)),
		))
	}
	return refs
}

// orbit returns a behaviour that circles its object around the origin.
func orbit(radius, height float32, phase float64) game_object.Behaviour {
	var t float64
	return func(obj game_object.GameObject, dt float32) {
		t += float64(dt)
		sin, cos := math.Sincos(t*0.8 + phase)
		obj.SetPosition(radius*float32(cos), height, radius*float32(sin))
	}
}

// setupInput wires camera controls: WASD orbit and scroll zoom.
//
// Parameters:
//   - eng: the engine instance providing window callbacks and tick
//   - cam: the camera to control
func setupInput(eng engine.Engine, cam camera.Camera) {
	var mu sync.Mutex
	keyState := make(map[uint32]bool)
	held := func(keyCode uint32) bool {
		mu.Lock()
		defer mu.Unlock()
		return keyState[keyCode]
	}

	eng.Window().SetKeyDownCallback(func(keyCode uint32) {
		mu.Lock()
		keyState[keyCode] = true
		mu.Unlock()
	})

	eng.Window().SetKeyUpCallback(func(keyCode uint32) {
		mu.Lock()
		keyState[keyCode] = false
		mu.Unlock()
	})

	eng.Window().SetScrollCallback(func(delta float32) {
		cam.Controller().Zoom(delta)
	})

	eng.SetTickCallback(func(_ float32) {
		ctrl := cam.Controller()
		if held(common.KeyW) {
			ctrl.OrbitUp()
		}
		if held(common.KeyS) {
			ctrl.OrbitDown()
		}
		if held(common.KeyA) {
			ctrl.OrbitLeft()
		}
		if held(common.KeyD) {
			ctrl.OrbitRight()
		}
	})
}
