// Package app runs the viewer: it owns the window, the scene and the frame
// loop.
package app

import (
	"fmt"
	"time"

	"github.com/chewxy/math32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/corridor/internal/app/source"
	"github.com/Faultbox/corridor/internal/config"
	"github.com/Faultbox/corridor/internal/engine/camera"
	"github.com/Faultbox/corridor/internal/engine/debug"
	"github.com/Faultbox/corridor/internal/engine/input"
	"github.com/Faultbox/corridor/internal/engine/lighting"
	"github.com/Faultbox/corridor/internal/engine/picking"
	"github.com/Faultbox/corridor/internal/engine/renderer"
	"github.com/Faultbox/corridor/internal/engine/scene"
	"github.com/Faultbox/corridor/internal/engine/window"
	"github.com/Faultbox/corridor/internal/hud"
	"github.com/Faultbox/corridor/internal/logger"
	"github.com/Faultbox/corridor/pkg/math"
)

// hudInterval throttles window title and debug log updates.
const hudInterval = 250 * time.Millisecond

var boundsColor = [4]float32{1, 1, 0.2, 1}

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	source *source.Source
	scene  *scene.Scene
	camera *camera.OrbitCamera
	list   scene.RenderList

	pickPass *renderer.PickPass
	idBuffer *picking.IDBuffer

	shots      *debug.Screenshots
	showBounds bool

	pointerDown  bool
	lastX, lastY float32

	fps     hud.FPSCounter
	lastHUD time.Time
}

// New creates the window, renderer and initial scene.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:        cfg,
		log:        logger.Named("app"),
		showBounds: cfg.Scene.ShowBounds,
		shots:      debug.NewScreenshots("screenshots", "corridor"),
	}
	a.log.Info("initializing viewer",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.String("picking", cfg.Picking.Strategy),
	)

	var err error
	a.source, err = source.Open(cfg.Scene.Network, cfg.Scene.Watch)
	if err != nil {
		return nil, err
	}
	sc, err := a.source.Build()
	if err != nil {
		a.source.Close()
		return nil, err
	}

	// Window first, since OpenGL context must exist for the renderer
	a.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
	})
	if err != nil {
		a.source.Close()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		a.window.Close()
		a.source.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	a.renderer.SetLighting(lightingSettings(cfg.Lighting))

	if cfg.Picking.Strategy == config.PickingGPU {
		a.pickPass, err = renderer.NewPickPass(a.renderer)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to create pick pass: %w", err)
		}
		a.idBuffer = picking.NewIDBuffer(a.pickPass)
	}

	a.input = input.New()
	a.input.SetPixelScale(a.window.PixelScale())

	a.camera = camera.NewOrbitCamera(cameraSettings(cfg.Camera))
	a.camera.SetViewport(width, height)

	a.setScene(sc)
	if cfg.Camera.FitToScene && cfg.Scene.Network != "" {
		a.fitCamera()
	}

	a.log.Info("viewer initialized")
	return a, nil
}

func cameraSettings(c config.CameraConfig) camera.Settings {
	const toRad = math32.Pi / 180
	s := camera.DefaultSettings()
	s.Distance = c.Distance
	s.Yaw = c.Yaw * toRad
	s.Pitch = c.Pitch * toRad
	s.FovY = c.FOV * toRad
	s.Near = c.Near
	s.Far = c.Far
	s.OrbitSpeed = c.OrbitSpeed
	s.ZoomStep = c.ZoomStep
	return s
}

func lightingSettings(l config.LightingConfig) lighting.Settings {
	return lighting.Settings{
		SunDirection:  math.Vec3FromArray(l.SunDirection),
		SunColor:      math.Vec3FromArray(l.SunColor),
		SunIntensity:  l.SunIntensity,
		HorizonColor:  math.Vec3FromArray(l.HorizonColor),
		AmbientHeight: l.AmbientHeight,
	}
}

// setScene installs sc and uploads its meshes.
func (a *App) setScene(sc *scene.Scene) {
	sc.SetGroundHeight(a.cfg.Scene.GroundHeight)
	if a.idBuffer != nil {
		sc.SetHitTester(scene.GPUHitTester{Buffer: a.idBuffer})
	}
	a.scene = sc
	a.renderer.UploadMeshes(sc.Meshes())
	a.list = scene.RenderList{}
}

func (a *App) fitCamera() {
	if box, ok := a.scene.Bounds(); ok {
		a.camera.FitToBounds(box.Min, box.Max)
	}
}

// Run starts the main loop.
func (a *App) Run() error {
	a.running = true
	lastTime := time.Now()

	a.log.Info("starting main loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime)
		lastTime = now

		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()

		a.reload()

		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		a.window.SwapBuffers()

		a.fps.Tick(dt)
		if now.Sub(a.lastHUD) >= hudInterval {
			a.lastHUD = now
			m := hud.Build(a.cfg.Window.Title, a.source.Name(), a.cfg.Picking.Strategy,
				a.scene, a.camera, a.fps.Stats(), a.renderer.Stats().DrawCalls)
			hud.Render(m, a.window, a.log)
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, ev := range a.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			a.input.SetPixelScale(a.window.PixelScale())
			w, h := a.window.DrawableSize()
			a.renderer.Resize(w, h)
			a.camera.SetViewport(w, h)
			if a.pickPass != nil {
				a.pickPass.Resize(w, h)
			}

		case input.EventMouseMove:
			consumed := a.scene.PointerMoved(ev.MouseX, ev.MouseY, a.camera)
			if !consumed && a.pointerDown && a.scene.Picking.State() == scene.StateDraggingCamera {
				a.camera.HandleDrag(ev.MouseX-a.lastX, ev.MouseY-a.lastY)
			}
			a.lastX, a.lastY = ev.MouseX, ev.MouseY

		case input.EventMouseDown:
			if ev.Button != input.ButtonLeft {
				continue
			}
			a.pointerDown = true
			a.lastX, a.lastY = ev.MouseX, ev.MouseY
			if a.scene.PointerPressed(ev.MouseX, ev.MouseY, a.camera) {
				a.log.Debug("node drag started", zap.Int("node", int(a.scene.Picking.Picked)))
			}

		case input.EventMouseUp:
			if ev.Button != input.ButtonLeft {
				continue
			}
			a.pointerDown = false
			if a.scene.PointerReleased() {
				a.log.Debug("node drag ended", zap.Int("node", int(a.scene.Picking.Picked)))
			}

		case input.EventScroll:
			a.camera.HandleZoom(ev.Scroll)

		case input.EventKeyDown:
			a.handleKey(ev.Key)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false
	case sdl.SCANCODE_F:
		a.fitCamera()
	case sdl.SCANCODE_B:
		a.showBounds = !a.showBounds
	case sdl.SCANCODE_F12:
		pixels, w, h := a.renderer.ReadPixels()
		path, err := a.shots.Save(pixels, w, h)
		if err != nil {
			a.log.Warn("screenshot failed", zap.Error(err))
			return
		}
		a.log.Info("screenshot saved", zap.String("path", path))
	}
}

// reload swaps in a rebuilt scene when the network file changed.
func (a *App) reload() {
	sc, changed, err := a.source.Reload()
	if err != nil {
		a.log.Warn("reload failed, keeping current scene", zap.Error(err))
		return
	}
	if !changed {
		return
	}
	a.setScene(sc)
	a.log.Info("scene reloaded", zap.Int("nodes", sc.NodeCount()))
}

// render draws the current frame.
func (a *App) render() error {
	a.scene.BeginFrame()
	a.scene.FillRenderList(&a.list, scene.BatchOptions{SortByMesh: a.cfg.Scene.SortByMesh})

	a.renderer.Begin()
	a.renderer.Draw(&a.list, a.camera.ViewProjection())

	if hovered := a.scene.Picking.Hovered; a.showBounds && hovered != scene.NoNode {
		a.renderer.DrawBounds([]picking.AABB{a.scene.WorldAABB(hovered)}, boundsColor)
	}

	if a.idBuffer != nil {
		if err := a.idBuffer.Update(); err != nil {
			a.log.Warn("id picking failed", zap.Error(err))
		}
	}
	return nil
}

// Close cleans up viewer resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.pickPass != nil {
		a.pickPass.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	if a.source != nil {
		if err := a.source.Close(); err != nil {
			a.log.Warn("closing source", zap.Error(err))
		}
	}
}
