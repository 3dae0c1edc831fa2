// Package app implements the interactive hand viewer main loop.
package app

import (
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/handviz/internal/assets"
	"github.com/Faultbox/handviz/internal/config"
	"github.com/Faultbox/handviz/internal/engine/camera"
	"github.com/Faultbox/handviz/internal/engine/debug"
	"github.com/Faultbox/handviz/internal/engine/input"
	"github.com/Faultbox/handviz/internal/engine/picking"
	"github.com/Faultbox/handviz/internal/engine/renderer"
	"github.com/Faultbox/handviz/internal/engine/window"
	"github.com/Faultbox/handviz/internal/viewer"
)

// keyActions maps keys to viewer actions.
var keyActions = map[sdl.Scancode]viewer.Action{
	sdl.SCANCODE_M: viewer.ActionToggleMeshes,
	sdl.SCANCODE_J: viewer.ActionToggleJoints,
	sdl.SCANCODE_V: viewer.ActionCycleVelocity,
	sdl.SCANCODE_L: viewer.ActionToggleLeftLost,
	sdl.SCANCODE_R: viewer.ActionToggleRightLost,
}

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	shots    *debug.Screenshots
	assets   *assets.Manager
	session  *viewer.Session
}

// New creates the window, GL renderer and viewer session.
func New(cfg *config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("source", cfg.Tracking.Source),
	)

	a := &App{
		cfg:    cfg,
		log:    log,
		assets: assets.NewManager(),
		camera: camera.NewOrbitCamera(),
		shots:  debug.NewScreenshots(config.ScreenshotDir(), "handviz"),
	}
	a.camera.FOV = cfg.Graphics.FOV * gomath.Pi / 180

	for _, dir := range cfg.Rig.AssetDirs {
		if err := a.assets.AddDir(dir); err != nil {
			return nil, err
		}
	}

	var err error
	a.session, err = viewer.NewSession(cfg, a.assets, log.Named("viewer"))
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:      "HandViz",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
		Logger:     log.Named("window"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		Background: cfg.Graphics.Background,
		Logger:     log.Named("renderer"),
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()

	log.Info("viewer initialized successfully")
	return a, nil
}

// Run starts the main loop and returns when the window is closed or ESC is
// pressed.
func (a *App) Run() error {
	a.running = true

	start := time.Now()
	lastTime := start
	frameCount := 0
	fpsTimer := start

	var frameBudget time.Duration
	if a.cfg.Graphics.FPSLimit > 0 {
		frameBudget = time.Second / time.Duration(a.cfg.Graphics.FPSLimit)
	}

	a.log.Info("starting viewer loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		// 1. Process input
		if a.input.Update() {
			a.running = false
			break
		}
		a.handleEvents()
		a.handleCameraKeys(float32(dt))

		// 2. Publish tracking and tick the visualizer
		if err := a.session.Step(now.Sub(start).Seconds()); err != nil {
			return fmt.Errorf("update error: %w", err)
		}

		// 3. Render
		a.renderer.Begin()
		a.renderer.DrawLines(a.session.Lines(), a.camera.ViewProjection(a.renderer.Aspect()))

		if a.input.IsKeyPressed(sdl.SCANCODE_F12) {
			a.screenshot()
		}

		// 4. Present (swap buffers)
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount), zap.Float64("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}

		if frameBudget > 0 {
			if left := frameBudget - time.Since(now); left > 0 {
				time.Sleep(left)
			}
		}
	}

	return nil
}

func (a *App) handleEvents() {
	for _, event := range a.input.Events() {
		switch event.Type {
		case input.EventWindowResize:
			w, h := a.window.DrawableSize()
			a.renderer.Resize(w, h)
		case input.EventKeyDown:
			if event.Repeat {
				continue
			}
			if event.Key == sdl.SCANCODE_ESCAPE {
				a.running = false
				continue
			}
			if action, ok := keyActions[event.Key]; ok {
				a.session.Do(action)
			}
		case input.EventMouseMove:
			if a.input.IsButtonDown(sdl.BUTTON_LEFT) {
				a.camera.HandleDrag(float32(event.DeltaX), float32(event.DeltaY))
			}
		case input.EventMouseDown:
			if event.Button == sdl.BUTTON_RIGHT {
				a.pick(event.MouseX, event.MouseY)
			}
		case input.EventMouseWheel:
			a.camera.HandleZoom(float32(event.DeltaY))
		}
	}
}

// pick logs the joint under the cursor.
func (a *App) pick(x, y int) {
	w, h := a.window.GetSize()
	inv, ok := a.camera.ViewProjection(a.renderer.Aspect()).Inverse()
	if !ok {
		a.log.Debug("view-projection is singular, skipping pick")
		return
	}
	ray := picking.ScreenToRay(float32(x), float32(y), float32(w), float32(h), inv)

	p, ok := a.session.Pick(ray)
	if !ok {
		return
	}
	pos, rot := p.Pose.Position.Array(), p.Pose.Rotation.Array()
	a.log.Info("joint picked",
		zap.Stringer("hand", p.Hand),
		zap.Stringer("joint", p.Joint),
		zap.Float32s("position", pos[:]),
		zap.Float32s("rotation", rot[:]),
	)
}

// handleCameraKeys pans the orbit target with WASD, Q and E.
func (a *App) handleCameraKeys(dt float32) {
	var forward, right, up float32
	if a.input.IsKeyHeld(sdl.SCANCODE_W) {
		forward++
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_S) {
		forward--
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_D) {
		right++
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_A) {
		right--
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_E) {
		up++
	}
	if a.input.IsKeyHeld(sdl.SCANCODE_Q) {
		up--
	}
	if forward != 0 || right != 0 || up != 0 {
		scale := dt * 60
		a.camera.HandleMovement(forward*scale, right*scale, up*scale)
	}
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	path, err := a.shots.Capture(pixels, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up viewer resources.
func (a *App) Close() {
	a.log.Info("closing viewer")

	if a.session != nil {
		a.session.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
	a.assets.Close()
}
