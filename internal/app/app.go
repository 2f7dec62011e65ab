// Package app runs the sphere viewer: window, frame loop and input handling.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/golden-sphere/internal/config"
	"github.com/Faultbox/golden-sphere/internal/controls"
	"github.com/Faultbox/golden-sphere/internal/engine/camera"
	"github.com/Faultbox/golden-sphere/internal/engine/input"
	"github.com/Faultbox/golden-sphere/internal/engine/renderer"
	"github.com/Faultbox/golden-sphere/internal/engine/screenshot"
	"github.com/Faultbox/golden-sphere/internal/engine/window"
	"github.com/Faultbox/golden-sphere/internal/logger"
	"github.com/Faultbox/golden-sphere/internal/scene"
	"github.com/Faultbox/golden-sphere/pkg/math"
)

const title = "Golden Spiral Sphere"

// App is the viewer instance.
type App struct {
	cfg        *config.Config
	configPath string
	running    bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera
	scene    *scene.Scene
	capture  *screenshot.Capture

	reloads     chan *config.Config
	stopWatcher context.CancelFunc

	screenshotPending bool
}

// New creates the window, renderer and scene. configPath is the file to watch
// for changes when cfg.Watch is set.
func New(cfg *config.Config, configPath string) (*App, error) {
	logger.Info("initializing viewer",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Int("points", cfg.Sphere.NumPoints),
		zap.String("topology", cfg.Sphere.Topology),
	)

	a := &App{
		cfg:        cfg,
		configPath: configPath,
		input:      input.New(),
		camera:     camera.NewOrbitCamera(),
		scene:      scene.New(cfg.SceneSettings()),
		capture:    screenshot.New("screenshots", "sphere"),
		reloads:    make(chan *config.Config, 1),
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer needs the GL context the window just created
	width, height := a.window.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	logger.Info("viewer initialized")
	return a, nil
}

// Run starts the frame loop and blocks until the window closes.
func (a *App) Run() error {
	a.running = true
	a.startWatcher()

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting frame loop")

	for a.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if a.input.Update() {
			break
		}
		a.handleEvents()
		a.applyReloads()

		if a.scene.OnTick(dt) {
			a.updateTitle()
		}

		if err := a.render(); err != nil {
			return fmt.Errorf("render error: %w", err)
		}
		if a.screenshotPending {
			// Read the back buffer before it is swapped out.
			a.saveScreenshot()
			a.screenshotPending = false
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Int("points", a.scene.Points()),
				zap.Duration("dt", time.Duration(dt*float64(time.Second))),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close stops background work and releases the window and GL resources.
func (a *App) Close() {
	logger.Info("closing viewer")

	if a.stopWatcher != nil {
		a.stopWatcher()
	}
	a.scene.Close()
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvents() {
	for _, ev := range a.input.Events() {
		switch ev.Type {
		case input.EventWindowResize:
			width, height := a.window.DrawableSize()
			a.renderer.Resize(width, height)

		case input.EventKeyDown:
			action, ok := lookupAction(ev.Key, ev.Mod)
			if !ok || (ev.Repeat && !action.Repeatable()) {
				continue
			}
			a.handleAction(action)

		case input.EventMouseMove:
			if a.input.IsButtonDown(sdl.BUTTON_LEFT) {
				a.camera.HandleDrag(float32(ev.DeltaX), float32(ev.DeltaY))
			}

		case input.EventMouseWheel:
			a.camera.HandleZoom(float32(ev.DeltaY))
		}
	}
}

func (a *App) handleAction(action controls.Action) {
	switch action {
	case controls.Quit:
		a.running = false
	case controls.Screenshot:
		a.screenshotPending = true
	case controls.SaveSettings:
		a.saveSettings()
	default:
		controls.Apply(a.scene, action)
		logger.Debug("action", zap.Stringer("action", action), zap.Int("points", a.scene.Points()))
	}
}

// saveSettings writes the current scene settings back to the loaded config
// file, or to the user config dir when none was loaded.
func (a *App) saveSettings() {
	path, err := a.cfg.SaveSettings(a.scene.Settings(), a.configPath)
	if err != nil {
		logger.Error("Failed to save settings", zap.Error(err))
		return
	}
	a.configPath = path
	logger.Info("Settings saved", zap.String("path", path))
}

// startWatcher reloads sphere and material settings from the config file.
// Reloaded configs are handed to the frame loop through a channel so the
// scene is only touched from this goroutine.
func (a *App) startWatcher() {
	if !a.cfg.Watch || a.configPath == "" {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.stopWatcher = cancel
	go func() {
		err := config.Watch(ctx, a.configPath, func(cfg *config.Config) {
			// Keep only the newest pending reload.
			select {
			case <-a.reloads:
			default:
			}
			a.reloads <- cfg
		})
		if err != nil {
			logger.Warn("config watcher stopped", zap.Error(err))
		}
	}()
}

func (a *App) applyReloads() {
	select {
	case cfg := <-a.reloads:
		a.scene.Apply(cfg.SceneSettings())
		logger.Info("applied reloaded settings",
			zap.Int("points", a.scene.Points()),
			zap.Stringer("topology", a.scene.Topology()),
		)
	default:
	}
}

func (a *App) render() error {
	a.renderer.Upload(a.scene.Buffer())

	width, height := a.renderer.Size()
	model := math.RotateY(math.Radians(a.scene.RotationDegrees()))

	a.renderer.Begin()
	a.renderer.Draw(model, a.camera.ViewMatrix(), a.camera.ProjectionMatrix(width, height), a.scene.Material())
	a.renderer.End()
	return nil
}

func (a *App) updateTitle() {
	buf := a.scene.Buffer()
	a.window.SetTitle(fmt.Sprintf("%s - %d points, %s (%d primitives)",
		title, buf.PointCount(), buf.Topology, buf.Primitives()))
}

func (a *App) saveScreenshot() {
	pixels, width, height := a.renderer.ReadPixels()
	buf := a.scene.Buffer()
	label := fmt.Sprintf("%s-%d", buf.Topology, buf.PointCount())

	path, err := a.capture.SavePixels(pixels, width, height, label)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}
