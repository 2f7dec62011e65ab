// Package window opens the SDL2 window that hosts the GL context.
package window

import (
	"fmt"
	"runtime"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/golden-sphere/internal/logger"
)

// GL must be driven from the thread that created the context.
func init() {
	runtime.LockOSThread()
}

// Config describes the window to open.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
}

// Window owns an SDL window and its GL context.
type Window struct {
	win *sdl.Window
	ctx sdl.GLContext
}

// glAttributes request a 4.1 core context with depth and 4x MSAA.
var glAttributes = []struct {
	attr  sdl.GLattr
	value int
}{
	{sdl.GL_CONTEXT_MAJOR_VERSION, 4},
	{sdl.GL_CONTEXT_MINOR_VERSION, 1},
	{sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE},
	{sdl.GL_DOUBLEBUFFER, 1},
	{sdl.GL_DEPTH_SIZE, 24},
	{sdl.GL_MULTISAMPLEBUFFERS, 1},
	{sdl.GL_MULTISAMPLESAMPLES, 4},
}

func windowFlags(cfg Config) uint32 {
	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	return flags
}

func swapInterval(vsync bool) int {
	if vsync {
		return 1
	}
	return 0
}

// New initializes SDL and opens a window with a current GL context. On
// failure everything created so far is released.
func New(cfg Config) (w *Window, err error) {
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("sdl init: %w", err)
	}

	created := &Window{}
	defer func() {
		if err != nil {
			created.Close()
		}
	}()
	w = created

	for _, a := range glAttributes {
		if err := sdl.GLSetAttribute(a.attr, a.value); err != nil {
			logger.Warn("GL attribute rejected", zap.Int("attr", int(a.attr)), zap.Int("value", a.value), zap.Error(err))
		}
	}

	w.win, err = sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width), int32(cfg.Height), windowFlags(cfg))
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	w.ctx, err = w.win.GLCreateContext()
	if err != nil {
		return nil, fmt.Errorf("create GL context: %w", err)
	}

	if err := sdl.GLSetSwapInterval(swapInterval(cfg.VSync)); err != nil {
		logger.Warn("swap interval not supported", zap.Bool("vsync", cfg.VSync), zap.Error(err))
	}

	width, height := w.DrawableSize()
	logger.Info("window open",
		zap.String("title", cfg.Title),
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
	)
	return w, nil
}

// Close releases the context and window, then shuts SDL down.
func (w *Window) Close() {
	if w.ctx != nil {
		sdl.GLDeleteContext(w.ctx)
		w.ctx = nil
	}
	if w.win != nil {
		w.win.Destroy()
		w.win = nil
	}
	sdl.Quit()
}

func (w *Window) SwapBuffers() {
	w.win.GLSwap()
}

// DrawableSize is the framebuffer size in pixels. It is larger than the
// window size on high-DPI displays.
func (w *Window) DrawableSize() (int, int) {
	width, height := w.win.GLGetDrawableSize()
	return int(width), int(height)
}

func (w *Window) SetTitle(title string) {
	w.win.SetTitle(title)
}
