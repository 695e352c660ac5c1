package window

import (
	"fmt"
	"log/slog"

	"github.com/fosdem/glmix/lib/config"
	"github.com/fosdem/glmix/lib/kbdctl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

var keyMap = map[kbdctl.Key]glfw.Key{
	kbdctl.KeyEscape: glfw.KeyEscape,
	kbdctl.KeyUp:     glfw.KeyUp,
	kbdctl.KeyDown:   glfw.KeyDown,
}

type Window struct {
	Window *glfw.Window
}

// New initialises glfw and opens a window with a core profile context of the
// configured version, current on the calling thread. The caller must have
// locked the OS thread.
func New(cfg *config.WindowCfg) (*Window, error) {
	log("Initializing window")
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create glfw window: %w", err)
	}

	window.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	return &Window{Window: window}, nil
}

// OnResize registers fn for framebuffer size changes. fn is called right
// away with the current size.
func (w *Window) OnResize(fn func(width, height int)) {
	w.Window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		log("Framebuffer resized to %dx%d", width, height)
		fn(width, height)
	})
	fn(w.Window.GetFramebufferSize())
}

// IsKeyDown implements kbdctl.KeyState.
func (w *Window) IsKeyDown(k kbdctl.Key) bool {
	key, ok := keyMap[k]
	if !ok {
		return false
	}
	return w.Window.GetKey(key) == glfw.Press
}

func (w *Window) ShouldClose() bool {
	return w.Window.ShouldClose()
}

func (w *Window) RequestClose() {
	w.Window.SetShouldClose(true)
}

func (w *Window) SwapBuffers() {
	w.Window.SwapBuffers()
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

// Time is the number of seconds since glfw was initialised.
func (w *Window) Time() float64 {
	return glfw.GetTime()
}

func (w *Window) Close() {
	log("Closing window")
	w.Window.Destroy()
	glfw.Terminate()
}

func log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "window"))
}
