package kbdctl

import (
	"log/slog"
)

type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyUp
	KeyDown
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	default:
		return "unknown"
	}
}

// KeyState reports whether a key is held down right now. The window
// implements it on top of glfw.
type KeyState interface {
	IsKeyDown(Key) bool
}

type Controller struct {
	step float32
}

func NewController(step float32) *Controller {
	return &Controller{step: step}
}

// Process is polled once per frame. Held keys move mix by one step per
// frame. The return value tells whether escape asked for the window to close.
func (c *Controller) Process(keys KeyState, mix *Mix) (closeRequested bool) {
	if keys.IsKeyDown(KeyEscape) {
		slog.Info("told to quit, exiting", slog.String("module", "kbdctl"))
		closeRequested = true
	}
	if keys.IsKeyDown(KeyUp) {
		mix.Add(c.step)
	}
	if keys.IsKeyDown(KeyDown) {
		mix.Add(-c.step)
	}
	return closeRequested
}
