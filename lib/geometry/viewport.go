package geometry

// Viewport tracks the framebuffer size and forwards every change to apply,
// which is gl.Viewport outside of tests.
type Viewport struct {
	Width  int32
	Height int32

	apply func(x, y, width, height int32)
}

func NewViewport(apply func(x, y, width, height int32)) *Viewport {
	return &Viewport{apply: apply}
}

func (v *Viewport) Resize(width, height int) {
	v.Width = int32(width)
	v.Height = int32(height)
	if v.apply != nil {
		v.apply(0, 0, v.Width, v.Height)
	}
}
