package kbdctl

// Mix is the blend factor between the two bound textures. It never leaves
// [0, 1].
type Mix struct {
	value float32
}

func NewMix(v float32) Mix {
	m := Mix{}
	m.Set(v)
	return m
}

func (m Mix) Value() float32 {
	return m.value
}

func (m *Mix) Set(v float32) {
	m.value = clamp(v)
}

func (m *Mix) Add(delta float32) {
	m.Set(m.value + delta)
}

func clamp(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
