package geometry

const F32 = 4

// Attribute describes one interleaved vertex attribute. Size and Offset are
// in floats, not bytes.
type Attribute struct {
	Location uint32
	Size     int32
	Offset   int
}

type Layout struct {
	// Stride is the number of floats per vertex
	Stride     int
	Attributes []Attribute
}

func (l Layout) StrideBytes() int32 {
	return int32(l.Stride * F32)
}

func (a Attribute) OffsetBytes() uintptr {
	return uintptr(a.Offset * F32)
}

type MeshData struct {
	Name     string
	Vertices []float32
	Indices  []uint32
	Layout   Layout
}

func (m *MeshData) VertexCount() int {
	return len(m.Vertices) / m.Layout.Stride
}

// DrawCount is what glDrawElements or glDrawArrays should be called with.
func (m *MeshData) DrawCount() int32 {
	if len(m.Indices) > 0 {
		return int32(len(m.Indices))
	}
	return int32(m.VertexCount())
}

func (m *MeshData) Indexed() bool {
	return len(m.Indices) > 0
}

var Triangle = MeshData{
	Name: "triangle",
	Vertices: []float32{
		// position       // colour
		0.5, -0.5, 0.0, 0.0, 0.0, 1.0,  // bottom right
		-0.5, -0.5, 0.0, 0.0, 1.0, 0.0, // bottom left
		0.0, 0.5, 0.0, 1.0, 0.0, 0.0,   // top
	},
	Layout: Layout{
		Stride: 6,
		Attributes: []Attribute{
			{Location: 0, Size: 3, Offset: 0},
			{Location: 1, Size: 3, Offset: 3},
		},
	},
}

// Rectangle has texture coordinates running to 2.0 so a repeating texture
// shows up twice in each direction.
var Rectangle = MeshData{
	Name: "rectangle",
	Vertices: []float32{
		// position       // colour     // uv
		0.5, 0.5, 0.0, 1.0, 0.0, 0.0, 2.0, 2.0,   // top right
		0.5, -0.5, 0.0, 0.0, 1.0, 0.0, 2.0, 0.0,  // bottom right
		-0.5, -0.5, 0.0, 0.0, 0.0, 1.0, 0.0, 0.0, // bottom left
		-0.5, 0.5, 0.0, 1.0, 1.0, 0.0, 0.0, 2.0,  // top left
	},
	Indices: []uint32{
		0, 1, 3,
		1, 2, 3,
	},
	Layout: Layout{
		Stride: 8,
		Attributes: []Attribute{
			{Location: 0, Size: 3, Offset: 0},
			{Location: 1, Size: 3, Offset: 3},
			{Location: 2, Size: 2, Offset: 6},
		},
	},
}

// ByName looks up one of the built-in meshes.
func ByName(name string) (*MeshData, bool) {
	switch name {
	case Triangle.Name:
		return &Triangle, true
	case Rectangle.Name:
		return &Rectangle, true
	default:
		return nil, false
	}
}
