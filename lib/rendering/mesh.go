package rendering

import (
	"github.com/fosdem/glmix/lib/geometry"
	"github.com/go-gl/gl/v3.3-core/gl"
)

// Mesh owns the VAO and buffers of one uploaded geometry.MeshData.
type Mesh struct {
	VAO uint32
	VBO uint32
	EBO uint32

	count   int32
	indexed bool
}

func NewMesh(data *geometry.MeshData) *Mesh {
	m := &Mesh{
		count:   data.DrawCount(),
		indexed: data.Indexed(),
	}

	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(data.Vertices)*geometry.F32, gl.Ptr(data.Vertices), gl.STATIC_DRAW)

	if m.indexed {
		gl.GenBuffers(1, &m.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(data.Indices)*4, gl.Ptr(data.Indices), gl.STATIC_DRAW)
	}

	stride := data.Layout.StrideBytes()
	for _, a := range data.Layout.Attributes {
		gl.VertexAttribPointerWithOffset(a.Location, a.Size, gl.FLOAT, false, stride, a.OffsetBytes())
		gl.EnableVertexAttribArray(a.Location)
	}

	// the EBO binding is part of the VAO state, so only the VAO is unbound
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return m
}

func (m *Mesh) Draw() {
	gl.BindVertexArray(m.VAO)
	if m.indexed {
		gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, m.count)
	}
	gl.BindVertexArray(0)
}

func (m *Mesh) Delete() {
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
		m.EBO = 0
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
		m.VBO = 0
	}
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
		m.VAO = 0
	}
}
