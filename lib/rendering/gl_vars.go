package rendering

import (
	"image/color"

	"github.com/fosdem/glmix/lib/utils"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	TransformUniform = "transform"
	MixUniform       = "mixValue"
)

// GLVars holds every GL object the frame needs and pushes the per-frame
// uniforms.
type GLVars struct {
	Program  *Program
	Mesh     *Mesh
	Textures []*Texture
	// Samplers[i] is the sampler uniform bound to texture unit i
	Samplers []string

	BGColour color.RGBA
}

func NewGLVars(program *Program, mesh *Mesh, textures []*Texture, samplers []string, bgColour color.RGBA) *GLVars {
	g := &GLVars{}

	g.Program = program
	g.Mesh = mesh
	g.Textures = textures
	g.Samplers = samplers
	g.BGColour = bgColour

	return g
}

func (g *GLVars) Start() {
	r, gr, b, a := utils.ColourFloats(g.BGColour)
	gl.ClearColor(r, gr, b, a)
	g.pushSamplers()
}

// SetProgram swaps in a rebuilt program and releases the old one.
func (g *GLVars) SetProgram(p *Program) {
	if g.Program != nil && g.Program != p {
		g.Program.Delete()
	}
	g.Program = p
	g.pushSamplers()
}

func (g *GLVars) pushSamplers() {
	if g.Program == nil {
		return
	}
	g.Program.Use()
	for unit, name := range g.Samplers {
		g.Program.SetInt(name, int32(unit))
	}
}

// DrawFrame clears the framebuffer and, when a program is available, draws
// the mesh with both textures blended by mix.
func (g *GLVars) DrawFrame(transform mgl32.Mat4, mix float32) {
	gl.Clear(gl.COLOR_BUFFER_BIT)

	if g.Program == nil {
		return
	}
	g.Program.Use()
	g.Program.SetMat4(TransformUniform, transform)

	for unit, t := range g.Textures {
		t.Bind(unit)
	}
	g.Program.SetFloat(MixUniform, mix)

	g.Mesh.Draw()
}

func (g *GLVars) Delete() {
	for _, t := range g.Textures {
		t.Delete()
	}
	if g.Mesh != nil {
		g.Mesh.Delete()
	}
	if g.Program != nil {
		g.Program.Delete()
	}
}
