package rendering

import (
	"fmt"
	"strings"

	"github.com/fosdem/glmix/lib/rendering/shaders"
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Program is a linked shader program. Uniform locations are looked up by
// name on every call.
type Program struct {
	ID uint32
}

// BuildProgram reads, compiles and links a vertex/fragment pair. Compile
// and link failures come back as *shaders.ShaderError with the info log.
func BuildProgram(shaderer *shaders.Shaderer, vertexPath, fragmentPath string) (*Program, error) {
	vertexSource, err := shaderer.GetShaderSource(vertexPath)
	if err != nil {
		return nil, fmt.Errorf("could not get vertex shader: %w", err)
	}

	fragmentSource, err := shaderer.GetShaderSource(fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("could not get fragment shader: %w", err)
	}

	vertexShader, serr := compileShader(vertexSource, gl.VERTEX_SHADER)
	if serr != nil {
		serr.Stage, serr.Path = shaders.VertexStage, vertexPath
		return nil, serr
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, serr := compileShader(fragmentSource, gl.FRAGMENT_SHADER)
	if serr != nil {
		serr.Stage, serr.Path = shaders.FragmentStage, fragmentPath
		return nil, serr
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()

	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		logmsg := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logmsg))
		gl.DeleteProgram(program)

		return nil, &shaders.ShaderError{Stage: shaders.LinkStage, Log: trimLog(logmsg)}
	}

	gl.DetachShader(program, vertexShader)
	gl.DetachShader(program, fragmentShader)

	return &Program{ID: program}, nil
}

func compileShader(source string, shaderType uint32) (uint32, *shaders.ShaderError) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	size := int32(len(strings.TrimRight(source, "\x00")))
	gl.ShaderSource(shader, 1, csources, &size)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		clog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(clog))
		gl.DeleteShader(shader)

		msg := trimLog(clog)
		if msg == "" {
			msg = "no info log"
		}
		return 0, &shaders.ShaderError{Log: msg}
	}

	return shader, nil
}

func trimLog(s string) string {
	return strings.TrimSpace(strings.TrimRight(s, "\x00"))
}

func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

func (p *Program) location(name string) int32 {
	return gl.GetUniformLocation(p.ID, gl.Str(name+"\x00"))
}

func (p *Program) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	gl.Uniform1i(p.location(name), v)
}

func (p *Program) SetInt(name string, value int32) {
	gl.Uniform1i(p.location(name), value)
}

func (p *Program) SetFloat(name string, value float32) {
	gl.Uniform1f(p.location(name), value)
}

func (p *Program) SetMat4(name string, value mgl32.Mat4) {
	gl.UniformMatrix4fv(p.location(name), 1, false, &value[0])
}

func (p *Program) Delete() {
	if p.ID != 0 {
		gl.DeleteProgram(p.ID)
		p.ID = 0
	}
}
