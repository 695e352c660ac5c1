package shaders

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"text/template"
)

type Stage string

const (
	VertexStage   Stage = "vertex"
	FragmentStage Stage = "fragment"
	LinkStage     Stage = "link"
)

// ShaderData contains stuff that gets passed to the shader templates
type ShaderData struct {
	// Version is the argument of the #version directive, e.g. "330 core"
	Version string
}

func NewShaderData(glMajor, glMinor int) *ShaderData {
	return &ShaderData{Version: fmt.Sprintf("%d%d0 core", glMajor, glMinor)}
}

// Shaderer turns shader files on disk into sources ready for
// glShaderSource. Files are text/template documents; plain GLSL without
// template actions passes through as is.
type Shaderer struct {
	data *ShaderData
}

func NewShaderer(data *ShaderData) *Shaderer {
	return &Shaderer{data: data}
}

// GetShaderSource returns the rendered file, null-terminated.
func (s *Shaderer) GetShaderSource(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("could not read shader: %w", err)
	}

	t, err := template.New(filepath.Base(path)).Option("missingkey=error").Parse(string(raw))
	if err != nil {
		return "", fmt.Errorf("could not parse shader template %s: %w", path, err)
	}

	var b bytes.Buffer
	err = t.Execute(&b, s.data)
	if err != nil {
		return "", fmt.Errorf("error while rendering template %s: %w", path, err)
	}

	if b.Len() == 0 || b.Bytes()[b.Len()-1] != 0 {
		b.WriteByte(0)
	}
	return b.String(), nil
}

// ShaderError carries the GL info log of a failed compile or link.
type ShaderError struct {
	Stage Stage
	Path  string
	Log   string
}

func (e *ShaderError) Error() string {
	if e.Stage == LinkStage {
		return fmt.Sprintf("failed to link program: %s", e.Log)
	}
	return fmt.Sprintf("failed to compile %s shader %s: %s", e.Stage, e.Path, e.Log)
}
