package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/fosdem/glmix/lib/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "glmix.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, 3, cfg.Window.GLMajor)
	assert.Equal(t, 3, cfg.Window.GLMinor)
	assert.Equal(t, float32(0.01), cfg.Input.MixStep)
	assert.Equal(t, "rectangle", cfg.Mesh)
	require.Len(t, cfg.Textures, 2)
	assert.Equal(t, texture.JPEG, cfg.Textures[0].Kind)
	assert.Equal(t, texture.PNG, cfg.Textures[1].Kind)
	assert.False(t, cfg.Watch)
	assert.Empty(t, cfg.Metrics.Bind)
}

func TestParseOverridesAndResolvesPaths(t *testing.T) {
	path := writeConfig(t, `
window:
  title: blend
  width: 1024
  height: 768
  gl_major: 4
  gl_minor: 1
  vsync: false
mesh: triangle
clear_colour: "#000000ff"
shaders:
  vertex: shader/a.vs
  fragment: /abs/a.fs
textures:
  - path: tex/wall.jpg
    kind: jpg
    uniform: Texture1
input:
  mix_step: 0.05
watch: true
metrics:
  bind: "127.0.0.1:9123"
log_level: debug
`)
	cfg, err := Parse(path)
	require.NoError(t, err)

	base := filepath.Dir(path)
	assert.Equal(t, "blend", cfg.Window.Title)
	assert.Equal(t, 1024, cfg.Window.Width)
	assert.Equal(t, 4, cfg.Window.GLMajor)
	assert.False(t, cfg.Window.VSync)
	assert.Equal(t, "triangle", cfg.Mesh)
	assert.Equal(t, CfgPath(filepath.Join(base, "shader/a.vs")), cfg.Shaders.Vertex)
	assert.Equal(t, CfgPath("/abs/a.fs"), cfg.Shaders.Fragment)
	require.Len(t, cfg.Textures, 1)
	assert.Equal(t, CfgPath(filepath.Join(base, "tex/wall.jpg")), cfg.Textures[0].Path)
	assert.Equal(t, texture.JPEG, cfg.Textures[0].Kind)
	assert.Equal(t, float32(0.05), cfg.Input.MixStep)
	assert.True(t, cfg.Watch)
	assert.Equal(t, "127.0.0.1:9123", cfg.Metrics.Bind)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestParseKeepsDefaultsForMissingSections(t *testing.T) {
	cfg, err := Parse(writeConfig(t, "watch: true\n"))
	require.NoError(t, err)

	assert.True(t, cfg.Watch)
	assert.Equal(t, "LearnOpenGL", cfg.Window.Title)
	assert.Len(t, cfg.Textures, 2)
	// defaults are relative to the config file too
	assert.True(t, filepath.IsAbs(string(cfg.Shaders.Vertex)))
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseRejectsUnknownKind(t *testing.T) {
	_, err := Parse(writeConfig(t, `
textures:
  - path: a.gif
    kind: gif
    uniform: Texture1
`))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"zero width":        func(c *Config) { c.Window.Width = 0 },
		"unknown mesh":      func(c *Config) { c.Mesh = "cube" },
		"old context":       func(c *Config) { c.Window.GLMajor, c.Window.GLMinor = 3, 2 },
		"no vertex shader":  func(c *Config) { c.Shaders.Vertex = "" },
		"no textures":       func(c *Config) { c.Textures = nil },
		"no sampler":        func(c *Config) { c.Textures[0].Uniform = "" },
		"duplicate sampler": func(c *Config) { c.Textures[1].Uniform = c.Textures[0].Uniform },
		"zero mix step":     func(c *Config) { c.Input.MixStep = 0 },
		"huge mix step":     func(c *Config) { c.Input.MixStep = 2 },
		"bad colour":        func(c *Config) { c.ClearColour = "teal" },
		"no colour":         func(c *Config) { c.ClearColour = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestCfgPathResolve(t *testing.T) {
	assert.Equal(t, CfgPath("/etc/glmix/a.vs"), CfgPath("a.vs").Resolve("/etc/glmix"))
	assert.Equal(t, CfgPath("/abs/a.vs"), CfgPath("/abs/a.vs").Resolve("/etc/glmix"))
	assert.Equal(t, CfgPath(""), CfgPath("").Resolve("/etc/glmix"))
}

func TestString(t *testing.T) {
	s := Default().String()
	assert.Contains(t, s, "LearnOpenGL (800x600, GL 3.3 core)")
	assert.Contains(t, s, "assets/tex/container.jpg (jpeg) -> Texture1")
}
