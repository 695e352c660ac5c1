package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fosdem/glmix/lib/geometry"
	"github.com/fosdem/glmix/lib/texture"
	"github.com/fosdem/glmix/lib/utils"
	yaml "github.com/goccy/go-yaml"
)

type Config struct {
	Window      *WindowCfg
	Mesh        string
	ClearColour string `yaml:"clear_colour"`
	Shaders     *ShadersCfg
	Textures    []*TextureCfg
	Input       *InputCfg
	Watch       bool
	Metrics     *MetricsCfg
	LogLevel    slog.Level `yaml:"log_level"`
}

type WindowCfg struct {
	Title   string
	Width   int
	Height  int
	GLMajor int  `yaml:"gl_major"`
	GLMinor int  `yaml:"gl_minor"`
	VSync   bool `yaml:"vsync"`
}

type ShadersCfg struct {
	Vertex   CfgPath
	Fragment CfgPath
}

type TextureCfg struct {
	Path    CfgPath
	Kind    texture.Kind
	Uniform string
}

type InputCfg struct {
	MixStep float32 `yaml:"mix_step"`
}

type MetricsCfg struct {
	Bind string
}

// Default mirrors the hard-coded setup of the tutorial: an 800x600 window on
// a 3.3 core context, one shader pair and the container/awesomeface textures.
func Default() *Config {
	return &Config{
		Window: &WindowCfg{
			Title:   "LearnOpenGL",
			Width:   800,
			Height:  600,
			GLMajor: 3,
			GLMinor: 3,
			VSync:   true,
		},
		Mesh:        "rectangle",
		ClearColour: "#334d4dff",
		Shaders: &ShadersCfg{
			Vertex:   "assets/shader/shader.vs",
			Fragment: "assets/shader/shader.fs",
		},
		Textures: []*TextureCfg{
			{Path: "assets/tex/container.jpg", Kind: texture.JPEG, Uniform: "Texture1"},
			{Path: "assets/tex/awesomeface.png", Kind: texture.PNG, Uniform: "Texture2"},
		},
		Input:    &InputCfg{MixStep: 0.01},
		Metrics:  &MetricsCfg{},
		LogLevel: slog.LevelInfo,
	}
}

// Load returns the defaults when filename is empty, otherwise the file is
// decoded on top of them.
func Load(filename string) (*Config, error) {
	if filename == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}
	return Parse(filename)
}

func Parse(filename string) (*Config, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", filename, err)
	}
	defer func(f *os.File) {
		err := f.Close()
		if err != nil {
			slog.Warn(fmt.Sprintf("could not close %s: %s", filename, err), slog.String("module", "config"))
		}
	}(f)

	absFilename, err := filepath.Abs(filename)
	if err != nil {
		return nil, fmt.Errorf("somehow, %s is malformed: %w", filename, err)
	}

	m := yaml.NewDecoder(f)
	cfg := Default()
	err = m.Decode(cfg)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", filename, err)
	}
	cfg.resolvePaths(filepath.Dir(absFilename))

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) resolvePaths(base string) {
	if c.Shaders != nil {
		c.Shaders.Vertex = c.Shaders.Vertex.Resolve(base)
		c.Shaders.Fragment = c.Shaders.Fragment.Resolve(base)
	}
	for _, t := range c.Textures {
		if t != nil {
			t.Path = t.Path.Resolve(base)
		}
	}
}

func (c *Config) Validate() error {
	if c.Window == nil {
		return fmt.Errorf("window section is missing")
	}
	if err := c.Window.Validate(); err != nil {
		return fmt.Errorf("window is invalid: %w", err)
	}
	if _, ok := geometry.ByName(c.Mesh); !ok {
		return fmt.Errorf("unknown mesh %q, use rectangle or triangle", c.Mesh)
	}
	if c.Shaders == nil {
		return fmt.Errorf("shaders section is missing")
	}
	if err := c.Shaders.Validate(); err != nil {
		return fmt.Errorf("shaders are invalid: %w", err)
	}
	if len(c.Textures) < 1 {
		return fmt.Errorf("at least one texture should be defined")
	}
	uniforms := make(map[string]int)
	for i, t := range c.Textures {
		if t == nil {
			return fmt.Errorf("texture %d is empty", i)
		}
		if err := t.Validate(); err != nil {
			return fmt.Errorf("texture %d is invalid: %w", i, err)
		}
		if j, ok := uniforms[t.Uniform]; ok {
			return fmt.Errorf("textures %d and %d both bind uniform %s", j, i, t.Uniform)
		}
		uniforms[t.Uniform] = i
	}
	if c.Input == nil {
		return fmt.Errorf("input section is missing")
	}
	if err := c.Input.Validate(); err != nil {
		return fmt.Errorf("input is invalid: %w", err)
	}
	if c.Metrics == nil {
		c.Metrics = &MetricsCfg{}
	}

	if c.ClearColour == "" {
		return fmt.Errorf("please set clear_colour in the config")
	}
	if !utils.ColourValidate(c.ClearColour) {
		return fmt.Errorf("%s is not a valid RGBA hex colour", c.ClearColour)
	}
	return nil
}

func (w *WindowCfg) Validate() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", w.Width, w.Height)
	}
	if w.GLMajor < 3 || (w.GLMajor == 3 && w.GLMinor < 3) {
		return fmt.Errorf("a core profile context of at least 3.3 is required, got %d.%d", w.GLMajor, w.GLMinor)
	}
	return nil
}

func (s *ShadersCfg) Validate() error {
	if s.Vertex == "" {
		return fmt.Errorf("vertex shader path must be specified")
	}
	if s.Fragment == "" {
		return fmt.Errorf("fragment shader path must be specified")
	}
	return nil
}

func (t *TextureCfg) Validate() error {
	if t.Path == "" {
		return fmt.Errorf("texture path must be specified")
	}
	if t.Uniform == "" {
		return fmt.Errorf("sampler uniform for %s must be specified", t.Path)
	}
	return nil
}

func (i *InputCfg) Validate() error {
	if i.MixStep <= 0 || i.MixStep > 1 {
		return fmt.Errorf("mix_step must be in (0, 1], got %g", i.MixStep)
	}
	return nil
}

func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Window:\n")
	b.WriteString(fmt.Sprintf("  %s (%dx%d, GL %d.%d core)\n", c.Window.Title, c.Window.Width, c.Window.Height, c.Window.GLMajor, c.Window.GLMinor))
	b.WriteString(fmt.Sprintf("  drawing %s\n", c.Mesh))

	b.WriteString("\nShaders:\n")
	b.WriteString(fmt.Sprintf("  vertex   %s\n", c.Shaders.Vertex))
	b.WriteString(fmt.Sprintf("  fragment %s\n", c.Shaders.Fragment))

	b.WriteString("\nTextures:\n")
	for i, t := range c.Textures {
		b.WriteString(fmt.Sprintf("  %d: %s (%s) -> %s\n", i, t.Path, t.Kind, t.Uniform))
	}

	if c.Metrics.Bind != "" {
		b.WriteString(fmt.Sprintf("\nMetrics on %s\n", c.Metrics.Bind))
	}

	return b.String()
}
