package app

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/fosdem/glmix/lib/appstate"
	"github.com/fosdem/glmix/lib/config"
	"github.com/fosdem/glmix/lib/geometry"
	"github.com/fosdem/glmix/lib/kbdctl"
	"github.com/fosdem/glmix/lib/metrics"
	"github.com/fosdem/glmix/lib/rendering"
	"github.com/fosdem/glmix/lib/rendering/shaders"
	"github.com/fosdem/glmix/lib/stats"
	"github.com/fosdem/glmix/lib/texture"
	"github.com/fosdem/glmix/lib/utils"
	"github.com/fosdem/glmix/lib/watch"
	"github.com/fosdem/glmix/lib/window"
)

// textureLoader is satisfied by *rendering.Texture.
type textureLoader interface {
	Load(path string, kind texture.Kind) error
}

// assetPoller is satisfied by *watch.Watcher.
type assetPoller interface {
	Poll() []watch.Change
	Close() error
}

type App struct {
	cfg   *config.Config
	State *appstate.State

	window   *window.Window
	viewport *geometry.Viewport
	glvars   *rendering.GLVars
	shaderer *shaders.Shaderer
	keys     *kbdctl.Controller
	watcher  assetPoller
	stats    *stats.Stats
	metrics  *metrics.Server

	// textures[i] is the loader behind cfg.Textures[i]
	textures []textureLoader
	build    func(vertexPath, fragmentPath string) (*rendering.Program, error)

	deltaTimer utils.DeltaTimer
}

func New(cfg *config.Config) *App {
	a := &App{
		cfg:   cfg,
		State: appstate.New(),
		keys:  kbdctl.NewController(cfg.Input.MixStep),
		stats: stats.New(),
	}
	a.build = func(vertexPath, fragmentPath string) (*rendering.Program, error) {
		return rendering.BuildProgram(a.shaderer, vertexPath, fragmentPath)
	}
	return a
}

// Run sets everything up, renders until the window is asked to close and
// releases all resources. Only window and GL loader failures are returned;
// broken shaders and textures are logged and rendering carries on.
// Must be called from the thread that was locked in main.
func (a *App) Run() error {
	defer a.shutdown()

	err := a.setup()
	if err != nil {
		a.State.Close()
		return err
	}

	err = a.State.Start()
	if err != nil {
		return err
	}
	log("Running")

	for a.State.Running() {
		a.frame()
	}
	return nil
}

func (a *App) setup() error {
	var err error
	a.window, err = window.New(a.cfg.Window)
	if err != nil {
		return err
	}

	err = rendering.Init()
	if err != nil {
		return err
	}

	a.viewport = geometry.NewViewport(rendering.SetViewport)
	a.window.OnResize(func(width, height int) {
		a.viewport.Resize(width, height)
		metrics.WindowResizes.Inc()
	})

	a.shaderer = shaders.NewShaderer(shaders.NewShaderData(a.cfg.Window.GLMajor, a.cfg.Window.GLMinor))
	program := a.buildProgram()

	meshData, _ := geometry.ByName(a.cfg.Mesh)
	mesh := rendering.NewMesh(meshData)

	textures := make([]*rendering.Texture, len(a.cfg.Textures))
	samplers := make([]string, len(a.cfg.Textures))
	a.textures = make([]textureLoader, len(a.cfg.Textures))
	for i, tc := range a.cfg.Textures {
		textures[i] = rendering.NewTexture()
		samplers[i] = tc.Uniform
		a.textures[i] = textures[i]
		a.loadTexture(textures[i], tc)
	}

	a.glvars = rendering.NewGLVars(program, mesh, textures, samplers, utils.ColourParse(a.cfg.ClearColour))
	a.glvars.Start()

	if a.cfg.Watch {
		a.startWatcher()
	}
	if a.cfg.Metrics.Bind != "" {
		a.metrics = metrics.ServeInBackground(a.cfg.Metrics.Bind)
	}
	return nil
}

func (a *App) frame() {
	if a.keys.Process(a.window, &a.State.Mix) {
		a.window.RequestClose()
	}
	a.window.PollEvents()
	a.reloadChangedAssets()

	transform := geometry.Transform(float32(a.window.Time()))
	a.glvars.DrawFrame(transform, a.State.Mix.Value())

	a.window.SwapBuffers()

	a.State.Frames++
	metrics.MixValue.Set(float64(a.State.Mix.Value()))
	a.stats.Update(a.deltaTimer.Next())

	if a.window.ShouldClose() {
		a.State.Close()
	}
}

// buildProgram returns nil if the shaders do not build, in which case frames
// are cleared but nothing is drawn.
func (a *App) buildProgram() *rendering.Program {
	program, err := a.build(string(a.cfg.Shaders.Vertex), string(a.cfg.Shaders.Fragment))
	if err != nil {
		stage := "source"
		var serr *shaders.ShaderError
		if errors.As(err, &serr) {
			stage = string(serr.Stage)
		}
		metrics.ShaderBuildFailures.WithLabelValues(stage).Inc()
		slog.Error("Could not build shader program", slog.String("module", "app"), slog.Any("error", err))
		return nil
	}
	return program
}

// loadTexture reports whether tc was decoded and uploaded. Failures are
// logged and counted, the texture keeps its previous contents.
func (a *App) loadTexture(t textureLoader, tc *config.TextureCfg) bool {
	log("Loading texture %s into %s", tc.Path, tc.Uniform)
	err := t.Load(string(tc.Path), tc.Kind)
	if err != nil {
		metrics.TextureLoadFailures.WithLabelValues(tc.Uniform).Inc()
		slog.Error("Failed to load texture", slog.String("module", "app"), slog.Any("error", err))
		return false
	}
	return true
}

func (a *App) startWatcher() {
	w, err := watch.New()
	if err != nil {
		slog.Warn("Asset reloading disabled", slog.String("module", "app"), slog.Any("error", err))
		return
	}
	paths := map[string]watch.Kind{
		string(a.cfg.Shaders.Vertex):   watch.Shader,
		string(a.cfg.Shaders.Fragment): watch.Shader,
	}
	for _, tc := range a.cfg.Textures {
		paths[string(tc.Path)] = watch.Texture
	}
	for path, kind := range paths {
		err := w.Add(path, kind)
		if err != nil {
			slog.Warn("Not watching asset", slog.String("module", "app"), slog.Any("error", err))
		}
	}
	a.watcher = w
}

func (a *App) reloadChangedAssets() {
	if a.watcher == nil {
		return
	}
	shadersChanged := false
	for _, c := range a.watcher.Poll() {
		switch c.Kind {
		case watch.Shader:
			shadersChanged = true
		case watch.Texture:
			for i, tc := range a.cfg.Textures {
				if string(tc.Path) == c.Path {
					log("Reloading texture %s", c.Path)
					if a.loadTexture(a.textures[i], tc) {
						metrics.AssetReloads.WithLabelValues(c.Kind.String()).Inc()
					}
				}
			}
		}
	}
	if shadersChanged {
		log("Reloading shaders")
		program := a.buildProgram()
		if program != nil {
			a.glvars.SetProgram(program)
			metrics.AssetReloads.WithLabelValues(watch.Shader.String()).Inc()
		}
	}
}

func (a *App) shutdown() {
	a.State.Close()
	if a.metrics != nil {
		err := a.metrics.Close()
		if err != nil {
			slog.Warn("Could not stop metrics server", slog.String("module", "app"), slog.Any("error", err))
		}
	}
	if a.watcher != nil {
		err := a.watcher.Close()
		if err != nil {
			slog.Warn("Could not stop watcher", slog.String("module", "app"), slog.Any("error", err))
		}
	}
	if a.glvars != nil {
		a.glvars.Delete()
	}
	if a.window != nil {
		a.window.Close()
	}
	log("Stopped after %d frames", a.State.Frames)
}

func log(msg string, args ...interface{}) {
	slog.Info(fmt.Sprintf(msg, args...), slog.String("module", "app"))
}
