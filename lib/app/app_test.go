package app

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/fosdem/glmix/lib/appstate"
	"github.com/fosdem/glmix/lib/config"
	logging "github.com/fosdem/glmix/lib/log"
	"github.com/fosdem/glmix/lib/metrics"
	"github.com/fosdem/glmix/lib/rendering"
	"github.com/fosdem/glmix/lib/rendering/shaders"
	"github.com/fosdem/glmix/lib/texture"
	"github.com/fosdem/glmix/lib/watch"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTexture struct {
	err   error
	loads []string
}

func (f *fakeTexture) Load(path string, kind texture.Kind) error {
	f.loads = append(f.loads, path)
	return f.err
}

type fakePoller struct {
	changes []watch.Change
	closed  bool
}

func (p *fakePoller) Poll() []watch.Change {
	c := p.changes
	p.changes = nil
	return c
}

func (p *fakePoller) Close() error {
	p.closed = true
	return nil
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(logging.NewHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	a := New(config.Default())
	a.build = func(string, string) (*rendering.Program, error) {
		t.Fatal("unexpected shader build")
		return nil, nil
	}
	return a
}

func TestLoadTextureFailureIsLoggedAndCounted(t *testing.T) {
	logs := captureLogs(t)
	a := newTestApp(t)
	require.NoError(t, a.State.Start())
	tc := a.cfg.Textures[1]

	failures := metrics.TextureLoadFailures.WithLabelValues(tc.Uniform)
	before := testutil.ToFloat64(failures)

	tex := &fakeTexture{err: fmt.Errorf("could not open %s: %w", tc.Path, os.ErrNotExist)}
	assert.False(t, a.loadTexture(tex, tc))

	assert.Equal(t, before+1, testutil.ToFloat64(failures))
	assert.Contains(t, logs.String(), "[app] Failed to load texture: could not open "+string(tc.Path))
	assert.Equal(t, []string{string(tc.Path)}, tex.loads)
	assert.True(t, a.State.Running())
}

func TestLoadTextureSuccess(t *testing.T) {
	captureLogs(t)
	a := newTestApp(t)
	tc := a.cfg.Textures[0]

	failures := metrics.TextureLoadFailures.WithLabelValues(tc.Uniform)
	before := testutil.ToFloat64(failures)

	assert.True(t, a.loadTexture(&fakeTexture{}, tc))
	assert.Equal(t, before, testutil.ToFloat64(failures))
}

func TestBuildProgramFailureCountsStage(t *testing.T) {
	cases := map[string]struct {
		err   error
		stage string
	}{
		"compile": {
			err:   &shaders.ShaderError{Stage: shaders.FragmentStage, Path: "shader.fs", Log: "0:3: 'vec5' : syntax error"},
			stage: "fragment",
		},
		"link": {
			err:   &shaders.ShaderError{Stage: shaders.LinkStage, Log: "mixValue is not declared"},
			stage: "link",
		},
		"missing file": {
			err:   fmt.Errorf("could not get vertex shader: %w", os.ErrNotExist),
			stage: "source",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			logs := captureLogs(t)
			a := newTestApp(t)
			a.build = func(string, string) (*rendering.Program, error) {
				return nil, tc.err
			}

			failures := metrics.ShaderBuildFailures.WithLabelValues(tc.stage)
			before := testutil.ToFloat64(failures)

			assert.Nil(t, a.buildProgram())
			assert.Equal(t, before+1, testutil.ToFloat64(failures))
			assert.Contains(t, logs.String(), "[app] Could not build shader program: "+tc.err.Error())
		})
	}
}

func TestShaderReloadFailureKeepsProgram(t *testing.T) {
	captureLogs(t)
	a := newTestApp(t)
	old := &rendering.Program{ID: 42}
	a.glvars = &rendering.GLVars{Program: old}
	a.watcher = &fakePoller{changes: []watch.Change{
		{Path: string(a.cfg.Shaders.Vertex), Kind: watch.Shader},
		{Path: string(a.cfg.Shaders.Fragment), Kind: watch.Shader},
	}}

	builds := 0
	a.build = func(string, string) (*rendering.Program, error) {
		builds++
		return nil, &shaders.ShaderError{Stage: shaders.VertexStage, Log: "syntax error"}
	}

	reloads := metrics.AssetReloads.WithLabelValues(watch.Shader.String())
	before := testutil.ToFloat64(reloads)

	a.reloadChangedAssets()

	assert.Equal(t, 1, builds, "both stages changing rebuilds once")
	assert.Same(t, old, a.glvars.Program)
	assert.Equal(t, uint32(42), old.ID)
	assert.Equal(t, before, testutil.ToFloat64(reloads))
}

func TestTextureReloadTargetsMatchingHandle(t *testing.T) {
	captureLogs(t)
	a := newTestApp(t)
	first, second := &fakeTexture{}, &fakeTexture{}
	a.textures = []textureLoader{first, second}
	path := string(a.cfg.Textures[1].Path)
	a.watcher = &fakePoller{changes: []watch.Change{{Path: path, Kind: watch.Texture}}}

	reloads := metrics.AssetReloads.WithLabelValues(watch.Texture.String())
	before := testutil.ToFloat64(reloads)

	a.reloadChangedAssets()

	assert.Empty(t, first.loads)
	assert.Equal(t, []string{path}, second.loads)
	assert.Equal(t, before+1, testutil.ToFloat64(reloads))
}

func TestFailedTextureReloadIsNotCounted(t *testing.T) {
	captureLogs(t)
	a := newTestApp(t)
	broken := &fakeTexture{err: errors.New("unexpected EOF")}
	a.textures = []textureLoader{broken, &fakeTexture{}}
	path := string(a.cfg.Textures[0].Path)
	a.watcher = &fakePoller{changes: []watch.Change{{Path: path, Kind: watch.Texture}}}

	reloads := metrics.AssetReloads.WithLabelValues(watch.Texture.String())
	before := testutil.ToFloat64(reloads)

	a.reloadChangedAssets()

	assert.Len(t, broken.loads, 1)
	assert.Equal(t, before, testutil.ToFloat64(reloads))
}

func TestReloadWithoutWatcherIsNoop(t *testing.T) {
	a := newTestApp(t)
	assert.NotPanics(t, a.reloadChangedAssets)
}

func TestShutdownClosesWatcher(t *testing.T) {
	logs := captureLogs(t)
	a := newTestApp(t)
	p := &fakePoller{}
	a.watcher = p
	require.NoError(t, a.State.Start())
	a.State.Frames = 3

	a.shutdown()

	assert.True(t, p.closed)
	assert.Equal(t, appstate.Closing, a.State.Phase())
	assert.Contains(t, logs.String(), "Stopped after 3 frames")
}
