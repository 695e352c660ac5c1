package metrics

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FramesRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glmix_frames_rendered_total",
		Help: "Total number of frames drawn and swapped",
	})
	MixValue = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "glmix_mix_value",
		Help: "Current blend factor between the two textures",
	})
	TextureUploadBytes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glmix_texture_upload_bytes_total",
		Help: "Total number of pixel bytes uploaded to textures",
	})
	TextureLoadFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glmix_texture_load_failures_total",
		Help: "Total number of textures that could not be decoded",
	}, []string{"uniform"})
	ShaderBuildFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glmix_shader_build_failures_total",
		Help: "Total number of failed shader compiles or links",
	}, []string{"stage"})
	WindowResizes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "glmix_window_resizes_total",
		Help: "Total number of framebuffer size changes",
	})
	AssetReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "glmix_asset_reloads_total",
		Help: "Total number of assets reloaded after changing on disk",
	}, []string{"kind"})
	FPS = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "glmix_fps",
		Help: "Frames rendered during the last full second",
	})
	FrameTime = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "glmix_frame_seconds",
		Help:    "Time between presented frames",
		Buckets: []float64{0.004, 0.008, 0.0167, 0.033, 0.05, 0.1, 0.25},
	})
	Uptime = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "glmix_uptime_seconds",
		Help: "Seconds since the render loop started",
	})
)

// Handler should usually be mounted at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}

type Server struct {
	srv http.Server
}

// ServeInBackground exposes Handler on bind. Collectors are safe to update
// from the render thread while the server reads them.
func ServeInBackground(bind string) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())

	s := &Server{}
	s.srv.Addr = bind
	s.srv.Handler = mux
	s.srv.ReadHeaderTimeout = 10 * time.Second

	go func() {
		slog.Info(fmt.Sprintf("Serving metrics on %s", bind), slog.String("module", "metrics"))
		err := s.srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server stopped", slog.String("module", "metrics"), slog.Any("error", err))
		}
	}()
	return s
}

func (s *Server) Close() error {
	return s.srv.Close()
}
