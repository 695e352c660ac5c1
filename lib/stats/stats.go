package stats

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/fosdem/glmix/lib/metrics"
)

type Stats struct {
	Uptime    float64
	FPS       uint64
	Frames    uint64
	FrameTime time.Duration

	frameCounter uint64
	frameTimer   time.Time
	start        time.Time
	lastReport   time.Time

	// ReportEvery controls how often FPS is logged at debug level; zero
	// disables the log line.
	ReportEvery time.Duration

	now func() time.Time
}

func New() *Stats {
	return newWithClock(time.Now)
}

func newWithClock(now func() time.Time) *Stats {
	s := &Stats{now: now}
	s.start = now()
	s.frameTimer = s.start
	s.lastReport = s.start
	s.ReportEvery = 10 * time.Second
	return s
}

// Update is called once per presented frame with the time since the
// previous one.
func (s *Stats) Update(dt time.Duration) {
	now := s.now()
	s.Frames++
	s.FrameTime = dt
	metrics.FrameTime.Observe(dt.Seconds())
	s.frameCounter++
	if now.Sub(s.frameTimer) >= time.Second {
		s.FPS = s.frameCounter
		s.frameCounter = 0
		s.frameTimer = now
		metrics.FPS.Set(float64(s.FPS))
	}

	s.Uptime = now.Sub(s.start).Seconds()
	metrics.Uptime.Set(s.Uptime)
	metrics.FramesRendered.Inc()

	if s.ReportEvery > 0 && now.Sub(s.lastReport) >= s.ReportEvery {
		s.lastReport = now
		slog.Debug(fmt.Sprintf("%d fps, %d frames in %.1fs", s.FPS, s.Frames, s.Uptime), slog.String("module", "stats"))
	}
}
