package snowfall

import (
	"time"
)

// FrameStats accumulates frame times and reports the average every Interval.
type FrameStats struct {
	Interval   time.Duration
	MsPerFrame float64 // last reported average

	frames  int
	elapsed time.Duration
}

// Record adds one frame of duration dt and reports whether a new average is ready.
func (s *FrameStats) Record(dt time.Duration) bool {
	s.frames++
	s.elapsed += dt
	if s.elapsed < s.Interval {
		return false
	}

	s.MsPerFrame = float64(s.elapsed.Microseconds()) / 1000.0 / float64(s.frames)
	s.frames = 0
	s.elapsed = 0
	return true
}

type FrameStatsModule struct {
	Interval time.Duration
}

func (mod FrameStatsModule) Install(app *App, cmd *Commands) {
	interval := mod.Interval
	if interval <= 0 {
		interval = time.Second
	}
	cmd.AddResources(&FrameStats{Interval: interval})
	app.UseSystem(
		System(frameStatsSystem).
			InStage(Finale).
			RunAlways(),
	)
}

func frameStatsSystem(t *Time, stats *FrameStats, cmd *Commands) {
	if stats.Record(t.Dt) {
		cmd.Logger().Infof("%.3f ms/frame", stats.MsPerFrame)
	}
}
