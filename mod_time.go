package snowfall

import (
	"time"
)

// Time is refreshed once per frame in the Prelude stage.
type Time struct {
	Time  time.Time
	Dt    time.Duration
	Frame uint64
}

// Seconds returns Dt in seconds, never negative.
func (t *Time) Seconds() float32 {
	if t.Dt <= 0 {
		return 0
	}
	return float32(t.Dt.Seconds())
}

type TimeModule struct {
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(&Time{
		Time: time.Now(),
		Dt:   0,
	})
	app.UseSystem(
		System(timeSystem).
			InStage(Prelude).
			RunAlways(),
	)
}

func timeSystem(timeResource *Time) {
	now := time.Now()

	timeResource.Dt = now.Sub(timeResource.Time)
	timeResource.Time = now
	timeResource.Frame++
}
