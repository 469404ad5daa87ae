package snowfall

import (
	"github.com/gekko3d/snowfall/snow"
)

// SnowfallModule provides the particle field as a resource and advances it once per
// frame with the elapsed Time.
type SnowfallModule struct {
	Layout snow.Layout
	Params snow.Params
	Seed   uint64
}

func (mod SnowfallModule) Install(app *App, cmd *Commands) {
	field := snow.NewField(mod.Layout, mod.Params, snow.NewSource(mod.Seed))
	cmd.Logger().Infof("Spawned %d snowflakes in %dx%d (seed %d)",
		field.Len(), mod.Layout.Width, mod.Layout.Height, mod.Seed)

	cmd.AddResources(field)
	app.UseSystem(
		System(snowfallSystem).
			InStage(Update).
			InState(OnExecute(StateRunning)),
	)
}

func snowfallSystem(t *Time, field *snow.Field) {
	field.Advance(t.Seconds())
}
