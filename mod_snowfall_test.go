package snowfall

import (
	"bytes"
	"testing"
	"time"

	"github.com/gekko3d/snowfall/snow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSnowfallTestApp(t *testing.T, out *bytes.Buffer) *App {
	t.Helper()
	cfg := DefaultSceneConfig()
	cfg.Snow.Count = 50

	app := NewAppBuilder().
		UseStates(StateRunning, StateShutdown).
		UseModule(
			testLoggingModule{out: out},
			SnowfallModule{Layout: cfg.Layout(), Params: cfg.Params(), Seed: 5},
		).
		Build()
	return app
}

// testLoggingModule installs a logger writing to out.
type testLoggingModule struct {
	out *bytes.Buffer
}

func (m testLoggingModule) Install(app *App, cmd *Commands) {
	cmd.AddResources(NewLogger("snowfall", true, m.out, m.out))
}

func TestSnowfallModule_ProvidesField(t *testing.T) {
	var out bytes.Buffer
	app := newSnowfallTestApp(t, &out)
	assert.Contains(t, out.String(), "Spawned 50 snowflakes in 800x600 (seed 5)")

	field := Resource[snow.Field](app)
	require.NotNil(t, field)
	assert.Equal(t, 50, field.Len())
	assert.Equal(t, 800, field.Layout().Width)

	same := snow.NewField(field.Layout(), field.Params(), snow.NewSource(5))
	assert.Equal(t, same.Particles, field.Particles)
}

func TestSnowfallModule_AdvancesWithTime(t *testing.T) {
	app := newSnowfallTestApp(t, &bytes.Buffer{})
	app.addResources(&Time{Dt: 100 * time.Millisecond})

	field := Resource[snow.Field](app)
	before := make([]snow.Particle, field.Len())
	copy(before, field.Particles)

	require.True(t, app.Step())

	for i, p := range field.Particles {
		assert.InDelta(t, before[i].Angle+before[i].RotationSpeed*0.1, p.Angle, 1e-4, "particle %d", i)
		assert.NotEqual(t, before[i].Pos, p.Pos, "particle %d did not move", i)
	}
}

func TestSnowfallModule_StopsAfterShutdown(t *testing.T) {
	app := newSnowfallTestApp(t, &bytes.Buffer{})
	app.addResources(&Time{Dt: 50 * time.Millisecond})
	app.UseSystem(System(func(cmd *Commands) {
		cmd.ChangeState(StateShutdown)
	}).InStage(PostUpdate).InState(OnExecute(StateRunning)))

	field := Resource[snow.Field](app)
	before := make([]snow.Particle, field.Len())
	copy(before, field.Particles)

	assert.False(t, app.Step())
	assert.Equal(t, StateShutdown, app.State())

	// Only the frame that requested shutdown advanced the field.
	for i, p := range field.Particles {
		assert.InDelta(t, before[i].Angle+before[i].RotationSpeed*0.05, p.Angle, 1e-4, "particle %d", i)
	}
}
