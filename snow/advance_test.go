package snow

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func singleParticleField(t *testing.T, p Particle, draws ...int) *Field {
	return &Field{
		Particles: []Particle{p},
		layout:    Layout{Count: 1, Width: 800, Height: 600, AtlasColumns: 16, AtlasRows: 16},
		params:    DefaultParams(),
		rng:       &scriptedSource{t: t, values: draws},
	}
}

func TestAdvance_RespawnsBelowViewport(t *testing.T) {
	for _, dt := range []float32{0, 0.25, 1} {
		region := atlasRegion(42, 16, 16)
		f := singleParticleField(t, Particle{
			Pos:           mgl32.Vec3{300, -7, 0},
			Scale:         6,
			RotationSpeed: -12,
			Region:        region,
		}, 123)

		f.Advance(dt)
		s := f.Particles[0]

		assert.Equal(t, float32(6+600), s.Pos.Y(), "dt=%v", dt)
		assert.Equal(t, float32(123), s.Pos.X(), "dt=%v", dt)
		assert.Equal(t, 6, s.Scale)
		assert.Equal(t, float32(-12), s.RotationSpeed)
		assert.Equal(t, region, s.Region)
	}
}

func TestAdvance_RespawnsPastSides(t *testing.T) {
	left := singleParticleField(t, Particle{Pos: mgl32.Vec3{-10, 300, 0}, Scale: 5, RotationSpeed: 5}, 7)
	left.Advance(0)
	assert.Equal(t, mgl32.Vec3{7, 605, 0}, left.Particles[0].Pos)

	right := singleParticleField(t, Particle{Pos: mgl32.Vec3{806, 300, 0}, Scale: 5, RotationSpeed: 5}, 8)
	right.Advance(0)
	assert.Equal(t, mgl32.Vec3{8, 605, 0}, right.Particles[0].Pos)

	// touching the edge is still on screen
	edge := singleParticleField(t, Particle{Pos: mgl32.Vec3{805, 300, 0}, Scale: 5, RotationSpeed: 5})
	edge.Advance(0)
	assert.Equal(t, mgl32.Vec3{805, 300, 0}, edge.Particles[0].Pos)
}

func TestAdvance_RotationIsLinear(t *testing.T) {
	f := singleParticleField(t, Particle{
		Pos:           mgl32.Vec3{400, 300, 0},
		Scale:         10,
		Angle:         10,
		RotationSpeed: 15,
	})

	f.Advance(0.5)
	assert.Equal(t, float32(17.5), f.Particles[0].Angle)

	f.Advance(0.25)
	assert.Equal(t, float32(21.25), f.Particles[0].Angle)
}

func TestAdvance_ZeroTimeIsIdempotent(t *testing.T) {
	f := Initialize(1000, 800, 600, 16, 16, NewSource(5))
	f.Advance(0.3)

	before := make([]Particle, len(f.Particles))
	copy(before, f.Particles)

	f.Advance(0)
	for i := range before {
		assert.Equal(t, before[i].Pos, f.Particles[i].Pos, "particle %d", i)
		assert.Equal(t, before[i].Angle, f.Particles[i].Angle, "particle %d", i)
	}
}

func TestAdvance_SmallFlakesFallSlower(t *testing.T) {
	f := singleParticleField(t, Particle{Pos: mgl32.Vec3{400, 500, 0}, Scale: MinScale, RotationSpeed: 5})
	f.Particles = append(f.Particles, Particle{Pos: mgl32.Vec3{400, 500, 0}, Scale: MinScale + 2*NumScales - 1, RotationSpeed: 5})

	f.Advance(0.1)

	small := 500 - f.Particles[0].Pos.Y()
	large := 500 - f.Particles[1].Pos.Y()
	assert.Greater(t, small, float32(0))
	assert.Greater(t, large, small)
	assert.InDelta(t, -float32(Gravity)*0.1, large, 1e-3, "largest class falls freely")
}

func TestAdvance_SwayFollowsRotationPhase(t *testing.T) {
	f := singleParticleField(t, Particle{Pos: mgl32.Vec3{400, 300, 0}, Scale: 8, Angle: 45, RotationSpeed: 20})

	f.Advance(0.1)

	// sin(2*45deg) = 1
	assert.InDelta(t, 400+0.75*20*0.1, f.Particles[0].Pos.X(), 1e-4)
}

func TestAdvance_Deterministic(t *testing.T) {
	run := func() []Particle {
		f := Initialize(500, 800, 600, 16, 16, NewSource(77))
		for _, dt := range []float32{0.016, 0.5, 1, 3, 0.033} {
			f.Advance(dt)
		}
		return f.Particles
	}

	a := run()
	b := run()
	require.Len(t, a, 500)
	assert.Equal(t, a, b)
}
