package snow

import "github.com/go-gl/mathgl/mgl32"

// Field owns a fixed-size particle collection and the random source used to
// initialize and respawn it.
type Field struct {
	Particles []Particle

	layout Layout
	params Params
	rng    Source
}

// Initialize builds a field with the default physics parameters.
func Initialize(count, viewportWidth, viewportHeight, atlasColumns, atlasRows int, rng Source) *Field {
	return NewField(Layout{
		Count:        count,
		Width:        viewportWidth,
		Height:       viewportHeight,
		AtlasColumns: atlasColumns,
		AtlasRows:    atlasRows,
	}, DefaultParams(), rng)
}

// NewField creates layout.Count particles at random positions inside the viewport.
// Draw order per particle is x, y, rotation speed, size band, size class.
func NewField(layout Layout, params Params, rng Source) *Field {
	f := &Field{
		Particles: make([]Particle, layout.Count),
		layout:    layout,
		params:    params,
		rng:       rng,
	}

	for i := range f.Particles {
		x := rng.IntN(layout.Width)
		y := rng.IntN(layout.Height)

		speed := rng.IntN(2*params.MaxRawRotateSpeed+1) - params.MaxRawRotateSpeed
		if speed < 0 {
			speed -= params.MinRotateSpeed
		} else {
			speed += params.MinRotateSpeed
		}

		var scale int
		if rng.IntN(10) < params.SmallChance {
			scale = rng.IntN(params.NumScales) + params.MinScale
		} else {
			scale = rng.IntN(params.NumScales) + params.NumScales + params.MinScale
		}

		f.Particles[i] = Particle{
			Pos:           mgl32.Vec3{float32(x), float32(y), 0},
			Scale:         scale,
			Angle:         0,
			RotationSpeed: float32(speed),
			Region:        atlasRegion(i, layout.AtlasColumns, layout.AtlasRows),
		}
	}
	return f
}

func (f *Field) Layout() Layout { return f.layout }
func (f *Field) Params() Params { return f.params }
func (f *Field) Len() int       { return len(f.Particles) }
