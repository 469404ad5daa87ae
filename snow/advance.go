package snow

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Advance moves every particle forward by dt seconds. dt must not be negative.
func (f *Field) Advance(dt float32) {
	p := f.params
	maxScale := float32(2*p.NumScales - 1)
	width := float32(f.layout.Width)
	height := float32(f.layout.Height)

	for i := range f.Particles {
		s := &f.Particles[i]
		scale := float32(s.Scale)

		// smaller flakes get more of the air resistance and fall slower
		vel := mgl32.Vec3{0, p.Gravity, 0}
		vel[1] -= (1 - (scale-float32(p.MinScale))/maxScale) * p.AirResistance
		s.Pos = s.Pos.Add(vel.Mul(dt))

		sway := math.Sin(2 * float64(mgl32.DegToRad(s.Angle)))
		s.Pos[0] += p.SwayFactor * s.RotationSpeed * float32(sway) * dt

		if s.Pos.Y()+scale <= 0 || s.Pos.X()+scale < 0 || s.Pos.X()-scale > width {
			s.Pos[0] = float32(f.rng.IntN(f.layout.Width))
			s.Pos[1] = scale + height
		}

		s.Angle += s.RotationSpeed * dt
	}
}
