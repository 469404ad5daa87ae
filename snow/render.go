package snow

import "github.com/go-gl/mathgl/mgl32"

// SpriteInstance matches the per-instance vertex attributes in snowflake.wgsl:
// a column-major model matrix followed by the four corner UVs.
type SpriteInstance struct {
	Model mgl32.Mat4
	UV    [4]mgl32.Vec2
}

// ModelMatrix translates to Pos, rotates Angle degrees about the view axis and
// scales the unit quad by Scale.
func (p *Particle) ModelMatrix() mgl32.Mat4 {
	s := float32(p.Scale)
	return mgl32.Translate3D(p.Pos.X(), p.Pos.Y(), p.Pos.Z()).
		Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(p.Angle))).
		Mul4(mgl32.Scale3D(s, s, 1))
}

// Instances appends one SpriteInstance per particle to dst and returns it.
// Pass dst[:0] from the previous frame to avoid allocating.
func (f *Field) Instances(dst []SpriteInstance) []SpriteInstance {
	for i := range f.Particles {
		p := &f.Particles[i]
		dst = append(dst, SpriteInstance{
			Model: p.ModelMatrix(),
			UV:    p.Region,
		})
	}
	return dst
}

// ViewProjection maps screen pixels, origin bottom-left, to clip space.
func ViewProjection(width, height float32) mgl32.Mat4 {
	projection := mgl32.Ortho(0, width, 0, height, -1, 1)
	view := mgl32.LookAtV(
		mgl32.Vec3{0, 0, 1},
		mgl32.Vec3{0, 0, 0},
		mgl32.Vec3{0, 1, 0},
	)
	return projection.Mul4(view)
}
