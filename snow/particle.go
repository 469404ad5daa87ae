// Package snow simulates a fixed set of falling, rotating snowflake sprites.
//
// A Field is created once with Initialize/NewField and then advanced every frame
// with Advance. Particles that leave the viewport are respawned above the top edge
// instead of being removed, so the working set never changes size.
package snow

import "github.com/go-gl/mathgl/mgl32"

// TexRegion holds the UVs of one atlas cell in quad order:
// bottom-left, bottom-right, top-right, top-left.
type TexRegion [4]mgl32.Vec2

// Particle is one snowflake.
type Particle struct {
	Pos           mgl32.Vec3 // screen space, z is always 0
	Scale         int        // size class, immutable
	Angle         float32    // degrees, accumulates without wraparound
	RotationSpeed float32    // degrees/second, never below MinRotateSpeed in magnitude
	Region        TexRegion  // immutable
}

// atlasRegion returns the UVs of the atlas cell used by particle index i.
// The row divides by the row count, which matches the column math only for square grids.
func atlasRegion(i, columns, rows int) TexRegion {
	cellW := 1 / float32(columns)
	cellH := 1 / float32(rows)

	idx := i % TextureCycle
	x := float32(idx%columns) * cellW
	y := float32(idx/rows) * cellH

	return TexRegion{
		{x, y + cellH},
		{x + cellW, y + cellH},
		{x + cellW, y},
		{x, y},
	}
}
