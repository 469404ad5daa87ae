package snowfall

import (
	"image"
	"image/color"
	"math"

	"github.com/gekko3d/snowfall/snow"
	"golang.org/x/image/vector"
)

// CreateSnowflakeAtlas rasterizes a columns x rows grid of six-armed flakes, white on
// transparent, each cell cellSize pixels square. Every cell gets its own rotation,
// arm length, thickness and branch pattern drawn from rng.
func (server *AssetServer) CreateSnowflakeAtlas(columns, rows, cellSize int, rng snow.Source) AssetId {
	img := RasterizeSnowflakeAtlas(columns, rows, cellSize, rng)
	return server.createFromImage(img)
}

func RasterizeSnowflakeAtlas(columns, rows, cellSize int, rng snow.Source) *image.NRGBA {
	atlas := image.NewNRGBA(image.Rect(0, 0, columns*cellSize, rows*cellSize))
	white := image.NewUniform(color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	z := vector.NewRasterizer(cellSize, cellSize)

	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			z.Reset(cellSize, cellSize)
			drawSnowflake(z, float32(cellSize), randomFlakeShape(rng))

			cell := image.Rect(col*cellSize, row*cellSize, (col+1)*cellSize, (row+1)*cellSize)
			z.Draw(atlas, cell, white, image.Point{})
		}
	}
	return atlas
}

type flakeShape struct {
	rotation  float32 // radians
	armLength float32 // fraction of half the cell
	thickness float32 // fraction of the cell
	branches  int
	branchAt  float32 // fraction of the arm where the first branch starts
	hub       bool
}

func randomFlakeShape(rng snow.Source) flakeShape {
	return flakeShape{
		rotation:  float32(rng.IntN(60)) * math.Pi / 180,
		armLength: float32(70+rng.IntN(26)) / 100,
		thickness: float32(4+rng.IntN(4)) / 100,
		branches:  rng.IntN(3),
		branchAt:  float32(35+rng.IntN(20)) / 100,
		hub:       rng.IntN(2) == 0,
	}
}

func drawSnowflake(z *vector.Rasterizer, size float32, shape flakeShape) {
	c := size / 2
	arm := c * shape.armLength
	width := max(size*shape.thickness, 1)

	for k := 0; k < 6; k++ {
		a := shape.rotation + float32(k)*math.Pi/3
		dx, dy := cos32(a), sin32(a)
		thickLine(z, c, c, c+dx*arm, c+dy*arm, width)

		for b := 0; b < shape.branches; b++ {
			at := arm * (shape.branchAt + float32(b)*0.25)
			length := arm * 0.3 * (1 - float32(b)*0.3)
			bx, by := c+dx*at, c+dy*at
			for _, side := range []float32{-1, 1} {
				ba := a + side*math.Pi/4
				thickLine(z, bx, by, bx+cos32(ba)*length, by+sin32(ba)*length, width*0.8)
			}
		}
	}

	if shape.hub {
		hexagon(z, c, c, size*0.12, shape.rotation)
	}
}

func thickLine(z *vector.Rasterizer, x0, y0, x1, y1, width float32) {
	dx, dy := x1-x0, y1-y0
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2

	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

func hexagon(z *vector.Rasterizer, cx, cy, r, rotation float32) {
	z.MoveTo(cx+r*cos32(rotation), cy+r*sin32(rotation))
	for k := 1; k < 6; k++ {
		a := rotation + float32(k)*math.Pi/3
		z.LineTo(cx+r*cos32(a), cy+r*sin32(a))
	}
	z.ClosePath()
}

func cos32(a float32) float32 { return float32(math.Cos(float64(a))) }
func sin32(a float32) float32 { return float32(math.Sin(float64(a))) }
