package snowfall

import (
	"image"
	"testing"

	"github.com/gekko3d/snowfall/snow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cellCoverage(img *image.NRGBA, cell image.Rectangle) (covered int, nonWhite int) {
	for y := cell.Min.Y; y < cell.Max.Y; y++ {
		for x := cell.Min.X; x < cell.Max.X; x++ {
			c := img.NRGBAAt(x, y)
			if c.A == 0 {
				continue
			}
			covered++
			if c.R != 255 || c.G != 255 || c.B != 255 {
				nonWhite++
			}
		}
	}
	return covered, nonWhite
}

func TestRasterizeSnowflakeAtlas(t *testing.T) {
	const cols, rows, cell = 4, 4, 32
	img := RasterizeSnowflakeAtlas(cols, rows, cell, snow.NewSource(1))

	require.Equal(t, image.Rect(0, 0, cols*cell, rows*cell), img.Bounds())
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			r := image.Rect(col*cell, row*cell, (col+1)*cell, (row+1)*cell)
			covered, nonWhite := cellCoverage(img, r)
			assert.Positive(t, covered, "cell (%d,%d) is empty", col, row)
			assert.Less(t, covered, cell*cell, "cell (%d,%d) is fully covered", col, row)
			assert.Zero(t, nonWhite, "cell (%d,%d) has tinted texels", col, row)

			// Flakes are centered and stay inside their cell.
			assert.NotZero(t, img.NRGBAAt(r.Min.X+cell/2, r.Min.Y+cell/2).A)
			assert.Zero(t, img.NRGBAAt(r.Min.X, r.Min.Y).A)
		}
	}
}

func TestRasterizeSnowflakeAtlas_Deterministic(t *testing.T) {
	a := RasterizeSnowflakeAtlas(2, 2, 16, snow.NewSource(9))
	b := RasterizeSnowflakeAtlas(2, 2, 16, snow.NewSource(9))
	c := RasterizeSnowflakeAtlas(2, 2, 16, snow.NewSource(10))

	assert.Equal(t, a.Pix, b.Pix)
	assert.NotEqual(t, a.Pix, c.Pix)
}

func TestAssetServer_CreateSnowflakeAtlas(t *testing.T) {
	server := NewAssetServer()
	id := server.CreateSnowflakeAtlas(16, 16, 8, snow.NewSource(3))

	tx, ok := server.Texture(id)
	require.True(t, ok)
	assert.Equal(t, uint32(128), tx.Width())
	assert.Equal(t, uint32(128), tx.Height())
	assert.Len(t, tx.texels, 128*128*4)
	assert.Equal(t, TextureFormatRGBA8Unorm, tx.format)
}
