package snow

// Fixed scene constants.
const (
	DefaultCount        = 500
	DefaultAtlasColumns = 16
	DefaultAtlasRows    = 16

	// TextureCycle is the number of particles after which atlas cells repeat.
	TextureCycle = 256

	Gravity             = -250
	AirResistanceFactor = 3 * Gravity / 4 // truncated to -187
	NumScales           = 10
	MinScale            = 4
	MinRotateSpeed      = 5
	MaxRawRotateSpeed   = 20
	SwayFactor          = 0.75

	// SmallChance out of 10 draws lands in the small size band.
	SmallChance = 9
)

// Params holds the physics and initialization tunables of a Field.
type Params struct {
	Gravity           float32 // downward acceleration, negative
	AirResistance     float32 // drag applied to the smallest size class
	MinScale          int     // S₀
	NumScales         int     // K, gradations per size band
	MinRotateSpeed    int     // degrees/second added away from zero
	MaxRawRotateSpeed int     // raw speed is drawn from [-max, max]
	SmallChance       int     // out of 10
	SwayFactor        float32
}

func DefaultParams() Params {
	return Params{
		Gravity:           Gravity,
		AirResistance:     AirResistanceFactor,
		MinScale:          MinScale,
		NumScales:         NumScales,
		MinRotateSpeed:    MinRotateSpeed,
		MaxRawRotateSpeed: MaxRawRotateSpeed,
		SmallChance:       SmallChance,
		SwayFactor:        SwayFactor,
	}
}

// MaxScale is the largest size class a particle can get (exclusive bound is MaxScale+1).
func (p Params) MaxScale() int {
	return p.MinScale + 2*p.NumScales - 1
}

// Layout is the fixed viewport and atlas grid a Field is built for.
type Layout struct {
	Count        int
	Width        int
	Height       int
	AtlasColumns int
	AtlasRows    int
}

func DefaultLayout(width, height int) Layout {
	return Layout{
		Count:        DefaultCount,
		Width:        width,
		Height:       height,
		AtlasColumns: DefaultAtlasColumns,
		AtlasRows:    DefaultAtlasRows,
	}
}
