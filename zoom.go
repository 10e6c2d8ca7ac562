package spritepack

import "fmt"

// ZoomLevel is one of the discrete resolutions a sprite is rasterised at.
// Lower levels are larger rasters (zoomed in), higher levels smaller ones.
type ZoomLevel uint8

const (
	// ZoomIn4x is the 4x magnified raster, the largest level.
	ZoomIn4x ZoomLevel = iota
	// ZoomIn2x is the 2x magnified raster.
	ZoomIn2x
	// ZoomNormal is the 1:1 raster.
	ZoomNormal
	// ZoomOut2x is the half-size raster.
	ZoomOut2x
	// ZoomOut4x is the quarter-size raster.
	ZoomOut4x
	// ZoomOut8x is the eighth-size raster, the smallest level.
	ZoomOut8x

	// NumZoomLevels is the number of zoom levels a sprite may carry.
	NumZoomLevels = int(ZoomOut8x) + 1

	// ZoomMin is the lowest (largest raster) zoom level.
	ZoomMin = ZoomIn4x
	// ZoomMax is the highest (smallest raster) zoom level.
	ZoomMax = ZoomOut8x
)

var zoomNames = [NumZoomLevels]string{"in-4x", "in-2x", "normal", "out-2x", "out-4x", "out-8x"}

func (z ZoomLevel) String() string {
	if int(z) < len(zoomNames) {
		return zoomNames[z]
	}
	return fmt.Sprintf("zoom(%d)", uint8(z))
}

// ParseZoomLevel resolves a zoom level name as used on the command line.
func ParseZoomLevel(name string) (ZoomLevel, error) {
	for i, n := range zoomNames {
		if n == name {
			return ZoomLevel(i), nil // #nosec G115 -- i is bounded by NumZoomLevels.
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownZoomLevel, name)
}

// ZoomRange is an inclusive pair of zoom levels to encode.
type ZoomRange struct {
	Min ZoomLevel
	Max ZoomLevel
}

// FullZoomRange covers every available zoom level.
func FullZoomRange() ZoomRange {
	return ZoomRange{Min: ZoomMin, Max: ZoomMax}
}

// normalize widens a degenerate single-level range to end at the last
// level. The minimum is kept.
func (r ZoomRange) normalize() (ZoomRange, error) {
	if r.Min > r.Max || r.Max > ZoomMax {
		return ZoomRange{}, fmt.Errorf("%w: %s..%s", ErrInvalidZoomRange, r.Min, r.Max)
	}
	if r.Min == r.Max {
		r.Max = ZoomMax
	}

	return r, nil
}

// Levels returns the number of levels the range spans.
func (r ZoomRange) Levels() int {
	return int(r.Max) - int(r.Min) + 1
}

// Contains reports whether z falls inside the range.
func (r ZoomRange) Contains(z ZoomLevel) bool {
	return z >= r.Min && z <= r.Max
}

// SpriteKind selects the zoom behaviour of a sprite.
type SpriteKind uint8

const (
	// KindNormal encodes the full configured zoom chain.
	KindNormal SpriteKind = iota
	// KindFont encodes a single glyph raster at the minimum zoom level.
	KindFont
)
