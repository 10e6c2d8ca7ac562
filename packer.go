package spritepack

import "encoding/binary"

// Observation reports what a packer saw while transforming one level.
type Observation struct {
	Translucent bool // any pixel with partial alpha
	Remapped    bool // any pixel carrying a recolour index
	Animated    bool // any recolour index in the animated range
}

// merge folds another level's observation into o.
func (o *Observation) merge(other Observation) {
	o.Translucent = o.Translucent || other.Translucent
	o.Remapped = o.Remapped || other.Remapped
	o.Animated = o.Animated || other.Animated
}

// flags converts an accumulated observation into sprite flags.
func (o Observation) flags() SpriteFlags {
	f := FlagNoRemap | FlagNoAnim
	if o.Translucent {
		f |= FlagTranslucent
	}
	if o.Remapped {
		f &^= FlagNoRemap
	}
	if o.Animated {
		f &^= FlagNoAnim
	}

	return f
}

// Packer transforms decoded pixels into packed rows. Implementations write
// every byte of the level region they are handed, so destination buffers
// never need zeroing first.
type Packer interface {
	// Name identifies the variant in the registry.
	Name() string
	// Available reports whether the variant can run on this machine.
	Available() bool
	// PackLevel writes the colour and map rows of one zoom level. The
	// destination must have been laid out for src's geometry.
	PackLevel(dst *PackedSprite, src *Sprite, z ZoomLevel, pal Palette) Observation
}

// scalarPacker transforms one pixel at a time. It is the portable
// baseline every other variant must match byte for byte.
type scalarPacker struct{}

func (scalarPacker) Name() string { return "scalar" }

func (scalarPacker) Available() bool { return true }

func (scalarPacker) PackLevel(dst *PackedSprite, src *Sprite, z ZoomLevel, pal Palette) Observation {
	var obs Observation
	w := src.cols()

	for y := 0; y < src.rows(); y++ {
		row := dst.rowStart(z, y)
		cells := row[rowRunsSize:]
		maps := dst.MapRow(z, y)
		pixels := src.Pixels[y*w : (y+1)*w]

		for x := range pixels {
			packPixel(pixels[x], cells[x*cellSize:], maps[x*mapEntrySize:], pal, &obs)
		}

		left, right := transparentRuns(pixels)
		writeRuns(row, left, right)
	}

	return obs
}

// packPixel writes one pixel's colour cell and map entry. Transparent
// pixels zero both. Remapped pixels store the palette colour shaded by
// the pixel's own brightness and keep the index for the renderer.
func packPixel(px Pixel, cell, mv []byte, pal Palette, obs *Observation) {
	if px.A == 0 {
		cell[0], cell[1], cell[2], cell[3] = 0, 0, 0, 0
		mv[0], mv[1] = 0, 0

		return
	}

	if px.A < 255 {
		obs.Translucent = true
	}

	if px.M != 0 {
		obs.Remapped = true
		if px.M >= AnimStart {
			obs.Animated = true
		}

		v := rgbMax(px.R, px.G, px.B)
		if v == 0 {
			v = DefaultBrightness
		}
		c := adjustBrightness(pal.LookupColour(px.M), v)
		cell[0], cell[1], cell[2], cell[3] = c.R, c.G, c.B, px.A
		mv[0], mv[1] = px.M, v

		return
	}

	cell[0], cell[1], cell[2], cell[3] = px.R, px.G, px.B, px.A
	mv[0], mv[1] = 0, DefaultBrightness
}

// transparentRuns counts fully transparent pixels inward from both ends
// of a row. The counts are independent, so a row with no covered pixel
// reports the full width on both sides.
func transparentRuns(row []Pixel) (left, right int) {
	w := len(row)
	for left < w && row[left].A == 0 {
		left++
	}
	for right < w && row[w-1-right].A == 0 {
		right++
	}

	return left, right
}

// writeRuns stores the transparent run pair that opens a colour row.
func writeRuns(row []byte, left, right int) {
	// #nosec G115 -- runs never exceed the row width, which fits uint32.
	binary.LittleEndian.PutUint32(row[0:], uint32(left))
	// #nosec G115
	binary.LittleEndian.PutUint32(row[4:], uint32(right))
}
