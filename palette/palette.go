// Package palette provides recolour lookup tables for sprite encoding.
//
// A table maps the 256 recolour indices a sprite pixel may carry to base
// colours. Indices from spritepack.AnimStart up are the colour-cycling
// range; what a table stores there is only the first cycle frame.
package palette

import (
	"errors"

	"github.com/woozymasta/spritepack"
)

// ErrPaletteSize indicates palette data is not 256 RGB triples.
var ErrPaletteSize = errors.New("palette data must be 768 bytes")

// Table is a 256-entry recolour palette. It satisfies spritepack.Palette.
type Table [256]spritepack.RGB

// LookupColour returns the base colour for a recolour index.
func (t *Table) LookupColour(index uint8) spritepack.RGB {
	return t[index]
}

// FromBytes builds a table from 256 packed RGB triples.
func FromBytes(data []byte) (*Table, error) {
	if len(data) != 256*3 {
		return nil, ErrPaletteSize
	}

	var t Table
	for i := range t {
		t[i] = spritepack.RGB{R: data[i*3], G: data[i*3+1], B: data[i*3+2]}
	}

	return &t, nil
}

var defaultTable = buildDefault()

// Default returns the built-in table: index 0 black, a 6x6x6 colour cube,
// a greyscale ramp, and water and fire cycle ramps across the animated
// range. The table is shared; callers must not modify it.
func Default() *Table {
	return defaultTable
}

func buildDefault() *Table {
	var t Table

	// 1..216: colour cube with channel steps of 51.
	for i := 0; i < 216; i++ {
		t[1+i] = spritepack.RGB{
			R: uint8(i / 36 * 51),    //nolint:gosec // bounded by cube size
			G: uint8(i / 6 % 6 * 51), //nolint:gosec // bounded by cube size
			B: uint8(i % 6 * 51),     //nolint:gosec // bounded by cube size
		}
	}

	// 217..227: greyscale ramp.
	for j := 0; j <= 10; j++ {
		v := uint8(j * 255 / 10) //nolint:gosec // bounded by ramp length
		t[217+j] = spritepack.RGB{R: v, G: v, B: v}
	}

	// Animated range: 14 water entries, then 14 fire entries.
	const half = spritepack.AnimCount / 2
	for j := 0; j < half; j++ {
		t[spritepack.AnimStart+j] = spritepack.RGB{
			R: lerp(0, 64, j, half-1),
			G: lerp(32, 192, j, half-1),
			B: lerp(96, 255, j, half-1),
		}
		t[spritepack.AnimStart+half+j] = spritepack.RGB{
			R: lerp(128, 255, j, half-1),
			G: lerp(16, 224, j, half-1),
			B: lerp(0, 64, j, half-1),
		}
	}

	return &t
}

func lerp(a, b uint8, step, steps int) uint8 {
	return uint8(int(a) + (int(b)-int(a))*step/steps) //nolint:gosec // stays between a and b
}
