package spritepack

import "fmt"

// Options configure an Encoder.
type Options struct {
	// Zoom is the zoom range to pack. A single-level range widens to run
	// through the last level, so the zero value packs everything.
	Zoom ZoomRange
	// Palette resolves recolour indices to base colours. Required.
	Palette Palette
	// Packer overrides the fastest available variant.
	Packer Packer
}

// Encoder packs decoded sprite collections into render-ready buffers.
// It holds no per-sprite state, so one encoder can serve concurrent
// Encode calls as long as each call gets its own allocator.
type Encoder struct {
	zoom ZoomRange
	pal  Palette
	pack Packer
}

// NewEncoder validates opts and builds an encoder.
func NewEncoder(opts Options) (*Encoder, error) {
	if opts.Palette == nil {
		return nil, ErrNoPalette
	}

	zoom, err := opts.Zoom.normalize()
	if err != nil {
		return nil, err
	}

	pack := opts.Packer
	if pack == nil {
		pack, err = NewRegistry().Best()
		if err != nil {
			return nil, err
		}
	}

	return &Encoder{zoom: zoom, pal: opts.Palette, pack: pack}, nil
}

// Zoom returns the effective zoom range after normalisation.
func (e *Encoder) Zoom() ZoomRange {
	return e.zoom
}

// Encode packs one collection into a single contiguous buffer granted by
// alloc: header, then per in-range level the colour rows followed by the
// map rows. A nil alloc falls back to the heap. Font sprites pack only
// the first zoom level. The header geometry always comes from the
// collection's root record, and the flags from what the packer observed
// across every packed level.
func (e *Encoder) Encode(c *Collection, kind SpriteKind, alloc Allocator) (*PackedSprite, error) {
	zr := e.zoom
	if kind == KindFont {
		zr = ZoomRange{Min: ZoomMin, Max: ZoomMin}
	}

	infos, total, err := planLayout(c, zr)
	if err != nil {
		return nil, err
	}

	if alloc == nil {
		alloc = HeapAllocator{}
	}
	buf, err := alloc.Alloc(total)
	if err != nil {
		return nil, fmt.Errorf("allocate %d bytes: %w", total, err)
	}

	packed := &PackedSprite{buf: buf}
	if err := packed.writeHeader(c.Root(), zr, &infos); err != nil {
		return nil, err
	}

	var obs Observation
	for z := zr.Min; z <= zr.Max; z++ {
		obs.merge(e.pack.PackLevel(packed, &c[z], z, e.pal))
	}
	packed.setFlags(obs.flags())

	return packed, nil
}
