package spritepack

// Pixel is one decoded source pixel. M is the recolour map index; zero means
// the pixel keeps its own colour.
type Pixel struct {
	R, G, B, A uint8
	M          uint8
}

// Sprite is one decoded zoom level of a sprite: its geometry and a row-major
// pixel buffer. The encoder never mutates it.
type Sprite struct {
	Width   int
	Height  int
	XOffset int
	YOffset int
	Pixels  []Pixel
}

// cols returns the drawable column count. Zero and negative widths both
// describe an empty raster.
func (s *Sprite) cols() int {
	if s.Width < 0 {
		return 0
	}

	return s.Width
}

// rows returns the drawable row count, clamped like cols.
func (s *Sprite) rows() int {
	if s.Height < 0 {
		return 0
	}

	return s.Height
}

// area returns the drawable pixel count, treating degenerate dimensions as
// an empty raster.
func (s *Sprite) area() int {
	return s.cols() * s.rows()
}

// validate checks that the pixel buffer covers the drawable region.
func (s *Sprite) validate() error {
	if n := s.area(); len(s.Pixels) < n {
		return ErrShortPixelData
	}

	return nil
}

// Collection holds the decoded zoom chain of one sprite, indexable by zoom
// level. Levels the loader did not fill stay zero-valued and pack as empty
// regions.
type Collection [NumZoomLevels]Sprite

// Root returns the record carrying the sprite's nominal geometry, which is
// the minimum-zoom entry regardless of which levels end up packed.
func (c *Collection) Root() *Sprite {
	return &c[ZoomMin]
}
