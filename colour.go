package spritepack

// RGB is an opaque base colour from the recolour palette.
type RGB struct {
	R, G, B uint8
}

// Palette resolves recolour map indices to base colours. Implementations
// are read-only lookup tables; every uint8 index must resolve.
type Palette interface {
	// LookupColour returns the base colour for a recolour index.
	LookupColour(index uint8) RGB
}

const (
	// DefaultBrightness is the neutral brightness. Scaling by it is the
	// identity, and it is stored for pixels without remap shading.
	DefaultBrightness = 128

	// AnimCount is the number of colour-cycling palette entries.
	AnimCount = 28
	// AnimStart is the first colour-cycling palette index. Map indices at
	// or above it mark the sprite as animated.
	AnimStart = 256 - AnimCount
)

// adjustBrightness scales a base colour by brightness/DefaultBrightness per
// channel. Excess beyond the channel range is halved and redistributed
// toward white on all channels, then clamped.
func adjustBrightness(c RGB, brightness uint8) RGB {
	if brightness == DefaultBrightness {
		return c
	}

	r := uint32(c.R) * uint32(brightness) >> 7
	g := uint32(c.G) * uint32(brightness) >> 7
	b := uint32(c.B) * uint32(brightness) >> 7
	if r <= 255 && g <= 255 && b <= 255 {
		// #nosec G115 -- bounds checked above.
		return RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
	}

	var ob uint32
	if r > 255 {
		ob += r - 255
	}
	if g > 255 {
		ob += g - 255
	}
	if b > 255 {
		ob += b - 255
	}
	ob /= 2

	return RGB{
		R: overbright(r, ob),
		G: overbright(g, ob),
		B: overbright(b, ob),
	}
}

func overbright(ch, ob uint32) uint8 {
	if ch >= 255 {
		return 255
	}
	v := ch + ob*(255-ch)/256
	if v > 255 {
		v = 255
	}

	return uint8(v) // #nosec G115 -- clamped above.
}

// rgbMax returns the brightest of three channels.
func rgbMax(r, g, b uint8) uint8 {
	m := r
	if g > m {
		m = g
	}
	if b > m {
		m = b
	}

	return m
}
