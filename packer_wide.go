package spritepack

// batchLanes is the number of pixels a wide batch transforms at once.
const batchLanes = 16

// pixelBatch holds batchLanes pixels split into per-channel lanes, so
// each transform step sweeps one channel across the whole batch.
type pixelBatch struct {
	r, g, b, a [batchLanes]uint16
	m          [batchLanes]uint16
}

// load fills the lanes from batchLanes consecutive pixels.
func (pb *pixelBatch) load(src []Pixel) {
	_ = src[batchLanes-1]
	for i := 0; i < batchLanes; i++ {
		pb.r[i] = uint16(src[i].R)
		pb.g[i] = uint16(src[i].G)
		pb.b[i] = uint16(src[i].B)
		pb.a[i] = uint16(src[i].A)
		pb.m[i] = uint16(src[i].M)
	}
}

// remapped reports whether any lane carries a recolour index.
func (pb *pixelBatch) remapped() bool {
	var m uint16
	for i := 0; i < batchLanes; i++ {
		m |= pb.m[i]
	}

	return m != 0
}

// storePlain writes a batch known to carry no recolour indices: covered
// lanes keep their own colour and the neutral brightness, transparent
// lanes zero out. Reports whether any lane has partial alpha.
func (pb *pixelBatch) storePlain(cells, maps []byte) bool {
	_ = cells[batchLanes*cellSize-1]
	_ = maps[batchLanes*mapEntrySize-1]

	var partial uint16
	for i := 0; i < batchLanes; i++ {
		mask := uint16(0)
		if pb.a[i] != 0 {
			mask = 0xff
		}
		// a^255 is zero only for opaque lanes, so covered lanes with
		// partial alpha leave a nonzero trace here.
		partial |= (pb.a[i] ^ 0xff) & mask

		o := i * cellSize
		cells[o+0] = uint8(pb.r[i] & mask) //nolint:gosec // bounded by mask
		cells[o+1] = uint8(pb.g[i] & mask) //nolint:gosec // bounded by mask
		cells[o+2] = uint8(pb.b[i] & mask) //nolint:gosec // bounded by mask
		cells[o+3] = uint8(pb.a[i] & mask) //nolint:gosec // bounded by mask

		mo := i * mapEntrySize
		maps[mo+0] = 0
		maps[mo+1] = uint8(DefaultBrightness) & uint8(mask) //nolint:gosec // bounded by mask
	}

	return partial != 0
}

// widePacker transforms rows in batchLanes-wide strips. Batches holding a
// recolour index, and row tails shorter than a batch, fall back to the
// scalar pixel transform, so output is byte-identical to scalarPacker.
type widePacker struct{}

func (widePacker) Name() string { return "wide" }

func (widePacker) Available() bool { return true }

func (widePacker) PackLevel(dst *PackedSprite, src *Sprite, z ZoomLevel, pal Palette) Observation {
	var obs Observation
	var batch pixelBatch
	w := src.cols()

	for y := 0; y < src.rows(); y++ {
		row := dst.rowStart(z, y)
		cells := row[rowRunsSize:]
		maps := dst.MapRow(z, y)
		pixels := src.Pixels[y*w : (y+1)*w]

		x := 0
		for ; x+batchLanes <= w; x += batchLanes {
			batch.load(pixels[x:])
			if batch.remapped() {
				for i := 0; i < batchLanes; i++ {
					packPixel(pixels[x+i], cells[(x+i)*cellSize:], maps[(x+i)*mapEntrySize:], pal, &obs)
				}

				continue
			}
			if batch.storePlain(cells[x*cellSize:], maps[x*mapEntrySize:]) {
				obs.Translucent = true
			}
		}
		for ; x < w; x++ {
			packPixel(pixels[x], cells[x*cellSize:], maps[x*mapEntrySize:], pal, &obs)
		}

		left, right := transparentRuns(pixels)
		writeRuns(row, left, right)
	}

	return obs
}
