package spritepack

import "fmt"

// planLayout computes the zoom records and the total buffer size needed to
// pack the in-range levels of a collection. Levels are laid out lowest zoom
// first, each level's colour rows directly followed by its map rows.
func planLayout(c *Collection, zr ZoomRange) ([NumZoomLevels]PerZoomInfo, int, error) {
	var infos [NumZoomLevels]PerZoomInfo

	offset := uint64(0)
	for z := zr.Min; z <= zr.Max; z++ {
		s := &c[z]
		if err := s.validate(); err != nil {
			return infos, 0, fmt.Errorf("level %s: %w", z, err)
		}

		w, err := u32FromInt(s.cols())
		if err != nil {
			return infos, 0, fmt.Errorf("level %s width: %w", z, err)
		}
		h, err := u32FromInt(s.rows())
		if err != nil {
			return infos, 0, fmt.Errorf("level %s height: %w", z, err)
		}

		stride := rowRunsSize + uint64(w)*cellSize
		if stride > maxUint32 {
			return infos, 0, fmt.Errorf("%w: level %s row stride is %d bytes",
				ErrSpriteTooLarge, z, stride)
		}
		mapOff := offset + stride*uint64(h)
		if mapOff > uint64(maxInt32)-uint64(HeaderSize) {
			return infos, 0, fmt.Errorf("%w: level %s colour rows end at %d bytes",
				ErrSpriteTooLarge, z, mapOff)
		}
		// mapOff fits int32 here, so w*h*mapEntrySize cannot overflow uint64.
		end := mapOff + uint64(w)*uint64(h)*mapEntrySize
		if end > uint64(maxInt32)-uint64(HeaderSize) {
			return infos, 0, fmt.Errorf("%w: level %s payload ends at %d bytes",
				ErrSpriteTooLarge, z, end)
		}

		infos[z] = PerZoomInfo{
			PayloadOffset: uint32(offset), // #nosec G115 -- bounded by the end check above.
			MapOffset:     uint32(mapOff), // #nosec G115 -- bounded by the end check above.
			RowStride:     uint32(stride), // #nosec G115 -- bounded by the stride check above.
			Width:         w,
		}
		offset = end
	}

	return infos, HeaderSize + int(offset), nil
}
