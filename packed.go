package spritepack

import (
	"encoding/binary"
	"fmt"
)

// SpriteFlags summarize pixel content across every packed zoom level.
// Renderers read them to pick a blit path before touching pixel data.
type SpriteFlags uint32

const (
	// FlagTranslucent is set when any packed pixel has partial alpha.
	FlagTranslucent SpriteFlags = 1 << iota
	// FlagNoRemap is set when no packed pixel carries a recolour index.
	FlagNoRemap
	// FlagNoAnim is set when no recolour index falls in the animated range.
	FlagNoAnim
)

// Has reports whether all flags in f are set.
func (s SpriteFlags) Has(f SpriteFlags) bool {
	return s&f == f
}

// String returns the set flags joined by "|", or "none".
func (s SpriteFlags) String() string {
	out := ""
	add := func(name string) {
		if out != "" {
			out += "|"
		}
		out += name
	}

	if s.Has(FlagTranslucent) {
		add("translucent")
	}
	if s.Has(FlagNoRemap) {
		add("no-remap")
	}
	if s.Has(FlagNoAnim) {
		add("no-anim")
	}
	if out == "" {
		return "none"
	}

	return out
}

// Packed sprite header geometry. The fixed part is followed by one zoom
// record per level, packed levels first to last.
const (
	headerFixedSize = 24
	zoomInfoSize    = 16

	// HeaderSize is the byte length of the packed sprite header.
	HeaderSize = headerFixedSize + NumZoomLevels*zoomInfoSize
)

// Fixed header field offsets.
const (
	offWidth   = 0
	offHeight  = 4
	offXOffset = 8
	offYOffset = 12
	offFlags   = 16
	offZoomMin = 20
	offZoomMax = 21
)

// Row layout units within a level payload.
const (
	rowRunsSize  = 8 // leading and trailing transparent run, uint32 each
	cellSize     = 4 // r, g, b, a
	mapEntrySize = 2 // m, v
)

// PerZoomInfo locates one zoom level inside the payload. Offsets are
// relative to the end of the header. Levels outside the packed range
// keep a zero record.
type PerZoomInfo struct {
	PayloadOffset uint32 // first colour row
	MapOffset     uint32 // first map row
	RowStride     uint32 // bytes per colour row, runs included
	Width         uint32 // pixels per row
}

// Height returns the row count the record spans.
func (i PerZoomInfo) Height() int {
	if i.RowStride == 0 {
		return 0
	}

	return int((i.MapOffset - i.PayloadOffset) / i.RowStride)
}

// PayloadSize returns the byte length of the level region the record
// describes, colour rows and map rows together.
func (i PerZoomInfo) PayloadSize() int {
	rows := int(i.MapOffset - i.PayloadOffset)

	return rows + i.Height()*int(i.Width)*mapEntrySize
}

// PackedSprite is a render-ready sprite in a single contiguous buffer:
// header, then per level the colour rows followed by the map rows.
// Colour rows start with the transparent run pair and hold one RGBA
// cell per pixel; map rows hold one {m, v} pair per pixel.
type PackedSprite struct {
	buf []byte
}

// FromBytes wraps a serialized packed sprite, validating the header and
// every in-range zoom record against the buffer bounds.
func FromBytes(buf []byte) (*PackedSprite, error) {
	p := &PackedSprite{buf: buf}
	if err := p.validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *PackedSprite) validate() error {
	if len(p.buf) < HeaderSize {
		return fmt.Errorf("%w: %d bytes, header needs %d", ErrCorruptHeader, len(p.buf), HeaderSize)
	}

	zr := p.ZoomRange()
	if zr.Min > zr.Max || zr.Max > ZoomMax {
		return fmt.Errorf("%w: zoom range %s..%s", ErrCorruptHeader, zr.Min, zr.Max)
	}

	payload := uint64(len(p.buf) - HeaderSize)
	for z := zr.Min; z <= zr.Max; z++ {
		info := p.Info(z)
		if info.RowStride != rowRunsSize+info.Width*cellSize {
			return fmt.Errorf("%w: level %s stride %d for width %d",
				ErrCorruptHeader, z, info.RowStride, info.Width)
		}
		if info.MapOffset < info.PayloadOffset {
			return fmt.Errorf("%w: level %s map offset precedes payload", ErrCorruptHeader, z)
		}

		rows := uint64(info.MapOffset - info.PayloadOffset)
		if rows%uint64(info.RowStride) != 0 {
			return fmt.Errorf("%w: level %s payload not row aligned", ErrCorruptHeader, z)
		}

		h := rows / uint64(info.RowStride)
		end := uint64(info.MapOffset) + h*uint64(info.Width)*mapEntrySize
		if end > payload {
			return fmt.Errorf("%w: level %s ends at %d, payload is %d",
				ErrCorruptHeader, z, end, payload)
		}
	}

	return nil
}

// Bytes returns the full buffer, header included.
func (p *PackedSprite) Bytes() []byte { return p.buf }

// Size returns the total buffer length in bytes.
func (p *PackedSprite) Size() int { return len(p.buf) }

// Header returns the header bytes.
func (p *PackedSprite) Header() []byte { return p.buf[:HeaderSize] }

func (p *PackedSprite) payload() []byte { return p.buf[HeaderSize:] }

// Width returns the width of the most zoomed-in packed level.
func (p *PackedSprite) Width() int {
	return int(binary.LittleEndian.Uint32(p.buf[offWidth:]))
}

// Height returns the height of the most zoomed-in packed level.
func (p *PackedSprite) Height() int {
	return int(binary.LittleEndian.Uint32(p.buf[offHeight:]))
}

// XOffset returns the horizontal drawing offset.
func (p *PackedSprite) XOffset() int {
	return int(int32(binary.LittleEndian.Uint32(p.buf[offXOffset:])))
}

// YOffset returns the vertical drawing offset.
func (p *PackedSprite) YOffset() int {
	return int(int32(binary.LittleEndian.Uint32(p.buf[offYOffset:])))
}

// Flags returns the aggregated sprite flags.
func (p *PackedSprite) Flags() SpriteFlags {
	return SpriteFlags(binary.LittleEndian.Uint32(p.buf[offFlags:]))
}

// ZoomRange returns the packed zoom range.
func (p *PackedSprite) ZoomRange() ZoomRange {
	return ZoomRange{
		Min: ZoomLevel(p.buf[offZoomMin]),
		Max: ZoomLevel(p.buf[offZoomMax]),
	}
}

// Info returns the zoom record for a level. Unpacked levels yield a
// zero record.
func (p *PackedSprite) Info(z ZoomLevel) PerZoomInfo {
	rec := p.buf[headerFixedSize+int(z)*zoomInfoSize:]

	return PerZoomInfo{
		PayloadOffset: binary.LittleEndian.Uint32(rec[0:]),
		MapOffset:     binary.LittleEndian.Uint32(rec[4:]),
		RowStride:     binary.LittleEndian.Uint32(rec[8:]),
		Width:         binary.LittleEndian.Uint32(rec[12:]),
	}
}

// LevelWidth returns the pixel width of a packed level.
func (p *PackedSprite) LevelWidth(z ZoomLevel) int {
	return int(p.Info(z).Width)
}

// LevelHeight returns the row count of a packed level.
func (p *PackedSprite) LevelHeight(z ZoomLevel) int {
	return p.Info(z).Height()
}

// RowRuns returns the leading and trailing transparent pixel counts of
// one colour row.
func (p *PackedSprite) RowRuns(z ZoomLevel, y int) (left, right int) {
	row := p.rowStart(z, y)
	left = int(binary.LittleEndian.Uint32(row[0:]))
	right = int(binary.LittleEndian.Uint32(row[4:]))

	return left, right
}

// RowCells returns the RGBA cells of one colour row, runs excluded.
func (p *PackedSprite) RowCells(z ZoomLevel, y int) []byte {
	info := p.Info(z)

	return p.rowStart(z, y)[rowRunsSize : rowRunsSize+info.Width*cellSize]
}

// Cell returns the r, g, b, a bytes of one colour cell.
func (p *PackedSprite) Cell(z ZoomLevel, x, y int) (r, g, b, a uint8) {
	cell := p.RowCells(z, y)[x*cellSize:]

	return cell[0], cell[1], cell[2], cell[3]
}

// MapRow returns the interleaved {m, v} pairs of one map row.
func (p *PackedSprite) MapRow(z ZoomLevel, y int) []byte {
	info := p.Info(z)
	start := int(info.MapOffset) + y*int(info.Width)*mapEntrySize

	return p.payload()[start : start+int(info.Width)*mapEntrySize]
}

// MapEntry returns the recolour index and brightness of one pixel.
func (p *PackedSprite) MapEntry(z ZoomLevel, x, y int) (m, v uint8) {
	entry := p.MapRow(z, y)[x*mapEntrySize:]

	return entry[0], entry[1]
}

// LevelPayload returns the contiguous colour and map rows of one level.
func (p *PackedSprite) LevelPayload(z ZoomLevel) []byte {
	info := p.Info(z)
	end := int(info.PayloadOffset) + info.PayloadSize()

	return p.payload()[info.PayloadOffset:end]
}

func (p *PackedSprite) rowStart(z ZoomLevel, y int) []byte {
	info := p.Info(z)

	return p.payload()[int(info.PayloadOffset)+y*int(info.RowStride):]
}

// writeHeader fills the fixed header and zoom records. Flags are left
// zero until packing observed every pixel.
func (p *PackedSprite) writeHeader(root *Sprite, zr ZoomRange, infos *[NumZoomLevels]PerZoomInfo) error {
	w, err := u32FromInt(root.cols())
	if err != nil {
		return fmt.Errorf("sprite width: %w", err)
	}
	h, err := u32FromInt(root.rows())
	if err != nil {
		return fmt.Errorf("sprite height: %w", err)
	}
	xo, err := i32FromInt(root.XOffset)
	if err != nil {
		return fmt.Errorf("sprite x offset: %w", err)
	}
	yo, err := i32FromInt(root.YOffset)
	if err != nil {
		return fmt.Errorf("sprite y offset: %w", err)
	}

	binary.LittleEndian.PutUint32(p.buf[offWidth:], w)
	binary.LittleEndian.PutUint32(p.buf[offHeight:], h)
	binary.LittleEndian.PutUint32(p.buf[offXOffset:], uint32(xo))
	binary.LittleEndian.PutUint32(p.buf[offYOffset:], uint32(yo))
	binary.LittleEndian.PutUint32(p.buf[offFlags:], 0)
	p.buf[offZoomMin] = uint8(zr.Min)
	p.buf[offZoomMax] = uint8(zr.Max)
	p.buf[offZoomMax+1] = 0
	p.buf[offZoomMax+2] = 0

	for z := range infos {
		rec := p.buf[headerFixedSize+z*zoomInfoSize:]
		binary.LittleEndian.PutUint32(rec[0:], infos[z].PayloadOffset)
		binary.LittleEndian.PutUint32(rec[4:], infos[z].MapOffset)
		binary.LittleEndian.PutUint32(rec[8:], infos[z].RowStride)
		binary.LittleEndian.PutUint32(rec[12:], infos[z].Width)
	}

	return nil
}

func (p *PackedSprite) setFlags(f SpriteFlags) {
	binary.LittleEndian.PutUint32(p.buf[offFlags:], uint32(f))
}
