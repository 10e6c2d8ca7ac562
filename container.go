package spritepack

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
)

const (
	// ContainerMagic opens every sprite container.
	ContainerMagic = "PSPR"
	// ContainerVersion is the current container revision.
	ContainerVersion = 1
)

// ContainerOptions configure WriteContainer.
type ContainerOptions struct {
	// Codec compresses level blocks. The zero value is CodecLZ4.
	Codec Codec
}

// BlockStat describes one stored block as listed in the block table.
type BlockStat struct {
	Magic string
	Size  int
}

// ContainerInfo is the metadata of a stored sprite, readable without
// inflating any pixel data.
type ContainerInfo struct {
	Width   int
	Height  int
	XOffset int
	YOffset int
	Flags   SpriteFlags
	Zoom    ZoomRange
	Levels  [NumZoomLevels]PerZoomInfo
	Blocks  []BlockStat
}

// WriteContainer serializes a packed sprite: container header, block
// table, the sprite header block, one block per packed level, and an
// xxhash64 footer of the assembled sprite buffer.
func WriteContainer(w io.Writer, sprite *PackedSprite, opts ContainerOptions) error {
	zr := sprite.ZoomRange()

	blocks := make([]*Block, 0, zr.Levels()+1)
	headerBlock, err := compressBlock(sprite.Header(), opts.Codec)
	if err != nil {
		return fmt.Errorf("header block: %w", err)
	}
	blocks = append(blocks, headerBlock)

	for z := zr.Min; z <= zr.Max; z++ {
		b, err := compressBlock(sprite.LevelPayload(z), opts.Codec)
		if err != nil {
			return fmt.Errorf("level %s: %w", z, err)
		}
		blocks = append(blocks, b)
	}

	count, err := u16FromInt(len(blocks))
	if err != nil {
		return err
	}

	if _, err := w.Write([]byte(ContainerMagic)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteContainerHeader, err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(ContainerVersion)); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteContainerHeader, err)
	}
	if err := binary.Write(w, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteContainerHeader, err)
	}

	for i, b := range blocks {
		if _, err := w.Write([]byte(b.Magic)); err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrWriteBlockTable, i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, b.Size); err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrWriteBlockTable, i, err)
		}
	}

	for i, b := range blocks {
		if err := writeBlockData(w, b); err != nil {
			return fmt.Errorf("%w: block %d: %v", ErrWriteBlockData, i, err)
		}
	}

	if err := binary.Write(w, binary.LittleEndian, xxhash.Sum64(sprite.Bytes())); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteChecksum, err)
	}

	return nil
}

// ReadContainer reassembles a packed sprite from its container form.
// All levels inflate into one buffer granted by alloc (nil falls back
// to the heap), which is verified against the stored checksum before
// the sprite is returned.
func ReadContainer(r io.Reader, alloc Allocator) (*PackedSprite, error) {
	count, err := readContainerHeader(r)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: no blocks", ErrBlockCountMismatch)
	}

	table, err := readBlockTable(r, int(count))
	if err != nil {
		return nil, err
	}

	hdr, err := readHeaderBlock(r, table[0])
	if err != nil {
		return nil, err
	}

	zr := hdr.ZoomRange()
	if int(count) != zr.Levels()+1 {
		return nil, fmt.Errorf("%w: %d blocks for %d levels", ErrBlockCountMismatch, count, zr.Levels())
	}

	total, err := payloadExtent(hdr, zr)
	if err != nil {
		return nil, err
	}

	if alloc == nil {
		alloc = HeapAllocator{}
	}
	buf, err := alloc.Alloc(HeaderSize + total)
	if err != nil {
		return nil, fmt.Errorf("allocate %d bytes: %w", HeaderSize+total, err)
	}
	copy(buf, hdr.buf)

	idx := 1
	for z := zr.Min; z <= zr.Max; z++ {
		block, err := readBlockBody(r, table[idx])
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", z, err)
		}

		info := hdr.Info(z)
		dst := buf[HeaderSize+int(info.PayloadOffset):][:info.PayloadSize()]
		if err := decompressBlockInto(dst, block); err != nil {
			return nil, fmt.Errorf("level %s: %w", z, err)
		}
		idx++
	}

	var footer [8]byte
	if _, err := io.ReadFull(r, footer[:]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrChecksumRead, err)
	}
	want := binary.LittleEndian.Uint64(footer[:])
	if got := xxhash.Sum64(buf); got != want {
		return nil, fmt.Errorf("%w: stored %016x, computed %016x", ErrChecksumMismatch, want, got)
	}

	return FromBytes(buf)
}

// ReadContainerInfo reads container and sprite metadata, stopping before
// any level data.
func ReadContainerInfo(r io.Reader) (*ContainerInfo, error) {
	count, err := readContainerHeader(r)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: no blocks", ErrBlockCountMismatch)
	}

	table, err := readBlockTable(r, int(count))
	if err != nil {
		return nil, err
	}

	hdr, err := readHeaderBlock(r, table[0])
	if err != nil {
		return nil, err
	}

	info := &ContainerInfo{
		Width:   hdr.Width(),
		Height:  hdr.Height(),
		XOffset: hdr.XOffset(),
		YOffset: hdr.YOffset(),
		Flags:   hdr.Flags(),
		Zoom:    hdr.ZoomRange(),
	}
	for z := ZoomMin; z <= ZoomMax; z++ {
		info.Levels[z] = hdr.Info(z)
	}
	for _, h := range table {
		info.Blocks = append(info.Blocks, BlockStat{Magic: h.Magic, Size: int(h.Size)})
	}

	return info, nil
}

// WriteContainerFile writes a sprite container to path.
func WriteContainerFile(path string, sprite *PackedSprite, opts ContainerOptions) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return WriteContainer(f, sprite, opts)
}

// ReadContainerFile reads a sprite container from path.
func ReadContainerFile(path string) (*PackedSprite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadContainer(f, nil)
}

// ReadContainerInfoFile reads container metadata from path.
func ReadContainerInfoFile(path string) (*ContainerInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadContainerInfo(f)
}

func readContainerHeader(r io.Reader) (uint16, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrContainerHeaderRead, err)
	}
	if string(magic[:]) != ContainerMagic {
		return 0, fmt.Errorf("%w: %q", ErrContainerMagic, string(magic[:]))
	}

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrContainerHeaderRead, err)
	}
	if version != ContainerVersion {
		return 0, fmt.Errorf("%w: %d", ErrContainerVersion, version)
	}

	var count uint16
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrContainerHeaderRead, err)
	}

	return count, nil
}

// readHeaderBlock inflates block 0 and wraps it as a header-only sprite
// for field access. The zoom range is validated, the zoom records are
// not; payloadExtent and the final FromBytes cover those.
func readHeaderBlock(r io.Reader, h blockHeader) (*PackedSprite, error) {
	block, err := readBlockBody(r, h)
	if err != nil {
		return nil, fmt.Errorf("header block: %w", err)
	}

	header := make([]byte, HeaderSize)
	if err := decompressBlockInto(header, block); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHeaderBlockSize, err)
	}

	hdr := &PackedSprite{buf: header}
	zr := hdr.ZoomRange()
	if zr.Min > zr.Max || zr.Max > ZoomMax {
		return nil, fmt.Errorf("%w: zoom range %s..%s", ErrCorruptHeader, zr.Min, zr.Max)
	}

	return hdr, nil
}

// payloadExtent walks the in-range zoom records and returns the total
// payload size they claim. Records must be contiguous and row aligned.
func payloadExtent(hdr *PackedSprite, zr ZoomRange) (int, error) {
	offset := uint64(0)
	for z := zr.Min; z <= zr.Max; z++ {
		info := hdr.Info(z)
		if uint64(info.PayloadOffset) != offset {
			return 0, fmt.Errorf("%w: level %s is not contiguous", ErrCorruptHeader, z)
		}
		if info.RowStride != rowRunsSize+info.Width*cellSize {
			return 0, fmt.Errorf("%w: level %s stride %d for width %d",
				ErrCorruptHeader, z, info.RowStride, info.Width)
		}
		if info.MapOffset < info.PayloadOffset {
			return 0, fmt.Errorf("%w: level %s map offset precedes payload", ErrCorruptHeader, z)
		}
		if uint64(info.MapOffset-info.PayloadOffset)%uint64(info.RowStride) != 0 {
			return 0, fmt.Errorf("%w: level %s payload not row aligned", ErrCorruptHeader, z)
		}

		offset += uint64(info.PayloadSize())
		if offset > uint64(maxInt32)-uint64(HeaderSize) {
			return 0, fmt.Errorf("%w: %d payload bytes", ErrSpriteTooLarge, offset)
		}
	}

	return int(offset), nil
}
