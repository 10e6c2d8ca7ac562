package spritepack

import (
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Codec selects the block compression used when writing a container.
type Codec uint8

const (
	// CodecLZ4 compresses blocks as LZ4 chunk streams. The default.
	CodecLZ4 Codec = iota
	// CodecCopy stores blocks uncompressed.
	CodecCopy
	// CodecZstd compresses blocks as single zstd frames.
	CodecZstd
)

var codecNames = map[Codec]string{
	CodecLZ4:  "lz4",
	CodecCopy: "copy",
	CodecZstd: "zstd",
}

func (c Codec) String() string {
	if name, ok := codecNames[c]; ok {
		return name
	}

	return fmt.Sprintf("codec(%d)", uint8(c))
}

// ParseCodec resolves a codec name as used on the command line.
func ParseCodec(name string) (Codec, error) {
	for c, n := range codecNames {
		if n == name {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
}

const (
	// BlockMagicCOPY marks an uncompressed block.
	BlockMagicCOPY = "COPY"
	// BlockMagicLZ4 marks an LZ4 chunk-stream block.
	BlockMagicLZ4 = "LZ4 "
	// BlockMagicZSTD marks a zstd frame block.
	BlockMagicZSTD = "ZSTD"

	// ChunkSize is the LZ4 chunk granularity inside a block.
	ChunkSize = 64 * 1024
)

// Block is one container block body. For compressed blocks Data excludes
// the leading uncompressed-size word, which Size includes.
type Block struct {
	Magic            string
	Data             []byte
	Size             int32
	UncompressedSize int32
}

func mustNewZstdEncoder() *zstd.Encoder {
	enc, err := zstd.NewWriter(
		nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
	)
	if err != nil {
		panic(err)
	}

	return enc
}

func mustNewZstdDecoder() *zstd.Decoder {
	dec, err := zstd.NewReader(
		nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true),
	)
	if err != nil {
		panic(err)
	}

	return dec
}

var zstdEncPool = sync.Pool{
	New: func() any {
		return mustNewZstdEncoder()
	},
}

var zstdDecPool = sync.Pool{
	New: func() any {
		return mustNewZstdDecoder()
	},
}

// compressBlock packs raw data with the requested codec. Inputs under
// 1 KiB, and inputs the codec cannot shrink below 85% of their size,
// stay uncompressed.
func compressBlock(data []byte, codec Codec) (*Block, error) {
	if len(data) > maxInt32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrInputTooLarge, len(data))
	}
	uncompressedSize, err := i32FromInt(len(data))
	if err != nil {
		return nil, err
	}

	if len(data) < 1024 {
		return &Block{Magic: BlockMagicCOPY, Size: uncompressedSize, Data: data}, nil
	}

	switch codec {
	case CodecCopy:
		return &Block{Magic: BlockMagicCOPY, Size: uncompressedSize, Data: data}, nil
	case CodecLZ4:
		return compressLZ4Block(data, uncompressedSize)
	case CodecZstd:
		return compressZstdBlock(data, uncompressedSize)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCodec, codec)
	}
}

// compressLZ4Block compresses data into an LZ4 chunk stream: each chunk
// is a 3-byte compressed size, a flag byte with 0x80 on the last chunk,
// and the compressed bytes. Chunks are independent of each other.
func compressLZ4Block(data []byte, uncompressedSize int32) (*Block, error) {
	chunkStream := make([]byte, 0, len(data)/2)
	compressBuf := make([]byte, lz4.CompressBlockBound(ChunkSize))

	for i := 0; i < len(data); i += ChunkSize {
		end := i + ChunkSize
		if end > len(data) {
			end = len(data)
		}
		srcChunk := data[i:end]
		isLast := end == len(data)

		cn, err := lz4.CompressBlockHC(srcChunk, compressBuf, 0, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLZ4Compress, err)
		}
		if cn == 0 || float64(cn) > float64(len(srcChunk))*0.85 {
			return &Block{Magic: BlockMagicCOPY, Size: uncompressedSize, Data: data}, nil
		}
		if cn > 0x7FFFFF {
			return nil, fmt.Errorf("%w: %d", ErrChunkTooLarge, cn)
		}

		chunkStream = append(chunkStream, byte(cn), byte(cn>>8), byte(cn>>16))
		if isLast {
			chunkStream = append(chunkStream, 0x80)
		} else {
			chunkStream = append(chunkStream, 0x00)
		}
		chunkStream = append(chunkStream, compressBuf[:cn]...)
	}

	total := 4 + len(chunkStream)
	if total > maxInt32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCompressedDataTooLarge, total)
	}
	if float64(total) > float64(len(data))*0.85 {
		return &Block{Magic: BlockMagicCOPY, Size: uncompressedSize, Data: data}, nil
	}

	size, err := i32FromInt(total)
	if err != nil {
		return nil, err
	}

	return &Block{
		Magic:            BlockMagicLZ4,
		Size:             size,
		UncompressedSize: uncompressedSize,
		Data:             chunkStream,
	}, nil
}

// compressZstdBlock compresses data into one zstd frame using a pooled
// encoder.
func compressZstdBlock(data []byte, uncompressedSize int32) (*Block, error) {
	enc := zstdEncPool.Get().(*zstd.Encoder)
	frame := enc.EncodeAll(data, nil)
	zstdEncPool.Put(enc)

	total := 4 + len(frame)
	if total > maxInt32 {
		return nil, fmt.Errorf("%w: %d bytes", ErrCompressedDataTooLarge, total)
	}
	if float64(total) > float64(len(data))*0.85 {
		return &Block{Magic: BlockMagicCOPY, Size: uncompressedSize, Data: data}, nil
	}

	size, err := i32FromInt(total)
	if err != nil {
		return nil, err
	}

	return &Block{
		Magic:            BlockMagicZSTD,
		Size:             size,
		UncompressedSize: uncompressedSize,
		Data:             frame,
	}, nil
}

// decompressBlockInto inflates one block body into dst, which must be
// exactly the region the block was compressed from.
func decompressBlockInto(dst []byte, block *Block) error {
	switch block.Magic {
	case BlockMagicCOPY:
		if len(block.Data) != len(dst) {
			return fmt.Errorf("%w: expected %d, got %d", ErrCopySizeMismatch, len(dst), len(block.Data))
		}
		copy(dst, block.Data)

		return nil
	case BlockMagicLZ4:
		return decompressLZ4Into(dst, block)
	case BlockMagicZSTD:
		return decompressZstdInto(dst, block)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBlockMagic, block.Magic)
	}
}

func decompressLZ4Into(dst []byte, block *Block) error {
	if int(block.UncompressedSize) != len(dst) {
		return fmt.Errorf("%w: block says %d, target is %d",
			ErrDecodedSizeMismatch, block.UncompressedSize, len(dst))
	}

	data := block.Data
	pos := 0
	outIdx := 0

	for {
		if len(data)-pos < 4 {
			return fmt.Errorf("%w: need 4 bytes header, have %d", ErrChunkStreamTruncated, len(data)-pos)
		}

		cSize := int(data[pos]) | int(data[pos+1])<<8 | int(data[pos+2])<<16
		flags := data[pos+3]
		pos += 4

		if flags&^0x80 != 0 {
			return fmt.Errorf("%w: 0x%02x", ErrUnknownChunkFlags, flags)
		}
		if cSize <= 0 || cSize > len(data)-pos {
			return fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, cSize, len(data)-pos)
		}

		compressed := data[pos : pos+cSize]
		pos += cSize

		remaining := len(dst) - outIdx
		if remaining <= 0 {
			return ErrDecodeOverrun
		}
		want := ChunkSize
		if want > remaining {
			want = remaining
		}

		n, err := lz4.UncompressBlock(compressed, dst[outIdx:outIdx+want])
		if err != nil {
			return fmt.Errorf("%w: %v", ErrLZ4Decode, err)
		}
		outIdx += n

		if flags&0x80 != 0 {
			break
		}
	}

	if outIdx != len(dst) {
		return fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, len(dst), outIdx)
	}
	if pos != len(data) {
		return fmt.Errorf("%w: %d bytes", ErrTrailingChunkData, len(data)-pos)
	}

	return nil
}

func decompressZstdInto(dst []byte, block *Block) error {
	if int(block.UncompressedSize) != len(dst) {
		return fmt.Errorf("%w: block says %d, target is %d",
			ErrDecodedSizeMismatch, block.UncompressedSize, len(dst))
	}

	dec := zstdDecPool.Get().(*zstd.Decoder)
	out, err := dec.DecodeAll(block.Data, dst[:0:len(dst)])
	zstdDecPool.Put(dec)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrZstdDecode, err)
	}
	if len(out) != len(dst) {
		return fmt.Errorf("%w: expected %d, got %d", ErrDecodedSizeMismatch, len(dst), len(out))
	}

	return nil
}

// writeBlockData writes the block body (no table entry). Compressed
// bodies open with their uncompressed size.
func writeBlockData(w io.Writer, block *Block) error {
	if block.Magic != BlockMagicCOPY {
		if err := binary.Write(w, binary.LittleEndian, block.UncompressedSize); err != nil {
			return err
		}
	}
	if _, err := w.Write(block.Data); err != nil {
		return err
	}

	return nil
}

type blockHeader struct {
	Magic string
	Size  int32
}

func readBlockTable(r io.Reader, count int) ([]blockHeader, error) {
	hdrs := make([]blockHeader, 0, count)
	for i := 0; i < count; i++ {
		magicBytes := make([]byte, 4)
		if _, err := io.ReadFull(r, magicBytes); err != nil {
			return nil, fmt.Errorf("%w: %d: %v", ErrBlockTableRead, i, err)
		}

		magic := string(magicBytes)
		var size int32
		if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
			return nil, fmt.Errorf("%w: %d: %v", ErrBlockTableRead, i, err)
		}

		if magic != BlockMagicCOPY && magic != BlockMagicLZ4 && magic != BlockMagicZSTD {
			return nil, fmt.Errorf("%w: %d: %q", ErrUnknownBlockMagic, i, magic)
		}
		if size < 0 {
			return nil, fmt.Errorf("%w: %d: %d", ErrBlockTableInvalidSize, i, size)
		}

		hdrs = append(hdrs, blockHeader{Magic: magic, Size: size})
	}

	return hdrs, nil
}

func readBlockBody(r io.Reader, h blockHeader) (*Block, error) {
	data := make([]byte, h.Size)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrBlockBodyRead, h.Magic, err)
	}

	block := &Block{Magic: h.Magic, Size: h.Size, Data: data}
	if h.Magic != BlockMagicCOPY {
		if len(data) < 4 {
			return nil, fmt.Errorf("%w: %s body of %d bytes", ErrBlockBodyRead, h.Magic, len(data))
		}
		// #nosec G115 -- sizes above maxInt32 fail the target comparison later.
		block.UncompressedSize = int32(binary.LittleEndian.Uint32(data[:4]))
		block.Data = data[4:]
	}

	return block, nil
}
