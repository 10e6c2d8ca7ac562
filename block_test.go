package spritepack

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

// runsPayload builds n bytes of long byte runs, which every codec shrinks.
func runsPayload(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i / 256 % 251) //nolint:gosec // bounded by modulus
	}

	return data
}

// noisePayload builds n bytes from a xorshift generator, which no codec
// shrinks below the fallback threshold.
func noisePayload(n int) []byte {
	data := make([]byte, n)
	state := uint32(0x9E3779B9)
	for i := range data {
		state ^= state << 13
		state ^= state >> 17
		state ^= state << 5
		data[i] = byte(state) //nolint:gosec // truncation intended
	}

	return data
}

func TestCompressBlockRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		codec     Codec
		size      int
		wantMagic string
	}{
		{name: "lz4-single-chunk", codec: CodecLZ4, size: 8 * 1024, wantMagic: BlockMagicLZ4},
		{name: "lz4-chunk-boundary", codec: CodecLZ4, size: 2 * ChunkSize, wantMagic: BlockMagicLZ4},
		{name: "lz4-chunk-tail", codec: CodecLZ4, size: 3*ChunkSize + 333, wantMagic: BlockMagicLZ4},
		{name: "zstd", codec: CodecZstd, size: 100 * 1024, wantMagic: BlockMagicZSTD},
		{name: "copy", codec: CodecCopy, size: 8 * 1024, wantMagic: BlockMagicCOPY},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			data := runsPayload(tc.size)
			block, err := compressBlock(data, tc.codec)
			if err != nil {
				t.Fatalf("compressBlock: %v", err)
			}
			if block.Magic != tc.wantMagic {
				t.Fatalf("magic = %q, want %q", block.Magic, tc.wantMagic)
			}
			if block.Magic != BlockMagicCOPY && int(block.UncompressedSize) != len(data) {
				t.Fatalf("uncompressed size = %d, want %d", block.UncompressedSize, len(data))
			}

			dst := make([]byte, len(data))
			if err := decompressBlockInto(dst, block); err != nil {
				t.Fatalf("decompressBlockInto: %v", err)
			}
			if !bytes.Equal(dst, data) {
				t.Fatalf("round-trip mismatch")
			}
		})
	}
}

func TestCompressBlockSmallInputStaysRaw(t *testing.T) {
	t.Parallel()

	for _, codec := range []Codec{CodecLZ4, CodecZstd, CodecCopy} {
		block, err := compressBlock(runsPayload(1023), codec)
		if err != nil {
			t.Fatalf("compressBlock(%s): %v", codec, err)
		}
		if block.Magic != BlockMagicCOPY {
			t.Fatalf("codec %s: magic = %q, want COPY for small input", codec, block.Magic)
		}
	}
}

func TestCompressBlockNoiseFallsBackToCopy(t *testing.T) {
	t.Parallel()

	data := noisePayload(8 * 1024)
	for _, codec := range []Codec{CodecLZ4, CodecZstd} {
		block, err := compressBlock(data, codec)
		if err != nil {
			t.Fatalf("compressBlock(%s): %v", codec, err)
		}
		if block.Magic != BlockMagicCOPY {
			t.Fatalf("codec %s: magic = %q, want COPY for noise", codec, block.Magic)
		}

		dst := make([]byte, len(data))
		if err := decompressBlockInto(dst, block); err != nil {
			t.Fatalf("decompressBlockInto: %v", err)
		}
		if !bytes.Equal(dst, data) {
			t.Fatalf("round-trip mismatch")
		}
	}
}

func TestCompressBlockUnknownCodec(t *testing.T) {
	t.Parallel()

	if _, err := compressBlock(runsPayload(4096), Codec(9)); !errors.Is(err, ErrUnknownCodec) {
		t.Fatalf("expected ErrUnknownCodec, got %v", err)
	}
}

func TestDecompressBlockErrors(t *testing.T) {
	t.Parallel()

	valid, err := compressBlock(runsPayload(8*1024), CodecLZ4)
	if err != nil {
		t.Fatalf("compressBlock: %v", err)
	}
	if valid.Magic != BlockMagicLZ4 {
		t.Fatalf("fixture did not compress")
	}

	tests := []struct {
		name    string
		dstSize int
		block   *Block
		wantErr error
	}{
		{
			name:    "unknown-magic",
			dstSize: 16,
			block:   &Block{Magic: "GZIP", Data: make([]byte, 16)},
			wantErr: ErrUnknownBlockMagic,
		},
		{
			name:    "copy-size-mismatch",
			dstSize: 16,
			block:   &Block{Magic: BlockMagicCOPY, Data: make([]byte, 15)},
			wantErr: ErrCopySizeMismatch,
		},
		{
			name:    "lz4-size-mismatch",
			dstSize: 8*1024 - 1,
			block:   valid,
			wantErr: ErrDecodedSizeMismatch,
		},
		{
			name:    "lz4-truncated-chunk-header",
			dstSize: 16,
			block:   &Block{Magic: BlockMagicLZ4, UncompressedSize: 16, Data: []byte{1, 0}},
			wantErr: ErrChunkStreamTruncated,
		},
		{
			name:    "lz4-bad-chunk-flags",
			dstSize: 16,
			block:   &Block{Magic: BlockMagicLZ4, UncompressedSize: 16, Data: []byte{1, 0, 0, 0x40, 0xCC}},
			wantErr: ErrUnknownChunkFlags,
		},
		{
			name:    "lz4-zero-chunk-size",
			dstSize: 16,
			block:   &Block{Magic: BlockMagicLZ4, UncompressedSize: 16, Data: []byte{0, 0, 0, 0x80}},
			wantErr: ErrInvalidChunkSize,
		},
		{
			name:    "lz4-chunk-size-past-stream",
			dstSize: 16,
			block:   &Block{Magic: BlockMagicLZ4, UncompressedSize: 16, Data: []byte{9, 0, 0, 0x80, 0xCC}},
			wantErr: ErrInvalidChunkSize,
		},
		{
			name:    "lz4-trailing-data",
			dstSize: 8 * 1024,
			block: &Block{
				Magic:            BlockMagicLZ4,
				UncompressedSize: valid.UncompressedSize,
				Data:             append(bytes.Clone(valid.Data), 0xEE),
			},
			wantErr: ErrTrailingChunkData,
		},
		{
			name:    "zstd-size-mismatch",
			dstSize: 16,
			block:   &Block{Magic: BlockMagicZSTD, UncompressedSize: 17, Data: make([]byte, 8)},
			wantErr: ErrDecodedSizeMismatch,
		},
		{
			name:    "zstd-garbage-frame",
			dstSize: 16,
			block:   &Block{Magic: BlockMagicZSTD, UncompressedSize: 16, Data: []byte{0xDE, 0xAD, 0xBE, 0xEF}},
			wantErr: ErrZstdDecode,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			dst := make([]byte, tc.dstSize)
			if err := decompressBlockInto(dst, tc.block); !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestWriteReadBlockBody(t *testing.T) {
	t.Parallel()

	for _, codec := range []Codec{CodecLZ4, CodecCopy, CodecZstd} {
		data := runsPayload(16 * 1024)
		block, err := compressBlock(data, codec)
		if err != nil {
			t.Fatalf("compressBlock(%s): %v", codec, err)
		}

		var buf bytes.Buffer
		if err := writeBlockData(&buf, block); err != nil {
			t.Fatalf("writeBlockData(%s): %v", codec, err)
		}
		if buf.Len() != int(block.Size) {
			t.Fatalf("codec %s: body length %d, table says %d", codec, buf.Len(), block.Size)
		}

		got, err := readBlockBody(&buf, blockHeader{Magic: block.Magic, Size: block.Size})
		if err != nil {
			t.Fatalf("readBlockBody(%s): %v", codec, err)
		}
		if got.UncompressedSize != block.UncompressedSize {
			t.Fatalf("codec %s: uncompressed size %d, want %d", codec, got.UncompressedSize, block.UncompressedSize)
		}
		if !bytes.Equal(got.Data, block.Data) {
			t.Fatalf("codec %s: body data mismatch", codec)
		}
	}
}

func TestReadBlockTableErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown-magic", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, _ = buf.WriteString("ABCD")
		_ = binary.Write(&buf, binary.LittleEndian, int32(8))

		_, err := readBlockTable(bytes.NewReader(buf.Bytes()), 1)
		if !errors.Is(err, ErrUnknownBlockMagic) {
			t.Fatalf("expected ErrUnknownBlockMagic, got %v", err)
		}
	})

	t.Run("negative-size", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, _ = buf.WriteString(BlockMagicCOPY)
		_ = binary.Write(&buf, binary.LittleEndian, int32(-1))

		_, err := readBlockTable(bytes.NewReader(buf.Bytes()), 1)
		if !errors.Is(err, ErrBlockTableInvalidSize) {
			t.Fatalf("expected ErrBlockTableInvalidSize, got %v", err)
		}
	})

	t.Run("truncated", func(t *testing.T) {
		t.Parallel()

		_, err := readBlockTable(bytes.NewReader([]byte("LZ4")), 1)
		if !errors.Is(err, ErrBlockTableRead) {
			t.Fatalf("expected ErrBlockTableRead, got %v", err)
		}
	})

	t.Run("valid-pair", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		_, _ = buf.WriteString(BlockMagicCOPY)
		_ = binary.Write(&buf, binary.LittleEndian, int32(120))
		_, _ = buf.WriteString(BlockMagicLZ4)
		_ = binary.Write(&buf, binary.LittleEndian, int32(4096))

		hdrs, err := readBlockTable(bytes.NewReader(buf.Bytes()), 2)
		if err != nil {
			t.Fatalf("readBlockTable: %v", err)
		}
		if len(hdrs) != 2 || hdrs[0].Size != 120 || hdrs[1].Magic != BlockMagicLZ4 {
			t.Fatalf("unexpected table: %+v", hdrs)
		}
	})
}
