package spritepack

import "errors"

var (
	// ErrSizeOverflow indicates a size or dimension exceeds supported limits.
	ErrSizeOverflow = errors.New("size overflow")
	// ErrNoPalette indicates the encoder was built without a palette.
	ErrNoPalette = errors.New("palette required")
	// ErrNoPacker indicates no packer variant is available or registered.
	ErrNoPacker = errors.New("no packer available")
	// ErrUnknownPacker indicates an unregistered packer name was requested.
	ErrUnknownPacker = errors.New("unknown packer")
	// ErrInvalidZoomRange indicates a zoom range with minimum above maximum.
	ErrInvalidZoomRange = errors.New("invalid zoom range")
	// ErrUnknownZoomLevel indicates an unrecognised zoom level name.
	ErrUnknownZoomLevel = errors.New("unknown zoom level")
	// ErrShortPixelData indicates a sprite pixel buffer smaller than width*height.
	ErrShortPixelData = errors.New("short pixel data")
	// ErrSpriteTooLarge indicates the packed payload exceeds the offset range.
	ErrSpriteTooLarge = errors.New("sprite too large")
	// ErrAllocate indicates the allocator failed to grant a buffer.
	ErrAllocate = errors.New("allocate packed sprite failed")
	// ErrArenaExhausted indicates an arena has no room left for a request.
	ErrArenaExhausted = errors.New("arena exhausted")
	// ErrCorruptHeader indicates a packed sprite header fails validation.
	ErrCorruptHeader = errors.New("corrupt sprite header")
	// ErrInputTooLarge indicates block input data is too large to encode.
	ErrInputTooLarge = errors.New("input data too large")
	// ErrCompressedDataTooLarge indicates compressed payload exceeds limits.
	ErrCompressedDataTooLarge = errors.New("compressed data too large")
	// ErrChunkTooLarge indicates a compressed chunk exceeds allowed size.
	ErrChunkTooLarge = errors.New("compressed chunk too large")
	// ErrUnknownCodec indicates an unrecognized container codec name or value.
	ErrUnknownCodec = errors.New("unknown codec")
	// ErrLZ4Compress indicates LZ4 compression failed.
	ErrLZ4Compress = errors.New("LZ4 compression failed")
	// ErrLZ4Decode indicates LZ4 decode failed.
	ErrLZ4Decode = errors.New("LZ4 decode failed")
	// ErrZstdDecode indicates zstd decode failed.
	ErrZstdDecode = errors.New("zstd decode failed")
	// ErrCopySizeMismatch indicates COPY block data size mismatch.
	ErrCopySizeMismatch = errors.New("COPY block size mismatch")
	// ErrUnknownBlockMagic indicates an unknown block magic.
	ErrUnknownBlockMagic = errors.New("unknown block magic")
	// ErrChunkStreamTruncated indicates an LZ4 chunk stream is truncated.
	ErrChunkStreamTruncated = errors.New("LZ4 chunk-stream truncated")
	// ErrUnknownChunkFlags indicates unknown LZ4 chunk flags.
	ErrUnknownChunkFlags = errors.New("unknown LZ4 chunk flags")
	// ErrInvalidChunkSize indicates invalid LZ4 chunk size.
	ErrInvalidChunkSize = errors.New("invalid compressed chunk size")
	// ErrTrailingChunkData indicates bytes remain after the final LZ4 chunk.
	ErrTrailingChunkData = errors.New("trailing bytes after LZ4 chunk stream")
	// ErrDecodeOverrun indicates decoded data overruns the target buffer.
	ErrDecodeOverrun = errors.New("decoded data overruns target buffer")
	// ErrDecodedSizeMismatch indicates decoded block size mismatch.
	ErrDecodedSizeMismatch = errors.New("decoded size mismatch")
	// ErrOpenFile indicates a file could not be opened for reading.
	ErrOpenFile = errors.New("open file failed")
	// ErrCreateFile indicates a file could not be created.
	ErrCreateFile = errors.New("create file failed")
	// ErrContainerMagic indicates a missing or wrong container magic.
	ErrContainerMagic = errors.New("bad container magic")
	// ErrContainerHeaderRead indicates the container header could not be read.
	ErrContainerHeaderRead = errors.New("read container header failed")
	// ErrContainerVersion indicates an unsupported container version.
	ErrContainerVersion = errors.New("unsupported container version")
	// ErrBlockCountMismatch indicates the block count disagrees with the header.
	ErrBlockCountMismatch = errors.New("block count mismatch")
	// ErrBlockTableRead indicates the block table could not be read.
	ErrBlockTableRead = errors.New("read block table failed")
	// ErrBlockTableInvalidSize indicates an invalid size in the block table.
	ErrBlockTableInvalidSize = errors.New("invalid block size in table")
	// ErrBlockBodyRead indicates a block body read failed.
	ErrBlockBodyRead = errors.New("read block body failed")
	// ErrHeaderBlockSize indicates the header block has the wrong decoded size.
	ErrHeaderBlockSize = errors.New("header block size mismatch")
	// ErrChecksumMismatch indicates the container checksum does not match.
	ErrChecksumMismatch = errors.New("container checksum mismatch")
	// ErrChecksumRead indicates the container checksum could not be read.
	ErrChecksumRead = errors.New("read container checksum failed")
	// ErrWriteContainerHeader indicates the container header write failed.
	ErrWriteContainerHeader = errors.New("write container header failed")
	// ErrWriteBlockTable indicates the block table write failed.
	ErrWriteBlockTable = errors.New("write block table failed")
	// ErrWriteBlockData indicates a block body write failed.
	ErrWriteBlockData = errors.New("write block body failed")
	// ErrWriteChecksum indicates the container checksum write failed.
	ErrWriteChecksum = errors.New("write container checksum failed")
)
