/*
Package spritepack encodes multi-zoom RGBA sprites into the render-ready
layout a 32bpp blitter draws from, and stores them in a compact container
with optional LZ4 or zstd block compression.

A packed sprite is one contiguous buffer: a fixed header with geometry,
flags and a record per zoom level, then per level the colour rows followed
by the map rows. Every colour row opens with its leading and trailing
transparent pixel counts so the blitter can skip fully transparent spans
without touching them. Each pixel also carries a recolour index and a
brightness in the map rows, which is what makes player colours and palette
animation possible after encoding.

The container form (PSPR) stores the header and each level as independent
blocks behind a block table, compressed per block (COPY, LZ4 chunk stream,
or a zstd frame) and sealed with an xxhash64 footer of the assembled
sprite.

The package focuses on practical workflows: encode a decoded zoom chain
with Encoder, persist it with WriteContainer, and get it back byte for
byte with ReadContainer.
*/
package spritepack
