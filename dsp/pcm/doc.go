// Package pcm describes raw PCM sample buffers and provides the address
// arithmetic and normalization needed to read them.
//
// A buffer is described by a [Format] (sample encoding) and a [Layout]
// (channel arrangement). Four encodings are supported (16- and 32-bit signed
// integer, 32- and 64-bit float) in three layouts:
//
//   - [Interleaved]: frames back to back, one sample per channel per frame.
//   - [Planar]: one flat buffer holding each channel's block back to back.
//   - [PlanarChannels]: one separate slice per channel.
//
// Integer encodings are normalized to the canonical full-scale range [-1, 1)
// by a power-of-two [Format.Scale], so normalization is exact. Float
// encodings pass through unchanged.
//
// Callers that cannot hand over typed slices use the little-endian byte
// decoders in bytes.go.
package pcm
