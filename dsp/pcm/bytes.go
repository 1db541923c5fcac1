package pcm

import (
	"encoding/binary"
	"math"
)

// DecodeInt16 decodes little-endian 16-bit samples from src into dst and
// returns the number of samples written.
func DecodeInt16(dst []int16, src []byte) int {
	n := min(len(dst), len(src)/2)
	for i := range n {
		dst[i] = int16(binary.LittleEndian.Uint16(src[2*i:]))
	}

	return n
}

// DecodeInt32 decodes little-endian 32-bit integer samples.
func DecodeInt32(dst []int32, src []byte) int {
	n := min(len(dst), len(src)/4)
	for i := range n {
		dst[i] = int32(binary.LittleEndian.Uint32(src[4*i:]))
	}

	return n
}

// DecodeFloat32 decodes little-endian IEEE-754 single precision samples.
func DecodeFloat32(dst []float32, src []byte) int {
	n := min(len(dst), len(src)/4)
	for i := range n {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(src[4*i:]))
	}

	return n
}

// DecodeFloat64 decodes little-endian IEEE-754 double precision samples.
func DecodeFloat64(dst []float64, src []byte) int {
	n := min(len(dst), len(src)/8)
	for i := range n {
		dst[i] = math.Float64frombits(binary.LittleEndian.Uint64(src[8*i:]))
	}

	return n
}
