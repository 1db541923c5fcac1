package pcm

// Sample is the set of element types a typed PCM buffer may hold.
type Sample interface {
	~int16 | ~int32 | ~float32 | ~float64
}

// Offset returns the element index of (frame, channel) in a flat buffer.
//
// interleavedStride is the distance between consecutive frames of an
// interleaved buffer (the declared channel count). planarStride is the
// length of one channel block in a planar buffer. For [PlanarChannels] the
// result is the index inside the channel's own slice. Offset returns -1
// for an unknown layout.
func Offset(layout Layout, frame, channel, interleavedStride, planarStride int) int {
	switch layout {
	case Interleaved:
		return frame*interleavedStride + channel
	case Planar:
		return channel*planarStride + frame
	case PlanarChannels:
		return frame
	default:
		return -1
	}
}

// Normalize converts a raw sample to canonical full scale. scale is the
// value returned by [Format.Scale] for the buffer's format.
func Normalize[T Sample](v T, scale float64) float64 {
	return float64(v) * scale
}

// ChannelAt reads one normalized sample from a per-channel buffer set, as
// passed for [PlanarChannels].
func ChannelAt[T Sample](bufs [][]T, frame, channel int, scale float64) float64 {
	return Normalize(bufs[channel][frame], scale)
}

// Required returns the minimum flat buffer length holding frames frames of
// channels channels in the given layout. For [PlanarChannels] it returns
// the minimum length of each channel slice.
func Required(layout Layout, frames, channels int) int {
	switch layout {
	case Interleaved, Planar:
		return frames * channels
	case PlanarChannels:
		return frames
	default:
		return 0
	}
}
