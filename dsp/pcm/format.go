package pcm

// Format identifies a sample encoding.
type Format int

const (
	// Int16 is signed 16-bit integer PCM, full scale 32768.
	Int16 Format = iota
	// Int32 is signed 32-bit integer PCM, full scale 2^31.
	Int32
	// Float32 is IEEE-754 single precision, full scale 1.0.
	Float32
	// Float64 is IEEE-754 double precision, full scale 1.0.
	Float64
)

// String returns a human-readable name for the format.
func (f Format) String() string {
	switch f {
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	default:
		return "unknown"
	}
}

// Valid reports whether f is one of the enumerated formats.
func (f Format) Valid() bool {
	return f >= Int16 && f <= Float64
}

// BytesPerSample returns the encoded size of one sample, or 0 for an
// unknown format.
func (f Format) BytesPerSample() int {
	switch f {
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	case Float64:
		return 8
	default:
		return 0
	}
}

// Scale returns the factor mapping a raw sample value to canonical full
// scale. Both integer factors are powers of two.
func (f Format) Scale() float64 {
	switch f {
	case Int16:
		return 1.0 / 32768
	case Int32:
		return 1.0 / 2147483648
	default:
		return 1
	}
}

// Layout identifies how channels are arranged in a buffer.
type Layout int

const (
	// Interleaved stores frame after frame: L0 R0 L1 R1 ...
	Interleaved Layout = iota
	// Planar stores channel blocks back to back in one buffer: L0 L1 ... R0 R1 ...
	Planar
	// PlanarChannels stores each channel in its own buffer.
	PlanarChannels
)

// String returns a human-readable name for the layout.
func (l Layout) String() string {
	switch l {
	case Interleaved:
		return "interleaved"
	case Planar:
		return "planar"
	case PlanarChannels:
		return "planar-channels"
	default:
		return "unknown"
	}
}

// Valid reports whether l is one of the enumerated layouts.
func (l Layout) Valid() bool {
	return l >= Interleaved && l <= PlanarChannels
}
