package pcm

import "errors"

var (
	// ErrUnsupportedFormat is returned for a sample encoding outside the
	// enumerated formats.
	ErrUnsupportedFormat = errors.New("pcm: unsupported sample format")

	// ErrUnsupportedLayout is returned for a channel layout outside the
	// enumerated layouts, or one that the called operation cannot handle.
	ErrUnsupportedLayout = errors.New("pcm: unsupported sample layout")

	// ErrShortBuffer is returned when a buffer holds fewer samples than the
	// declared frame and channel counts require.
	ErrShortBuffer = errors.New("pcm: buffer too short")

	// ErrBufferType is returned when a buffer's Go type does not match the
	// declared format and layout.
	ErrBufferType = errors.New("pcm: buffer type does not match format and layout")
)
