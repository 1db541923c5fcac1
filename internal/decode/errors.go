package decode

import "errors"

var (
	// ErrUnknownFormat is returned when neither the file extension nor the
	// content identifies a supported container.
	ErrUnknownFormat = errors.New("decode: unknown audio format")

	// ErrUnsupportedBitDepth is returned for integer PCM that is not 16, 24
	// or 32 bits wide.
	ErrUnsupportedBitDepth = errors.New("decode: unsupported bit depth")

	// ErrUnsupportedEncoding is returned for WAV files that do not hold
	// integer PCM.
	ErrUnsupportedEncoding = errors.New("decode: unsupported sample encoding")

	// ErrInvalidFile is returned when a file does not parse as the format
	// it claims to be.
	ErrInvalidFile = errors.New("decode: invalid audio file")
)
