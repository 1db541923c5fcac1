package loudness

import "errors"

var (
	// ErrInvalidChannels is returned for a non-positive channel count.
	ErrInvalidChannels = errors.New("loudness: channel count must be positive")

	// ErrInvalidSampleRate is returned for a sample rate whose 100 ms step
	// is shorter than one sample.
	ErrInvalidSampleRate = errors.New("loudness: sample rate must be at least 10 Hz")

	// ErrNoWeights is returned when no channel weights are configured.
	ErrNoWeights = errors.New("loudness: no channel weights")

	// ErrInvalidWeight is returned for a negative or non-finite channel weight.
	ErrInvalidWeight = errors.New("loudness: channel weight must be finite and non-negative")

	// ErrInvalidFrames is returned for a negative frame count.
	ErrInvalidFrames = errors.New("loudness: frame count must not be negative")
)
