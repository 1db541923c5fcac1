package core

import "math"

// Fallback settings for processors that are not told otherwise.
const (
	DefaultSampleRate = 48000
	DefaultBlockSize  = 4096
)

// ProcessorConfig holds the settings shared by everything that consumes
// sampled audio.
type ProcessorConfig struct {
	// SampleRate is the rate of the input in Hz.
	SampleRate float64
	// BlockSize is the number of frames handed over per call.
	BlockSize int
}

// ProcessorOption edits a ProcessorConfig. An option given an unusable
// value leaves its field alone.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns DefaultSampleRate and DefaultBlockSize.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{SampleRate: DefaultSampleRate, BlockSize: DefaultBlockSize}
}

// WithSampleRate sets SampleRate if hz is positive and finite.
func WithSampleRate(hz float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if hz > 0 && !math.IsInf(hz, 1) {
			cfg.SampleRate = hz
		}
	}
}

// WithBlockSize sets BlockSize if frames is positive.
func WithBlockSize(frames int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if frames > 0 {
			cfg.BlockSize = frames
		}
	}
}

// ApplyProcessorOptions starts from DefaultProcessorConfig and applies opts
// in order. Nil options are skipped.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, apply := range opts {
		if apply != nil {
			apply(&cfg)
		}
	}

	return cfg
}
