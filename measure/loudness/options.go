package loudness

import (
	"slices"

	"github.com/cwbudde/algo-loudness/dsp/core"
)

// Config defines the configuration of an Analyzer.
type Config struct {
	core.ProcessorConfig

	// Channels is the number of input channels, which is also the frame
	// stride of interleaved buffers.
	Channels int

	// Weights holds one weight per measured channel. Only the first
	// min(Channels, len(Weights), MaxChannels) channels are measured.
	Weights []float64

	// TruePeak enables 4x oversampled true-peak measurement.
	TruePeak bool
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns a 48 kHz stereo configuration with ITU weights and
// true-peak measurement disabled.
func DefaultConfig() Config {
	return Config{
		ProcessorConfig: core.DefaultProcessorConfig(),
		Channels:        2,
		Weights:         ITUWeights(),
	}
}

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(sampleRate float64) Option {
	return func(cfg *Config) {
		core.WithSampleRate(sampleRate)(&cfg.ProcessorConfig)
	}
}

// WithChannels sets the number of input channels.
func WithChannels(channels int) Option {
	return func(cfg *Config) {
		if channels > 0 {
			cfg.Channels = channels
		}
	}
}

// WithChannelWeights sets the per-channel weights. The slice is copied.
// An empty slice is ignored.
func WithChannelWeights(weights []float64) Option {
	return func(cfg *Config) {
		if len(weights) > 0 {
			cfg.Weights = slices.Clone(weights)
		}
	}
}

// WithTruePeak enables or disables true-peak measurement.
func WithTruePeak(enabled bool) Option {
	return func(cfg *Config) {
		cfg.TruePeak = enabled
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
