package loudness

import (
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-loudness/dsp/filter/biquad"
	"github.com/cwbudde/algo-loudness/dsp/filter/weighting"
)

// Analyzer accumulates loudness and peak statistics of one audio stream.
type Analyzer struct {
	sampleRate float64
	channels   int // interleaved stride
	weights    []float64
	truePeakOn bool

	stage1, stage2 biquad.Coefficients

	stepSize int // frames per 100 ms step
	state    []channelState

	samples  int64 // frames processed
	steps    int   // completed steps
	stepFill int   // frames into the current step

	// history, appended once per completed step
	momentaryPower    []float64
	momentaryLoudness []float64
	shortTermLoudness []float64
	shortTermPeak     []float64 // dBFS
	shortTermPLR      []float64
	rmsLevel          []float64 // dBFS

	absGatedSum   float64
	absGatedCount int

	scratch scratch
}

// NewAnalyzer returns an Analyzer configured by opts on top of
// DefaultConfig.
func NewAnalyzer(opts ...Option) (*Analyzer, error) {
	return New(ApplyOptions(opts...))
}

// New returns an Analyzer for cfg.
func New(cfg Config) (*Analyzer, error) {
	if cfg.Channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, cfg.Channels)
	}

	stepSize := stepFrames(cfg.SampleRate)
	if stepSize < 1 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSampleRate, cfg.SampleRate)
	}

	if len(cfg.Weights) == 0 {
		return nil, ErrNoWeights
	}

	measured := min(cfg.Channels, len(cfg.Weights), MaxChannels)

	weights := slices.Clone(cfg.Weights[:measured])
	for i, w := range weights {
		if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
			return nil, fmt.Errorf("%w: channel %d weight %v", ErrInvalidWeight, i, w)
		}
	}

	a := &Analyzer{
		sampleRate: cfg.SampleRate,
		channels:   cfg.Channels,
		weights:    weights,
		truePeakOn: cfg.TruePeak,
		stepSize:   stepSize,
		state:      make([]channelState, measured),
	}

	a.stage1, a.stage2 = weighting.K(cfg.SampleRate)
	for i := range a.state {
		a.state[i].init(a.stage1, a.stage2)
	}

	return a, nil
}

// stepFrames returns the number of frames in one 100 ms step, or 0 for an
// unusable rate.
func stepFrames(sampleRate float64) int {
	if math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) || sampleRate <= 0 {
		return 0
	}

	return int(sampleRate / stepsPerSecond)
}

// SampleRate returns the sample rate in Hz.
func (a *Analyzer) SampleRate() float64 { return a.sampleRate }

// Channels returns the number of input channels (the interleaved stride).
func (a *Analyzer) Channels() int { return a.channels }

// MeasuredChannels returns the number of channels that contribute to the
// statistics.
func (a *Analyzer) MeasuredChannels() int { return len(a.state) }

// Weights returns a copy of the weights of the measured channels.
func (a *Analyzer) Weights() []float64 { return slices.Clone(a.weights) }

// TruePeakEnabled reports whether true-peak measurement is enabled.
func (a *Analyzer) TruePeakEnabled() bool { return a.truePeakOn }

// Filter returns the two K-weighting stages in use.
func (a *Analyzer) Filter() (stage1, stage2 biquad.Coefficients) {
	return a.stage1, a.stage2
}

// SamplesProcessed returns the number of frames (samples per channel)
// processed so far.
func (a *Analyzer) SamplesProcessed() int64 { return a.samples }

// StepSize returns the number of frames in one 100 ms step.
func (a *Analyzer) StepSize() int { return a.stepSize }
