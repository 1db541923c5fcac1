package loudness

import (
	"slices"

	"github.com/cwbudde/algo-loudness/dsp/core"
)

// DigitalPeak returns the largest absolute sample value seen on any
// measured channel, in linear full scale.
func (a *Analyzer) DigitalPeak() float64 {
	var peak float64
	for i := range a.state {
		peak = max(peak, a.state[i].peak)
	}

	return peak
}

// DigitalPeakDBFS returns DigitalPeak in dBFS, floored at MinLevel.
func (a *Analyzer) DigitalPeakDBFS() float64 {
	return clampLevel(core.LinearToDB(a.DigitalPeak()))
}

// TruePeak returns the 4x oversampled peak in linear full scale. It is
// never below the digital peak, and 0 when true-peak measurement is
// disabled.
func (a *Analyzer) TruePeak() float64 {
	var peak float64
	for i := range a.state {
		peak = max(peak, a.state[i].truePeak)
	}

	return peak
}

// TruePeakDBFS returns TruePeak in dBTP, floored at MinLevel.
func (a *Analyzer) TruePeakDBFS() float64 {
	return clampLevel(core.LinearToDB(a.TruePeak()))
}

// Momentary returns the most recent momentary (400 ms) loudness.
func (a *Analyzer) Momentary() (float64, bool) {
	return last(a.momentaryLoudness)
}

// ShortTerm returns the most recent short-term (3 s) loudness.
func (a *Analyzer) ShortTerm() (float64, bool) {
	return last(a.shortTermLoudness)
}

func last(s []float64) (float64, bool) {
	if len(s) == 0 {
		return 0, false
	}

	return s[len(s)-1], true
}

// MomentaryPowers returns the ungated channel-weighted power of every
// momentary block, one per step once 400 ms have been processed.
func (a *Analyzer) MomentaryPowers() []float64 { return slices.Clone(a.momentaryPower) }

// MomentaryLoudness returns the loudness of every momentary block in LUFS.
func (a *Analyzer) MomentaryLoudness() []float64 { return slices.Clone(a.momentaryLoudness) }

// ShortTermLoudness returns the loudness of every short-term block in LUFS.
func (a *Analyzer) ShortTermLoudness() []float64 { return slices.Clone(a.shortTermLoudness) }

// ShortTermPeaks returns the sample peak of every short-term block in dBFS.
func (a *Analyzer) ShortTermPeaks() []float64 { return slices.Clone(a.shortTermPeak) }

// ShortTermPLR returns the peak-to-loudness ratio of every short-term block.
func (a *Analyzer) ShortTermPLR() []float64 { return slices.Clone(a.shortTermPLR) }

// RMSHistory returns the channel-weighted RMS level of every 100 ms step
// in dBFS.
func (a *Analyzer) RMSHistory() []float64 { return slices.Clone(a.rmsLevel) }

// Stats is a snapshot of every statistic of an Analyzer. Fields whose ok
// flag is false hold zero values.
type Stats struct {
	SampleRate float64 `json:"sample_rate"`
	Channels   int     `json:"channels"`
	Measured   int     `json:"measured_channels"`
	Samples    int64   `json:"samples"`
	Duration   float64 `json:"duration_s"`

	Integrated   float64 `json:"integrated_lufs"`
	IntegratedOK bool    `json:"integrated_ok"`

	Range   RangeStats `json:"range"`
	RangeOK bool       `json:"range_ok"`

	RMS   RMSStats `json:"rms"`
	RMSOK bool     `json:"rms_ok"`

	Momentary   float64 `json:"momentary_lufs"`
	MomentaryOK bool    `json:"momentary_ok"`
	ShortTerm   float64 `json:"short_term_lufs"`
	ShortTermOK bool    `json:"short_term_ok"`

	DigitalPeak float64 `json:"sample_peak_dbfs"`
	TruePeak    float64 `json:"true_peak_dbtp"`
	TruePeakOn  bool    `json:"true_peak_enabled"`
}

// Snapshot collects all statistics.
func (a *Analyzer) Snapshot() Stats {
	s := Stats{
		SampleRate:  a.sampleRate,
		Channels:    a.channels,
		Measured:    len(a.state),
		Samples:     a.samples,
		Duration:    float64(a.samples) / a.sampleRate,
		DigitalPeak: a.DigitalPeakDBFS(),
		TruePeakOn:  a.truePeakOn,
	}

	s.Integrated, s.IntegratedOK = a.IntegratedLoudness()
	s.Range, s.RangeOK = a.LoudnessRange()
	s.RMS, s.RMSOK = a.RMSStats()
	s.Momentary, s.MomentaryOK = a.Momentary()
	s.ShortTerm, s.ShortTermOK = a.ShortTerm()

	if a.truePeakOn {
		s.TruePeak = a.TruePeakDBFS()
	}

	return s
}
