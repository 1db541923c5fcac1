// Package loudness measures perceptual loudness and peak level of a
// streaming PCM signal according to ITU-R BS.1770-4, EBU Tech 3341 and
// EBU Tech 3342.
//
// An [Analyzer] is fed arbitrarily sized chunks of audio through
// [Analyzer.Process] (typed buffers) or [Analyzer.ProcessBytes] (raw
// little-endian bytes) in any [pcm.Format] and [pcm.Layout]. Statistics may
// be queried at any time between calls:
//
//   - [Analyzer.IntegratedLoudness]: gated integrated loudness (LUFS).
//   - [Analyzer.LoudnessRange]: loudness range (LRA) and its percentiles.
//   - [Analyzer.RMSStats]: percentiles of the 100 ms RMS level (dBFS).
//   - [Analyzer.DigitalPeakDBFS], [Analyzer.TruePeakDBFS]: peak levels.
//
// Processing is organized in three tiers. Every sample updates the
// K-weighting filter state, the step accumulators and the peak trackers.
// Every 100 ms step slides the 400 ms momentary and 3 s short-term windows,
// which are fixed rings with running totals. Every completed block appends
// to a history that only grows; queries derive their results from it.
//
// An Analyzer is not safe for concurrent use. Distinct analyzers share no
// state and may run on separate goroutines; [IntegratedLoudnessOf] combines
// them afterwards with gating over the union of their histories.
//
// Results that cannot be computed yet are reported with ok == false.
// Non-finite levels are clamped to [MinLevel].
package loudness
