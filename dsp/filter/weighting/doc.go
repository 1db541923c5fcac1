// Package weighting designs the ITU-R BS.1770 K-weighting pre-filter.
//
// K-weighting is a two-stage cascade: a high-frequency shelf of about +4 dB
// that models the acoustic effect of the head, followed by the revised
// low-frequency B-curve (RLB), a second-order high-pass near 38 Hz.
//
// [K] returns the two stages as [biquad.Coefficients]. For 48 kHz and
// 44.1 kHz the exact pre-computed coefficients are used, because they match
// the conformance material more closely than any derived set. Other rates at
// or above [MinDesignSampleRate] are designed by bilinear transform of a
// fixed analog pole/zero [Prototype], each stage prewarped at its own
// characteristic frequency. Below that rate the design degrades to a
// pass-through shelf and the fixed 48 kHz high-pass; measurements at such
// rates are therefore imprecise.
//
// The second stage's numerator is always (1, -2, 1). Its gain is not
// normalized; the -0.691 dB offset in the loudness formula compensates the
// cascade gain at 997 Hz.
package weighting
