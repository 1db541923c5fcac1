// Package biquad provides biquad (second-order IIR) filter runtime primitives.
//
// A [Section] evaluates the Direct Form II recurrence for a single
// second-order section defined by [Coefficients]. Multiple sections can be
// cascaded via [Chain]; the K-weighting pre-filter used for loudness
// measurement is such a two-section cascade.
//
// Besides processing, the package evaluates frequency responses
// analytically ([Coefficients.Response], [Coefficients.MagnitudeDB]) and
// numerically from an impulse response ([MeasuredMagnitude]).
//
// Coefficient design lives in dsp/filter/weighting.
package biquad
