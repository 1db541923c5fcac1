package biquad

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// ErrFFTSize is returned when an FFT size is not a positive power of two.
var ErrFFTSize = errors.New("biquad: fft size must be a positive power of two")

// MeasuredMagnitude returns the linear magnitude spectrum |H[k]| of an
// impulse response for bins k = 0..fftSize/2. The response is truncated or
// zero-padded to fftSize. Bin k corresponds to k*sampleRate/fftSize Hz.
//
// It is the numerical counterpart of Response and is used to cross-check
// designed coefficients against their analytic response.
func MeasuredMagnitude(ir []float64, fftSize int) ([]float64, error) {
	if fftSize <= 0 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: %d", ErrFFTSize, fftSize)
	}

	in := make([]complex128, fftSize)
	for i := range min(len(ir), fftSize) {
		in[i] = complex(ir[i], 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("biquad: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("biquad: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	return mag, nil
}

// MeasuredMagnitude returns the FFT magnitude spectrum of the first fftSize
// samples of the cascade impulse response. The chain state is preserved.
func (c *Chain) MeasuredMagnitude(fftSize int) ([]float64, error) {
	if fftSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrFFTSize, fftSize)
	}

	return MeasuredMagnitude(c.ImpulseResponse(fftSize), fftSize)
}
