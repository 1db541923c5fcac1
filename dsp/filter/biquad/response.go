package biquad

import (
	"math"
	"math/cmplx"
)

// Response evaluates H(z) on the unit circle at freqHz for the given
// sample rate.
func (c Coefficients) Response(freqHz, sampleRate float64) complex128 {
	// z^-1 and z^-2 at the evaluation frequency
	z1 := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// MagnitudeDB returns 20*log10|H| at freqHz.
func (c Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// ImpulseResponse returns the first n output samples of a zero-state
// section driven by a unit impulse.
func (c Coefficients) ImpulseResponse(n int) []float64 {
	return NewChain(c).ImpulseResponse(n)
}

// Stable reports whether both poles lie strictly inside the unit circle.
// For a monic second-order denominator this is the stability triangle
// |A2| < 1, |A1| < 1 + A2.
func (c Coefficients) Stable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}

// Response returns the product of the section responses at freqHz.
func (c *Chain) Response(freqHz, sampleRate float64) complex128 {
	h := complex(1, 0)
	for i := range c.sections {
		h *= c.sections[i].Response(freqHz, sampleRate)
	}

	return h
}

// MagnitudeDB returns the cascade magnitude at freqHz in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 20 * math.Log10(cmplx.Abs(c.Response(freqHz, sampleRate)))
}

// ImpulseResponse returns n samples of the cascade impulse response. It runs
// on a fresh copy of the coefficients, so the chain's own state is untouched.
func (c *Chain) ImpulseResponse(n int) []float64 {
	if n <= 0 {
		return nil
	}

	probe := NewChain(c.Coefficients()...)
	ir := make([]float64, n)
	ir[0] = 1
	probe.ProcessBlock(ir)

	return ir
}
