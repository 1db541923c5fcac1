package weighting

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-loudness/dsp/filter/biquad"
)

// MinDesignSampleRate is the lowest sample rate (Hz) for which K designs
// the filter from the analog prototype.
const MinDesignSampleRate = 8000.0

// Analog prototype parameters of the head shelf and the RLB high-pass.
const (
	shelfFreq     = 1681.974450955533  // Hz
	shelfQ        = 0.7071752369554196
	shelfGainDB   = 3.999843853973347
	shelfVbFactor = 0.4996667741545416 // Vb = Vh^shelfVbFactor

	rlbFreq = 38.13547087602444 // Hz, double real pole
)

// Exact coefficients at 48 kHz.
var (
	stage1At48k = biquad.Coefficients{
		B0: 1.53512485958697, B1: -2.69169618940638, B2: 1.19839281085285,
		A1: -1.69065929318241, A2: 0.73248077421585,
	}
	stage2At48k = biquad.Coefficients{
		B0: 1, B1: -2, B2: 1,
		A1: -1.99004745483398, A2: 0.99007225036621,
	}
)

// Exact coefficients at 44.1 kHz.
var (
	stage1At44k1 = biquad.Coefficients{
		B0: 1.5308412300503478, B1: -2.6509799951547297, B2: 1.1690790799215869,
		A1: -1.6636551132560204, A2: 0.7125954280732254,
	}
	stage2At44k1 = biquad.Coefficients{
		B0: 1, B1: -2, B2: 1,
		A1: -1.9891696736297957, A2: 0.9891990357870394,
	}
)

// AnalogStage is one second-order analog section
//
//	H(s) = Gain * (s - Zeros[0])(s - Zeros[1]) / ((s - Poles[0])(s - Poles[1]))
//
// Warp is the angular frequency (rad/s) at which the bilinear transform is
// prewarped so that the digital response matches the analog one exactly.
type AnalogStage struct {
	Zeros [2]complex128
	Poles [2]complex128
	Gain  float64
	Warp  float64
}

var prototype = buildPrototype()

// Prototype returns the analog K-weighting prototype: the head shelf (one
// complex-conjugate pole pair, one complex-conjugate zero pair, fixed gain)
// and the RLB high-pass (one real pole used twice, a double zero at the
// origin).
func Prototype() [2]AnalogStage {
	return prototype
}

func buildPrototype() [2]AnalogStage {
	w0 := 2 * math.Pi * shelfFreq
	vh := math.Pow(10, shelfGainDB/20)
	vb := math.Pow(vh, shelfVbFactor)

	// Numerator Vh*s^2 + Vb*(w0/Q)*s + w0^2, denominator s^2 + (w0/Q)*s + w0^2.
	zeros := quadraticRoots(1, vb/vh*w0/shelfQ, w0*w0/vh)
	poles := quadraticRoots(1, w0/shelfQ, w0*w0)

	wr := 2 * math.Pi * rlbFreq

	return [2]AnalogStage{
		{Zeros: zeros, Poles: poles, Gain: vh, Warp: w0},
		{Poles: [2]complex128{complex(-wr, 0), complex(-wr, 0)}, Gain: 1, Warp: wr},
	}
}

// K returns the two K-weighting stages for the given sample rate.
func K(sampleRate float64) (stage1, stage2 biquad.Coefficients) {
	if s1, s2, ok := Exact(sampleRate); ok {
		return s1, s2
	}

	if !(sampleRate >= MinDesignSampleRate) {
		return biquad.Passthrough(), stage2At48k
	}

	return Design(sampleRate)
}

// Exact returns the pre-computed stages for 48 kHz and 44.1 kHz.
// ok is false for every other rate.
func Exact(sampleRate float64) (stage1, stage2 biquad.Coefficients, ok bool) {
	switch sampleRate {
	case 48000:
		return stage1At48k, stage2At48k, true
	case 44100:
		return stage1At44k1, stage2At44k1, true
	default:
		return biquad.Coefficients{}, biquad.Coefficients{}, false
	}
}

// Design derives both stages from the analog prototype by bilinear
// transform, regardless of whether exact coefficients exist for the rate.
// sampleRate must be positive.
func Design(sampleRate float64) (stage1, stage2 biquad.Coefficients) {
	stage1 = prototype[0].Bilinear(sampleRate)

	stage2 = prototype[1].Bilinear(sampleRate)
	stage2.B0, stage2.B1, stage2.B2 = 1, -2, 1

	return stage1, stage2
}

// NewK returns the K-weighting cascade for sampleRate as a [biquad.Chain].
func NewK(sampleRate float64) *biquad.Chain {
	s1, s2 := K(sampleRate)
	return biquad.NewChain(s1, s2)
}

// Bilinear maps the analog stage to a digital biquad using
//
//	s = c * (1 - z^-1) / (1 + z^-1),  c = Warp / tan(Warp / (2*fs))
//
// Each factor (s - r) becomes ((c - r) - (c + r)*z^-1) / (1 + z^-1); the
// (1 + z^-1)^2 terms cancel between numerator and denominator.
func (st AnalogStage) Bilinear(sampleRate float64) biquad.Coefficients {
	c := complex(st.Warp/math.Tan(st.Warp/(2*sampleRate)), 0)

	b0, b1, b2 := expand(c, st.Zeros)
	a0, a1, a2 := expand(c, st.Poles)
	g := complex(st.Gain, 0)

	return biquad.Coefficients{
		B0: real(g * b0 / a0),
		B1: real(g * b1 / a0),
		B2: real(g * b2 / a0),
		A1: real(a1 / a0),
		A2: real(a2 / a0),
	}
}

// expand multiplies out ((c - r0) - (c + r0)z^-1)((c - r1) - (c + r1)z^-1).
func expand(c complex128, r [2]complex128) (k0, k1, k2 complex128) {
	k0 = (c - r[0]) * (c - r[1])
	k1 = -((c-r[0])*(c+r[1]) + (c+r[0])*(c-r[1]))
	k2 = (c + r[0]) * (c + r[1])

	return k0, k1, k2
}

func quadraticRoots(a, b, c float64) [2]complex128 {
	d := cmplx.Sqrt(complex(b*b-4*a*c, 0))
	den := complex(2*a, 0)

	return [2]complex128{
		(-complex(b, 0) + d) / den,
		(-complex(b, 0) - d) / den,
	}
}
