package biquad

// Coefficients holds the transfer function coefficients for a single
// second-order section (biquad). a0 is normalized to 1 and not stored:
//
//	H(z) = (B0 + B1*z^-1 + B2*z^-2) / (1 + A1*z^-1 + A2*z^-2)
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// Passthrough returns coefficients of the identity filter.
func Passthrough() Coefficients {
	return Coefficients{B0: 1}
}

// Section is a single biquad filter with coefficients and internal state.
// It implements Direct Form II processing:
//
//	w[n] = x[n] - A1*w[n-1] - A2*w[n-2]
//	y[n] = B0*w[n] + B1*w[n-1] + B2*w[n-2]
//
// The recurrence is evaluated in exactly this order so that results are
// reproducible against reference implementations of the same form.
type Section struct {
	Coefficients

	w1, w2 float64
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	w := x - s.A1*s.w1 - s.A2*s.w2
	y := s.B0*w + s.B1*s.w1 + s.B2*s.w2
	s.w2 = s.w1
	s.w1 = w

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	b0, b1, b2 := s.B0, s.B1, s.B2
	a1, a2 := s.A1, s.A2
	w1, w2 := s.w1, s.w2

	for i, x := range buf {
		w := x - a1*w1 - a2*w2
		buf[i] = b0*w + b1*w1 + b2*w2
		w2 = w1
		w1 = w
	}

	s.w1, s.w2 = w1, w2
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.w1 = 0
	s.w2 = 0
}

// State returns the current delay-line state [w[n-1], w[n-2]].
func (s *Section) State() [2]float64 {
	return [2]float64{s.w1, s.w2}
}
