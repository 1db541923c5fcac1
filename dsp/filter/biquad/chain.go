package biquad

// Chain runs a fixed list of sections in series; the output of section i
// feeds section i+1.
type Chain struct {
	sections []Section
}

// NewChain returns a cascade with one zero-state section per coefficient set.
func NewChain(coeffs ...Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i, k := range coeffs {
		c.sections[i].Coefficients = k
	}

	return c
}

// ProcessSample pushes x through every section and returns the result.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}

	return x
}

// ProcessBlock filters buf in place, one section at a time. The output is
// bit-identical to calling ProcessSample for each element.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset zeroes the delay lines of all sections.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// Len returns the number of sections.
func (c *Chain) Len() int { return len(c.sections) }

// Section returns the i-th section. It panics if i is out of range.
func (c *Chain) Section(i int) *Section { return &c.sections[i] }

// Coefficients returns a copy of the coefficient sets in cascade order.
func (c *Chain) Coefficients() []Coefficients {
	out := make([]Coefficients, len(c.sections))
	for i := range c.sections {
		out[i] = c.sections[i].Coefficients
	}

	return out
}
