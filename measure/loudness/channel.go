package loudness

import "github.com/cwbudde/algo-loudness/dsp/filter/biquad"

// channelState is the analysis state of one measured channel.
type channelState struct {
	shelf biquad.Section // K-weighting stage 1
	rlb   biquad.Section // K-weighting stage 2

	// step accumulators, cleared at every step boundary
	rmsAcc       float64
	momentaryAcc float64
	shortTermAcc float64
	stepPeak     float64

	// sliding windows of step partial sums; *SST is always the exact sum
	// of the ring contents
	momentary    [stepsPerMomentary]float64
	momentarySST float64
	momentaryIdx int

	shortTerm    [stepsPerShortTerm]float64
	shortTermSST float64
	shortTermIdx int

	peaks     [stepsPerShortTerm]float64
	blockPeak float64

	rms float64 // sum of squares of the last step

	peak     float64 // running digital peak
	truePeak float64 // running true peak, includes peak
	os       oversampler
}

func (c *channelState) init(stage1, stage2 biquad.Coefficients) {
	*c = channelState{}
	c.shelf.Coefficients = stage1
	c.rlb.Coefficients = stage2
}

// sample feeds one normalized input sample.
func (c *channelState) sample(x float64, truePeak bool) {
	abs := x
	if abs < 0 {
		abs = -abs
	}

	if abs > c.peak {
		c.peak = abs
	}

	if abs > c.stepPeak {
		c.stepPeak = abs
	}

	y := c.rlb.ProcessSample(c.shelf.ProcessSample(x))

	c.rmsAcc += x * x
	y *= y
	c.momentaryAcc += y
	c.shortTermAcc += y

	if truePeak {
		tp := c.os.push(x)
		if abs > tp {
			tp = abs
		}

		if tp > c.truePeak {
			c.truePeak = tp
		}
	}
}

// step closes the current 100 ms step.
func (c *channelState) step() {
	c.momentarySST += c.momentaryAcc - c.momentary[c.momentaryIdx]
	if c.momentarySST < 0 {
		c.momentarySST = 0
	}

	c.momentary[c.momentaryIdx] = c.momentaryAcc
	c.momentaryIdx = (c.momentaryIdx + 1) % stepsPerMomentary

	c.shortTermSST += c.shortTermAcc - c.shortTerm[c.shortTermIdx]
	if c.shortTermSST < 0 {
		c.shortTermSST = 0
	}

	c.shortTerm[c.shortTermIdx] = c.shortTermAcc
	c.peaks[c.shortTermIdx] = c.stepPeak
	c.shortTermIdx = (c.shortTermIdx + 1) % stepsPerShortTerm

	c.blockPeak = 0
	for _, p := range c.peaks {
		if p > c.blockPeak {
			c.blockPeak = p
		}
	}

	c.rms = c.rmsAcc

	c.rmsAcc = 0
	c.momentaryAcc = 0
	c.shortTermAcc = 0
	c.stepPeak = 0
}
