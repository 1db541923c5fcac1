package loudness

const (
	truePeakPhases = 4
	truePeakTaps   = 12
)

// truePeakFilter is the BS.1770-4 Annex 2 interpolation filter split into
// its four polyphase branches. Phase 2 and 3 are phase 1 and 0 reversed.
var truePeakFilter = [truePeakPhases][truePeakTaps]float64{
	{
		0.0017089843750, 0.0109863281250, -0.0196533203125, 0.0332031250000,
		-0.0594482421875, 0.1373291015625, 0.9721679687500, -0.1022949218750,
		0.0476074218750, -0.0266113281250, 0.0148925781250, -0.0083007812500,
	},
	{
		-0.0291748046875, 0.0292968750000, -0.0517578125000, 0.0891113281250,
		-0.1665039062500, 0.4650878906250, 0.7797851562500, -0.2003173828125,
		0.1015625000000, -0.0582275390625, 0.0330810546875, -0.0189208984375,
	},
	{
		-0.0189208984375, 0.0330810546875, -0.0582275390625, 0.1015625000000,
		-0.2003173828125, 0.7797851562500, 0.4650878906250, -0.1665039062500,
		0.0891113281250, -0.0517578125000, 0.0292968750000, -0.0291748046875,
	},
	{
		-0.0083007812500, 0.0148925781250, -0.0266113281250, 0.0476074218750,
		-0.1022949218750, 0.9721679687500, 0.1373291015625, -0.0594482421875,
		0.0332031250000, -0.0196533203125, 0.0109863281250, 0.0017089843750,
	},
}

// oversampler holds the last 12 input samples of one channel. Every sample
// is written twice, at idx and idx+12, so the most recent 12 samples are
// always contiguous at line[idx+1 : idx+13], oldest first.
type oversampler struct {
	line [2 * truePeakTaps]float64
	idx  int
}

// push adds x and returns the largest absolute value of the four
// interpolated outputs.
func (o *oversampler) push(x float64) float64 {
	o.line[o.idx] = x
	o.line[o.idx+truePeakTaps] = x

	w := (*[truePeakTaps]float64)(o.line[o.idx+1 : o.idx+1+truePeakTaps])

	o.idx++
	if o.idx == truePeakTaps {
		o.idx = 0
	}

	var peak float64

	for p := range truePeakFilter {
		taps := &truePeakFilter[p]

		var y float64
		for k := range truePeakTaps {
			y += taps[k] * w[truePeakTaps-1-k]
		}

		if y < 0 {
			y = -y
		}

		if y > peak {
			peak = y
		}
	}

	return peak
}
