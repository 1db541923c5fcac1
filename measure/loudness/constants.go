package loudness

import "github.com/cwbudde/algo-loudness/dsp/core"

const (
	// MaxChannels is the maximum number of measured channels.
	MaxChannels = 32

	// MinLevel is the floor (LUFS or dBFS) reported in place of -Inf or NaN.
	MinLevel = -100.0

	// AbsoluteGate is the absolute gating threshold in LUFS.
	AbsoluteGate = -70.0

	// RelativeGate is the integrated-loudness relative gate in LU below the
	// absolute-gated loudness.
	RelativeGate = -10.0

	// RangeRelativeGate is the loudness-range relative gate in LU.
	RangeRelativeGate = -20.0

	// StableDuration is the amount of audio (seconds) after which the
	// loudness range is considered reliable.
	StableDuration = 60.0
)

const (
	stepsPerSecond = 10 // 100 ms step

	stepsPerMomentary = 4  // 400 ms
	stepsPerShortTerm = 30 // 3 s

	loudnessOffset = -0.691

	rangeLowPercentile  = 0.10
	rangeHighPercentile = 0.95
	rmsLowPercentile    = 0.10
	rmsHighPercentile   = 0.95
)

// absoluteGatePower is AbsoluteGate expressed as mean-square power.
var absoluteGatePower = PowerForLoudness(AbsoluteGate)

// LoudnessForPower converts channel-weighted mean-square power to LUFS.
// It returns -Inf for zero power.
func LoudnessForPower(power float64) float64 {
	return loudnessOffset + core.LinearPowerToDB(power)
}

// PowerForLoudness converts LUFS to channel-weighted mean-square power.
func PowerForLoudness(lufs float64) float64 {
	return core.DBPowerToLinear(lufs - loudnessOffset)
}

// ITUWeights returns the BS.1770 channel weights for the channel order
// L, R, C, LFE, Ls, Rs.
func ITUWeights() []float64 {
	return []float64{1.0, 1.0, 1.0, 0.0, 1.41, 1.41}
}
