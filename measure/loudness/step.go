package loudness

import "github.com/cwbudde/algo-loudness/dsp/core"

// completeStep closes the current step on every channel and appends the
// per-step history.
func (a *Analyzer) completeStep() {
	for i := range a.state {
		a.state[i].step()
	}

	a.steps++
	a.stepFill = 0

	step := float64(a.stepSize)

	if a.steps >= stepsPerMomentary {
		var sum float64
		for i := range a.state {
			sum += a.weights[i] * a.state[i].momentarySST
		}

		power := sum / (stepsPerMomentary * step)

		a.momentaryPower = append(a.momentaryPower, power)
		a.momentaryLoudness = append(a.momentaryLoudness, clampLevel(LoudnessForPower(power)))

		if power > absoluteGatePower {
			a.absGatedSum += power
			a.absGatedCount++
		}
	}

	if a.steps >= stepsPerShortTerm {
		var sum, peak float64
		for i := range a.state {
			sum += a.weights[i] * a.state[i].shortTermSST
			peak = max(peak, a.state[i].blockPeak)
		}

		loudness := clampLevel(LoudnessForPower(sum / (stepsPerShortTerm * step)))
		peakDB := clampLevel(core.LinearToDB(peak))

		a.shortTermLoudness = append(a.shortTermLoudness, loudness)
		a.shortTermPeak = append(a.shortTermPeak, peakDB)
		a.shortTermPLR = append(a.shortTermPLR, peakDB-loudness)
	}

	var sum float64
	for i := range a.state {
		sum += a.weights[i] * a.state[i].rms
	}

	a.rmsLevel = append(a.rmsLevel, clampLevel(core.LinearPowerToDB(sum/step)))
}

// clampLevel replaces -Inf, NaN and anything below MinLevel by MinLevel.
func clampLevel(db float64) float64 {
	return core.Floor(db, MinLevel)
}
