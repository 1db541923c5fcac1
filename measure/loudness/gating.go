package loudness

import (
	"math"
	"slices"

	"github.com/cwbudde/algo-loudness/dsp/core"
)

// IntegratedLoudness returns the gated integrated loudness in LUFS
// (BS.1770-4 with absolute and relative gate). ok is false until the first
// 400 ms block has completed. If no block passes the absolute gate the
// result is MinLevel.
func (a *Analyzer) IntegratedLoudness() (lufs float64, ok bool) {
	return IntegratedLoudnessOf(a)
}

// IntegratedLoudnessOf returns the integrated loudness of the union of the
// block histories of all analyzers, as if their audio had been measured by
// one analyzer. Both gates are applied over the union; the per-analyzer
// results are never averaged. Nil analyzers are skipped.
func IntegratedLoudnessOf(analyzers ...*Analyzer) (lufs float64, ok bool) {
	var (
		blocks   int
		absSum   float64
		absCount int
	)

	for _, a := range analyzers {
		if a == nil {
			continue
		}

		blocks += len(a.momentaryPower)
		absSum += a.absGatedSum
		absCount += a.absGatedCount
	}

	if blocks == 0 {
		return 0, false
	}

	if absCount == 0 {
		return MinLevel, true
	}

	relGate := PowerForLoudness(LoudnessForPower(absSum/float64(absCount)) + RelativeGate)
	gate := max(relGate, absoluteGatePower)

	var (
		sum   float64
		count int
	)

	for _, a := range analyzers {
		if a == nil {
			continue
		}

		for _, p := range a.momentaryPower {
			if p > gate {
				sum += p
				count++
			}
		}
	}

	if count == 0 {
		return MinLevel, true
	}

	return clampLevel(LoudnessForPower(sum / float64(count))), true
}

// RangeStats is the loudness range (EBU Tech 3342) of a stream.
type RangeStats struct {
	// RangeLU is P95 - P10 in LU.
	RangeLU float64 `json:"range_lu"`
	// P10 and P95 are percentiles of the gated short-term loudness in LUFS.
	P10 float64 `json:"p10_lufs"`
	P95 float64 `json:"p95_lufs"`
	// Max is the highest ungated short-term loudness in LUFS.
	Max float64 `json:"max_lufs"`
	// Stable is set once StableDuration seconds have been processed.
	Stable bool `json:"stable"`
}

// LoudnessRange returns the loudness range. ok is false while no 400 ms
// block has passed the absolute gate; Stable is reported either way.
func (a *Analyzer) LoudnessRange() (RangeStats, bool) {
	stats := RangeStats{
		P10:    MinLevel,
		P95:    MinLevel,
		Max:    MinLevel,
		Stable: float64(a.samples) >= StableDuration*a.sampleRate,
	}

	if a.absGatedCount == 0 {
		return stats, false
	}

	absLoudness := LoudnessForPower(a.absGatedSum / float64(a.absGatedCount))
	relGate := absLoudness + RangeRelativeGate

	gated := make([]float64, 0, len(a.shortTermLoudness))
	for _, l := range a.shortTermLoudness {
		if l > AbsoluteGate && l > relGate {
			gated = append(gated, l)
		}
	}

	if len(a.shortTermLoudness) > 0 {
		stats.Max = slices.Max(a.shortTermLoudness)
	}

	if len(gated) > 0 {
		slices.Sort(gated)
		stats.P10 = Percentile(gated, rangeLowPercentile)
		stats.P95 = Percentile(gated, rangeHighPercentile)
		stats.RangeLU = stats.P95 - stats.P10
	}

	return stats, true
}

// RMSStats summarizes the 100 ms RMS history in dBFS.
type RMSStats struct {
	P10 float64 `json:"p10_dbfs"`
	P95 float64 `json:"p95_dbfs"`
	Max float64 `json:"max_dbfs"`
}

// RMSStats returns percentiles of the 100 ms RMS levels. ok is false until
// the first step has completed.
func (a *Analyzer) RMSStats() (RMSStats, bool) {
	if len(a.rmsLevel) == 0 {
		return RMSStats{}, false
	}

	sorted := slices.Clone(a.rmsLevel)
	slices.Sort(sorted)

	return RMSStats{
		P10: Percentile(sorted, rmsLowPercentile),
		P95: Percentile(sorted, rmsHighPercentile),
		Max: sorted[len(sorted)-1],
	}, true
}

// Percentile returns the element of an ascending slice at index
// round((n-1)*p). p is clamped to [0, 1]; an empty slice yields NaN.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}

	if math.IsNaN(p) {
		p = 0
	}

	p = core.Clamp(p, 0, 1)
	idx := int(math.Round(float64(len(sorted)-1) * p))

	return sorted[idx]
}
