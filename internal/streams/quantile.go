package streams

import (
	"math"
	"sort"
)

// quantileLevels are the percentiles carried by every channel summary.
var quantileLevels = [5]float64{5, 25, 50, 75, 95}

// QuantileSet holds the five-point percentile summary of one channel.
// JSON keys are the percentile levels themselves.
type QuantileSet struct {
	P5  float64 `json:"5"`
	P25 float64 `json:"25"`
	P50 float64 `json:"50"`
	P75 float64 `json:"75"`
	P95 float64 `json:"95"`
}

// Summarize computes the five-point percentile summary over the non-null
// values of a channel, interpolating linearly between order statistics.
// A single value yields that value at every level. ok is false when the
// channel has no non-null values at all, in which case the channel gets no
// summary rather than a fabricated one.
func Summarize(values []float64) (QuantileSet, bool) {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		clean = append(clean, v)
	}
	if len(clean) == 0 {
		return QuantileSet{}, false
	}
	sort.Float64s(clean)

	var levels [5]float64
	for i, level := range quantileLevels {
		levels[i] = round6(percentile(clean, level))
	}
	return QuantileSet{
		P5:  levels[0],
		P25: levels[1],
		P50: levels[2],
		P75: levels[3],
		P95: levels[4],
	}, true
}

// percentile returns the p-th percentile of sorted values using linear
// interpolation between order statistics.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// round6 limits summary values to six decimal places so records stay
// compact and stable across runs.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
