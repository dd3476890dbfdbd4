package streams

import (
	"math"
	"strconv"
	"strings"
)

// PaceQuantiles summarizes the instantaneous pace, in seconds per
// kilometer, between consecutive raw samples. Pairs without a positive time
// and distance delta contribute nothing; ok is false when no pair
// qualifies, which covers stationary sessions and activities without a
// distance channel worth the name.
func PaceQuantiles(times, distances []float64) (QuantileSet, bool) {
	paces := make([]float64, 0, len(times))
	for i := 1; i < len(times); i++ {
		dt := times[i] - times[i-1]
		if dt <= 0 {
			continue
		}
		if i >= len(distances) || math.IsNaN(distances[i]) || math.IsNaN(distances[i-1]) {
			continue
		}
		dd := distances[i] - distances[i-1]
		if dd <= 0 {
			continue
		}
		paces = append(paces, dt/dd*1000)
	}
	if len(paces) == 0 {
		return QuantileSet{}, false
	}
	return Summarize(paces)
}

// paceRow derives the per-tick pace row from the resampled time and
// distance rows. The first tick looks forward to the second sample, later
// ticks look back to the previous one; ticks without a positive time and
// distance delta carry the null token.
func paceRow(sampledTime, sampledDistance []float64) string {
	tokens := make([]string, len(sampledTime))
	for i := range sampledTime {
		var dt, dd float64
		switch {
		case i == 0 && len(sampledTime) > 1:
			dt = sampledTime[1] - sampledTime[0]
			dd = sampledDistance[1] - sampledDistance[0]
		case i > 0:
			dt = sampledTime[i] - sampledTime[i-1]
			dd = sampledDistance[i] - sampledDistance[i-1]
		default:
			tokens[i] = ""
			continue
		}
		if math.IsNaN(dd) || dd <= 0 || dt <= 0 {
			tokens[i] = ""
			continue
		}
		tokens[i] = strconv.Itoa(int(math.Round(dt / dd * 1000)))
	}
	return strings.Join(tokens, ",")
}
