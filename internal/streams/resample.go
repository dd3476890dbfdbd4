package streams

import (
	"math"
	"sort"
)

// Grid returns the uniform output tick timestamps for an activity of the
// given duration: t = 0, interval, 2*interval, ..., with exactly
// ceil(duration/interval)+1 ticks. Returns nil when the inputs cannot form
// a grid.
func Grid(duration, interval float64) []float64 {
	if interval <= 0 || duration < 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil
	}
	count := int(math.Ceil(duration/interval)) + 1
	ticks := make([]float64, count)
	for i := range ticks {
		ticks[i] = float64(i) * interval
	}
	return ticks
}

// Resample picks, for each tick, the raw sample nearest by timestamp and
// returns its value. The output always has len(ticks) entries; ticks with
// no usable sample carry NaN. Timestamps must be ascending. A series
// shorter than the time axis has no reading at the trailing timestamps, so
// ticks landing there carry NaN rather than a borrowed value.
//
// Nearest-neighbor selection means ticks before the first sample repeat its
// value and ticks after the last sample repeat that one, so late-starting
// sensors do not produce a leading run of nulls. Resampling an already
// resampled series at the same interval reproduces it unchanged.
func Resample(times, values []float64, ticks []float64) []float64 {
	out := make([]float64, len(ticks))
	if len(times) == 0 {
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}
	for i, tick := range ticks {
		idx := nearestIndex(times, tick)
		if idx < len(values) {
			out[i] = values[idx]
		} else {
			out[i] = math.NaN()
		}
	}
	return out
}

// nearestIndex returns the index of the sample closest to target, preferring
// the earlier sample on exact ties.
func nearestIndex(times []float64, target float64) int {
	idx := sort.SearchFloat64s(times, target)
	if idx == 0 {
		return 0
	}
	if idx == len(times) {
		return len(times) - 1
	}
	if target-times[idx-1] <= times[idx]-target {
		return idx - 1
	}
	return idx
}
