package streams

import (
	"math"

	"stride/internal/activity"
)

// cadenceMultiplier converts the API's cycling-style cadence (full
// revolutions per minute) into running steps per minute.
const cadenceMultiplier = 2

const (
	timeKey    = string(activity.ChannelTime)
	cadenceKey = string(activity.ChannelCadence)
)

// Raw holds one activity's raw stream payload. Series arrays are aligned by
// sample index, with NaN marking null readings. Moving carries the
// per-sample moving flags when the payload recorded any; it stays nil when
// the stream was absent or held no recorded values, in which case no
// stationary filtering applies.
type Raw struct {
	Series map[string][]float64
	Moving []bool
}

// prepare applies the pre-compaction transforms for class and returns the
// working series set: running activities keep only moving samples, cadence
// is doubled, and time is rebased to start at zero. ok is false when
// nothing usable remains, either because the payload was empty, every
// sample was stationary, or the time channel is missing.
func prepare(class activity.Class, raw Raw) (map[string][]float64, bool) {
	if len(raw.Series) == 0 {
		return nil, false
	}

	var series map[string][]float64
	if class.IsRunning() {
		filtered, ok := filterMoving(raw.Series, raw.Moving)
		if !ok {
			return nil, false
		}
		series = filtered
	} else {
		series = make(map[string][]float64, len(raw.Series))
		for key, data := range raw.Series {
			series[key] = data
		}
	}

	doubleCadence(series)

	times := series[timeKey]
	if len(times) == 0 {
		return nil, false
	}
	rebased := make([]float64, len(times))
	offset := times[0]
	for i, t := range times {
		rebased[i] = t - offset
	}
	series[timeKey] = rebased

	return series, true
}

// filterMoving keeps only the samples recorded while the athlete was moving.
// ok is false when flags were recorded but none are true, meaning the whole
// session was stationary and nothing survives the filter.
func filterMoving(series map[string][]float64, moving []bool) (map[string][]float64, bool) {
	if moving == nil {
		clone := make(map[string][]float64, len(series))
		for key, data := range series {
			clone[key] = data
		}
		return clone, true
	}

	keep := make([]int, 0, len(moving))
	for i, flag := range moving {
		if flag {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return nil, false
	}

	filtered := make(map[string][]float64, len(series))
	for key, data := range series {
		subset := make([]float64, 0, len(keep))
		for _, i := range keep {
			if i < len(data) {
				subset = append(subset, data[i])
			}
		}
		filtered[key] = subset
	}
	return filtered, true
}

func doubleCadence(series map[string][]float64) {
	data, ok := series[cadenceKey]
	if !ok {
		return
	}
	doubled := make([]float64, len(data))
	for i, v := range data {
		if math.IsNaN(v) {
			doubled[i] = v
			continue
		}
		doubled[i] = v * cadenceMultiplier
	}
	series[cadenceKey] = doubled
}
