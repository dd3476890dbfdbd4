package streams

import (
	"fmt"

	"stride/internal/activity"
)

// DefaultInterval is the sampling interval, in seconds, used when none is
// configured.
const DefaultInterval = 5.0

// samplingKey labels the grid resolution inside streams_compact.
const samplingKey = "sampling"

// Metadata is the per-activity summary block of an export record. Fields
// the source payload did not carry are dropped from the JSON object.
type Metadata struct {
	ID                  int64    `json:"id"`
	Name                string   `json:"name,omitempty"`
	Type                string   `json:"type,omitempty"`
	StartDate           string   `json:"start_date,omitempty"`
	DistanceM           *float64 `json:"distance_m,omitempty"`
	MovingTimeS         *int64   `json:"moving_time_s,omitempty"`
	ElapsedTimeS        *int64   `json:"elapsed_time_s,omitempty"`
	TotalElevationGainM *float64 `json:"total_elevation_gain_m,omitempty"`
	AverageSpeedMS      *float64 `json:"average_speed_ms,omitempty"`
	MaxSpeedMS          *float64 `json:"max_speed_ms,omitempty"`
	AverageHeartRateBPM *float64 `json:"average_heartrate_bpm,omitempty"`
	MaxHeartRateBPM     *float64 `json:"max_heartrate_bpm,omitempty"`
	Calories            *float64 `json:"calories,omitempty"`
	KudosCount          int      `json:"kudos_count,omitempty"`
	CommentCount        int      `json:"comment_count,omitempty"`
	Trainer             bool     `json:"trainer,omitempty"`
	Commute             bool     `json:"commute,omitempty"`
	Manual              bool     `json:"manual,omitempty"`
}

// StreamsCompact maps compact row keys to their CSV-encoded samples. A key
// exists exactly when the raw payload carried the channel; a present but
// fully null channel keeps its key with empty tokens.
type StreamsCompact map[string]string

// Quantiles maps summary keys to their five-point percentile sets.
type Quantiles map[string]QuantileSet

// Record is one activity line of the export file. All three blocks are
// always serialized, empty or not, so every line carries the same shape.
type Record struct {
	Metadata       Metadata       `json:"metadata"`
	StreamsCompact StreamsCompact `json:"streams_compact"`
	Quantiles      Quantiles      `json:"quantiles"`
}

// BuildRecord composes the export line for one classified activity.
func BuildRecord(meta Metadata, class activity.Class, raw Raw, interval float64) Record {
	compact, quantiles := Compact(class, raw, interval)
	return Record{
		Metadata:       meta,
		StreamsCompact: compact,
		Quantiles:      quantiles,
	}
}

// SamplingLabel names the grid resolution recorded in each compact block.
func SamplingLabel(interval float64) string {
	return fmt.Sprintf("approx_%ds", int(interval))
}

// Compact resamples and summarizes an activity's raw streams according to
// its class. Summaries are taken over the raw sample values after the
// class-specific preparation; the compact rows come from nearest-neighbor
// resampling onto the uniform tick grid. Both maps are always non-nil, and
// both stay empty when the activity has no usable samples.
func Compact(class activity.Class, raw Raw, interval float64) (StreamsCompact, Quantiles) {
	compact := StreamsCompact{}
	quantiles := Quantiles{}

	series, ok := prepare(class, raw)
	if !ok {
		return compact, quantiles
	}

	times := series[timeKey]
	ticks := Grid(times[len(times)-1], interval)
	if len(ticks) == 0 {
		return compact, quantiles
	}
	timeRow := Resample(times, times, ticks)

	compact[samplingKey] = SamplingLabel(interval)
	for _, slot := range activity.ChannelSet(class) {
		if slot.Channel == activity.ChannelPace {
			distances, present := series[string(activity.ChannelDistance)]
			if !present {
				continue
			}
			if set, ok := PaceQuantiles(times, distances); ok {
				quantiles[slot.QuantileKey] = set
			}
			distanceRow := Resample(times, distances, ticks)
			compact[slot.CompactKey] = paceRow(timeRow, distanceRow)
			continue
		}

		data, present := series[slot.Stream]
		if !present {
			continue
		}
		if slot.QuantileKey != "" {
			if set, ok := Summarize(data); ok {
				quantiles[slot.QuantileKey] = set
			}
		}
		if slot.CompactKey != "" {
			compact[slot.CompactKey] = EncodeRow(slot.Channel, Resample(times, data, ticks))
		}
	}

	return compact, quantiles
}
