package activity

// Channel identifies one canonical time-series slot of an activity.
type Channel string

const (
	ChannelTime      Channel = "time"
	ChannelPace      Channel = "pace"
	ChannelHeartRate Channel = "heartrate"
	ChannelAltitude  Channel = "altitude"
	ChannelVelocity  Channel = "velocity_smooth"
	ChannelCadence   Channel = "cadence"
	ChannelDistance  Channel = "distance"
)

// StreamMoving keys the per-sample moving flags in the raw stream payload.
// The flags feed the stationary-sample filter for running activities and
// never appear in the output record themselves.
const StreamMoving = "moving"

// Slot describes how one canonical channel appears in an export record.
// A slot without a Stream key is derived from other channels, a slot
// without a CompactKey has no sampled row, and a slot without a QuantileKey
// has no summary block.
type Slot struct {
	Channel     Channel
	Stream      string
	CompactKey  string
	QuantileKey string
	Required    bool
}

var runningSlots = []Slot{
	{Channel: ChannelTime, Stream: "time", CompactKey: "time_s_csv", QuantileKey: "time_s", Required: true},
	{Channel: ChannelPace, CompactKey: "pace_s_per_km_csv", QuantileKey: "pace_s_per_km", Required: true},
	{Channel: ChannelHeartRate, Stream: "heartrate", CompactKey: "hr_bpm_csv", QuantileKey: "hr_bpm", Required: true},
	{Channel: ChannelAltitude, Stream: "altitude", CompactKey: "alt_m_csv", QuantileKey: "altitude_m", Required: true},
	{Channel: ChannelVelocity, Stream: "velocity_smooth", CompactKey: "velocity_smooth_ms_csv", QuantileKey: "velocity_smooth_ms", Required: true},
	{Channel: ChannelCadence, Stream: "cadence", CompactKey: "cadence_spm_csv", QuantileKey: "cadence_spm", Required: true},
	{Channel: ChannelDistance, Stream: "distance", QuantileKey: "distance_m"},
}

var treppeSlots = []Slot{
	{Channel: ChannelTime, Stream: "time", CompactKey: "time_s_csv", QuantileKey: "time_s", Required: true},
	{Channel: ChannelHeartRate, Stream: "heartrate", CompactKey: "hr_bpm_csv", QuantileKey: "hr_bpm", Required: true},
	{Channel: ChannelAltitude, Stream: "altitude", CompactKey: "alt_m_csv", QuantileKey: "altitude_m", Required: true},
	{Channel: ChannelCadence, Stream: "cadence", CompactKey: "cadence_spm_csv", QuantileKey: "cadence_spm", Required: true},
}

var restSlots = []Slot{
	{Channel: ChannelTime, Stream: "time", CompactKey: "time_s_csv", QuantileKey: "time_s", Required: true},
	{Channel: ChannelHeartRate, Stream: "heartrate", CompactKey: "hr_bpm_csv", QuantileKey: "hr_bpm", Required: true},
}

// ChannelSet returns the ordered canonical channel slots for class. The
// returned slice is shared; callers must not mutate it.
func ChannelSet(class Class) []Slot {
	switch class {
	case ClassRunningLow, ClassRunningHigh:
		return runningSlots
	case ClassTreppe:
		return treppeSlots
	case ClassRest:
		return restSlots
	}
	return nil
}

// FetchKeys returns the raw stream keys to request from the activity API for
// class. Running classes add the moving flags for the stationary filter.
func FetchKeys(class Class) []string {
	slots := ChannelSet(class)
	keys := make([]string, 0, len(slots)+1)
	for _, slot := range slots {
		if slot.Stream == "" {
			continue
		}
		keys = append(keys, slot.Stream)
	}
	if class.IsRunning() {
		keys = append(keys, StreamMoving)
	}
	return keys
}
