package activity

import (
	"slices"
	"testing"
)

func TestChannelSetPerClass(t *testing.T) {
	tests := []struct {
		name     string
		class    Class
		channels []Channel
	}{
		{
			name:     "running carries the full set",
			class:    ClassRunningLow,
			channels: []Channel{ChannelTime, ChannelPace, ChannelHeartRate, ChannelAltitude, ChannelVelocity, ChannelCadence, ChannelDistance},
		},
		{
			name:     "both running intensities share one set",
			class:    ClassRunningHigh,
			channels: []Channel{ChannelTime, ChannelPace, ChannelHeartRate, ChannelAltitude, ChannelVelocity, ChannelCadence, ChannelDistance},
		},
		{
			name:     "treppe drops pace and velocity",
			class:    ClassTreppe,
			channels: []Channel{ChannelTime, ChannelHeartRate, ChannelAltitude, ChannelCadence},
		},
		{
			name:     "rest keeps only time and heart rate",
			class:    ClassRest,
			channels: []Channel{ChannelTime, ChannelHeartRate},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slots := ChannelSet(tt.class)
			got := make([]Channel, len(slots))
			for i, slot := range slots {
				got[i] = slot.Channel
			}
			if !slices.Equal(got, tt.channels) {
				t.Errorf("ChannelSet(%v) channels = %v, want %v", tt.class, got, tt.channels)
			}
		})
	}
}

func TestChannelSetKeyMapping(t *testing.T) {
	for _, slot := range ChannelSet(ClassRunningLow) {
		switch slot.Channel {
		case ChannelPace:
			if slot.Stream != "" {
				t.Errorf("pace should be derived, has stream %q", slot.Stream)
			}
			if slot.CompactKey != "pace_s_per_km_csv" || slot.QuantileKey != "pace_s_per_km" {
				t.Errorf("unexpected pace keys: %q / %q", slot.CompactKey, slot.QuantileKey)
			}
		case ChannelDistance:
			if slot.CompactKey != "" {
				t.Errorf("distance should have no sampled row, has %q", slot.CompactKey)
			}
			if slot.QuantileKey != "distance_m" {
				t.Errorf("unexpected distance quantile key %q", slot.QuantileKey)
			}
			if slot.Required {
				t.Error("distance summary should be optional")
			}
		case ChannelAltitude:
			if slot.CompactKey != "alt_m_csv" || slot.QuantileKey != "altitude_m" {
				t.Errorf("unexpected altitude keys: %q / %q", slot.CompactKey, slot.QuantileKey)
			}
		case ChannelHeartRate:
			if slot.CompactKey != "hr_bpm_csv" || slot.QuantileKey != "hr_bpm" {
				t.Errorf("unexpected heart rate keys: %q / %q", slot.CompactKey, slot.QuantileKey)
			}
		}
	}
}

func TestFetchKeys(t *testing.T) {
	tests := []struct {
		name  string
		class Class
		keys  []string
	}{
		{
			name:  "running requests moving flags for the stationary filter",
			class: ClassRunningHigh,
			keys:  []string{"time", "heartrate", "altitude", "velocity_smooth", "cadence", "distance", "moving"},
		},
		{
			name:  "treppe requests no distance or moving flags",
			class: ClassTreppe,
			keys:  []string{"time", "heartrate", "altitude", "cadence"},
		},
		{
			name:  "rest requests the minimal pair",
			class: ClassRest,
			keys:  []string{"time", "heartrate"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FetchKeys(tt.class)
			if !slices.Equal(got, tt.keys) {
				t.Errorf("FetchKeys(%v) = %v, want %v", tt.class, got, tt.keys)
			}
		})
	}
}
