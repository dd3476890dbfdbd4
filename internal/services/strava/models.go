package strava

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"stride/internal/activity"
	"stride/internal/streams"
)

// Athlete is the authenticated athlete summary.
type Athlete struct {
	ID        int64   `json:"id"`
	Username  string  `json:"username,omitempty"`
	Firstname string  `json:"firstname,omitempty"`
	Lastname  string  `json:"lastname,omitempty"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Sex       string  `json:"sex,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
	Weight    float64 `json:"weight,omitempty"`
}

// DisplayName returns a printable name for the athlete.
func (a Athlete) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(a.Firstname) + " " + strings.TrimSpace(a.Lastname))
	if name != "" {
		return name
	}
	if a.Username != "" {
		return a.Username
	}
	return fmt.Sprintf("athlete %d", a.ID)
}

// Activity is an activity summary as returned by the listing and detail
// endpoints. Numeric fields the API may omit are pointers so an absent value
// stays distinguishable from a recorded zero.
type Activity struct {
	ID                 int64    `json:"id"`
	Name               string   `json:"name"`
	Type               string   `json:"type,omitempty"`
	SportType          string   `json:"sport_type,omitempty"`
	StartDate          string   `json:"start_date,omitempty"`
	Distance           *float64 `json:"distance,omitempty"`
	MovingTime         *int64   `json:"moving_time,omitempty"`
	ElapsedTime        *int64   `json:"elapsed_time,omitempty"`
	TotalElevationGain *float64 `json:"total_elevation_gain,omitempty"`
	AverageSpeed       *float64 `json:"average_speed,omitempty"`
	MaxSpeed           *float64 `json:"max_speed,omitempty"`
	AverageHeartrate   *float64 `json:"average_heartrate,omitempty"`
	MaxHeartrate       *float64 `json:"max_heartrate,omitempty"`
	Calories           *float64 `json:"calories,omitempty"`
	KudosCount         int      `json:"kudos_count,omitempty"`
	CommentCount       int      `json:"comment_count,omitempty"`
	Trainer            bool     `json:"trainer,omitempty"`
	Commute            bool     `json:"commute,omitempty"`
	Manual             bool     `json:"manual,omitempty"`
}

// Metadata maps the activity summary onto the export record's metadata block.
func (a Activity) Metadata() streams.Metadata {
	return streams.Metadata{
		ID:                  a.ID,
		Name:                a.Name,
		Type:                a.Type,
		StartDate:           a.StartDate,
		DistanceM:           a.Distance,
		MovingTimeS:         a.MovingTime,
		ElapsedTimeS:        a.ElapsedTime,
		TotalElevationGainM: a.TotalElevationGain,
		AverageSpeedMS:      a.AverageSpeed,
		MaxSpeedMS:          a.MaxSpeed,
		AverageHeartRateBPM: a.AverageHeartrate,
		MaxHeartRateBPM:     a.MaxHeartrate,
		Calories:            a.Calories,
		KudosCount:          a.KudosCount,
		CommentCount:        a.CommentCount,
		Trainer:             a.Trainer,
		Commute:             a.Commute,
		Manual:              a.Manual,
	}
}

// Stream is one channel of the streams endpoint's list response. Data keeps
// the raw JSON tokens because the arrays are heterogeneous: numbers with
// interspersed nulls for most channels, booleans for the moving flags, and
// coordinate pairs for latlng.
type Stream struct {
	Type         string            `json:"type"`
	Data         []json.RawMessage `json:"data"`
	SeriesType   string            `json:"series_type,omitempty"`
	OriginalSize int               `json:"original_size,omitempty"`
	Resolution   string            `json:"resolution,omitempty"`
}

// StreamSet is the full streams payload for one activity.
type StreamSet []Stream

// Raw converts the wire payload into the compaction input. Channels with an
// empty data array are dropped so a present key always means recorded samples
// exist. Null readings become NaN. The moving flags are kept only when at
// least one flag was actually recorded; an all-null moving stream is treated
// the same as a missing one.
func (set StreamSet) Raw() streams.Raw {
	raw := streams.Raw{Series: make(map[string][]float64, len(set))}
	for _, s := range set {
		if s.Type == "" || len(s.Data) == 0 {
			continue
		}
		if s.Type == activity.StreamMoving {
			if flags, recorded := s.boolValues(); recorded {
				raw.Moving = flags
			}
			continue
		}
		raw.Series[s.Type] = s.floatValues()
	}
	return raw
}

func (s Stream) floatValues() []float64 {
	out := make([]float64, len(s.Data))
	for i, token := range s.Data {
		var v *float64
		if err := json.Unmarshal(token, &v); err != nil || v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	return out
}

func (s Stream) boolValues() ([]bool, bool) {
	flags := make([]bool, len(s.Data))
	recorded := false
	for i, token := range s.Data {
		var v *bool
		if err := json.Unmarshal(token, &v); err != nil || v == nil {
			continue
		}
		recorded = true
		flags[i] = *v
	}
	return flags, recorded
}
