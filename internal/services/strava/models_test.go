package strava

import (
	"encoding/json"
	"math"
	"testing"
)

func TestStreamSetRawConversion(t *testing.T) {
	payload := `[
		{"type":"time","data":[0,1,2],"series_type":"distance","original_size":3,"resolution":"high"},
		{"type":"heartrate","data":[140,null,150]},
		{"type":"moving","data":[true,false,true]},
		{"type":"latlng","data":[[47.36,8.54],[47.37,8.55],[47.38,8.56]]}
	]`
	var set StreamSet
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	raw := set.Raw()
	times, ok := raw.Series["time"]
	if !ok || len(times) != 3 {
		t.Fatalf("expected 3 time samples, got %v", raw.Series["time"])
	}
	hr := raw.Series["heartrate"]
	if len(hr) != 3 {
		t.Fatalf("expected 3 heartrate samples, got %v", hr)
	}
	if hr[0] != 140 || hr[2] != 150 {
		t.Fatalf("unexpected heartrate values: %v", hr)
	}
	if !math.IsNaN(hr[1]) {
		t.Fatalf("expected null heartrate reading to decode as NaN, got %v", hr[1])
	}
	if len(raw.Moving) != 3 || !raw.Moving[0] || raw.Moving[1] || !raw.Moving[2] {
		t.Fatalf("unexpected moving flags: %v", raw.Moving)
	}
	// Coordinate pairs are not numeric samples; they decode to null readings
	// and stay out of the compaction plan.
	for i, v := range raw.Series["latlng"] {
		if !math.IsNaN(v) {
			t.Fatalf("expected latlng[%d] to be NaN, got %v", i, v)
		}
	}
}

func TestStreamSetRawSkipsEmptyArrays(t *testing.T) {
	set := StreamSet{
		{Type: "time", Data: mustTokens(t, 0.0, 5.0)},
		{Type: "cadence", Data: nil},
		{Type: "", Data: mustTokens(t, 1.0)},
	}

	raw := set.Raw()
	if _, ok := raw.Series["cadence"]; ok {
		t.Fatal("expected empty cadence stream to be dropped")
	}
	if len(raw.Series) != 1 {
		t.Fatalf("expected only the time series, got %v", raw.Series)
	}
}

func TestStreamSetRawAllNullMovingDropsFlags(t *testing.T) {
	payload := `[
		{"type":"time","data":[0,1]},
		{"type":"moving","data":[null,null]}
	]`
	var set StreamSet
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	raw := set.Raw()
	if raw.Moving != nil {
		t.Fatalf("expected no recorded moving flags, got %v", raw.Moving)
	}
}

func TestStreamSetRawKeepsAllFalseMoving(t *testing.T) {
	payload := `[
		{"type":"time","data":[0,1]},
		{"type":"moving","data":[false,false]}
	]`
	var set StreamSet
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	raw := set.Raw()
	if len(raw.Moving) != 2 {
		t.Fatalf("expected recorded all-false flags to survive, got %v", raw.Moving)
	}
	if raw.Moving[0] || raw.Moving[1] {
		t.Fatalf("expected all-false flags, got %v", raw.Moving)
	}
}

func TestStreamSetRoundTripsThroughJSON(t *testing.T) {
	original := `[
		{"type":"time","data":[0,5,10]},
		{"type":"heartrate","data":[120,null,130]},
		{"type":"moving","data":[true,true,false]}
	]`
	var set StreamSet
	if err := json.Unmarshal([]byte(original), &set); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}

	// The payload cache stores the re-encoded set, so the decode result must
	// survive a marshal cycle unchanged.
	encoded, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal set: %v", err)
	}
	var restored StreamSet
	if err := json.Unmarshal(encoded, &restored); err != nil {
		t.Fatalf("unmarshal re-encoded set: %v", err)
	}

	raw := restored.Raw()
	hr := raw.Series["heartrate"]
	if len(hr) != 3 || hr[0] != 120 || !math.IsNaN(hr[1]) || hr[2] != 130 {
		t.Fatalf("round trip corrupted heartrate samples: %v", hr)
	}
	if len(raw.Moving) != 3 || !raw.Moving[0] || !raw.Moving[1] || raw.Moving[2] {
		t.Fatalf("round trip corrupted moving flags: %v", raw.Moving)
	}
}

func TestActivityMetadataMapping(t *testing.T) {
	distance := 5000.0
	movingTime := int64(1500)
	avgHR := 148.3

	act := Activity{
		ID:               987654,
		Name:             "Running 12 (Polar A)",
		Type:             "Run",
		SportType:        "Run",
		StartDate:        "2026-08-01T06:30:00Z",
		Distance:         &distance,
		MovingTime:       &movingTime,
		AverageHeartrate: &avgHR,
		KudosCount:       3,
	}

	meta := act.Metadata()
	if meta.ID != 987654 {
		t.Fatalf("expected id 987654, got %d", meta.ID)
	}
	if meta.DistanceM == nil || *meta.DistanceM != 5000 {
		t.Fatalf("unexpected distance: %v", meta.DistanceM)
	}
	if meta.MovingTimeS == nil || *meta.MovingTimeS != 1500 {
		t.Fatalf("unexpected moving time: %v", meta.MovingTimeS)
	}
	if meta.Calories != nil {
		t.Fatalf("expected absent calories to stay nil, got %v", *meta.Calories)
	}

	// Absent numerics must disappear from the serialized metadata rather
	// than flattening to zero.
	encoded, err := json.Marshal(meta)
	if err != nil {
		t.Fatalf("marshal metadata: %v", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(encoded, &fields); err != nil {
		t.Fatalf("unmarshal metadata: %v", err)
	}
	if _, ok := fields["calories"]; ok {
		t.Fatal("expected calories to be omitted")
	}
	if _, ok := fields["max_speed_ms"]; ok {
		t.Fatal("expected max_speed_ms to be omitted")
	}
	if got := fields["distance_m"]; got != 5000.0 {
		t.Fatalf("expected distance_m 5000, got %v", got)
	}
}

func TestAthleteDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		athlete Athlete
		want    string
	}{
		{"full name", Athlete{ID: 1, Firstname: "Anna", Lastname: "Keller"}, "Anna Keller"},
		{"first only", Athlete{ID: 1, Firstname: "Anna"}, "Anna"},
		{"username fallback", Athlete{ID: 1, Username: "runner_a"}, "runner_a"},
		{"id fallback", Athlete{ID: 42}, "athlete 42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.athlete.DisplayName(); got != tt.want {
				t.Fatalf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func mustTokens(t *testing.T, values ...float64) []json.RawMessage {
	t.Helper()
	tokens := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal token: %v", err)
		}
		tokens = append(tokens, data)
	}
	return tokens
}
