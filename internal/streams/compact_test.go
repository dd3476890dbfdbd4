package streams

import (
	"math"
	"sort"
	"testing"

	"stride/internal/activity"
)

func runningRaw() Raw {
	return Raw{
		Series: map[string][]float64{
			"time":            {100, 105, 110, 115},
			"heartrate":       {140, 142, 144, 146},
			"distance":        {0, 25, 50, 75},
			"altitude":        {10, 10.4, 11, 11.6},
			"velocity_smooth": {3.1, 3.25, 3.4, 3.55},
			"cadence":         {80, 81, 82, 83},
		},
		Moving: []bool{true, true, true, true},
	}
}

func compactKeys(m StreamsCompact) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func quantileKeys(m Quantiles) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestCompactRunningFullChannelSet(t *testing.T) {
	compact, quantiles := Compact(activity.ClassRunningLow, runningRaw(), 5)

	wantRows := map[string]string{
		"sampling":               "approx_5s",
		"time_s_csv":             "0,5,10,15",
		"pace_s_per_km_csv":      "200,200,200,200",
		"hr_bpm_csv":             "140,142,144,146",
		"alt_m_csv":              "10,10,11,12",
		"velocity_smooth_ms_csv": "3.10,3.25,3.40,3.55",
		"cadence_spm_csv":        "160,162,164,166",
	}
	if len(compact) != len(wantRows) {
		t.Fatalf("compact keys = %v, want %d rows", compactKeys(compact), len(wantRows))
	}
	for key, want := range wantRows {
		if got := compact[key]; got != want {
			t.Errorf("%s = %q, want %q", key, got, want)
		}
	}

	wantSummaries := []string{
		"altitude_m", "cadence_spm", "distance_m", "hr_bpm",
		"pace_s_per_km", "time_s", "velocity_smooth_ms",
	}
	got := quantileKeys(quantiles)
	if len(got) != len(wantSummaries) {
		t.Fatalf("quantile keys = %v, want %v", got, wantSummaries)
	}
	for i, key := range wantSummaries {
		if got[i] != key {
			t.Fatalf("quantile keys = %v, want %v", got, wantSummaries)
		}
	}

	if hr := quantiles["hr_bpm"]; hr.P50 != 143 {
		t.Errorf("hr_bpm P50 = %v, want 143", hr.P50)
	}
	// Cadence summaries reflect the doubled values.
	if cad := quantiles["cadence_spm"]; cad.P50 != 163 {
		t.Errorf("cadence_spm P50 = %v, want 163", cad.P50)
	}
	if pace := quantiles["pace_s_per_km"]; pace.P5 != 200 || pace.P95 != 200 {
		t.Errorf("pace quantiles = %+v, want all 200", pace)
	}
}

func TestCompactMovingFilterDropsStationarySamples(t *testing.T) {
	raw := Raw{
		Series: map[string][]float64{
			"time":      {0, 5, 10, 15},
			"heartrate": {140, 142, 144, 146},
		},
		Moving: []bool{true, false, true, true},
	}
	compact, quantiles := Compact(activity.ClassRunningHigh, raw, 5)

	// The filtered time axis keeps its original offsets, so the grid tick
	// at 5 falls back to the first sample.
	if got := compact["time_s_csv"]; got != "0,0,10,15" {
		t.Errorf("time_s_csv = %q, want %q", got, "0,0,10,15")
	}
	if got := compact["hr_bpm_csv"]; got != "140,140,144,146" {
		t.Errorf("hr_bpm_csv = %q, want %q", got, "140,140,144,146")
	}
	if hr := quantiles["hr_bpm"]; hr.P50 != 144 {
		t.Errorf("hr_bpm P50 = %v, want 144 after dropping the stationary sample", hr.P50)
	}
}

func TestCompactAllStationaryYieldsEmptyBlocks(t *testing.T) {
	raw := Raw{
		Series: map[string][]float64{
			"time":      {0, 5, 10},
			"heartrate": {140, 141, 142},
		},
		Moving: []bool{false, false, false},
	}
	compact, quantiles := Compact(activity.ClassRunningLow, raw, 5)
	if compact == nil || quantiles == nil {
		t.Fatal("blocks must be non-nil even when empty")
	}
	if len(compact) != 0 || len(quantiles) != 0 {
		t.Errorf("expected empty blocks, got %v / %v", compactKeys(compact), quantileKeys(quantiles))
	}
}

func TestCompactWithoutMovingFlagsSkipsFilter(t *testing.T) {
	raw := Raw{
		Series: map[string][]float64{
			"time":      {0, 5},
			"heartrate": {140, 150},
		},
	}
	_, quantiles := Compact(activity.ClassRunningLow, raw, 5)
	if hr := quantiles["hr_bpm"]; hr.P50 != 145 {
		t.Errorf("hr_bpm P50 = %v, want 145 over the unfiltered samples", hr.P50)
	}
}

func TestCompactTreppeIgnoresOutOfPlanSeries(t *testing.T) {
	raw := Raw{
		Series: map[string][]float64{
			"time":            {100, 105, 110},
			"heartrate":       {120, 122, 124},
			"altitude":        {30, 32, 34},
			"cadence":         {60, 61, 62},
			"distance":        {0, 5, 10},
			"velocity_smooth": {1, 1, 1},
		},
		// Stationary flags must not filter a stair session.
		Moving: []bool{false, false, false},
	}
	compact, quantiles := Compact(activity.ClassTreppe, raw, 5)

	wantRows := []string{"alt_m_csv", "cadence_spm_csv", "hr_bpm_csv", "sampling", "time_s_csv"}
	gotRows := compactKeys(compact)
	if len(gotRows) != len(wantRows) {
		t.Fatalf("compact keys = %v, want %v", gotRows, wantRows)
	}
	for i := range wantRows {
		if gotRows[i] != wantRows[i] {
			t.Fatalf("compact keys = %v, want %v", gotRows, wantRows)
		}
	}

	if got := compact["time_s_csv"]; got != "0,5,10" {
		t.Errorf("time_s_csv = %q, want rebased %q", got, "0,5,10")
	}
	if got := compact["cadence_spm_csv"]; got != "120,122,124" {
		t.Errorf("cadence_spm_csv = %q, want doubled %q", got, "120,122,124")
	}

	wantSummaries := []string{"altitude_m", "cadence_spm", "hr_bpm", "time_s"}
	gotSummaries := quantileKeys(quantiles)
	if len(gotSummaries) != len(wantSummaries) {
		t.Fatalf("quantile keys = %v, want %v", gotSummaries, wantSummaries)
	}
	for i := range wantSummaries {
		if gotSummaries[i] != wantSummaries[i] {
			t.Fatalf("quantile keys = %v, want %v", gotSummaries, wantSummaries)
		}
	}
}

func TestCompactRestOmitsAltitude(t *testing.T) {
	raw := Raw{
		Series: map[string][]float64{
			"time":      {0, 5, 10},
			"heartrate": {60, 61, 62},
			"altitude":  {500, 500, 500},
		},
	}
	compact, quantiles := Compact(activity.ClassRest, raw, 5)
	if _, ok := compact["alt_m_csv"]; ok {
		t.Error("rest records must not carry an altitude row")
	}
	if _, ok := quantiles["altitude_m"]; ok {
		t.Error("rest records must not carry an altitude summary")
	}
	if _, ok := compact["hr_bpm_csv"]; !ok {
		t.Error("expected heart rate row")
	}
}

func TestCompactOmitsMissingChannels(t *testing.T) {
	raw := Raw{
		Series: map[string][]float64{
			"time":      {0, 5, 10},
			"heartrate": {140, 141, 142},
		},
		Moving: []bool{true, true, true},
	}
	compact, quantiles := Compact(activity.ClassRunningLow, raw, 5)

	for _, key := range []string{"cadence_spm_csv", "alt_m_csv", "velocity_smooth_ms_csv", "pace_s_per_km_csv"} {
		if _, ok := compact[key]; ok {
			t.Errorf("unexpected row %q for a payload without the channel", key)
		}
	}
	for _, key := range []string{"cadence_spm", "altitude_m", "velocity_smooth_ms", "pace_s_per_km", "distance_m"} {
		if _, ok := quantiles[key]; ok {
			t.Errorf("unexpected summary %q for a payload without the channel", key)
		}
	}
}

func TestCompactNullOnlyChannelKeepsRowWithoutSummary(t *testing.T) {
	raw := Raw{
		Series: map[string][]float64{
			"time":      {0, 5, 10},
			"heartrate": {math.NaN(), math.NaN(), math.NaN()},
		},
	}
	compact, quantiles := Compact(activity.ClassRest, raw, 5)
	if got, ok := compact["hr_bpm_csv"]; !ok || got != ",," {
		t.Errorf("hr_bpm_csv = %q (present=%v), want empty tokens", got, ok)
	}
	if _, ok := quantiles["hr_bpm"]; ok {
		t.Error("null-only channel must not produce a summary")
	}
}

func TestCompactDegenerateInputs(t *testing.T) {
	compact, quantiles := Compact(activity.ClassRunningLow, Raw{}, 5)
	if len(compact) != 0 || len(quantiles) != 0 {
		t.Errorf("empty payload should yield empty blocks, got %v / %v", compact, quantiles)
	}

	compact, _ = Compact(activity.ClassRest, Raw{Series: map[string][]float64{
		"heartrate": {140, 141},
	}}, 5)
	if len(compact) != 0 {
		t.Errorf("payload without a time channel should yield empty blocks, got %v", compact)
	}
}

func TestBuildRecordAssemblesAllBlocks(t *testing.T) {
	meta := Metadata{ID: 981, Name: "Running 3"}
	record := BuildRecord(meta, activity.ClassRunningLow, runningRaw(), 5)
	if record.Metadata.ID != 981 {
		t.Errorf("metadata id = %d, want 981", record.Metadata.ID)
	}
	if record.StreamsCompact == nil || record.Quantiles == nil {
		t.Fatal("record blocks must be non-nil")
	}
	if record.StreamsCompact["sampling"] != "approx_5s" {
		t.Errorf("sampling = %q, want approx_5s", record.StreamsCompact["sampling"])
	}
}
