package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stride/internal/services/strava"
	"stride/internal/streams"
	"stride/internal/testsupport"
)

// newStravaStub serves a fixed account: one running activity for owner A and
// one stair session for owner B.
func newStravaStub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/athlete", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":7,"firstname":"Anna","lastname":"Keller","city":"Bern","country":"Switzerland","weight":61.5}`)
	})
	mux.HandleFunc("/athlete/activities", func(w http.ResponseWriter, r *http.Request) {
		if page := r.URL.Query().Get("page"); page != "" && page != "1" {
			fmt.Fprint(w, `[]`)
			return
		}
		fmt.Fprint(w, `[
			{"id":101,"name":"Running 3 (Polar A)","sport_type":"Run","start_date":"2024-05-12T06:30:00Z","distance":5000,"moving_time":1500,"average_heartrate":150,"max_heartrate":172},
			{"id":102,"name":"Treppe 4 (Apple B)","sport_type":"StairStepper","start_date":"2024-05-12T18:00:00Z","moving_time":900,"average_heartrate":130}
		]`)
	})
	mux.HandleFunc("/activities/101", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":101,"name":"Running 3 (Polar A)","sport_type":"Run","start_date":"2024-05-12T06:30:00Z","distance":5000,"moving_time":1500,"elapsed_time":1560,"average_heartrate":150,"max_heartrate":172,"calories":420}`)
	})
	mux.HandleFunc("/activities/101/streams", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"type":"time","data":[0,5,10,15]},
			{"type":"heartrate","data":[140,142,144,146]},
			{"type":"distance","data":[0,15,30,45]}
		]`)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCLIExportWritesJSONL(t *testing.T) {
	srv := newStravaStub(t)
	cfg := newTestConfig(t, testsupport.WithStravaBaseURL(srv.URL), testsupport.WithLinkedAccount())
	configPath := writeTestConfig(t, cfg)

	outPath := filepath.Join(t.TempDir(), "export.jsonl")
	out, _, err := runCLI(t, []string{"export", "--person", "A", "--interval", "5", "--out", outPath}, configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	requireContains(t, out, "Wrote 1 records to "+outPath)

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	var record streams.Record
	if err := json.Unmarshal([]byte(strings.TrimSpace(string(data))), &record); err != nil {
		t.Fatalf("decode record: %v", err)
	}
	if record.Metadata.ID != 101 {
		t.Fatalf("exported activity = %d, want 101", record.Metadata.ID)
	}
	if _, ok := record.StreamsCompact["hr_bpm_csv"]; !ok {
		t.Fatalf("record is missing heart rate row: %v", record.StreamsCompact)
	}
}

func TestCLIExportDefaultOutputPath(t *testing.T) {
	srv := newStravaStub(t)
	cfg := newTestConfig(t, testsupport.WithStravaBaseURL(srv.URL), testsupport.WithLinkedAccount())
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"export", "--person", "A", "--interval", "5"}, configPath)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	expected := filepath.Join(cfg.Paths.OutputDir, "activities_a_5s.jsonl")
	requireContains(t, out, expected)
	if _, err := os.Stat(expected); err != nil {
		t.Fatalf("expected export at %s: %v", expected, err)
	}
}

func TestCLIActivitiesTable(t *testing.T) {
	srv := newStravaStub(t)
	cfg := newTestConfig(t, testsupport.WithStravaBaseURL(srv.URL), testsupport.WithLinkedAccount())
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"activities", "--person", "A"}, configPath)
	if err != nil {
		t.Fatalf("activities: %v", err)
	}
	requireContains(t, out, "Running 3 (Polar A)")
	requireContains(t, out, "Running Low")
	requireContains(t, out, "5.0 km")
	if strings.Contains(out, "Treppe 4 (Apple B)") {
		t.Fatalf("person filter leaked another owner's activity: %q", out)
	}
}

func TestCLIActivitiesJSON(t *testing.T) {
	srv := newStravaStub(t)
	cfg := newTestConfig(t, testsupport.WithStravaBaseURL(srv.URL), testsupport.WithLinkedAccount())
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"activities", "--json"}, configPath)
	if err != nil {
		t.Fatalf("activities --json: %v", err)
	}
	var listed []strava.Activity
	if err := json.Unmarshal([]byte(out), &listed); err != nil {
		t.Fatalf("decode listing: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("got %d activities, want 2", len(listed))
	}
}

func TestCLIActivityDetail(t *testing.T) {
	srv := newStravaStub(t)
	cfg := newTestConfig(t, testsupport.WithStravaBaseURL(srv.URL), testsupport.WithLinkedAccount())
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"activities", "--id", "101"}, configPath)
	if err != nil {
		t.Fatalf("activities --id: %v", err)
	}
	requireContains(t, out, "Activity 101: Running 3 (Polar A)")
	requireContains(t, out, "Calories:   420")
}

func TestCLIAthlete(t *testing.T) {
	srv := newStravaStub(t)
	cfg := newTestConfig(t, testsupport.WithStravaBaseURL(srv.URL), testsupport.WithLinkedAccount())
	configPath := writeTestConfig(t, cfg)

	out, _, err := runCLI(t, []string{"athlete"}, configPath)
	if err != nil {
		t.Fatalf("athlete: %v", err)
	}
	requireContains(t, out, "Anna Keller")
	requireContains(t, out, "Bern, Switzerland")
}

func TestCLIAuthMissingCredentials(t *testing.T) {
	t.Setenv("STRAVA_CLIENT_ID", "")
	t.Setenv("STRAVA_CLIENT_SECRET", "")
	t.Setenv("STRAVA_REFRESH_TOKEN", "")
	cfg := newTestConfig(t)
	cfg.Strava.ClientID = ""
	cfg.Strava.ClientSecret = ""
	cfg.Strava.RefreshToken = ""
	configPath := writeTestConfig(t, cfg)

	_, _, err := runCLI(t, []string{"auth", "some-code"}, configPath)
	if err == nil || !strings.Contains(err.Error(), "credentials not configured") {
		t.Fatalf("auth error = %v, want credential failure", err)
	}
}

func TestCLIAnalyze(t *testing.T) {
	llmSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"choices":[{"message":{"content":"A steady aerobic week."}}]}`)
	}))
	t.Cleanup(llmSrv.Close)

	cfg := newTestConfig(t, testsupport.WithLLMBaseURL(llmSrv.URL))
	configPath := writeTestConfig(t, cfg)

	exportPath := filepath.Join(t.TempDir(), "export.jsonl")
	if err := os.WriteFile(exportPath, []byte(`{"metadata":{"id":1}}`+"\n"), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}

	out, _, err := runCLI(t, []string{"analyze", exportPath}, configPath)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	requireContains(t, out, "Provider: openai")
	requireContains(t, out, "A steady aerobic week.")
}

func TestCLIAnalyzeUnknownProvider(t *testing.T) {
	cfg := newTestConfig(t)
	configPath := writeTestConfig(t, cfg)

	_, _, err := runCLI(t, []string{"analyze", "whatever.jsonl", "--provider", "mistral"}, configPath)
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Fatalf("analyze error = %v, want unknown provider", err)
	}
}

func TestCLIVersion(t *testing.T) {
	out, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	requireContains(t, out, "stride")
}
