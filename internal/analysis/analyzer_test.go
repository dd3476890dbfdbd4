package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stride/internal/config"
)

type stubProvider struct {
	systemPrompt string
	userPrompt   string
	reply        string
	err          error
	healthErr    error
}

func (s *stubProvider) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.systemPrompt = systemPrompt
	s.userPrompt = userPrompt
	return s.reply, s.err
}

func (s *stubProvider) HealthCheck(context.Context) error {
	return s.healthErr
}

func writeExport(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "activities.jsonl")
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}
	return path
}

func TestAnalyzeFileBuildsDefaultPrompt(t *testing.T) {
	path := writeExport(t,
		`{"metadata":{"name":"Running 1"}}`,
		`{"metadata":{"name":"Running 2"}}`,
		`{"metadata":{"name":"Rest"}}`,
	)
	stub := &stubProvider{reply: "looks healthy"}
	analyzer, err := NewAnalyzerWithProvider("stub", stub)
	if err != nil {
		t.Fatalf("NewAnalyzerWithProvider: %v", err)
	}

	reply, err := analyzer.AnalyzeFile(context.Background(), path, "")
	if err != nil {
		t.Fatalf("AnalyzeFile returned error: %v", err)
	}
	if reply != "looks healthy" {
		t.Fatalf("unexpected reply %q", reply)
	}
	if stub.systemPrompt != ActivityStreamSystemPrompt {
		t.Fatal("expected the stream system prompt")
	}
	if !strings.HasPrefix(stub.userPrompt, "File: "+path) {
		t.Fatalf("expected file header, got %q", firstLine(stub.userPrompt))
	}
	if !strings.Contains(stub.userPrompt, `{"metadata":{"name":"Rest"}}`) {
		t.Fatal("expected export content to be inlined")
	}
	if !strings.Contains(stub.userPrompt, "contains 3 activities") {
		t.Fatalf("expected line count in prompt, got %q", stub.userPrompt)
	}
	if !strings.Contains(stub.userPrompt, strings.Repeat("=", 60)) {
		t.Fatal("expected separator between content and prompt")
	}
}

func TestAnalyzeFileUsesCustomPrompt(t *testing.T) {
	path := writeExport(t, `{"metadata":{"name":"Running 1"}}`)
	stub := &stubProvider{reply: "done"}
	analyzer, err := NewAnalyzerWithProvider("stub", stub)
	if err != nil {
		t.Fatalf("NewAnalyzerWithProvider: %v", err)
	}

	if _, err := analyzer.AnalyzeFile(context.Background(), path, "Focus on cadence only."); err != nil {
		t.Fatalf("AnalyzeFile returned error: %v", err)
	}
	if !strings.HasSuffix(stub.userPrompt, "Focus on cadence only.") {
		t.Fatalf("expected custom prompt at the end, got %q", stub.userPrompt)
	}
	if strings.Contains(stub.userPrompt, "Please summarize") {
		t.Fatal("default prompt should not appear with a custom prompt")
	}
}

func TestAnalyzeFileRejectsEmptyExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.jsonl")
	if err := os.WriteFile(path, []byte("  \n"), 0o644); err != nil {
		t.Fatalf("write export: %v", err)
	}
	analyzer, err := NewAnalyzerWithProvider("stub", &stubProvider{})
	if err != nil {
		t.Fatalf("NewAnalyzerWithProvider: %v", err)
	}
	if _, err := analyzer.AnalyzeFile(context.Background(), path, ""); err == nil {
		t.Fatal("expected empty export to be rejected")
	}
}

func TestAnalyzeFilePropagatesProviderError(t *testing.T) {
	path := writeExport(t, `{"metadata":{"name":"Running 1"}}`)
	wantErr := errors.New("provider down")
	analyzer, err := NewAnalyzerWithProvider("stub", &stubProvider{err: wantErr})
	if err != nil {
		t.Fatalf("NewAnalyzerWithProvider: %v", err)
	}
	if _, err := analyzer.AnalyzeFile(context.Background(), path, ""); !errors.Is(err, wantErr) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestNewAnalyzerSelectsProvider(t *testing.T) {
	cfg := config.Default()
	cfg.LLM.APIKey = "key"
	cfg.Gemini.APIKey = "key"

	cases := []struct {
		name     string
		override string
		want     string
	}{
		{name: "configured default", override: "", want: "openai"},
		{name: "deepseek override", override: "deepseek", want: "deepseek"},
		{name: "gemini override", override: "Gemini", want: "gemini"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			analyzer, err := NewAnalyzer(&cfg, tc.override)
			if err != nil {
				t.Fatalf("NewAnalyzer: %v", err)
			}
			if analyzer.ProviderName() != tc.want {
				t.Fatalf("expected provider %q, got %q", tc.want, analyzer.ProviderName())
			}
		})
	}
}

func TestNewAnalyzerRejectsUnknownProvider(t *testing.T) {
	cfg := config.Default()
	if _, err := NewAnalyzer(&cfg, "mistral"); err == nil {
		t.Fatal("expected unknown provider to be rejected")
	}
}

func TestAnalysisRequestCountsLines(t *testing.T) {
	prompt := AnalysisRequest(7)
	if !strings.Contains(prompt, "contains 7 activities") {
		t.Fatalf("unexpected prompt %q", prompt)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
