package analysis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"stride/internal/config"
	"stride/internal/services/gemini"
	"stride/internal/services/llm"
)

// Provider abstracts the chat backends that can run an analysis.
type Provider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	HealthCheck(ctx context.Context) error
}

// Analyzer sends JSONL activity exports to a chat provider for review.
type Analyzer struct {
	provider Provider
	name     string
}

// NewAnalyzer selects the provider named by override, falling back to the
// configured default. Supported providers: openai, deepseek, gemini.
func NewAnalyzer(cfg *config.Config, override string) (*Analyzer, error) {
	if cfg == nil {
		return nil, errors.New("analysis: config required")
	}
	name := strings.ToLower(strings.TrimSpace(override))
	if name == "" {
		name = cfg.GetLLM().Provider
	}
	switch name {
	case "gemini":
		return &Analyzer{provider: gemini.NewClient(cfg.GetGemini()), name: name}, nil
	case "openai", "deepseek":
		resolved := cfg.GetLLMFor(name)
		client := llm.NewClient(llm.Config{
			APIKey:         resolved.APIKey,
			BaseURL:        resolved.BaseURL,
			Model:          resolved.Model,
			TimeoutSeconds: resolved.TimeoutSeconds,
		})
		return &Analyzer{provider: client, name: name}, nil
	default:
		return nil, fmt.Errorf("analysis: unknown provider %q", name)
	}
}

// NewAnalyzerWithProvider wires an explicit provider implementation.
func NewAnalyzerWithProvider(name string, provider Provider) (*Analyzer, error) {
	if provider == nil {
		return nil, errors.New("analysis: provider required")
	}
	return &Analyzer{provider: provider, name: strings.TrimSpace(name)}, nil
}

// ProviderName returns the resolved provider name.
func (a *Analyzer) ProviderName() string {
	return a.name
}

// HealthCheck verifies the selected provider is reachable and usable.
func (a *Analyzer) HealthCheck(ctx context.Context) error {
	return a.provider.HealthCheck(ctx)
}

// AnalyzeFile reads a JSONL export and asks the provider for a summary. The
// file content is inlined above the prompt so any chat provider can consume
// it. When prompt is empty the default analysis request for the file's line
// count is used.
func (a *Analyzer) AnalyzeFile(ctx context.Context, path, prompt string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("analysis: read export: %w", err)
	}
	content := string(data)
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("analysis: export %s is empty", path)
	}
	if strings.TrimSpace(prompt) == "" {
		prompt = AnalysisRequest(countLines(content))
	}
	combined := fmt.Sprintf("File: %s\n\n%s\n\n%s\n\n%s", path, content, strings.Repeat("=", 60), prompt)
	return a.provider.Complete(ctx, ActivityStreamSystemPrompt, combined)
}

func countLines(content string) int {
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}
