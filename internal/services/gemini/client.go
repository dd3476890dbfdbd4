package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"stride/internal/config"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com"
	defaultModel       = "gemini-1.5-flash"
	defaultHTTPTimeout = 60 * time.Second
)

// Client wraps the Gemini generateContent API.
type Client struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// Option customizes the Gemini client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// NewClient constructs a Gemini API client from the resolved provider settings.
func NewClient(cfg config.GeminiConfig, opts ...Option) *Client {
	client := &Client{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		model:      strings.TrimSpace(cfg.Model),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.baseURL == "" {
		client.baseURL = defaultBaseURL
	}
	if client.model == "" {
		client.model = defaultModel
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return client
}

// Complete sends the prompts and returns the model's reply. Gemini has no
// system role on this endpoint, so a non-empty system prompt is prepended to
// the user prompt.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	userPrompt = strings.TrimSpace(userPrompt)
	if userPrompt == "" {
		return "", errors.New("gemini complete: user prompt required")
	}
	if c.apiKey == "" {
		return "", errors.New("gemini complete: api key required")
	}
	text := userPrompt
	if systemPrompt = strings.TrimSpace(systemPrompt); systemPrompt != "" {
		text = systemPrompt + "\n\n" + userPrompt
	}

	payload := generateContentRequest{
		Contents: []content{
			{Parts: []part{{Text: text}}},
		},
	}
	endpoint, err := url.JoinPath(c.baseURL, "v1beta", "models", c.model+":generateContent")
	if err != nil {
		return "", fmt.Errorf("gemini complete: build url: %w", err)
	}
	endpoint += "?key=" + url.QueryEscape(c.apiKey)
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini complete: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("gemini complete: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini complete: request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini complete: read body: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("gemini complete: http %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	var parsed generateContentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("gemini complete: decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini complete: api error: %s", strings.TrimSpace(parsed.Error.Message))
	}
	if parsed.PromptFeedback != nil && parsed.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("gemini complete: prompt blocked: %s", parsed.PromptFeedback.BlockReason)
	}
	if len(parsed.Candidates) == 0 {
		return "", errors.New("gemini complete: empty candidates")
	}
	var reply strings.Builder
	for _, p := range parsed.Candidates[0].Content.Parts {
		reply.WriteString(p.Text)
	}
	result := strings.TrimSpace(reply.String())
	if result == "" {
		return "", errors.New("gemini complete: empty content")
	}
	return result, nil
}

// HealthCheck issues a fast ping to verify the API key and model are usable.
func (c *Client) HealthCheck(ctx context.Context) error {
	_, err := c.Complete(ctx, "", "Respond with the single word OK.")
	return err
}

type generateContentRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
	Role  string `json:"role,omitempty"`
}

type part struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}
