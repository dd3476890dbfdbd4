package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"stride/internal/config"
)

var (
	// ErrAuthorizationMissing is returned when no refresh token has been
	// configured or linked yet.
	ErrAuthorizationMissing = errors.New("strava refresh token not configured")
)

const (
	defaultTokenURL    = "https://www.strava.com/oauth/token"
	tokenRefreshLeeway = 5 * time.Minute
)

// TokenManagerOption customises TokenManager construction.
type TokenManagerOption func(*TokenManager)

// WithTokenHTTPClient overrides the HTTP client used for token endpoint calls.
func WithTokenHTTPClient(client HTTPDoer) TokenManagerOption {
	return func(m *TokenManager) {
		m.httpClient = client
	}
}

// WithTokenURL overrides the OAuth token endpoint (used in tests).
func WithTokenURL(tokenURL string) TokenManagerOption {
	return func(m *TokenManager) {
		m.tokenURL = strings.TrimRight(tokenURL, "/")
	}
}

// WithTokenStore injects a custom persistence layer.
func WithTokenStore(store TokenStore) TokenManagerOption {
	return func(m *TokenManager) {
		m.store = store
	}
}

// TokenManager persists Strava OAuth state and keeps a current access token.
// Strava access tokens live six hours; the manager refreshes them through the
// refresh-token grant and persists rotated refresh tokens as they arrive.
type TokenManager struct {
	clientID     string
	clientSecret string
	seedRefresh  string

	httpClient HTTPDoer
	tokenURL   string
	store      TokenStore

	stateMu sync.Mutex
	state   TokenState
}

// NewTokenManager builds a TokenManager using the provided configuration.
func NewTokenManager(cfg *config.Config, opts ...TokenManagerOption) (*TokenManager, error) {
	if cfg == nil {
		return nil, errors.New("config is nil")
	}

	mgr := &TokenManager{
		clientID:     cfg.Strava.ClientID,
		clientSecret: cfg.Strava.ClientSecret,
		seedRefresh:  cfg.Strava.RefreshToken,
		tokenURL:     defaultTokenURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		store:        NewFileTokenStore(cfg.Strava.TokenPath),
	}

	for _, opt := range opts {
		opt(mgr)
	}

	if mgr.httpClient == nil {
		mgr.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if mgr.store == nil {
		mgr.store = NewFileTokenStore(cfg.Strava.TokenPath)
	}

	if err := mgr.loadInitialState(); err != nil {
		return nil, err
	}
	return mgr, nil
}

func (m *TokenManager) loadInitialState() error {
	state, err := m.store.Load()
	if err != nil {
		return err
	}
	if state.RefreshToken == "" && m.seedRefresh != "" {
		state.RefreshToken = m.seedRefresh
	}
	m.state = state
	return nil
}

// HasCredentials reports whether the manager can obtain access tokens at all.
func (m *TokenManager) HasCredentials() bool {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()
	return m.clientID != "" && m.clientSecret != "" && m.state.RefreshToken != ""
}

// AccessToken returns a current access token, refreshing it when the cached
// one is missing or close to expiry.
func (m *TokenManager) AccessToken(ctx context.Context) (string, error) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	if m.state.AccessToken != "" && time.Until(m.state.ExpiresAt) > tokenRefreshLeeway {
		return m.state.AccessToken, nil
	}
	return m.refreshLocked(ctx)
}

// Refresh discards the cached access token and fetches a fresh one. The
// client calls this after an unauthorized response.
func (m *TokenManager) Refresh(ctx context.Context) (string, error) {
	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	m.state.AccessToken = ""
	m.state.ExpiresAt = time.Time{}
	return m.refreshLocked(ctx)
}

func (m *TokenManager) refreshLocked(ctx context.Context) (string, error) {
	if m.clientID == "" || m.clientSecret == "" {
		return "", errors.New("strava client credentials not configured")
	}
	if m.state.RefreshToken == "" {
		return "", ErrAuthorizationMissing
	}

	form := url.Values{
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
		"refresh_token": {m.state.RefreshToken},
		"grant_type":    {"refresh_token"},
	}
	resp, err := m.postTokenForm(ctx, form)
	if err != nil {
		return "", err
	}

	m.state.AccessToken = resp.AccessToken
	if resp.RefreshToken != "" {
		m.state.RefreshToken = resp.RefreshToken
	}
	m.state.ExpiresAt = resp.expirationTime()

	if err := m.store.Save(m.state); err != nil {
		return "", err
	}
	return m.state.AccessToken, nil
}

// ExchangeCode performs the one-shot authorization-code grant used on first
// link and persists the resulting tokens. The athlete summary embedded in the
// token response is returned when present.
func (m *TokenManager) ExchangeCode(ctx context.Context, code string) (*Athlete, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, errors.New("authorization code is empty")
	}
	if m.clientID == "" || m.clientSecret == "" {
		return nil, errors.New("strava client credentials not configured")
	}

	m.stateMu.Lock()
	defer m.stateMu.Unlock()

	form := url.Values{
		"client_id":     {m.clientID},
		"client_secret": {m.clientSecret},
		"code":          {code},
		"grant_type":    {"authorization_code"},
	}
	resp, err := m.postTokenForm(ctx, form)
	if err != nil {
		return nil, err
	}

	m.state.AccessToken = resp.AccessToken
	m.state.RefreshToken = resp.RefreshToken
	m.state.ExpiresAt = resp.expirationTime()

	if err := m.store.Save(m.state); err != nil {
		return nil, err
	}
	return resp.Athlete, nil
}

type tokenResponse struct {
	TokenType    string   `json:"token_type"`
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	ExpiresAt    int64    `json:"expires_at"`
	ExpiresIn    int64    `json:"expires_in"`
	Athlete      *Athlete `json:"athlete"`
}

func (r tokenResponse) expirationTime() time.Time {
	if r.ExpiresAt > 0 {
		return time.Unix(r.ExpiresAt, 0)
	}
	if r.ExpiresIn > 0 {
		return time.Now().Add(time.Duration(r.ExpiresIn) * time.Second)
	}
	return time.Time{}
}

func (m *TokenManager) postTokenForm(ctx context.Context, form url.Values) (tokenResponse, error) {
	var parsed tokenResponse

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return parsed, fmt.Errorf("strava token: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return parsed, fmt.Errorf("strava token: request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return parsed, fmt.Errorf("strava token: read body: %w", err)
	}
	if resp.StatusCode >= 400 {
		return parsed, fmt.Errorf("strava token endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return parsed, fmt.Errorf("strava token: decode response: %w", err)
	}
	if parsed.AccessToken == "" {
		return parsed, errors.New("strava token: missing access_token in response")
	}
	return parsed, nil
}
