package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"stride/internal/activity"
	"stride/internal/config"
)

const (
	defaultHTTPTimeout    = 30 * time.Second
	defaultRetryMaxDelay  = 30 * time.Second
	defaultRetryBaseDelay = 1 * time.Second
	defaultRetryAttempts  = 4

	// maxPerPage is the listing page size cap enforced by the API.
	maxPerPage = 200
)

// HTTPDoer abstracts http.Client.Do for testing.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// TokenSource supplies bearer tokens for API calls.
type TokenSource interface {
	AccessToken(ctx context.Context) (string, error)
	Refresh(ctx context.Context) (string, error)
}

// Client wraps the Strava v3 REST API.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	tokens     TokenSource
	pause      time.Duration

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	sleeper          func(time.Duration)
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client HTTPDoer) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the API base URL (used in tests).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithPause overrides the polite delay between paginated listing calls.
func WithPause(pause time.Duration) Option {
	return func(c *Client) {
		c.pause = pause
	}
}

// WithRetryMaxAttempts overrides the default retry count.
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) {
		c.retryMaxAttempts = attempts
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(baseDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		c.retryBaseDelay = baseDelay
		c.retryMaxDelay = maxDelay
	}
}

// WithSleeper overrides how retry and pagination sleeps are performed
// (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(c *Client) {
		c.sleeper = sleeper
	}
}

// NewClient constructs a Strava API client using the supplied configuration
// and token source.
func NewClient(cfg *config.Config, tokens TokenSource, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	baseURL := "https://www.strava.com/api/v3"
	pause := time.Duration(0)
	if cfg != nil {
		if cfg.Strava.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.Strava.TimeoutSeconds) * time.Second
		}
		if trimmed := strings.TrimSpace(cfg.Strava.BaseURL); trimmed != "" {
			baseURL = strings.TrimRight(trimmed, "/")
		}
		if cfg.Strava.PauseMS > 0 {
			pause = time.Duration(cfg.Strava.PauseMS) * time.Millisecond
		}
	}

	client := &Client{
		baseURL:          baseURL,
		httpClient:       &http.Client{Timeout: timeout},
		tokens:           tokens,
		pause:            pause,
		retryMaxAttempts: defaultRetryAttempts,
		retryBaseDelay:   defaultRetryBaseDelay,
		retryMaxDelay:    defaultRetryMaxDelay,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	return client
}

// ListOptions controls activity listing.
type ListOptions struct {
	// PerPage is the page size; values outside 1..200 fall back to 200.
	PerPage int
	// Page is the 1-based page to fetch; ListAll starts from it.
	Page int
	// After restricts the listing to activities started after this instant.
	After time.Time
	// Before restricts the listing to activities started before this instant.
	Before time.Time
}

func (o ListOptions) perPage() int {
	if o.PerPage <= 0 || o.PerPage > maxPerPage {
		return maxPerPage
	}
	return o.PerPage
}

func (o ListOptions) query() url.Values {
	query := url.Values{
		"per_page": {strconv.Itoa(o.perPage())},
	}
	if o.Page > 0 {
		query.Set("page", strconv.Itoa(o.Page))
	}
	if !o.After.IsZero() {
		query.Set("after", strconv.FormatInt(o.After.Unix(), 10))
	}
	if !o.Before.IsZero() {
		query.Set("before", strconv.FormatInt(o.Before.Unix(), 10))
	}
	return query
}

// Athlete fetches the authenticated athlete.
func (c *Client) Athlete(ctx context.Context) (*Athlete, error) {
	var athlete Athlete
	if err := c.getJSON(ctx, "/athlete", nil, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

// Activities fetches a single page of the athlete's activities.
func (c *Client) Activities(ctx context.Context, opts ListOptions) ([]Activity, error) {
	var activities []Activity
	if err := c.getJSON(ctx, "/athlete/activities", opts.query(), &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// ListAll walks the listing pages starting at opts.Page until a short page
// signals the end, pausing briefly between calls to stay inside the API
// rate budget.
func (c *Client) ListAll(ctx context.Context, opts ListOptions) ([]Activity, error) {
	perPage := opts.perPage()
	page := opts.Page
	if page <= 0 {
		page = 1
	}

	var all []Activity
	for {
		pageOpts := opts
		pageOpts.PerPage = perPage
		pageOpts.Page = page

		batch, err := c.Activities(ctx, pageOpts)
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < perPage {
			return all, nil
		}
		page++
		if err := c.sleep(ctx, c.pause); err != nil {
			return nil, err
		}
	}
}

// ActivitiesByPerson lists all activities and keeps those whose name carries
// the given owner initial in its device suffix. An empty initial returns the
// full listing.
func (c *Client) ActivitiesByPerson(ctx context.Context, initial string, opts ListOptions) ([]Activity, error) {
	all, err := c.ListAll(ctx, opts)
	if err != nil {
		return nil, err
	}
	matched := make([]Activity, 0, len(all))
	for _, act := range all {
		if activity.MatchesPerson(act.Name, initial) {
			matched = append(matched, act)
		}
	}
	return matched, nil
}

// ActivityDetails fetches the detailed record for one activity. The detail
// endpoint carries fields the listing omits, calories in particular.
func (c *Client) ActivityDetails(ctx context.Context, id int64) (*Activity, error) {
	var act Activity
	if err := c.getJSON(ctx, fmt.Sprintf("/activities/%d", id), nil, &act); err != nil {
		return nil, err
	}
	return &act, nil
}

// ActivityStreams fetches the requested channels for one activity. Keys is
// the channel list sent as the comma-separated keys parameter; the response
// is the list form, one entry per channel the activity actually recorded.
func (c *Client) ActivityStreams(ctx context.Context, id int64, keys []string) (StreamSet, error) {
	if len(keys) == 0 {
		return nil, errors.New("strava streams: no channels requested")
	}
	query := url.Values{
		"keys": {strings.Join(keys, ",")},
	}
	var set StreamSet
	if err := c.getJSON(ctx, fmt.Sprintf("/activities/%d/streams", id), query, &set); err != nil {
		return nil, err
	}
	return set, nil
}

type httpStatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("strava request: http %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

func (c *Client) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	attempts := c.retryAttempts()
	var lastErr error

	for attempt := 1; attempt <= attempts; attempt++ {
		err := c.doAuthorized(ctx, path, query, out)
		if err == nil {
			return nil
		}

		delay, retry := c.retryDelay(ctx, err, attempt, attempts)
		if !retry {
			return err
		}
		if err := c.sleep(ctx, delay); err != nil {
			return err
		}
		lastErr = err
	}

	if lastErr == nil {
		lastErr = errors.New("unknown retry failure")
	}
	return fmt.Errorf("strava %s: failed after %d attempts: %w", path, attempts, lastErr)
}

// doAuthorized performs one authorized request, refreshing the access token
// and retrying once when the API reports the token expired.
func (c *Client) doAuthorized(ctx context.Context, path string, query url.Values, out any) error {
	if c.tokens == nil {
		return errors.New("strava request: no token source configured")
	}
	token, err := c.tokens.AccessToken(ctx)
	if err != nil {
		return err
	}

	err = c.doOnce(ctx, token, path, query, out)
	var statusErr *httpStatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
		token, refreshErr := c.tokens.Refresh(ctx)
		if refreshErr != nil {
			return fmt.Errorf("strava request: refresh after 401: %w", refreshErr)
		}
		return c.doOnce(ctx, token, path, query, out)
	}
	return err
}

func (c *Client) doOnce(ctx context.Context, token, path string, query url.Values, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("strava request: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("strava request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("strava request: read body: %w", err)
	}
	if resp.StatusCode >= 400 {
		retryAfter, _ := parseRetryAfter(resp.Header.Get("Retry-After"))
		return &httpStatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			RetryAfter: retryAfter,
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("strava %s: decode response: %w", path, err)
	}
	return nil
}

func (c *Client) retryAttempts() int {
	if c == nil || c.retryMaxAttempts <= 0 {
		return 1
	}
	return c.retryMaxAttempts
}

func (c *Client) retryDelay(ctx context.Context, err error, attempt, maxAttempts int) (time.Duration, bool) {
	if attempt >= maxAttempts {
		return 0, false
	}
	if err == nil || ctx == nil || ctx.Err() != nil {
		return 0, false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return 0, false
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusRequestTimeout,
			statusErr.StatusCode == http.StatusTooManyRequests,
			statusErr.StatusCode >= http.StatusInternalServerError:
			if statusErr.RetryAfter > 0 {
				return c.capDelay(statusErr.RetryAfter), true
			}
			return c.backoffDelay(attempt), true
		default:
			return 0, false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return c.backoffDelay(attempt), true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return c.backoffDelay(attempt), true
	}

	return 0, false
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	base := defaultRetryBaseDelay
	maxDelay := defaultRetryMaxDelay
	if c != nil {
		if c.retryBaseDelay >= 0 {
			base = c.retryBaseDelay
		}
		if c.retryMaxDelay > 0 {
			maxDelay = c.retryMaxDelay
		}
	}
	if base <= 0 {
		return 0
	}

	// attempt 1 -> base, attempt 2 -> base*2, attempt 3 -> base*4, ...
	delay := base
	for i := 1; i < attempt; i++ {
		if delay > maxDelay/2 {
			delay = maxDelay
			break
		}
		delay *= 2
	}
	return c.capDelay(delay)
}

func (c *Client) capDelay(delay time.Duration) time.Duration {
	if delay < 0 {
		return 0
	}
	maxDelay := defaultRetryMaxDelay
	if c != nil && c.retryMaxDelay > 0 {
		maxDelay = c.retryMaxDelay
	}
	if maxDelay > 0 && delay > maxDelay {
		return maxDelay
	}
	return delay
}

func (c *Client) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	if ctx == nil {
		return errors.New("strava retry: nil context")
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if c != nil && c.sleeper != nil {
		c.sleeper(delay)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	if when, err := http.ParseTime(value); err == nil {
		delay := time.Until(when)
		if delay < 0 {
			return 0, false
		}
		return delay, true
	}
	return 0, false
}
