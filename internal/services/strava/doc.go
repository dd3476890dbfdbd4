// Package strava wraps the Strava v3 REST API for activity export.
//
// The package covers the three endpoints the export pipeline needs: the
// athlete summary, paginated activity listing, and per-activity stream
// retrieval. Stream payloads keep their raw JSON tokens so they can round-trip
// through the payload cache unchanged; StreamSet.Raw converts them into the
// compaction input on demand.
//
// # Authentication
//
// TokenManager owns the OAuth state. It bootstraps from the configured
// refresh token (or a previously linked one persisted via ExchangeCode),
// refreshes access tokens through the refresh-token grant before expiry,
// and persists rotated refresh tokens. The client asks its TokenSource for
// a bearer token per request and forces one refresh-and-retry when the API
// answers 401.
//
// # Retry Behaviour
//
// Requests retry on HTTP 408/429/5xx and network timeouts with exponential
// backoff, honouring Retry-After when the rate limiter supplies one. Context
// cancellation aborts retries immediately. ListAll additionally pauses
// between pages to stay inside the API's 15-minute request budget.
package strava
