// Package llm provides a chat completion client for activity analysis.
//
// The client speaks the OpenAI chat completion wire format, which both the
// hosted OpenAI API and DeepSeek-style deployments accept; the configured
// base URL selects the provider. The analysis layer composes the prompts,
// this package only moves them across the wire.
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: send system/user prompts, receive the free-text reply.
// Client.HealthCheck: verify API key and model availability.
//
// # Retry Behaviour
//
// The client retries on HTTP 408/429/5xx errors, empty completions, and
// network timeouts with exponential backoff (base 1s, max 10s, 3 attempts
// by default), honouring Retry-After when present. Context cancellation
// aborts retries immediately.
package llm
