// Package services defines shared utilities consumed by the export pipeline
// and the external API integrations.
//
// Key responsibilities:
//   - Context helpers that stamp activity IDs, stage names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent run dispositions (skip the activity vs abort the batch).
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability, retries) stays uniform across the commands.
package services
