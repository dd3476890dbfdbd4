// Package preflight provides readiness checks for the external services
// and filesystem paths that Stride depends on.
//
// These checks run in two contexts:
//   - The CLI "stride status" command calls RunAll to display a full health
//     summary, including live Strava and LLM connectivity.
//   - The offline helpers (CheckAuthStateFromConfig, CheckStreamCacheFromConfig)
//     report local state without dialing out, for fast status rendering.
//
// Each check returns a Result instead of an error: a failed check is
// information for the operator, not a reason to stop the command.
package preflight
