// Package streams compacts raw activity time series into the export record
// shape: fixed-interval sampled rows rendered as CSV strings plus five-point
// percentile summaries per channel.
//
// The compaction pipeline for one activity runs entirely in memory and in a
// fixed order: running activities drop samples recorded while stationary,
// cadence is converted to steps per minute, timestamps are rebased to start
// at zero, summaries are taken over the raw samples, and finally every
// channel is resampled onto a uniform tick grid derived from the activity
// duration. Channels missing from the raw payload are left out of the record
// entirely rather than padded, so a consumer can tell an unrecorded channel
// from a sparsely recorded one.
//
// Resampling is nearest-neighbor rather than interpolating so that every
// emitted value is a reading that actually occurred.
package streams
