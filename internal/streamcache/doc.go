// Package streamcache provides a local cache of raw activity stream
// payloads keyed by activity ID and fetch fingerprint.
//
// Stream payloads are immutable once an activity is recorded, so re-running
// an export mostly re-downloads bytes the previous run already fetched. The
// cache keeps those payloads on disk and lets the export pipeline skip the
// API call for any activity it has seen with the same channel set. The
// fingerprint ties an entry to the channels that were requested: a class
// change that widens the channel set misses the cache and refetches.
//
// # Storage
//
// The cache is stored as a JSON file at a configurable path (default:
// ~/.cache/stride/streams_cache.json). The format is human-readable and
// easy to inspect or delete manually.
//
// # Usage
//
// The cache is disabled by default. Enable it in config.toml:
//
//	[stream_cache]
//	enabled = true
//	path = "~/.cache/stride/streams_cache.json"
//
// CLI commands for inspection and management:
//
//	stride cache show             # List cached payloads
//	stride cache remove <id>      # Drop entries for one activity
//	stride cache clear            # Remove all entries
package streamcache
