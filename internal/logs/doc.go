// Package logs reads the export log file for the CLI logs command.
//
// Snapshot serves the initial view, the last N lines plus the offset they
// end at, and Poll serves the follow loop by scanning forward from that
// offset. The file is reopened on every read so rotation or truncation
// between polls cannot wedge a follower.
package logs
