// Package main hosts the stride CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into export
// runs, activity listings, token exchanges, cache maintenance, and analysis
// requests. It centralizes configuration resolution and output formatting so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
