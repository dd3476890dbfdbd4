// Package export runs the full activity export: list activities from the
// API, classify each one, fetch and compact its streams, and write the
// resulting records as one JSONL file.
//
// Activities are processed sequentially in the order the listing returns
// them, and a flock-based lock keeps concurrent runs from interleaving
// writes to the same output file. Failures are handled per activity where
// possible: an unclassifiable name skips the activity, a failed stream
// fetch marks it failed and moves on, and only write failures abort the
// batch. Raw stream payloads can be cached between runs so repeat exports
// stay within the API rate budget.
//
// The package also hosts the abnormal heart-rate synthesizer, which rewrites
// an existing export with out-of-range heart-rate draws for testing the
// downstream analysis.
package export
