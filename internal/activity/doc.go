// Package activity classifies fitness activities and describes the stream
// channels each class of activity carries in an export record.
//
// Classification is driven entirely by the activity name, which follows a
// fixed personal naming convention: running sessions are named
// "Running <n> (<device> <initial>)" with the session number's parity
// encoding the intended intensity, stair sessions carry "Treppe", and idle
// recovery recordings carry "Rest". Names outside the convention are
// rejected rather than guessed at so that misnamed activities surface
// instead of landing in the wrong bucket.
//
// The per-class channel tables double as the fetch plan: they name the raw
// stream keys to request from the API and the compact row and summary keys
// each channel occupies in the output record.
package activity
