// Package pipeline runs the fixed-interval acquisition cycle: poll the
// source for the samples accumulated since the last tick, normalize the
// unit, filter, append to the rolling display buffer, derive the feature
// snapshot and fan the cycle out to the configured sinks.
//
// All signal state (filter delays, unit decision, display buffer) is
// owned by the cycle goroutine. Waveform and Features expose copies for
// concurrent polling by a renderer.
package pipeline
