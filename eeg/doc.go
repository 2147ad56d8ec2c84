// Package eeg holds the domain types shared across the streaming pipeline:
// multi-channel sample blocks, the reference electrode layout and the
// automatic unit scaler that normalizes acquisition output to microvolts.
package eeg
