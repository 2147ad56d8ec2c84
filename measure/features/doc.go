// Package features derives cognitive state estimates from a window of
// filtered EEG: blink events from frontal peak-to-peak swing, band powers
// from Welch spectra, a beta-over-slow-wave focus ratio and a relaxation
// classification from alpha dominance.
package features
