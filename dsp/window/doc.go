// Package window generates the window functions used by the spectral
// estimation path (Welch periodograms). Only the handful of windows
// relevant to EEG band-power work are provided.
package window
