// Package spectrum provides the spectral estimation tools behind the EEG
// band-power features: Welch power spectral density estimation, band-power
// integration with relative-power normalization, and a Goertzel analyzer
// for single-frequency power measurements.
package spectrum
