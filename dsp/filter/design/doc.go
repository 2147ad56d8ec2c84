// Package design computes biquad coefficients for the filters used in the
// streaming EEG path: RBJ cookbook prototypes (notch, bandpass, low/high
// pass) and Butterworth cascades realized as second-order sections.
//
// Cascades of second-order sections are used instead of a single high-order
// transfer function because high-order polynomial coefficients lose
// precision quickly; per-section realization keeps the filters numerically
// stable at EEG band edges close to DC.
package design
