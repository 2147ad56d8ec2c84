// Package bank implements the per-channel preprocessing filter bank used on
// incoming EEG chunks: a mains-frequency notch followed by a Butterworth
// bandpass, with delay state carried across chunk boundaries so chunked
// filtering is sample-exact against whole-signal filtering.
package bank
