// Package amplitude provides single-pass time-domain amplitude statistics
// for multi-channel biosignal chunks.
package amplitude
