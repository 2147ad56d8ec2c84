// Package biquad implements second-order IIR filter sections (biquads) and
// cascades of sections in Direct Form II Transposed.
//
// The delay-line state of every section is explicit and persists across
// calls, so a signal can be filtered chunk by chunk with results identical
// to filtering the concatenated signal in one pass. State can be saved,
// restored, and primed to a steady-state value so a stream starts without
// a switch-on transient.
package biquad
