// Package buffer provides the fixed-duration rolling display buffer for
// filtered multi-channel signal data.
//
// The buffer is written by the pipeline cycle and polled concurrently by a
// visualization reader; reads return copies so the writer never blocks on
// a slow renderer.
package buffer
