// Package segment produces display chunks from documents. A Segmenter
// emits newline-framed JSON chunk records on a stream; Consume parses
// the stream into a playback buffer while chunks are still arriving.
package segment
