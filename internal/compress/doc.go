// Package compress wraps the block codecs used for column bodies.
//
// Bodies are small enough to be held in memory whole, so every algorithm is
// used in block mode: the writer records the uncompressed size and the
// reader decodes into a buffer of exactly that size.
package compress
