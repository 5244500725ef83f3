// Package fuzztests houses Go fuzz harnesses for the tree file decoders and
// the analyses that run on whatever they accept. Decoding arbitrary bytes must
// never panic, and any tree that decodes must survive every analysis and a
// msgpack round trip unchanged.
package fuzztests
