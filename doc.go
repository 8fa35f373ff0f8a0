// Package bitcode is a binary columnar serialization library: it encodes
// statically-typed Go values into a compact, non-self-describing byte
// stream and decodes them back, optimizing jointly for small encoded
// size, high encode/decode throughput, and downstream compressibility by
// general-purpose compressors.
//
// It is not self-describing, not forward/backward compatible across
// format revisions, and not intended for cross-ecosystem interchange:
// encode(value) and decode(bytes) are only meaningful against the same
// static Go type, in the same bitcode version.
//
// # Basic use
//
//	type Point struct {
//	    X, Y float64
//	    Tag  string
//	}
//
//	data := bitcode.Encode(Point{X: 1, Y: 2, Tag: "origin"})
//	p, err := bitcode.Decode[Point](data)
//
// Repeated calls against the same type should share a Buffer, which
// amortizes both the byte buffer backing each encode and the
// reflection-derived codec tree built for that type:
//
//	buf := bitcode.NewBuffer()
//	for _, p := range points {
//	    data := bitcode.EncodeInto(buf, p)
//	    _ = data
//	}
//
// # Supported types
//
// Struct fields (product types), slices (sequences), maps, strings,
// []byte, bool, every sized integer and float kind, bitcode.Char (a
// distinct Unicode-scalar-value wrapper around rune), non-cyclic pointers
// (optional types), bitcode.Union2/Union3 (closed sum types), and
// self-referential pointers (linked lists, trees) up to a configurable
// recursion depth (WithRecursionDepthCap, default 128) are all supported
// without any struct tags or generated code: a light reflection pass over
// the type builds the composite codec once per Buffer per type.
//
// Channels, functions, interfaces, complex numbers, and unsafe pointers
// have no corresponding wire representation and are rejected when first
// encountered while building a type's codec.
//
// # Errors
//
// Encode never fails: every value reachable through a supported static
// type has a well-defined encoding. Decode fails only with one of the
// bcerr.Eof, bcerr.Invalid, or bcerr.ExpectedEof kinds, and never
// constructs a partial value on a rejected input.
//
// # Envelopes
//
// bitcode's own output carries no magic number, version, length prefix,
// or checksum. The optional envelope subpackage adds exactly that kind of
// framing (plus compression) around an Encode/EncodeInto result for
// callers who need it.
package bitcode
