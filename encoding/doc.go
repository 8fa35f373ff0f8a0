// Package encoding declares the capability interfaces a column codec
// implements: the generic read/write surface that lets the driver package
// hold a heterogeneous tree of concrete column types (bools, bounded
// integers, floats, discriminants, length streams, ...) behind a handful
// of uniform shapes, without a combinatorial interface per Go type.
//
// Concrete implementations live in internal/columnar, one file per
// semantic type from the data model. That package is internal because the
// capability shapes here are the contract bitcode promises to keep stable;
// the column layouts behind them are free to change.
//
// # Encoder and Decoder
//
// Every primitive and composite column codec implements Encoder[T] on the
// write side and Decoder[T] on the read side, for whatever T it carries
// (bool, a bounded integer type, float32/float64, rune, []byte, string,
// ...). Both follow a two-phase shape:
//
//	// encode: push every occurrence, in order, then flush once
//	var col columnar.BoolColumn
//	col.Reserve(n)
//	for _, v := range values {
//	    col.EncodeValue(&v)
//	}
//	col.FinishInto(w)
//
//	// decode: parse the whole column up front, then pop sequentially
//	var dec columnar.BoolDecoder
//	if err := dec.Populate(r, n); err != nil { return err }
//	for i := 0; i < n; i++ {
//	    var v bool
//	    _ = dec.DecodeInPlace(&v) // never fails after a successful Populate
//	}
//
// Populate's front-loaded validation is what makes DecodeInPlace
// infallible afterward: it parses the column's header, computes the
// body's bit-exact footprint, checks that footprint against the bits the
// reader actually has left, and validates every value the body carries —
// all before a single value is handed back to the caller.
//
// # VariantSelector
//
// A sum type's discriminant decoder additionally implements
// VariantSelector, exposing the validated tag chosen at each occurrence so
// the caller knows which variant's payload decoder to pop from next.
//
// # LengthCoder
//
// Every sequence, byte string, text string, and map shares the same
// gamma-coded length column, exposed as LengthCoder. DecodeLen takes an
// explicit bound so a forged declared length can never cause an
// allocation or a read past what the stream actually has left.
package encoding
