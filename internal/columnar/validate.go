// Package columnar implements the primitive and composite column codecs
// that give bitcode's columnar transpose its shape: one codec per
// semantic type from the data model, each exposing a reserve/push/finalize
// encoder and a parse-header/validate-all/pop decoder.
//
// Every decoder in this package follows the same front-loaded validation
// shape (§4.6 of the design notes): Populate parses the column header,
// computes the column body's bit-exact footprint, checks that footprint
// against the reader's remaining bits before touching the body, then walks
// the body validating every discriminant and bounded scalar before
// returning. DecodeInPlace/pop after a successful Populate never fails.
package columnar

import (
	"github.com/arloliu/bitcode/bcerr"
	"github.com/arloliu/bitcode/internal/bitio"
)

// CheckFootprint enforces invariant 1: a declared column body's bit-exact
// footprint must fit in the bits remaining before any allocation sized by
// that footprint happens.
func CheckFootprint(r *bitio.Reader, op string, footprintBits int) error {
	if footprintBits > r.RemainingBits() {
		return bcerr.Newf(bcerr.Eof, op, "column body of %d bits exceeds %d remaining bits", footprintBits, r.RemainingBits())
	}

	return nil
}
