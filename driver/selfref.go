package driver

import (
	"reflect"

	"github.com/arloliu/bitcode/internal/bitio"
	"github.com/arloliu/bitcode/internal/columnar"
)

// selfRefEncNode/selfRefDecNode implement a self-referential pointer field
// (a type that reaches its own type again through a pointer hop, directly
// or through mutual recursion): *Node in `type Node struct { Next *Node }`.
//
// Every other composite in this package shares one flat column per field
// position across all occurrences, because the occurrence count at every
// depth is known before any value is parsed (front-loaded validation:
// Populate(n) always runs before any Assign). That model cannot extend to
// unbounded recursion: the total number of pointee occurrences across all
// recursion depths isn't knowable until the very presence bits that
// determine how deep the chain goes have been read, which is exactly the
// thing Populate(n) would need up front.
//
// Instead, each occurrence of the pointer is boxed as an independent,
// self-contained sub-encode: a presence bit, then (if present) a
// gamma-coded bit length and a byte-aligned nested bitcode stream holding
// exactly one pointee value, encoded/decoded by a single shared pointee
// node reused across occurrences and depths. Reuse is safe because every
// leaf and composite FinishInto in this package resets its own
// accumulator after writing, and every Populate call fully reparses state
// from scratch.
type selfRefEncNode struct {
	pointee  *encPlaceholder
	depthCap int
	occs     []selfRefEncOcc
}

type selfRefEncOcc struct {
	present bool
	bitLen  int
	payload []byte
}

func newSelfRefEncNode(pointee *encPlaceholder, depthCap int) *selfRefEncNode {
	return &selfRefEncNode{pointee: pointee, depthCap: depthCap}
}

func (n *selfRefEncNode) Reserve(c int) {
	if cap(n.occs)-len(n.occs) < c {
		grown := make([]selfRefEncOcc, len(n.occs), len(n.occs)+c)
		copy(grown, n.occs)
		n.occs = grown
	}
}

// Push encodes one pointer occurrence. depth is the number of boxes already
// opened to reach this point; encoding a present pointer one level deeper
// than the configured cap is a programmer error (the value itself is too
// deeply nested), so it panics rather than returning an error, matching
// the rest of the package's infallible-encode contract.
func (n *selfRefEncNode) Push(v reflect.Value, depth int) {
	if v.IsNil() {
		n.occs = append(n.occs, selfRefEncOcc{present: false})

		return
	}
	if err := columnar.CheckRecursionDepth("driver.selfRefEncNode.Push", depth+1, n.depthCap); err != nil {
		panic(err)
	}

	inner := n.pointee.resolved
	w := bitio.NewWriter()
	inner.Reserve(1)
	inner.Push(v.Elem(), depth+1)
	inner.FinishInto(w)
	bitLen := w.BitLength()
	payload := w.Finish()

	buf := make([]byte, len(payload))
	copy(buf, payload)

	n.occs = append(n.occs, selfRefEncOcc{present: true, bitLen: bitLen, payload: buf})
}

func (n *selfRefEncNode) FinishInto(w *bitio.Writer) {
	for _, occ := range n.occs {
		columnar.EncodeBoxPresent(w, occ.present)
		if !occ.present {
			continue
		}
		bitio.EncodeGamma(w, uint64(occ.bitLen))
		w.WriteByteAligned(occ.payload)
	}
	n.occs = n.occs[:0]
}

type selfRefDecNode struct {
	pointee  *decPlaceholder
	depthCap int
	occs     []selfRefDecOcc
	pos      int
}

type selfRefDecOcc struct {
	present bool
	bitLen  int
	payload []byte
}

func newSelfRefDecNode(pointee *decPlaceholder, depthCap int) *selfRefDecNode {
	return &selfRefDecNode{pointee: pointee, depthCap: depthCap}
}

// Populate validates and extracts each occurrence's raw boxed payload
// (front-loading the presence bit, the declared bit length against the
// bits actually remaining, and the byte-aligned payload bytes), but does
// not recursively decode what's inside the box — that depends on the
// destination type, which only Assign has. Each box is independently
// self-contained and bounded by its own declared length, so deferring the
// recursive decode to Assign never lets one occurrence's malformed
// contents escape into another's.
func (n *selfRefDecNode) Populate(r *bitio.Reader, c int) error {
	occs := make([]selfRefDecOcc, c)
	for i := range c {
		present, err := columnar.DecodeBoxPresent(r)
		if err != nil {
			return err
		}
		if !present {
			continue
		}

		bitLen64, err := bitio.DecodeGamma(r, uint64(r.RemainingBits()))
		if err != nil {
			return err
		}
		bitLen := int(bitLen64)
		nbytes := (bitLen + 7) / 8
		if err := columnar.CheckFootprint(r, "driver.selfRefDecNode.Populate", nbytes*8); err != nil {
			return err
		}

		payload, err := r.ReadByteAligned(nbytes)
		if err != nil {
			return err
		}
		buf := make([]byte, len(payload))
		copy(buf, payload)

		occs[i] = selfRefDecOcc{present: true, bitLen: bitLen, payload: buf}
	}

	n.occs = occs
	n.pos = 0

	return nil
}

func (n *selfRefDecNode) Assign(v reflect.Value, depth int) error {
	occ := n.occs[n.pos]
	n.pos++

	if !occ.present {
		v.Set(reflect.Zero(v.Type()))

		return nil
	}
	if err := columnar.CheckRecursionDepth("driver.selfRefDecNode.Assign", depth+1, n.depthCap); err != nil {
		return err
	}

	pointee := n.pointee.resolved
	nr := bitio.NewReader(occ.payload)
	if err := pointee.Populate(nr, 1); err != nil {
		return err
	}

	ptr := reflect.New(v.Type().Elem())
	if err := pointee.Assign(ptr.Elem(), depth+1); err != nil {
		return err
	}
	if err := nr.ExpectEOF(); err != nil {
		return err
	}
	v.Set(ptr)

	return nil
}
