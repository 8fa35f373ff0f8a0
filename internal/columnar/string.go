package columnar

import (
	"unicode/utf8"

	"github.com/arloliu/bitcode/bcerr"
	"github.com/arloliu/bitcode/internal/bitio"
)

// StringEncoder implements the text string type: a byte string whose bytes
// are the UTF-8 encoding of the pushed Go string. Encoding never fails —
// a Go string is defined as an immutable byte sequence and bitcode does
// not require it be valid UTF-8 at encode time, matching the byte-string
// wire shape exactly.
type StringEncoder struct {
	inner *ByteStringEncoder
}

func NewStringEncoder() *StringEncoder {
	return &StringEncoder{inner: NewByteStringEncoder()}
}

func (e *StringEncoder) Reserve(n int) { e.inner.Reserve(n) }

func (e *StringEncoder) EncodeValue(v *string) {
	b := []byte(*v)
	e.inner.EncodeValue(&b)
}

func (e *StringEncoder) FinishInto(w *bitio.Writer) { e.inner.FinishInto(w) }

// StringDecoder parses a text string column and rejects any occurrence
// whose bytes are not well-formed UTF-8 before the value is ever surfaced.
type StringDecoder struct {
	inner *ByteStringDecoder
}

func NewStringDecoder() *StringDecoder {
	return &StringDecoder{inner: NewByteStringDecoder()}
}

func (d *StringDecoder) Populate(r *bitio.Reader, n int) error {
	if err := d.inner.Populate(r, n); err != nil {
		return err
	}

	for _, b := range d.inner.values {
		if !utf8.Valid(b) {
			return bcerr.New(bcerr.Invalid, "columnar.StringDecoder.Populate", "string value is not well-formed UTF-8")
		}
	}

	return nil
}

func (d *StringDecoder) DecodeInPlace(v *string) error {
	var b []byte
	if err := d.inner.DecodeInPlace(&b); err != nil {
		return err
	}
	*v = string(b)

	return nil
}
