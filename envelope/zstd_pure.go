//go:build !cgo

package envelope

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// klauspost/compress/zstd documents its encoders/decoders as allocation-free
// after a warmup, so this build (no cgo available) keeps one of each in a
// sync.Pool rather than constructing one per Frame/Unframe call.
var (
	pureZstdEncoders = sync.Pool{New: newPooledZstdEncoder}
	pureZstdDecoders = sync.Pool{New: newPooledZstdDecoder}
)

func newPooledZstdEncoder() any {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderLevel(zstd.SpeedDefault),
		zstd.WithEncoderCRC(false),
	)
	if err != nil {
		panic(fmt.Sprintf("envelope: building pooled zstd encoder: %v", err))
	}

	return enc
}

func newPooledZstdDecoder() any {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(false),
	)
	if err != nil {
		panic(fmt.Sprintf("envelope: building pooled zstd decoder: %v", err))
	}

	return dec
}

func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	enc := pureZstdEncoders.Get().(*zstd.Encoder)
	defer pureZstdEncoders.Put(enc)

	return enc.EncodeAll(data, nil), nil
}

func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	dec := pureZstdDecoders.Get().(*zstd.Decoder)
	defer pureZstdDecoders.Put(dec)

	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("envelope: zstd decompress: %w", err)
	}

	return out, nil
}
