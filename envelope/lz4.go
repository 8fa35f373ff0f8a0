package envelope

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"

	"github.com/arloliu/bitcode/internal/pool"
)

// lz4Compressors pools lz4.Compressor instances: the type carries an
// internal hash table that's wasteful to rebuild for every Frame call.
var lz4Compressors = sync.Pool{New: func() any { return &lz4.Compressor{} }}

// lz4MaxDecompressedSize bounds the guess-and-retry buffer growth in
// Decompress; a framed payload whose true size needs more than this is
// treated the same as corrupted input, since bitcode payloads this module
// produces never approach it.
const lz4MaxDecompressedSize = 128 * 1024 * 1024

type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

func (LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	c, _ := lz4Compressors.Get().(*lz4.Compressor)
	defer lz4Compressors.Put(c)

	dst := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := c.CompressBlock(data, dst)
	if err != nil {
		return nil, err
	}

	return dst[:n], nil
}

// Decompress doesn't know the original size up front (LZ4 block mode
// carries no length prefix of its own, unlike the frame mode this module
// doesn't use), so it guesses 4x the compressed size and doubles on a
// too-small-buffer error until it either succeeds or exceeds
// lz4MaxDecompressedSize.
func (LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out := pool.NewByteBuffer(len(data) * 4)
	for out.Cap() <= lz4MaxDecompressedSize {
		out.SetLength(out.Cap())
		n, err := lz4.UncompressBlock(data, out.Bytes())
		if err == nil {
			return out.Bytes()[:n], nil
		}
		if !errors.Is(err, lz4.ErrInvalidSourceShortBuffer) {
			return nil, err
		}

		grown := pool.NewByteBuffer(out.Cap() * 2)
		out = grown
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
