//go:build cgo

package envelope

import "github.com/valyala/gozstd"

// With cgo available, gozstd's libzstd binding is faster than the pure-Go
// implementation in zstd_pure.go; same ZstdCompressor type, swapped
// implementation picked at compile time by the cgo build tag.
const zstdCgoLevel = 3

func (c ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, zstdCgoLevel), nil
}

func (c ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
