package envelope

import (
	"fmt"

	"github.com/arloliu/bitcode/endian"
	"github.com/arloliu/bitcode/internal/hash"
)

// frameMagic identifies a Frame envelope; it is never produced by bitcode's
// core Encode/Decode, which is deliberately magic-number-free.
var frameMagic = [4]byte{'B', 'T', 'C', '1'}

// frameHeaderSize is magic(4) + compression type(1) + payload length(8) +
// xxhash64 checksum(8), all little-endian.
const frameHeaderSize = 4 + 1 + 8 + 8

var engine = endian.GetLittleEndianEngine()

// Frame wraps an already bitcode-encoded payload with a magic number, the
// algorithm used, the uncompressed payload's length, and its xxhash64
// checksum, then compresses the result with codec. The checksum is computed
// over payload before compression, so Unframe can detect corruption
// introduced anywhere downstream of Frame, including within the compressor
// itself.
func Frame(payload []byte, codec Compressor) ([]byte, error) {
	compType, err := compressionTypeOf(codec)
	if err != nil {
		return nil, err
	}

	sum := hash.Sum64(payload)

	framed := make([]byte, 0, frameHeaderSize+len(payload))
	framed = append(framed, frameMagic[:]...)
	framed = append(framed, byte(compType))
	framed = engine.AppendUint64(framed, uint64(len(payload)))
	framed = engine.AppendUint64(framed, sum)
	framed = append(framed, payload...)

	compressed, err := codec.Compress(framed)
	if err != nil {
		return nil, fmt.Errorf("envelope: frame: %w", err)
	}

	return compressed, nil
}

// Unframe reverses Frame: it decompresses data with codec, validates the
// magic number, declared length, and checksum, then returns the original
// payload bytes Frame was given. A corrupted envelope is rejected here,
// before the unwrapped payload ever reaches bitcode's own decoder.
func Unframe(data []byte, codec Decompressor) ([]byte, error) {
	framed, err := codec.Decompress(data)
	if err != nil {
		return nil, fmt.Errorf("envelope: unframe: %w", err)
	}

	if len(framed) < frameHeaderSize {
		return nil, fmt.Errorf("envelope: unframe: truncated header: got %d bytes, need at least %d", len(framed), frameHeaderSize)
	}

	if [4]byte(framed[0:4]) != frameMagic {
		return nil, fmt.Errorf("envelope: unframe: bad magic number")
	}

	length := engine.Uint64(framed[5:13])
	wantSum := engine.Uint64(framed[13:21])

	payload := framed[frameHeaderSize:]
	if uint64(len(payload)) != length {
		return nil, fmt.Errorf("envelope: unframe: declared length %d does not match payload length %d", length, len(payload))
	}

	gotSum := hash.Sum64(payload)
	if gotSum != wantSum {
		return nil, fmt.Errorf("envelope: unframe: checksum mismatch: declared %x, computed %x", wantSum, gotSum)
	}

	out := make([]byte, len(payload))
	copy(out, payload)

	return out, nil
}

// compressionTypeOf identifies which CompressionType codec implements, so
// Frame can record it in the header for callers who persist framed bytes
// without separately tracking which codec produced them. Custom Compressor
// implementations (not one of the built-ins) record CompressionNone's tag,
// since there is no registry entry to recover their identity from; Unframe
// never uses the tag itself; it exists purely as a diagnostic breadcrumb,
// so this does not affect round-tripping.
func compressionTypeOf(codec Compressor) (CompressionType, error) {
	if codec == nil {
		return 0, fmt.Errorf("envelope: frame: nil codec")
	}

	for t, builtin := range builtinCodecs {
		if builtin == codec {
			return t, nil
		}
	}

	return CompressionNone, nil
}
