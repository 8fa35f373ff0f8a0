package envelope

// CompressionType identifies a general-purpose compression algorithm applied
// to an already bitcode-encoded payload. bitcode's own encoding already
// biases the byte stream toward long runs and short prefix codes (see the
// gamma coding and column transpose docs); CompressionType selects the
// downstream general-purpose compressor that exploits that bias.
type CompressionType uint8

const (
	CompressionNone CompressionType = 0x1 // CompressionNone performs no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd uses Zstandard.
	CompressionS2   CompressionType = 0x3 // CompressionS2 uses the S2 (Snappy-compatible) codec.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 uses LZ4.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
