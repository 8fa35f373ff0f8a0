package envelope

// NoOpCompressor is the identity Codec: Frame still writes its header
// (magic, checksum, declared length) but the payload itself passes through
// untouched. CreateCodec and GetCodec return it for CompressionNone; it is
// also useful as a baseline when
// measuring whether a real codec's ratio is worth its CPU cost on a given
// workload.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns data unchanged, sharing its backing array; callers that
// mutate data afterward must not also rely on the returned slice.
func (NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress mirrors Compress: the input is already the payload.
func (NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
