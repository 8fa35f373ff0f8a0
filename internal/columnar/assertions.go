package columnar

import "github.com/arloliu/bitcode/encoding"

// Compile-time checks that every primitive column codec satisfies the
// capability interfaces declared in encoding, so the driver package can
// hold them behind those interfaces without caring about the concrete
// column type underneath.
var (
	_ encoding.Encoder[bool] = (*BoolColumn)(nil)
	_ encoding.Decoder[bool] = (*BoolDecoder)(nil)

	_ encoding.Encoder[uint64] = (*UintColumn[uint64])(nil)
	_ encoding.Decoder[uint64] = (*UintDecoder[uint64])(nil)

	_ encoding.Encoder[int64] = (*IntColumn[int64])(nil)
	_ encoding.Decoder[int64] = (*IntDecoder[int64])(nil)

	_ encoding.Encoder[float64] = (*Float64Column)(nil)
	_ encoding.Decoder[float64] = (*Float64Decoder)(nil)

	_ encoding.Encoder[float32] = (*Float32Column)(nil)
	_ encoding.Decoder[float32] = (*Float32Decoder)(nil)

	_ encoding.Encoder[rune] = (*CharColumn)(nil)
	_ encoding.Decoder[rune] = (*CharDecoder)(nil)

	_ encoding.Encoder[[]byte] = (*ByteStringEncoder)(nil)
	_ encoding.Decoder[[]byte] = (*ByteStringDecoder)(nil)

	_ encoding.Encoder[string] = (*StringEncoder)(nil)
	_ encoding.Decoder[string] = (*StringDecoder)(nil)

	_ encoding.VariantSelector = (*DiscriminantDecoder)(nil)
	_ encoding.VariantSelector = (*HintedDiscriminantDecoder)(nil)
	_ encoding.VariantSelector = (*SumDecoder)(nil)

	_ encoding.LengthCoder = LengthColumn{}
)
