package bitio

import "math/bits"

// ZigZagEncode maps a signed value to an unsigned value such that
// small-magnitude values (positive or negative) map to small unsigned
// values: 0, -1, 1, -2, 2, ... -> 0, 1, 2, 3, 4, ...
func ZigZagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

// ZigZagDecode inverts ZigZagEncode.
func ZigZagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// BitWidth returns w = ceil(log2(hi - lo + 1)), the number of bits needed to
// store any value in the inclusive range [lo, hi] as an offset from lo.
// Returns 0 when hi == lo (a column with only one possible value needs no
// stored bits at all). Panics if hi < lo.
func BitWidth(lo, hi uint64) int {
	if hi < lo {
		panic("bitio: BitWidth: hi < lo")
	}

	return bits.Len64(hi - lo)
}
