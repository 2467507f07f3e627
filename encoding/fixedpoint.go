package encoding

import "math"

// FixedPointScale is the fixed-point scale used to store decimal measures
// (quantity, extended price, discount, tax) as unsigned 16-bit integers.
//
// A real value x is stored as round(x * FixedPointScale), which must fit in
// [0, 65535]. Values outside that range are silently truncated to 16 bits;
// the codec never diagnoses overflow.
const FixedPointScale = 100

// CompressMeasure narrows a non-negative real value to its fixed-point
// image at scale 100, rounding halves away from zero via math.Round.
//
// CompressMeasure is lossy by construction. It performs no bounds checking:
// callers must ensure x*100 rounds into [0, 65535] or accept silent
// truncation to uint16.
func CompressMeasure(x float64) uint16 {
	return uint16(math.Round(x * FixedPointScale))
}

// DecompressMeasure reverses CompressMeasure, returning the real value
// represented by the fixed-point image y.
func DecompressMeasure(y uint16) float64 {
	return float64(y) / FixedPointScale
}
