package cbor

import "math"

// IEEE 754 binary16 field layout, used by the half-precision expansion
// in read_float.go and by its tests.
const (
	float16ExpBits  = 5
	float16MantBits = 10

	float16SignBit          = uint16(1) << (float16ExpBits + float16MantBits)
	float16ExpShift         = float16MantBits
	float16ExpMask   uint16 = math.MaxUint16 >> (16 - float16ExpBits)
	float16MantMask  uint16 = math.MaxUint16 >> (16 - float16MantBits)
	float16ExpBias          = int(float16ExpMask >> 1)

	float16HiddenBit = int(float16MantMask) + 1
)
