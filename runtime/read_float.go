package cbor

import (
	"math"

	"github.com/x448/float16"
)

// expandFloat16 reconstructs an IEEE 754 binary16 value. Go has no
// native half-precision type, so the sign, exponent and mantissa fields
// are expanded by hand: a zero exponent is subnormal (mant * 2^-24), an
// all-ones exponent is NaN or infinity, and anything else is a
// normalized value (mant+1024) * 2^(exp-25). Signed zero and signed
// infinity survive the expansion.
func expandFloat16(h uint16) float64 {
	exp := int(h>>float16ExpShift) & int(float16ExpMask)
	mant := float64(h & float16MantMask)

	var v float64
	switch {
	case exp == 0:
		v = math.Ldexp(mant, -(float16ExpBias + float16MantBits - 1))
	case exp != int(float16ExpMask):
		v = math.Ldexp(mant+float64(float16HiddenBit), exp-(float16ExpBias+float16MantBits))
	case mant != 0:
		v = math.NaN()
	default:
		v = math.Inf(1)
	}

	if h&float16SignBit != 0 {
		v = -v
	}
	return v
}

// finishFloat16 reconstructs a half-precision float from an
// already-read lead byte.
func (d *Decoder) finishFloat16(lead byte) (float64, error) {
	if err := expectFloatLead(lead, simpleFloat16); err != nil {
		return 0, err
	}
	var tmp [2]byte
	if err := d.src.ReadFull(tmp[:]); err != nil {
		return 0, err
	}
	return expandFloat16(be.Uint16(tmp[:])), nil
}

// finishFloat32 reconstructs a single-precision float from an
// already-read lead byte. The four payload bytes are reinterpreted as
// a float32 bit pattern with no arithmetic transformation.
func (d *Decoder) finishFloat32(lead byte) (float32, error) {
	if err := expectFloatLead(lead, simpleFloat32); err != nil {
		return 0, err
	}
	var tmp [4]byte
	if err := d.src.ReadFull(tmp[:]); err != nil {
		return 0, err
	}
	f := math.Float32frombits(be.Uint32(tmp[:]))
	if d.strict && float16.PrecisionFromfloat32(f) == float16.PrecisionExact {
		return 0, ErrNonCanonicalFloat
	}
	return f, nil
}

// finishFloat64 reconstructs a double-precision float from an
// already-read lead byte.
func (d *Decoder) finishFloat64(lead byte) (float64, error) {
	if err := expectFloatLead(lead, simpleFloat64); err != nil {
		return 0, err
	}
	var tmp [8]byte
	if err := d.src.ReadFull(tmp[:]); err != nil {
		return 0, err
	}
	f := math.Float64frombits(be.Uint64(tmp[:]))
	// A float64 whose value round-trips through float32 should have
	// been encoded narrower. NaN payloads are left alone.
	if d.strict && float64(float32(f)) == f {
		return 0, ErrNonCanonicalFloat
	}
	return f, nil
}

// expectFloatLead validates major type 7 with an exact width marker.
func expectFloatLead(lead byte, want uint8) error {
	if major := getMajorType(lead); major != majorTypeSimple {
		return badPrefix(majorTypeSimple, major)
	}
	if add := getAddInfo(lead); add != want {
		return WidthMismatchError{Want: want, Got: add}
	}
	return nil
}

// ReadFloat16 reads a half-precision float (width marker 25). The
// result is exact: every binary16 value is representable in float64.
func (d *Decoder) ReadFloat16() (float64, error) {
	lead, err := d.readLead()
	if err != nil {
		return 0, err
	}
	return d.finishFloat16(lead)
}

// ReadFloat32 reads a single-precision float (width marker 26).
func (d *Decoder) ReadFloat32() (float32, error) {
	lead, err := d.readLead()
	if err != nil {
		return 0, err
	}
	return d.finishFloat32(lead)
}

// ReadFloat64 reads a double-precision float (width marker 27).
func (d *Decoder) ReadFloat64() (float64, error) {
	lead, err := d.readLead()
	if err != nil {
		return 0, err
	}
	return d.finishFloat64(lead)
}
