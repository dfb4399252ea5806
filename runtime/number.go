package cbor

import (
	"math"
	"strconv"
)

// Number holds one numeric value of any of the wire's numeric shapes:
// unsigned integer, signed integer, or half/single/double float. Half
// floats are widened to float32, which represents every binary16 value
// exactly.
type Number struct {
	bits uint64
	typ  Type
}

// AsInt sets the number to a signed integer.
func (n *Number) AsInt(i int64) {
	// Anything that fits an int64 and is positive fits a uint64.
	if i >= 0 {
		n.AsUint(uint64(i))
		return
	}
	n.typ = IntType
	n.bits = uint64(i)
}

// AsUint sets the number to an unsigned integer.
func (n *Number) AsUint(u uint64) {
	n.typ = UintType
	n.bits = u
}

// AsFloat32 sets the number to a single-precision float.
func (n *Number) AsFloat32(f float32) {
	n.typ = Float32Type
	n.bits = uint64(math.Float32bits(f))
}

// AsFloat64 sets the number to a double-precision float.
func (n *Number) AsFloat64(f float64) {
	n.typ = Float64Type
	n.bits = math.Float64bits(f)
}

// Type returns the number's numeric shape: UintType, IntType,
// Float32Type, or Float64Type. The zero Number is a uint 0.
func (n *Number) Type() Type {
	if n.typ == InvalidType {
		return UintType
	}
	return n.typ
}

// Int returns the number as an int64 if it is representable exactly.
func (n *Number) Int() (int64, bool) {
	switch n.typ {
	case IntType:
		return int64(n.bits), true
	case UintType, InvalidType:
		return int64(n.bits), n.bits <= math.MaxInt64
	}
	return 0, false
}

// Uint returns the number as a uint64 if it is representable exactly.
func (n *Number) Uint() (uint64, bool) {
	switch n.typ {
	case UintType, InvalidType:
		return n.bits, true
	}
	return 0, false
}

// Float64 returns the number as a float64. The second return value is
// false only if the number is an integer too large for a float64 to
// hold exactly.
func (n *Number) Float64() (float64, bool) {
	switch n.typ {
	case Float32Type:
		return float64(math.Float32frombits(uint32(n.bits))), true
	case Float64Type:
		return math.Float64frombits(n.bits), true
	case IntType:
		i := int64(n.bits)
		return float64(i), int64(float64(i)) == i
	default:
		return float64(n.bits), uint64(float64(n.bits)) == n.bits
	}
}

// String renders the number in decimal.
func (n *Number) String() string {
	switch n.typ {
	case IntType:
		return strconv.FormatInt(int64(n.bits), 10)
	case Float32Type:
		return strconv.FormatFloat(float64(math.Float32frombits(uint32(n.bits))), 'g', -1, 32)
	case Float64Type:
		return strconv.FormatFloat(math.Float64frombits(n.bits), 'g', -1, 64)
	default:
		return strconv.FormatUint(n.bits, 10)
	}
}

// ReadNumber reads the next item into n, accepting any numeric shape.
func (d *Decoder) ReadNumber(n *Number) error {
	lead, err := d.readLead()
	if err != nil {
		return err
	}
	major := getMajorType(lead)
	switch major {
	case majorTypeUint:
		u, err := d.resolveUint(major, getAddInfo(lead))
		if err != nil {
			return err
		}
		n.AsUint(u)
		return nil
	case majorTypeNegInt:
		i, err := d.finishInt64(lead)
		if err != nil {
			return err
		}
		n.AsInt(i)
		return nil
	case majorTypeSimple:
		switch getAddInfo(lead) {
		case simpleFloat16:
			f, err := d.finishFloat16(lead)
			if err != nil {
				return err
			}
			n.AsFloat32(float32(f))
			return nil
		case simpleFloat32:
			f, err := d.finishFloat32(lead)
			if err != nil {
				return err
			}
			n.AsFloat32(f)
			return nil
		case simpleFloat64:
			f, err := d.finishFloat64(lead)
			if err != nil {
				return err
			}
			n.AsFloat64(f)
			return nil
		}
	}
	return TypeError{Method: Float64Type, Encoded: getType(lead)}
}
