package cbor

import (
	"encoding/hex"
	"math"
	"strconv"
	"strings"
)

// Diag consumes the next item and renders it in the diagnostic notation
// of RFC 8949 section 8. Indefinite-length items render with the
// leading underscore form, e.g. [_ 1, 2] or (_ h'01', h'02').
func (d *Decoder) Diag() (string, error) {
	buf := GetByteBuffer()
	defer PutByteBuffer(buf)
	if err := d.diagNext(buf, 0); err != nil {
		return "", err
	}
	return string(buf.B), nil
}

func (d *Decoder) diagNext(buf *ByteBuffer, depth int) error {
	if depth >= recursionLimit {
		return ErrMaxDepthExceeded
	}
	lead, err := d.readLead()
	if err != nil {
		return err
	}
	return d.diagItem(buf, lead, depth)
}

func (d *Decoder) diagItem(buf *ByteBuffer, lead byte, depth int) error {
	major := getMajorType(lead)
	add := getAddInfo(lead)
	switch major {
	case majorTypeUint, majorTypeNegInt:
		i, err := d.finishInt64(lead)
		if err != nil {
			if major == majorTypeUint {
				// Out of int64 range but still renderable.
				if u, uerr := d.handleUintOverflowDiag(err); uerr == nil {
					buf.WriteString(strconv.FormatUint(u, 10))
					return nil
				}
			}
			return err
		}
		buf.WriteString(strconv.FormatInt(i, 10))
		return nil
	case majorTypeBytes:
		return d.diagString(buf, major, add)
	case majorTypeText:
		return d.diagString(buf, major, add)
	case majorTypeArray:
		return d.diagArray(buf, add, depth)
	case majorTypeMap:
		return d.diagMap(buf, add, depth)
	case majorTypeTag:
		if add == addInfoIndefinite {
			return InvalidAdditionalInfoError{Major: major, Info: add}
		}
		tag, err := d.resolveUint(major, add)
		if err != nil {
			return err
		}
		buf.WriteString(strconv.FormatUint(tag, 10))
		buf.WriteByte('(')
		if err := d.diagNext(buf, depth+1); err != nil {
			return err
		}
		buf.WriteByte(')')
		return nil
	default:
		return d.diagSimple(buf, lead, add)
	}
}

// handleUintOverflowDiag recovers the unsigned magnitude from an
// IntOverflow raised by finishInt64 on major type 0. The payload was
// already consumed, so the original value is reconstructable from the
// error itself.
func (d *Decoder) handleUintOverflowDiag(err error) (uint64, error) {
	if ovf, ok := err.(IntOverflow); ok && ovf.FailedBitsize == 64 {
		return uint64(ovf.Value), nil
	}
	return 0, err
}

func (d *Decoder) diagString(buf *ByteBuffer, major, add uint8) error {
	if add == addInfoIndefinite {
		buf.WriteString("(_ ")
		first := true
		for {
			lead, err := d.readLead()
			if err != nil {
				return err
			}
			if lead == leadBreak {
				buf.WriteByte(')')
				return nil
			}
			if m := getMajorType(lead); m != major {
				return badPrefix(major, m)
			}
			ca := getAddInfo(lead)
			if ca == addInfoIndefinite {
				return InvalidAdditionalInfoError{Major: major, Info: ca}
			}
			if !first {
				buf.WriteString(", ")
			}
			first = false
			if err := d.diagDefiniteString(buf, major, ca); err != nil {
				return err
			}
		}
	}
	return d.diagDefiniteString(buf, major, add)
}

func (d *Decoder) diagDefiniteString(buf *ByteBuffer, major, add uint8) error {
	n, err := d.stringLen(major, add)
	if err != nil {
		return err
	}
	v, err := d.readExact(n)
	if err != nil {
		return err
	}
	if major == majorTypeBytes {
		buf.WriteString("h'")
		buf.WriteString(hex.EncodeToString(v))
		buf.WriteByte('\'')
		return nil
	}
	if ValidateUTF8OnDecode && !isUTF8Valid(v) {
		return ErrInvalidUTF8
	}
	buf.WriteString(strconv.Quote(string(v)))
	return nil
}

func (d *Decoder) diagArray(buf *ByteBuffer, add uint8, depth int) error {
	n, err := d.readSize(majorTypeArray, add)
	if err != nil {
		return err
	}
	buf.WriteByte('[')
	if n < 0 {
		buf.WriteString("_ ")
		first := true
		for {
			lead, err := d.readLead()
			if err != nil {
				return err
			}
			if lead == leadBreak {
				break
			}
			if !first {
				buf.WriteString(", ")
			}
			first = false
			if err := d.diagItem(buf, lead, depth+1); err != nil {
				return err
			}
		}
	} else {
		for i := int64(0); i < n; i++ {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := d.diagNext(buf, depth+1); err != nil {
				return err
			}
		}
	}
	buf.WriteByte(']')
	return nil
}

func (d *Decoder) diagMap(buf *ByteBuffer, add uint8, depth int) error {
	n, err := d.readSize(majorTypeMap, add)
	if err != nil {
		return err
	}
	buf.WriteByte('{')
	if n < 0 {
		buf.WriteString("_ ")
		first := true
		for {
			lead, err := d.readLead()
			if err != nil {
				return err
			}
			if lead == leadBreak {
				break
			}
			if !first {
				buf.WriteString(", ")
			}
			first = false
			if err := d.diagItem(buf, lead, depth+1); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := d.diagNext(buf, depth+1); err != nil {
				return err
			}
		}
	} else {
		for i := int64(0); i < n; i++ {
			if i > 0 {
				buf.WriteString(", ")
			}
			if err := d.diagNext(buf, depth+1); err != nil {
				return err
			}
			buf.WriteString(": ")
			if err := d.diagNext(buf, depth+1); err != nil {
				return err
			}
		}
	}
	buf.WriteByte('}')
	return nil
}

func (d *Decoder) diagSimple(buf *ByteBuffer, lead byte, add uint8) error {
	switch add {
	case simpleFalse:
		buf.WriteString("false")
	case simpleTrue:
		buf.WriteString("true")
	case simpleNull:
		buf.WriteString("null")
	case simpleUndefined:
		buf.WriteString("undefined")
	case simpleFloat16:
		f, err := d.finishFloat16(lead)
		if err != nil {
			return err
		}
		writeDiagFloat(buf, f, 64)
	case simpleFloat32:
		f, err := d.finishFloat32(lead)
		if err != nil {
			return err
		}
		writeDiagFloat(buf, float64(f), 32)
	case simpleFloat64:
		f, err := d.finishFloat64(lead)
		if err != nil {
			return err
		}
		writeDiagFloat(buf, f, 64)
	case addInfoUint8:
		v, err := d.src.ReadByte()
		if err != nil {
			return err
		}
		if v < 32 {
			return InvalidAdditionalInfoError{Major: majorTypeSimple, Info: addInfoUint8}
		}
		buf.WriteString("simple(")
		buf.WriteString(strconv.Itoa(int(v)))
		buf.WriteByte(')')
	case addInfoIndefinite:
		return ErrNotBreak
	default:
		if add >= 24 {
			return InvalidAdditionalInfoError{Major: majorTypeSimple, Info: add}
		}
		buf.WriteString("simple(")
		buf.WriteString(strconv.Itoa(int(add)))
		buf.WriteByte(')')
	}
	return nil
}

// writeDiagFloat renders a float in diagnostic notation. Finite values
// always carry a decimal point or an exponent so they stay visually
// distinct from integers.
func writeDiagFloat(buf *ByteBuffer, f float64, bits int) {
	switch {
	case math.IsNaN(f):
		buf.WriteString("NaN")
	case math.IsInf(f, 1):
		buf.WriteString("Infinity")
	case math.IsInf(f, -1):
		buf.WriteString("-Infinity")
	default:
		s := strconv.FormatFloat(f, 'g', -1, bits)
		if !strings.ContainsAny(s, ".eE") {
			s += ".0"
		}
		buf.WriteString(s)
	}
}
