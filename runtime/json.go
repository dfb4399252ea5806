package cbor

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"strconv"
)

// JSON consumes the next item and renders it as JSON text.
//
// The mapping follows the RFC 8949 section 6.1 conventions: byte
// strings become base64 text, non-finite floats become null, null and
// undefined both become null, and tag 0/1 and self-describe tags are
// unwrapped. Other tags render as {"$tag": n, "$": content}. Map keys
// must be text strings.
func (d *Decoder) JSON() (string, error) {
	buf := GetByteBuffer()
	defer PutByteBuffer(buf)
	if err := d.jsonNext(buf, 0); err != nil {
		return "", err
	}
	return string(buf.B), nil
}

func (d *Decoder) jsonNext(buf *ByteBuffer, depth int) error {
	if depth >= recursionLimit {
		return ErrMaxDepthExceeded
	}
	lead, err := d.readLead()
	if err != nil {
		return err
	}
	return d.jsonItem(buf, lead, depth)
}

func (d *Decoder) jsonItem(buf *ByteBuffer, lead byte, depth int) error {
	major := getMajorType(lead)
	add := getAddInfo(lead)
	switch major {
	case majorTypeUint, majorTypeNegInt:
		i, err := d.finishInt64(lead)
		if err != nil {
			if major == majorTypeUint {
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
		v, err := d.finishByteString(add)
		if err != nil {
			return err
		}
		buf.WriteByte('"')
		buf.WriteString(base64.StdEncoding.EncodeToString(v))
		buf.WriteByte('"')
		return nil
	case majorTypeText:
		return d.jsonTextString(buf, add)
	case majorTypeArray:
		return d.jsonArray(buf, add, depth)
	case majorTypeMap:
		return d.jsonMap(buf, add, depth)
	case majorTypeTag:
		return d.jsonTag(buf, add, depth)
	default:
		return d.jsonSimple(buf, lead, add)
	}
}

// finishByteString reads a byte string whose lead byte has already been
// consumed.
func (d *Decoder) finishByteString(add uint8) ([]byte, error) {
	if add == addInfoIndefinite {
		return d.readChunks(majorTypeBytes)
	}
	n, err := d.stringLen(majorTypeBytes, add)
	if err != nil {
		return nil, err
	}
	return d.readExact(n)
}

// finishTextString reads a text string whose lead byte has already been
// consumed, applying UTF-8 validation.
func (d *Decoder) finishTextString(add uint8) (string, error) {
	var v []byte
	var err error
	if add == addInfoIndefinite {
		v, err = d.readChunks(majorTypeText)
	} else {
		var n int
		n, err = d.stringLen(majorTypeText, add)
		if err == nil {
			v, err = d.readExact(n)
		}
	}
	if err != nil {
		return "", err
	}
	if ValidateUTF8OnDecode && !isUTF8Valid(v) {
		return "", ErrInvalidUTF8
	}
	return string(v), nil
}

func (d *Decoder) jsonTextString(buf *ByteBuffer, add uint8) error {
	s, err := d.finishTextString(add)
	if err != nil {
		return err
	}
	enc, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(enc)
	return nil
}

func (d *Decoder) jsonArray(buf *ByteBuffer, add uint8, depth int) error {
	n, err := d.readSize(majorTypeArray, add)
	if err != nil {
		return err
	}
	buf.WriteByte('[')
	if n < 0 {
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
				buf.WriteByte(',')
			}
			first = false
			if err := d.jsonItem(buf, lead, depth+1); err != nil {
				return err
			}
		}
	} else {
		for i := int64(0); i < n; i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := d.jsonNext(buf, depth+1); err != nil {
				return err
			}
		}
	}
	buf.WriteByte(']')
	return nil
}

func (d *Decoder) jsonMap(buf *ByteBuffer, add uint8, depth int) error {
	n, err := d.readSize(majorTypeMap, add)
	if err != nil {
		return err
	}
	buf.WriteByte('{')
	if n < 0 {
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
				buf.WriteByte(',')
			}
			first = false
			if err := d.jsonMapKey(buf, lead); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := d.jsonNext(buf, depth+1); err != nil {
				return err
			}
		}
	} else {
		for i := int64(0); i < n; i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			lead, err := d.readLead()
			if err != nil {
				return err
			}
			if err := d.jsonMapKey(buf, lead); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := d.jsonNext(buf, depth+1); err != nil {
				return err
			}
		}
	}
	buf.WriteByte('}')
	return nil
}

func (d *Decoder) jsonMapKey(buf *ByteBuffer, lead byte) error {
	if major := getMajorType(lead); major != majorTypeText {
		return TypeError{Method: StrType, Encoded: getType(lead)}
	}
	return d.jsonTextString(buf, getAddInfo(lead))
}

func (d *Decoder) jsonTag(buf *ByteBuffer, add uint8, depth int) error {
	if add == addInfoIndefinite {
		return InvalidAdditionalInfoError{Major: majorTypeTag, Info: add}
	}
	tag, err := d.resolveUint(majorTypeTag, add)
	if err != nil {
		return err
	}
	switch tag {
	case tagDateTimeString, tagEpochDateTime, tagSelfDescribeCBOR:
		return d.jsonNext(buf, depth+1)
	default:
		buf.WriteString(`{"$tag":`)
		buf.WriteString(strconv.FormatUint(tag, 10))
		buf.WriteString(`,"$":`)
		if err := d.jsonNext(buf, depth+1); err != nil {
			return err
		}
		buf.WriteByte('}')
		return nil
	}
}

func (d *Decoder) jsonSimple(buf *ByteBuffer, lead byte, add uint8) error {
	switch add {
	case simpleFalse:
		buf.WriteString("false")
	case simpleTrue:
		buf.WriteString("true")
	case simpleNull, simpleUndefined:
		buf.WriteString("null")
	case simpleFloat16:
		f, err := d.finishFloat16(lead)
		if err != nil {
			return err
		}
		writeJSONFloat(buf, f, 64)
	case simpleFloat32:
		f, err := d.finishFloat32(lead)
		if err != nil {
			return err
		}
		writeJSONFloat(buf, float64(f), 32)
	case simpleFloat64:
		f, err := d.finishFloat64(lead)
		if err != nil {
			return err
		}
		writeJSONFloat(buf, f, 64)
	case addInfoUint8:
		v, err := d.src.ReadByte()
		if err != nil {
			return err
		}
		if v < 32 {
			return InvalidAdditionalInfoError{Major: majorTypeSimple, Info: addInfoUint8}
		}
		buf.WriteString(strconv.Itoa(int(v)))
	case addInfoIndefinite:
		return ErrNotBreak
	default:
		if add >= 24 {
			return InvalidAdditionalInfoError{Major: majorTypeSimple, Info: add}
		}
		buf.WriteString(strconv.Itoa(int(add)))
	}
	return nil
}

// writeJSONFloat renders a finite float as a JSON number, or null for
// NaN and infinities, which JSON cannot represent.
func writeJSONFloat(buf *ByteBuffer, f float64, bits int) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		buf.WriteString("null")
		return
	}
	buf.WriteString(strconv.FormatFloat(f, 'g', -1, bits))
}
