package cbor

import (
	"errors"
	"math"
	"time"
)

var errTimeNotFinite = errors.New("cbor: non-finite epoch timestamp")

// ReadTag reads a semantic tag number. The tagged content follows and
// is decoded by whatever read call comes next.
func (d *Decoder) ReadTag() (uint64, error) {
	add, err := d.expectMajor(majorTypeTag)
	if err != nil {
		return 0, err
	}
	if add == addInfoIndefinite {
		return 0, InvalidAdditionalInfoError{Major: majorTypeTag, Info: add}
	}
	return d.resolveUint(majorTypeTag, add)
}

// ReadExpectedTag reads a tag and fails with a TagError unless it is
// exactly want.
func (d *Decoder) ReadExpectedTag(want uint64) error {
	got, err := d.ReadTag()
	if err != nil {
		return err
	}
	if got != want {
		return TagError{Want: want, Got: got}
	}
	return nil
}

// StripSelfDescribe consumes a leading self-describe tag (55799) if one
// is present, and is a no-op otherwise. It requires a peekable source.
func (d *Decoder) StripSelfDescribe() error {
	p, ok := d.src.(Peeker)
	if !ok {
		return ErrPeekUnsupported
	}
	b, err := p.Peek(3)
	if err != nil {
		if err == ErrShortBytes {
			return nil
		}
		return err
	}
	if b[0] == 0xd9 && b[1] == 0xd9 && b[2] == 0xf7 {
		var tmp [3]byte
		return d.src.ReadFull(tmp[:])
	}
	return nil
}

// ReadTime reads a tagged date/time value. Tag 1 (epoch) content may be
// an integer or a float; float seconds are split into whole seconds and
// rounded nanoseconds. Tag 0 content is an RFC 3339 text string. The
// result is normalized to UTC.
func (d *Decoder) ReadTime() (time.Time, error) {
	tag, err := d.ReadTag()
	if err != nil {
		return time.Time{}, err
	}
	switch tag {
	case tagDateTimeString:
		s, err := d.ReadTextString()
		if err != nil {
			return time.Time{}, err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, err
		}
		return t.UTC(), nil
	case tagEpochDateTime:
		return d.readEpochTime()
	default:
		return time.Time{}, TagError{Want: tagEpochDateTime, Got: tag}
	}
}

func (d *Decoder) readEpochTime() (time.Time, error) {
	lead, err := d.readLead()
	if err != nil {
		return time.Time{}, err
	}
	switch getMajorType(lead) {
	case majorTypeUint, majorTypeNegInt:
		sec, err := d.finishInt64(lead)
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(sec, 0).UTC(), nil
	case majorTypeSimple:
		var f float64
		switch getAddInfo(lead) {
		case simpleFloat16:
			f, err = d.finishFloat16(lead)
		case simpleFloat32:
			var f32 float32
			f32, err = d.finishFloat32(lead)
			f = float64(f32)
		case simpleFloat64:
			f, err = d.finishFloat64(lead)
		default:
			return time.Time{}, TypeError{Method: TimeType, Encoded: getType(lead)}
		}
		if err != nil {
			return time.Time{}, err
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return time.Time{}, errTimeNotFinite
		}
		sec := math.Floor(f)
		nsec := math.Round((f - sec) * 1e9)
		return time.Unix(int64(sec), int64(nsec)).UTC(), nil
	default:
		return time.Time{}, TypeError{Method: TimeType, Encoded: getType(lead)}
	}
}

// ReadDuration reads a duration encoded as nanoseconds in a signed
// integer.
func (d *Decoder) ReadDuration() (time.Duration, error) {
	i, err := d.ReadInt64()
	if err != nil {
		return 0, err
	}
	return time.Duration(i), nil
}
