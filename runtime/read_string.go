package cbor

import "math"

// stringLen resolves a definite string length and applies the
// platform-size and configured container limits before any allocation
// is attempted.
func (d *Decoder) stringLen(major, add uint8) (int, error) {
	u, err := d.resolveUint(major, add)
	if err != nil {
		return 0, err
	}
	if u > math.MaxInt {
		return 0, UintOverflow{Value: u, FailedBitsize: 64}
	}
	if d.maxContainer > 0 && u > uint64(d.maxContainer) {
		return 0, ErrContainerTooLarge
	}
	return int(u), nil
}

// readExact returns exactly n payload bytes, or fails with
// ErrShortBytes if the source is exhausted first. In-memory sources
// hand back a window into their buffer; other sources allocate.
func (d *Decoder) readExact(n int) ([]byte, error) {
	if n == 0 {
		return []byte{}, nil
	}
	if w, ok := d.src.(windower); ok {
		return w.window(n)
	}
	buf := make([]byte, n)
	if err := d.src.ReadFull(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// readChunks assembles an indefinite-length string from its definite
// chunks. Each chunk must carry the same major type as the enclosing
// string; nested indefinite chunks are not well-formed.
func (d *Decoder) readChunks(major uint8) ([]byte, error) {
	out := []byte{}
	for {
		lead, err := d.readLead()
		if err != nil {
			return nil, err
		}
		if lead == leadBreak {
			return out, nil
		}
		if m := getMajorType(lead); m != major {
			return nil, badPrefix(major, m)
		}
		add := getAddInfo(lead)
		if add == addInfoIndefinite {
			return nil, InvalidAdditionalInfoError{Major: major, Info: add}
		}
		n, err := d.stringLen(major, add)
		if err != nil {
			return nil, err
		}
		chunk, err := d.readExact(n)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
	}
}

// readString reads the payload of a byte or text string, definite or
// indefinite.
func (d *Decoder) readString(major uint8) ([]byte, error) {
	add, err := d.expectMajor(major)
	if err != nil {
		return nil, err
	}
	if add == addInfoIndefinite {
		if d.deterministic {
			return nil, ErrIndefiniteForbidden
		}
		return d.readChunks(major)
	}
	n, err := d.stringLen(major, add)
	if err != nil {
		return nil, err
	}
	return d.readExact(n)
}

// ReadByteString reads a byte string. A declared length of zero
// returns an empty slice without consuming further bytes; an
// indefinite-length string is assembled from its chunks. When reading
// from an in-memory source the result aliases the source buffer.
func (d *Decoder) ReadByteString() ([]byte, error) {
	return d.readString(majorTypeBytes)
}

// ReadTextString reads a UTF-8 text string. The byte content is
// validated as UTF-8 unless ValidateUTF8OnDecode is disabled.
func (d *Decoder) ReadTextString() (string, error) {
	v, err := d.readString(majorTypeText)
	if err != nil {
		return "", err
	}
	if ValidateUTF8OnDecode && !isUTF8Valid(v) {
		return "", ErrInvalidUTF8
	}
	if UnsafeStringDecode {
		return UnsafeString(v), nil
	}
	return string(v), nil
}
