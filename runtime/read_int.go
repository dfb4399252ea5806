package cbor

import "math"

// applySign maps a raw magnitude onto a signed value. CBOR stores a
// negative integer as the one's complement of its value (-1 has
// magnitude 0, -2 has magnitude 1, ...), so the reconstruction is an
// XOR with all-ones for major type 1 and with zero for major type 0.
func applySign(major uint8, u uint64) (int64, error) {
	var xform uint64
	if major == majorTypeNegInt {
		xform = ^uint64(0)
	}
	if u > math.MaxInt64 {
		return 0, IntOverflow{Value: int64(u ^ xform), FailedBitsize: 64}
	}
	return int64(u) ^ int64(xform), nil
}

// expectIntMajor validates that a lead byte carries one of the two
// integer major types.
func expectIntMajor(lead byte) (uint8, error) {
	major := getMajorType(lead)
	if major != majorTypeUint && major != majorTypeNegInt {
		return 0, badPrefix(majorTypeUint, major)
	}
	return major, nil
}

// finishInt64 reconstructs a signed integer from an already-read lead
// byte. Used by ReadInt64 and by readers that dispatch on the lead byte
// themselves (ReadNumber, ReadTime).
func (d *Decoder) finishInt64(lead byte) (int64, error) {
	major, err := expectIntMajor(lead)
	if err != nil {
		return 0, err
	}
	u, err := d.resolveUint(major, getAddInfo(lead))
	if err != nil {
		return 0, err
	}
	return applySign(major, u)
}

// ReadInt64 reads a signed or unsigned integer encoded with any
// declared width. Unsigned values above math.MaxInt64 fail with
// IntOverflow; use ReadUint64 for the full unsigned range.
func (d *Decoder) ReadInt64() (int64, error) {
	lead, err := d.readLead()
	if err != nil {
		return 0, err
	}
	return d.finishInt64(lead)
}

// ReadInt32 reads an integer and range-checks it into int32.
func (d *Decoder) ReadInt32() (int32, error) {
	i64, err := d.ReadInt64()
	if err != nil {
		return 0, err
	}
	if i64 > math.MaxInt32 || i64 < math.MinInt32 {
		return 0, IntOverflow{Value: i64, FailedBitsize: 32}
	}
	return int32(i64), nil
}

// ReadInt16 reads an integer and range-checks it into int16.
func (d *Decoder) ReadInt16() (int16, error) {
	i64, err := d.ReadInt64()
	if err != nil {
		return 0, err
	}
	if i64 > math.MaxInt16 || i64 < math.MinInt16 {
		return 0, IntOverflow{Value: i64, FailedBitsize: 16}
	}
	return int16(i64), nil
}

// ReadInt8 reads an integer and range-checks it into int8.
func (d *Decoder) ReadInt8() (int8, error) {
	i64, err := d.ReadInt64()
	if err != nil {
		return 0, err
	}
	if i64 > math.MaxInt8 || i64 < math.MinInt8 {
		return 0, IntOverflow{Value: i64, FailedBitsize: 8}
	}
	return int8(i64), nil
}

// ReadInt reads an integer as an int.
func (d *Decoder) ReadInt() (int, error) {
	i64, err := d.ReadInt64()
	if err != nil {
		return 0, err
	}
	return int(i64), nil
}

// finishUint64 reconstructs an unsigned integer from an already-read
// lead byte of major type 0.
func (d *Decoder) finishUint64(lead byte) (uint64, error) {
	if major := getMajorType(lead); major != majorTypeUint {
		return 0, badPrefix(majorTypeUint, major)
	}
	return d.resolveUint(majorTypeUint, getAddInfo(lead))
}

// ReadUint64 reads an unsigned integer encoded with any declared
// width. The full 64-bit unsigned range is representable here.
func (d *Decoder) ReadUint64() (uint64, error) {
	lead, err := d.readLead()
	if err != nil {
		return 0, err
	}
	return d.finishUint64(lead)
}

// ReadUint32 reads an unsigned integer and range-checks it into uint32.
func (d *Decoder) ReadUint32() (uint32, error) {
	u64, err := d.ReadUint64()
	if err != nil {
		return 0, err
	}
	if u64 > math.MaxUint32 {
		return 0, UintOverflow{Value: u64, FailedBitsize: 32}
	}
	return uint32(u64), nil
}

// ReadUint16 reads an unsigned integer and range-checks it into uint16.
func (d *Decoder) ReadUint16() (uint16, error) {
	u64, err := d.ReadUint64()
	if err != nil {
		return 0, err
	}
	if u64 > math.MaxUint16 {
		return 0, UintOverflow{Value: u64, FailedBitsize: 16}
	}
	return uint16(u64), nil
}

// ReadUint8 reads an unsigned integer and range-checks it into uint8.
func (d *Decoder) ReadUint8() (uint8, error) {
	u64, err := d.ReadUint64()
	if err != nil {
		return 0, err
	}
	if u64 > math.MaxUint8 {
		return 0, UintOverflow{Value: u64, FailedBitsize: 8}
	}
	return uint8(u64), nil
}

// ReadUint reads an unsigned integer as a uint.
func (d *Decoder) ReadUint() (uint, error) {
	u64, err := d.ReadUint64()
	if err != nil {
		return 0, err
	}
	return uint(u64), nil
}

// readIntExact reads a signed or unsigned integer whose width marker
// must exactly equal want. The payload is read at its stated width
// regardless of value; only the marker is checked.
func (d *Decoder) readIntExact(want uint8) (int64, error) {
	lead, err := d.readLead()
	if err != nil {
		return 0, err
	}
	major, err := expectIntMajor(lead)
	if err != nil {
		return 0, err
	}
	add := getAddInfo(lead)
	if add != want {
		return 0, WidthMismatchError{Want: want, Got: add}
	}
	u, err := d.readUintPayload(major, add)
	if err != nil {
		return 0, err
	}
	return applySign(major, u)
}

// ReadInt8Exact reads an integer whose payload is exactly one byte.
// Values range over [-256, 255], hence the int16 result.
func (d *Decoder) ReadInt8Exact() (int16, error) {
	v, err := d.readIntExact(addInfoUint8)
	return int16(v), err
}

// ReadInt16Exact reads an integer whose payload is exactly two bytes.
// Values range over [-65536, 65535], hence the int32 result.
func (d *Decoder) ReadInt16Exact() (int32, error) {
	v, err := d.readIntExact(addInfoUint16)
	return int32(v), err
}

// ReadInt32Exact reads an integer whose payload is exactly four bytes.
// Values range over [-4294967296, 4294967295].
func (d *Decoder) ReadInt32Exact() (int64, error) {
	return d.readIntExact(addInfoUint32)
}

// ReadInt64Exact reads an integer whose payload is exactly eight
// bytes. Unsigned magnitudes above math.MaxInt64 fail with IntOverflow.
func (d *Decoder) ReadInt64Exact() (int64, error) {
	return d.readIntExact(addInfoUint64)
}

// ReadSmallInt reads an integer encoded inline in the lead byte.
// Values range over [-24, 23]; any width marker fails with
// WidthMismatchError.
func (d *Decoder) ReadSmallInt() (int8, error) {
	lead, err := d.readLead()
	if err != nil {
		return 0, err
	}
	major, err := expectIntMajor(lead)
	if err != nil {
		return 0, err
	}
	add := getAddInfo(lead)
	if add > addInfoDirect {
		return 0, WidthMismatchError{Want: addInfoDirect, Got: add}
	}
	v, _ := applySign(major, uint64(add))
	return int8(v), nil
}
