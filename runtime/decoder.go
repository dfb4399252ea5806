package cbor

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/philhofer/fwd"
)

var be = binary.BigEndian

// Decoder reads CBOR values from a ByteSource.
//
// A Decoder owns a single forward-only read cursor with no internal
// synchronization, so one instance must not be used from multiple
// goroutines without external locking. Decode calls observe the byte
// stream in strict issuance order; nothing is buffered beyond what the
// underlying source buffers itself.
//
// After any error the cursor position is not trustworthy for resuming:
// callers should abort the decode of the whole message.
type Decoder struct {
	src           ByteSource
	strict        bool
	deterministic bool
	maxContainer  uint32
}

// NewDecoder constructs a Decoder reading from r through a buffered
// fwd.Reader.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{src: &readerSource{r: fwd.NewReader(r)}}
}

// NewDecoderSize constructs a Decoder reading from r with a read buffer
// of at least size bytes.
func NewDecoderSize(r io.Reader, size int) *Decoder {
	return &Decoder{src: &readerSource{r: fwd.NewReaderSize(r, size)}}
}

// NewDecoderBytes constructs a Decoder over an in-memory buffer.
// Byte-string reads return windows into b rather than copies.
func NewDecoderBytes(b []byte) *Decoder {
	return &Decoder{src: &bytesSource{buf: b}}
}

// NewDecoderSource constructs a Decoder over a caller-provided source.
func NewDecoderSource(src ByteSource) *Decoder {
	return &Decoder{src: src}
}

// SetStrictDecode controls whether the decoder should enforce canonical
// (minimal-width) encodings for integers and container/string lengths,
// and shortest-form float encodings. When enabled, over-long encodings
// fail with ErrNonCanonicalLength or ErrNonCanonicalFloat.
func (d *Decoder) SetStrictDecode(strict bool) { d.strict = strict }

// SetDeterministicDecode controls whether non-deterministic features
// such as indefinite-length items are forbidden.
func (d *Decoder) SetDeterministicDecode(det bool) { d.deterministic = det }

// SetMaxContainerLen configures an upper bound on container lengths
// (arrays, maps, byte strings, text strings). A value of zero disables
// the limit. When exceeded, ErrContainerTooLarge is returned.
func (d *Decoder) SetMaxContainerLen(max uint32) { d.maxContainer = max }

// NextType classifies the upcoming item without consuming it. It is
// only available when the underlying source supports peeking (both
// built-in sources do); otherwise ErrPeekUnsupported is returned.
func (d *Decoder) NextType() (Type, error) {
	p, ok := d.src.(Peeker)
	if !ok {
		return InvalidType, ErrPeekUnsupported
	}
	b, err := p.Peek(1)
	if err != nil || len(b) < 1 {
		if err == nil {
			err = ErrShortBytes
		}
		return InvalidType, err
	}
	return getType(b[0]), nil
}

// readLead reads the lead byte of the next item.
func (d *Decoder) readLead() (byte, error) {
	return d.src.ReadByte()
}

// expectMajor reads a lead byte, validates its major type, and returns
// the additional-information field.
func (d *Decoder) expectMajor(want uint8) (uint8, error) {
	lead, err := d.src.ReadByte()
	if err != nil {
		return 0, err
	}
	if major := getMajorType(lead); major != want {
		return 0, badPrefix(want, major)
	}
	return getAddInfo(lead), nil
}

// readUintPayload reads the 1/2/4/8-byte big-endian payload selected by
// the additional-information value. Reserved values 28-30, the break
// marker, and inline values are rejected.
func (d *Decoder) readUintPayload(major, add uint8) (uint64, error) {
	var n int
	switch add {
	case addInfoUint8:
		n = 1
	case addInfoUint16:
		n = 2
	case addInfoUint32:
		n = 4
	case addInfoUint64:
		n = 8
	default:
		return 0, InvalidAdditionalInfoError{Major: major, Info: add}
	}
	var tmp [8]byte
	if err := d.src.ReadFull(tmp[:n]); err != nil {
		return 0, err
	}
	switch n {
	case 1:
		return uint64(tmp[0]), nil
	case 2:
		return uint64(be.Uint16(tmp[:2])), nil
	case 4:
		return uint64(be.Uint32(tmp[:4])), nil
	default:
		return be.Uint64(tmp[:8]), nil
	}
}

// resolveUint resolves the additional-information field into an
// unsigned magnitude, reading payload bytes as needed. In strict mode,
// non-minimal width encodings are rejected per RFC 8949
// canonicalization rules.
func (d *Decoder) resolveUint(major, add uint8) (uint64, error) {
	if add <= addInfoDirect {
		return uint64(add), nil
	}
	u, err := d.readUintPayload(major, add)
	if err != nil {
		return 0, err
	}
	if d.strict && nonCanonicalWidth(add, u) {
		return 0, ErrNonCanonicalLength
	}
	return u, nil
}

// nonCanonicalWidth reports whether value u encoded with width marker
// add would have fit a narrower encoding.
func nonCanonicalWidth(add uint8, u uint64) bool {
	switch add {
	case addInfoUint8:
		return u <= addInfoDirect
	case addInfoUint16:
		return u <= math.MaxUint8
	case addInfoUint32:
		return u <= math.MaxUint16
	case addInfoUint64:
		return u <= math.MaxUint32
	}
	return false
}

// readSize resolves the additional-information field into a length.
// The indefinite marker resolves to -1; a magnitude that does not fit
// a signed 64-bit count is malformed where a concrete length is
// required.
func (d *Decoder) readSize(major, add uint8) (int64, error) {
	if add == addInfoIndefinite {
		return -1, nil
	}
	u, err := d.resolveUint(major, add)
	if err != nil {
		return 0, err
	}
	if u > math.MaxInt64 {
		return 0, LengthOverflowError{Value: u}
	}
	return int64(u), nil
}

// readLength reads a full length prolog: lead byte, major type check,
// and size resolution, applying the deterministic and container-limit
// knobs. Returns -1 for indefinite-length items.
func (d *Decoder) readLength(want uint8) (int64, error) {
	add, err := d.expectMajor(want)
	if err != nil {
		return 0, err
	}
	n, err := d.readSize(want, add)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		if d.deterministic {
			return 0, ErrIndefiniteForbidden
		}
		return -1, nil
	}
	if d.maxContainer > 0 && uint64(n) > uint64(d.maxContainer) {
		return 0, ErrContainerTooLarge
	}
	return n, nil
}

// ReadArrayLength reads an array length prolog. It returns the number
// of elements to read, or -1 for an indefinite-length array, in which
// case the caller reads elements until ReadBreak succeeds.
func (d *Decoder) ReadArrayLength() (int64, error) {
	return d.readLength(majorTypeArray)
}

// ReadMapLength reads a map length prolog. It returns the number of
// key-value pairs to read, or -1 for an indefinite-length map.
func (d *Decoder) ReadMapLength() (int64, error) {
	return d.readLength(majorTypeMap)
}

// ReadByteStringLength reads a byte string length prolog without
// materializing the payload. Returns -1 for indefinite-length strings.
func (d *Decoder) ReadByteStringLength() (int64, error) {
	return d.readLength(majorTypeBytes)
}

// ReadTextStringLength reads a text string length prolog without
// materializing the payload. Returns -1 for indefinite-length strings.
func (d *Decoder) ReadTextStringLength() (int64, error) {
	return d.readLength(majorTypeText)
}

// ReadArrayStart reads an array prolog and indicates whether it is
// indefinite-length. For definite arrays the size must fit in uint32.
func (d *Decoder) ReadArrayStart() (sz uint32, indefinite bool, err error) {
	n, err := d.ReadArrayLength()
	if err != nil {
		return 0, false, err
	}
	if n < 0 {
		return 0, true, nil
	}
	if n > math.MaxUint32 {
		return 0, false, UintOverflow{Value: uint64(n), FailedBitsize: 32}
	}
	return uint32(n), false, nil
}

// ReadMapStart reads a map prolog and indicates whether it is
// indefinite-length. For definite maps the size must fit in uint32.
func (d *Decoder) ReadMapStart() (sz uint32, indefinite bool, err error) {
	n, err := d.ReadMapLength()
	if err != nil {
		return 0, false, err
	}
	if n < 0 {
		return 0, true, nil
	}
	if n > math.MaxUint32 {
		return 0, false, UintOverflow{Value: uint64(n), FailedBitsize: 32}
	}
	return uint32(n), false, nil
}

// discard drops n payload bytes without surfacing them.
func (d *Decoder) discard(n int) error {
	switch s := d.src.(type) {
	case windower:
		_, err := s.window(n)
		return err
	case skipper:
		if _, err := s.Skip(n); err != nil {
			return eosError(err)
		}
		return nil
	}
	var tmp [512]byte
	for n > 0 {
		c := n
		if c > len(tmp) {
			c = len(tmp)
		}
		if err := d.src.ReadFull(tmp[:c]); err != nil {
			return err
		}
		n -= c
	}
	return nil
}
