// This package is a streaming CBOR (RFC 8949) decoder.
//
// The decoder reads a self-describing byte stream through a forward-only
// ByteSource and reconstructs primitive values: integers of varying
// declared width, byte and text strings, array/map/tag headers, booleans,
// null/undefined markers, and half/single/double precision floats.
//
// Every public decode operation reads exactly one lead byte, classifies
// it by major type, resolves the length or payload that follows, and
// reconstructs the typed value. Nothing is buffered or read ahead beyond
// what is needed to return one value, so a Decoder can be pointed at a
// socket or pipe and consume items as they arrive:
//
//	dec := cbor.NewDecoder(conn)
//	n, err := dec.ReadArrayLength()
//
// Composite values (arrays, maps, tagged items) are exposed as length
// prologs and tag numbers; assembling them into trees is the caller's
// responsibility.
package cbor

// recursionLimit bounds the nesting depth of Skip, Diag, JSON and the
// well-formedness validator. This only matters for adversarial data
// trying to exhaust the stack.
const recursionLimit = 100000

// CBOR major types (3 bits)
const (
	majorTypeUint   = 0 // unsigned integer
	majorTypeNegInt = 1 // negative integer
	majorTypeBytes  = 2 // byte string
	majorTypeText   = 3 // text string (UTF-8)
	majorTypeArray  = 4 // array
	majorTypeMap    = 5 // map
	majorTypeTag    = 6 // semantic tag
	majorTypeSimple = 7 // float, simple values, break
)

// Additional info values (5 bits)
const (
	// 0-23: literal value
	addInfoDirect     = 23 // max direct value
	addInfoUint8      = 24 // 1-byte uint8 follows
	addInfoUint16     = 25 // 2-byte uint16 follows
	addInfoUint32     = 26 // 4-byte uint32 follows
	addInfoUint64     = 27 // 8-byte uint64 follows
	addInfoIndefinite = 31 // indefinite length (for bytes, text, array, map)
)

// Simple values in major type 7
const (
	simpleFalse     = 20
	simpleTrue      = 21
	simpleNull      = 22
	simpleUndefined = 23
	simpleFloat16   = 25
	simpleFloat32   = 26
	simpleFloat64   = 27
	simpleBreak     = 31
)

// Lead bytes matched directly on hot paths.
const (
	leadBreak   = majorTypeSimple<<5 | simpleBreak // 0xff
	leadNull    = majorTypeSimple<<5 | simpleNull  // 0xf6
	leadUndef   = majorTypeSimple<<5 | simpleUndefined
	leadFloat16 = majorTypeSimple<<5 | simpleFloat16 // 0xf9
	leadFloat32 = majorTypeSimple<<5 | simpleFloat32 // 0xfa
	leadFloat64 = majorTypeSimple<<5 | simpleFloat64 // 0xfb
)

// Common CBOR semantic tags
const (
	tagDateTimeString   = 0     // RFC3339 date/time string
	tagEpochDateTime    = 1     // Unix timestamp (int or float)
	tagSelfDescribeCBOR = 55799 // Self-describe CBOR (0xd9d9f7)
)

// makeByte creates a CBOR initial byte from major type and additional info
func makeByte(majorType, addInfo uint8) byte {
	return byte((majorType << 5) | addInfo)
}

// getMajorType extracts the major type from a CBOR initial byte
func getMajorType(b byte) uint8 {
	return (b >> 5) & 0x07
}

// getAddInfo extracts the additional info from a CBOR initial byte
func getAddInfo(b byte) uint8 {
	return b & 0x1f
}

// Type represents CBOR data types
type Type byte

// CBOR Types
const (
	InvalidType Type = iota

	StrType      // text string
	BinType      // byte string
	MapType      // map
	ArrayType    // array
	Float64Type  // float64
	Float32Type  // float32
	BoolType     // bool
	IntType      // signed integer
	UintType     // unsigned integer
	NilType      // nil
	DurationType // duration (encoded as int64)
	TagType      // tagged value
	TimeType     // time (tagged epoch timestamp)
)

// String implements fmt.Stringer
func (t Type) String() string {
	switch t {
	case StrType:
		return "str"
	case BinType:
		return "bin"
	case MapType:
		return "map"
	case ArrayType:
		return "array"
	case Float64Type:
		return "float64"
	case Float32Type:
		return "float32"
	case BoolType:
		return "bool"
	case UintType:
		return "uint"
	case IntType:
		return "int"
	case TagType:
		return "tag"
	case NilType:
		return "nil"
	case TimeType:
		return "time"
	case DurationType:
		return "duration"
	default:
		return "<invalid>"
	}
}

// ValidateUTF8OnDecode controls whether ReadTextString validates UTF-8.
// Enabled by default for RFC compliance; can be disabled in hot paths.
var ValidateUTF8OnDecode = true

// UnsafeStringDecode controls whether ReadTextString converts zero-copy using
// UnsafeString (unsafe) instead of allocating a new string. Disabled by default.
var UnsafeStringDecode = false
