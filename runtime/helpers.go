package cbor

// getType classifies a lead byte into a Type. Tag numbers 0 and 1 are
// only visible inline here; wider tag encodings classify as TagType and
// get refined once the tag number is read.
func getType(v byte) Type {
	switch getMajorType(v) {
	case majorTypeUint:
		return UintType
	case majorTypeNegInt:
		return IntType
	case majorTypeBytes:
		return BinType
	case majorTypeText:
		return StrType
	case majorTypeArray:
		return ArrayType
	case majorTypeMap:
		return MapType
	case majorTypeTag:
		switch getAddInfo(v) {
		case tagDateTimeString, tagEpochDateTime:
			return TimeType
		default:
			return TagType
		}
	default:
		switch getAddInfo(v) {
		case simpleFalse, simpleTrue:
			return BoolType
		case simpleNull, simpleUndefined:
			return NilType
		case simpleFloat16, simpleFloat32:
			return Float32Type
		case simpleFloat64:
			return Float64Type
		case addInfoIndefinite:
			return InvalidType
		default:
			return UintType
		}
	}
}

// IsLikelyJSON reports whether b looks like the start of a JSON document
// rather than CBOR. A CBOR item starting with one of these bytes would
// be an ASCII-range unsigned integer or text/array header that happens
// to collide; the heuristic is meant for CLI input sniffing, not
// validation.
func IsLikelyJSON(b []byte) bool {
	for _, c := range b {
		switch c {
		case ' ', '\t', '\r', '\n':
			continue
		case '{', '[', '"':
			return true
		}
		return c == 't' || c == 'f' || c == 'n' || c == '-' || (c >= '0' && c <= '9')
	}
	return false
}
