package cbor

import "unsafe"

// UnsafeString returns b as a string without copying. The caller must
// guarantee b is never mutated while the string is reachable; strings
// produced from a zero-copy decode alias the decode buffer.
func UnsafeString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(b), len(b))
}
