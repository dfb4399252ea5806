package cbor

import "unicode/utf8"

// isUTF8Valid is a variable so tests can observe or stub the validation
// hook.
var isUTF8Valid = utf8.Valid
