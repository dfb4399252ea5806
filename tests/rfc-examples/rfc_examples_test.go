package tests

import (
	"encoding/hex"
	"testing"

	cbor "github.com/synadia-labs/cborstream.go/runtime"
)

type rfcExample struct {
	name string
	diag string
	hex  string
}

// Examples from RFC 8949 Appendix A, rendered in diagnostic notation.
var rfcExamples = []rfcExample{
	{name: "zero", diag: "0", hex: "00"},
	{name: "one", diag: "1", hex: "01"},
	{name: "ten", diag: "10", hex: "0a"},
	{name: "twenty-three", diag: "23", hex: "17"},
	{name: "twenty-four", diag: "24", hex: "1818"},
	{name: "twenty-five", diag: "25", hex: "1819"},
	{name: "hundred", diag: "100", hex: "1864"},
	{name: "thousand", diag: "1000", hex: "1903e8"},
	{name: "million", diag: "1000000", hex: "1a000f4240"},
	{name: "trillion", diag: "1000000000000", hex: "1b000000e8d4a51000"},
	{name: "max-uint64", diag: "18446744073709551615", hex: "1bffffffffffffffff"},
	{name: "minus-one", diag: "-1", hex: "20"},
	{name: "minus-ten", diag: "-10", hex: "29"},
	{name: "minus-hundred", diag: "-100", hex: "3863"},
	{name: "minus-thousand", diag: "-1000", hex: "3903e7"},
	{name: "half-zero", diag: "0.0", hex: "f90000"},
	{name: "half-neg-zero", diag: "-0.0", hex: "f98000"},
	{name: "half-one", diag: "1.0", hex: "f93c00"},
	{name: "double-1.1", diag: "1.1", hex: "fb3ff199999999999a"},
	{name: "half-1.5", diag: "1.5", hex: "f93e00"},
	{name: "half-max", diag: "65504.0", hex: "f97bff"},
	{name: "single-100000", diag: "100000.0", hex: "fa47c35000"},
	{name: "double-1e300", diag: "1e+300", hex: "fb7e37e43c8800759c"},
	{name: "half-min-subnormal", diag: "5.960464477539063e-08", hex: "f90001"},
	{name: "half-min-normal", diag: "6.103515625e-05", hex: "f90400"},
	{name: "half-minus-four", diag: "-4.0", hex: "f9c400"},
	{name: "double-minus-4.1", diag: "-4.1", hex: "fbc010666666666666"},
	{name: "half-inf", diag: "Infinity", hex: "f97c00"},
	{name: "half-nan", diag: "NaN", hex: "f97e00"},
	{name: "half-neg-inf", diag: "-Infinity", hex: "f9fc00"},
	{name: "false", diag: "false", hex: "f4"},
	{name: "true", diag: "true", hex: "f5"},
	{name: "null", diag: "null", hex: "f6"},
	{name: "undefined", diag: "undefined", hex: "f7"},
	{name: "simple-16", diag: "simple(16)", hex: "f0"},
	{name: "simple-255", diag: "simple(255)", hex: "f8ff"},
	{name: "tag-epoch-datetime", diag: "1(1363896240)", hex: "c11a514b67b0"},
	{name: "tag-epoch-float", diag: "1(1363896240.5)", hex: "c1fb41d452d9ec200000"},
	{name: "tag-base16", diag: "23(h'01020304')", hex: "d74401020304"},
	{name: "empty-bytes", diag: "h''", hex: "40"},
	{name: "bytes-010203", diag: "h'01020304'", hex: "4401020304"},
	{name: "empty-text", diag: "\"\"", hex: "60"},
	{name: "text-a", diag: "\"a\"", hex: "6161"},
	{name: "text-ietf", diag: "\"IETF\"", hex: "6449455446"},
	{name: "text-escapes", diag: "\"\\\"\\\\\"", hex: "62225c"},
	{name: "text-u-umlaut", diag: "\"ü\"", hex: "62c3bc"},
	{name: "text-water", diag: "\"水\"", hex: "63e6b0b4"},
	{name: "empty-array", diag: "[]", hex: "80"},
	{name: "array-1-2-3", diag: "[1, 2, 3]", hex: "83010203"},
	{name: "nested-array", diag: "[1, [2, 3], [4, 5]]", hex: "8301820203820405"},
	{name: "array-1-to-25", diag: "[1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25]", hex: "98190102030405060708090a0b0c0d0e0f101112131415161718181819"},
	{name: "empty-map", diag: "{}", hex: "a0"},
	{name: "map-1-2-3-4", diag: "{1: 2, 3: 4}", hex: "a201020304"},
	{name: "map-a1-b-2-3", diag: "{\"a\": 1, \"b\": [2, 3]}", hex: "a26161016162820203"},
	{name: "array-a-map", diag: "[\"a\", {\"b\": \"c\"}]", hex: "826161a161626163"},
	{name: "map-five-pairs", diag: "{\"a\": \"A\", \"b\": \"B\", \"c\": \"C\", \"d\": \"D\", \"e\": \"E\"}", hex: "a56161614161626142616361436164614461656145"},
	{name: "indef-bytes", diag: "(_ h'0102', h'030405')", hex: "5f42010243030405ff"},
	{name: "indef-text", diag: "(_ \"strea\", \"ming\")", hex: "7f657374726561646d696e67ff"},
	{name: "indef-empty-array", diag: "[_ ]", hex: "9fff"},
	{name: "indef-nested", diag: "[_ 1, [2, 3], [_ 4, 5]]", hex: "9f018202039f0405ffff"},
	{name: "indef-array-full", diag: "[_ 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25]", hex: "9f0102030405060708090a0b0c0d0e0f101112131415161718181819ff"},
	{name: "indef-map", diag: "{_ \"a\": 1, \"b\": [_ 2, 3]}", hex: "bf61610161629f0203ffff"},
	{name: "array-a-indef-map", diag: "[\"a\", {_ \"b\": \"c\"}]", hex: "826161bf61626163ff"},
	{name: "indef-map-fun", diag: "{_ \"Fun\": true, \"Amt\": -2}", hex: "bf6346756ef563416d7421ff"},
}

func TestRFCExamplesDiagAndWellFormed(t *testing.T) {
	for _, ex := range rfcExamples {
		t.Run(ex.name, func(t *testing.T) {
			data, err := hex.DecodeString(ex.hex)
			if err != nil {
				t.Fatalf("bad hex: %v", err)
			}
			if err := cbor.ValidateDocument(data); err != nil {
				t.Fatalf("ValidateDocument: %v", err)
			}
			got, err := cbor.NewDecoderBytes(data).Diag()
			if err != nil {
				t.Fatalf("Diag: %v", err)
			}
			if got != ex.diag {
				t.Fatalf("Diag = %q, want %q", got, ex.diag)
			}
		})
	}
}

func TestRFCExamplesSkipConsumesAll(t *testing.T) {
	for _, ex := range rfcExamples {
		data, err := hex.DecodeString(ex.hex)
		if err != nil {
			t.Fatalf("bad hex: %v", err)
		}
		d := cbor.NewDecoderBytes(data)
		if err := d.Skip(); err != nil {
			t.Errorf("%s: Skip: %v", ex.name, err)
			continue
		}
		if _, err := d.NextType(); err != cbor.ErrShortBytes {
			t.Errorf("%s: Skip left trailing bytes", ex.name)
		}
	}
}
