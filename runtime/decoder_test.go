package cbor

import (
	"bytes"
	"encoding/hex"
	"errors"
	"math"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatalf("bad hex %q: %v", s, err)
	}
	return b
}

func TestReadInt64GeneralWidths(t *testing.T) {
	cases := []struct {
		hex  string
		want int64
	}{
		{"00", 0},
		{"01", 1},
		{"0a", 10},
		{"17", 23},
		{"1818", 24},
		{"1864", 100},
		{"1903e8", 1000},
		{"1a000f4240", 1000000},
		{"1b000000e8d4a51000", 1000000000000},
		{"1b7fffffffffffffff", math.MaxInt64},
		{"20", -1},
		{"29", -10},
		{"3863", -100},
		{"3903e7", -1000},
		{"3b7fffffffffffffff", math.MinInt64},
		{"1b0000000000000008", 8},
		{"1b0000000000000000", 0},
	}
	for _, tc := range cases {
		d := NewDecoderBytes(mustHex(t, tc.hex))
		got, err := d.ReadInt64()
		if err != nil {
			t.Errorf("ReadInt64(%s): %v", tc.hex, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ReadInt64(%s) = %d, want %d", tc.hex, got, tc.want)
		}
	}
}

func TestReadInt64Overflow(t *testing.T) {
	// 2^64-1 does not fit a signed 64-bit integer.
	d := NewDecoderBytes(mustHex(t, "1bffffffffffffffff"))
	_, err := d.ReadInt64()
	var ovf IntOverflow
	if !errors.As(err, &ovf) || ovf.FailedBitsize != 64 {
		t.Fatalf("expected 64-bit IntOverflow, got %v", err)
	}
	// -2^64 does not fit either.
	d = NewDecoderBytes(mustHex(t, "3bffffffffffffffff"))
	if _, err := d.ReadInt64(); !errors.As(err, &ovf) {
		t.Fatalf("expected IntOverflow, got %v", err)
	}
}

func TestReadUint64FullRange(t *testing.T) {
	d := NewDecoderBytes(mustHex(t, "1bffffffffffffffff"))
	u, err := d.ReadUint64()
	if err != nil {
		t.Fatalf("ReadUint64: %v", err)
	}
	if u != math.MaxUint64 {
		t.Fatalf("ReadUint64 = %d, want MaxUint64", u)
	}
	// Negative integers never decode through the unsigned reader.
	d = NewDecoderBytes(mustHex(t, "20"))
	var pfx InvalidPrefixError
	if _, err := d.ReadUint64(); !errors.As(err, &pfx) {
		t.Fatalf("expected InvalidPrefixError, got %v", err)
	}
}

func TestNarrowIntReadersRangeCheck(t *testing.T) {
	if _, err := NewDecoderBytes(mustHex(t, "1880")).ReadInt8(); err == nil {
		t.Fatal("128 should overflow int8")
	}
	if v, err := NewDecoderBytes(mustHex(t, "187f")).ReadInt8(); err != nil || v != 127 {
		t.Fatalf("ReadInt8(127) = %d, %v", v, err)
	}
	if _, err := NewDecoderBytes(mustHex(t, "198000")).ReadInt16(); err == nil {
		t.Fatal("32768 should overflow int16")
	}
	if _, err := NewDecoderBytes(mustHex(t, "1a80000000")).ReadInt32(); err == nil {
		t.Fatal("2^31 should overflow int32")
	}
	if _, err := NewDecoderBytes(mustHex(t, "190100")).ReadUint8(); err == nil {
		t.Fatal("256 should overflow uint8")
	}
	if _, err := NewDecoderBytes(mustHex(t, "1a00010000")).ReadUint16(); err == nil {
		t.Fatal("65536 should overflow uint16")
	}
	if _, err := NewDecoderBytes(mustHex(t, "1b0000000100000000")).ReadUint32(); err == nil {
		t.Fatal("2^32 should overflow uint32")
	}
}

func TestExactWidthReaders(t *testing.T) {
	// Eight-byte markers only.
	if v, err := NewDecoderBytes(mustHex(t, "1b0000000000000008")).ReadInt64Exact(); err != nil || v != 8 {
		t.Fatalf("ReadInt64Exact = %d, %v", v, err)
	}
	if v, err := NewDecoderBytes(mustHex(t, "3b7fffffffffffffff")).ReadInt64Exact(); err != nil || v != math.MinInt64 {
		t.Fatalf("ReadInt64Exact = %d, %v", v, err)
	}

	var wm WidthMismatchError
	// Four-byte marker rejected by the eight-byte reader even though the
	// value would fit.
	if _, err := NewDecoderBytes(mustHex(t, "1affffffff")).ReadInt64Exact(); !errors.As(err, &wm) {
		t.Fatalf("expected WidthMismatchError, got %v", err)
	}
	// Two-byte marker rejected.
	if _, err := NewDecoderBytes(mustHex(t, "1901f4")).ReadInt64Exact(); !errors.As(err, &wm) {
		t.Fatalf("expected WidthMismatchError, got %v", err)
	}
	// Inline rejected.
	if _, err := NewDecoderBytes(mustHex(t, "00")).ReadInt64Exact(); !errors.As(err, &wm) {
		t.Fatalf("expected WidthMismatchError, got %v", err)
	}
	// Wrong major type rejected before width checking.
	var pfx InvalidPrefixError
	if _, err := NewDecoderBytes(mustHex(t, "4100")).ReadInt64Exact(); !errors.As(err, &pfx) {
		t.Fatalf("expected InvalidPrefixError, got %v", err)
	}

	// One-byte reader covers [-256, 255].
	if v, err := NewDecoderBytes(mustHex(t, "18ff")).ReadInt8Exact(); err != nil || v != 255 {
		t.Fatalf("ReadInt8Exact = %d, %v", v, err)
	}
	if v, err := NewDecoderBytes(mustHex(t, "38ff")).ReadInt8Exact(); err != nil || v != -256 {
		t.Fatalf("ReadInt8Exact = %d, %v", v, err)
	}
	if _, err := NewDecoderBytes(mustHex(t, "00")).ReadInt8Exact(); !errors.As(err, &wm) {
		t.Fatalf("expected WidthMismatchError, got %v", err)
	}

	// Two-byte reader covers [-65536, 65535].
	if v, err := NewDecoderBytes(mustHex(t, "19ffff")).ReadInt16Exact(); err != nil || v != 65535 {
		t.Fatalf("ReadInt16Exact = %d, %v", v, err)
	}
	if v, err := NewDecoderBytes(mustHex(t, "39ffff")).ReadInt16Exact(); err != nil || v != -65536 {
		t.Fatalf("ReadInt16Exact = %d, %v", v, err)
	}

	// Four-byte reader covers [-4294967296, 4294967295].
	if v, err := NewDecoderBytes(mustHex(t, "1affffffff")).ReadInt32Exact(); err != nil || v != 4294967295 {
		t.Fatalf("ReadInt32Exact = %d, %v", v, err)
	}
	if v, err := NewDecoderBytes(mustHex(t, "3affffffff")).ReadInt32Exact(); err != nil || v != -4294967296 {
		t.Fatalf("ReadInt32Exact = %d, %v", v, err)
	}
}

func TestReadSmallInt(t *testing.T) {
	cases := []struct {
		hex  string
		want int8
	}{
		{"00", 0},
		{"17", 23},
		{"20", -1},
		{"37", -24},
	}
	for _, tc := range cases {
		v, err := NewDecoderBytes(mustHex(t, tc.hex)).ReadSmallInt()
		if err != nil || v != tc.want {
			t.Errorf("ReadSmallInt(%s) = %d, %v, want %d", tc.hex, v, err, tc.want)
		}
	}
	var wm WidthMismatchError
	if _, err := NewDecoderBytes(mustHex(t, "1818")).ReadSmallInt(); !errors.As(err, &wm) {
		t.Fatalf("expected WidthMismatchError, got %v", err)
	}
}

func TestTruncatedPayload(t *testing.T) {
	for _, h := range []string{"", "18", "19ff", "1affffff", "1bffffffffffffff", "3b00"} {
		d := NewDecoderBytes(mustHex(t, h))
		if _, err := d.ReadInt64(); !errors.Is(err, ErrShortBytes) {
			t.Errorf("ReadInt64(%q) = %v, want ErrShortBytes", h, err)
		}
	}
}

func TestReservedAdditionalInfo(t *testing.T) {
	var bad InvalidAdditionalInfoError
	for _, h := range []string{"1c", "1d", "1e", "3c", "3d", "3e"} {
		d := NewDecoderBytes(mustHex(t, h))
		if _, err := d.ReadInt64(); !errors.As(err, &bad) {
			t.Errorf("ReadInt64(%s) = %v, want InvalidAdditionalInfoError", h, err)
		}
	}
	// The break marker is not an integer encoding.
	d := NewDecoderBytes(mustHex(t, "1f"))
	if _, err := d.ReadInt64(); !errors.As(err, &bad) {
		t.Fatalf("expected InvalidAdditionalInfoError for info 31, got %v", err)
	}
}

func TestStrictDecodeMinimalWidths(t *testing.T) {
	// 0 encoded with a one-byte payload is legal by default.
	d := NewDecoderBytes(mustHex(t, "1800"))
	if v, err := d.ReadInt64(); err != nil || v != 0 {
		t.Fatalf("ReadInt64 = %d, %v", v, err)
	}
	// ...but not in strict mode.
	d = NewDecoderBytes(mustHex(t, "1800"))
	d.SetStrictDecode(true)
	if _, err := d.ReadInt64(); !errors.Is(err, ErrNonCanonicalLength) {
		t.Fatalf("expected ErrNonCanonicalLength, got %v", err)
	}
	d = NewDecoderBytes(mustHex(t, "9802"))
	d.SetStrictDecode(true)
	if _, err := d.ReadArrayLength(); !errors.Is(err, ErrNonCanonicalLength) {
		t.Fatalf("expected ErrNonCanonicalLength for array length, got %v", err)
	}
	// Minimal widths pass strict mode.
	d = NewDecoderBytes(mustHex(t, "1818"))
	d.SetStrictDecode(true)
	if v, err := d.ReadInt64(); err != nil || v != 24 {
		t.Fatalf("strict ReadInt64 = %d, %v", v, err)
	}
}

func TestContainerLengths(t *testing.T) {
	d := NewDecoderBytes(mustHex(t, "83010203"))
	n, err := d.ReadArrayLength()
	if err != nil || n != 3 {
		t.Fatalf("ReadArrayLength = %d, %v", n, err)
	}
	for want := int64(1); want <= 3; want++ {
		v, err := d.ReadInt64()
		if err != nil || v != want {
			t.Fatalf("element %d = %d, %v", want, v, err)
		}
	}

	d = NewDecoderBytes(mustHex(t, "a2616101616202"))
	if n, err := d.ReadMapLength(); err != nil || n != 2 {
		t.Fatalf("ReadMapLength = %d, %v", n, err)
	}

	// Indefinite lengths resolve to -1.
	d = NewDecoderBytes(mustHex(t, "9f"))
	if n, err := d.ReadArrayLength(); err != nil || n != -1 {
		t.Fatalf("indefinite ReadArrayLength = %d, %v", n, err)
	}
	d = NewDecoderBytes(mustHex(t, "9f0102ff"))
	sz, indef, err := d.ReadArrayStart()
	if err != nil || !indef || sz != 0 {
		t.Fatalf("ReadArrayStart = %d, %v, %v", sz, indef, err)
	}

	// Deterministic mode forbids indefinite lengths.
	d = NewDecoderBytes(mustHex(t, "9f"))
	d.SetDeterministicDecode(true)
	if _, err := d.ReadArrayLength(); !errors.Is(err, ErrIndefiniteForbidden) {
		t.Fatalf("expected ErrIndefiniteForbidden, got %v", err)
	}

	// Container length cap.
	d = NewDecoderBytes(mustHex(t, "83010203"))
	d.SetMaxContainerLen(2)
	if _, err := d.ReadArrayLength(); !errors.Is(err, ErrContainerTooLarge) {
		t.Fatalf("expected ErrContainerTooLarge, got %v", err)
	}
}

func TestLengthOverflow(t *testing.T) {
	// Declared byte-string length 2^64-1.
	d := NewDecoderBytes(mustHex(t, "5bffffffffffffffff"))
	_, err := d.ReadByteStringLength()
	var lo LengthOverflowError
	if !errors.As(err, &lo) {
		t.Fatalf("expected LengthOverflowError, got %v", err)
	}
}

func TestNextType(t *testing.T) {
	cases := []struct {
		hex  string
		want Type
	}{
		{"00", UintType},
		{"20", IntType},
		{"40", BinType},
		{"60", StrType},
		{"80", ArrayType},
		{"a0", MapType},
		{"c1", TimeType},
		{"d82a", TagType},
		{"f4", BoolType},
		{"f6", NilType},
		{"f9", Float32Type},
		{"fb", Float64Type},
	}
	for _, tc := range cases {
		d := NewDecoderBytes(mustHex(t, tc.hex))
		got, err := d.NextType()
		if err != nil || got != tc.want {
			t.Errorf("NextType(%s) = %v, %v, want %v", tc.hex, got, err, tc.want)
		}
		// NextType must not consume anything.
		if got2, err := d.NextType(); err != nil || got2 != got {
			t.Errorf("NextType(%s) second call = %v, %v", tc.hex, got2, err)
		}
	}
	d := NewDecoderBytes(nil)
	if _, err := d.NextType(); !errors.Is(err, ErrShortBytes) {
		t.Fatalf("NextType on empty = %v, want ErrShortBytes", err)
	}
}

func TestStreamingReader(t *testing.T) {
	// Same decode through the io.Reader path with a tiny buffer.
	data := mustHex(t, "83011901f43b7fffffffffffffff")
	d := NewDecoderSize(bytes.NewReader(data), 16)
	if n, err := d.ReadArrayLength(); err != nil || n != 3 {
		t.Fatalf("ReadArrayLength = %d, %v", n, err)
	}
	if v, err := d.ReadInt64(); err != nil || v != 1 {
		t.Fatalf("first = %d, %v", v, err)
	}
	if v, err := d.ReadInt64(); err != nil || v != 500 {
		t.Fatalf("second = %d, %v", v, err)
	}
	if v, err := d.ReadInt64(); err != nil || v != math.MinInt64 {
		t.Fatalf("third = %d, %v", v, err)
	}
	if _, err := d.ReadInt64(); !errors.Is(err, ErrShortBytes) {
		t.Fatalf("past end = %v, want ErrShortBytes", err)
	}
}

func TestWrapError(t *testing.T) {
	err := WrapError(IntOverflow{Value: 300, FailedBitsize: 8}, "config", "port")
	if !Resumable(err) {
		t.Fatal("overflow should stay resumable through wrapping")
	}
	var ovf IntOverflow
	if !errors.As(err, &ovf) {
		t.Fatalf("wrapped error lost its type: %v", err)
	}
	// ErrShortBytes passes through untouched.
	if WrapError(ErrShortBytes, "x") != ErrShortBytes {
		t.Fatal("ErrShortBytes must not be wrapped")
	}
	inner := errors.New("boom")
	if Cause(WrapError(inner, "y")) != inner {
		t.Fatal("Cause should recover the inner error")
	}
}
