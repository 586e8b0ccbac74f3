package bitpack

import "testing"

func assert(t *testing.T, cond bool, format string, args ...any) {
	t.Helper()
	if !cond {
		t.Fatalf(format, args...)
	}
}

func TestGetuRoundTrip(t *testing.T) {
	for _, tc := range []struct {
		width, lsb uint
		value      uint64
	}{
		{4, 28, 0xF},
		{3, 6, 0x7},
		{25, 0, 0x1FFFFFF},
		{0, 0, 0},
	} {
		word, err := Newu(0, tc.width, tc.lsb, tc.value)
		assert(t, err == nil, "Newu(%v) returned error: %v", tc, err)
		got := Getu(word, tc.width, tc.lsb)
		assert(t, got == tc.value, "round trip mismatch for %+v: got %d", tc, got)
	}
}

func TestNewuNonOverlapping(t *testing.T) {
	word, err := Newu(0, 4, 28, 0xA)
	assert(t, err == nil, "unexpected error: %v", err)
	word, err = Newu(word, 3, 6, 0x5)
	assert(t, err == nil, "unexpected error: %v", err)
	assert(t, Getu(word, 4, 28) == 0xA, "field at 28 clobbered: %x", word)
	assert(t, Getu(word, 3, 6) == 0x5, "field at 6 wrong: %x", word)
}

func TestFitsu(t *testing.T) {
	assert(t, Fitsu(0xF, 4), "0xF should fit in 4 bits")
	assert(t, !Fitsu(0x10, 4), "0x10 should not fit in 4 bits")
	assert(t, Fitsu(0, 0), "0 should fit in 0 bits")
	assert(t, !Fitsu(1, 0), "1 should not fit in 0 bits")
}

func TestFitss(t *testing.T) {
	assert(t, Fitss(-16, 5), "-16 should fit in 5 bits signed")
	assert(t, Fitss(15, 5), "15 should fit in 5 bits signed")
	assert(t, !Fitss(16, 5), "16 should not fit in 5 bits signed")
	assert(t, !Fitss(-17, 5), "-17 should not fit in 5 bits signed")
}

func TestGetsSignExtension(t *testing.T) {
	word, err := Newu(0, 8, 0, 0xFE) // -2 in 8-bit two's complement
	assert(t, err == nil, "unexpected error: %v", err)
	got := Gets(word, 8, 0)
	assert(t, got == -2, "expected -2, got %d", got)
}

func TestNewuRejectsOverflow(t *testing.T) {
	_, err := Newu(0, 4, 0, 0x10)
	assert(t, err != nil, "expected error for out-of-range value")
}

func TestFieldGet(t *testing.T) {
	f := Field{Width: 4, Lsb: 28}
	word := uint32(0x7 << 28)
	assert(t, f.Get(word) == 0x7, "Field.Get mismatch: got %x", f.Get(word))
}
