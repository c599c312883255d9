package aes

import "testing"

func TestMixColumn(t *testing.T) {
	tests := []struct {
		in, out uint32
	}{
		{0xdb135345, 0x8e4da1bc},
		{0xf20a225c, 0x9fdc589d},
		{0x01010101, 0x01010101},
		{0xc6c6c6c6, 0xc6c6c6c6},
		{0xd4d4d4d5, 0xd5d5d7d6},
		{0x2d26314c, 0x4d7ebdf8},
	}
	for _, tt := range tests {
		if got := MixColumn(tt.in); got != tt.out {
			t.Errorf("MixColumn(%08x) = %08x, want %08x", tt.in, got, tt.out)
		}
		if got := InvMixColumn(tt.out); got != tt.in {
			t.Errorf("InvMixColumn(%08x) = %08x, want %08x", tt.out, got, tt.in)
		}
	}
}

func TestShiftRowsInverse(t *testing.T) {
	s := State{0x00112233, 0x44556677, 0x8899aabb, 0xccddeeff}
	got := ShiftRows(s)
	want := State{0x0055aaff, 0x4499ee33, 0x88dd2277, 0xcc1166bb}
	if got != want {
		t.Fatalf("ShiftRows = %08x, want %08x", got, want)
	}
	if back := InvShiftRows(got); back != s {
		t.Fatalf("InvShiftRows(ShiftRows(s)) = %08x, want %08x", back, s)
	}
}

func TestWordHelpers(t *testing.T) {
	if got := RotWord(0x09cf4f3c); got != 0xcf4f3c09 {
		t.Errorf("RotWord = %08x, want cf4f3c09", got)
	}
	// FIPS-197 Appendix A.1, i = 4.
	if got := SubWord(0xcf4f3c09); got != 0x8a84eb01 {
		t.Errorf("SubWord = %08x, want 8a84eb01", got)
	}
	if got := InvSubWord(0x8a84eb01); got != 0xcf4f3c09 {
		t.Errorf("InvSubWord = %08x, want cf4f3c09", got)
	}
}

func TestRoundStepsInvert(t *testing.T) {
	s := State{0x3243f6a8, 0x885a308d, 0x313198a2, 0xe0370734}
	rk := []uint32{0x2b7e1516, 0x28aed2a6, 0xabf71588, 0x09cf4f3c}
	if got := InvSubBytes(SubBytes(s)); got != s {
		t.Errorf("InvSubBytes(SubBytes(s)) = %08x", got)
	}
	if got := InvMixColumns(MixColumns(s)); got != s {
		t.Errorf("InvMixColumns(MixColumns(s)) = %08x", got)
	}
	if got := AddRoundKey(AddRoundKey(s, rk), rk); got != s {
		t.Errorf("AddRoundKey twice = %08x", got)
	}
	// FIPS-197 Appendix B, round 0 AddRoundKey output.
	want := State{0x193de3be, 0xa0f4e22b, 0x9ac68d2a, 0xe9f84808}
	if got := AddRoundKey(s, rk); got != want {
		t.Errorf("AddRoundKey = %08x, want %08x", got, want)
	}
}
