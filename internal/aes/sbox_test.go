package aes

import "testing"

// Check that the S-boxes are inverses of each other.
func TestSboxes(t *testing.T) {
	for i := 0; i < 256; i++ {
		if j := InvSBox(SBox(byte(i))); j != byte(i) {
			t.Errorf("InvSBox(SBox(%#x)) = %#x", i, j)
		}
		if j := SBox(InvSBox(byte(i))); j != byte(i) {
			t.Errorf("SBox(InvSBox(%#x)) = %#x", i, j)
		}
	}
}

// Spot values from FIPS-197 Figure 7 and Figure 14.
func TestSboxValues(t *testing.T) {
	tests := []struct {
		in, fwd byte
	}{
		{0x00, 0x63},
		{0x01, 0x7c},
		{0x53, 0xed},
		{0x10, 0xca},
		{0xff, 0x16},
		{0x9a, 0xb8},
	}
	for _, tt := range tests {
		if got := SBox(tt.in); got != tt.fwd {
			t.Errorf("SBox(%#x) = %#x, want %#x", tt.in, got, tt.fwd)
		}
		if got := InvSBox(tt.fwd); got != tt.in {
			t.Errorf("InvSBox(%#x) = %#x, want %#x", tt.fwd, got, tt.in)
		}
	}
}

func TestSboxTableCopy(t *testing.T) {
	tbl := SBoxTable()
	tbl[0] = 0
	if SBox(0) != 0x63 {
		t.Fatal("mutating the returned table changed the S-box")
	}
	inv := InvSBoxTable()
	for i := 0; i < 256; i++ {
		if inv[SBox(byte(i))] != byte(i) {
			t.Fatalf("InvSBoxTable disagrees with SBox at %#x", i)
		}
	}
}
