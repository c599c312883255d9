package aes

// State is one 128-bit block as four big-endian column words.
// Row r of column c is byte r of s[c], counting from the most significant byte.
type State [4]uint32

// row masks select byte r of every column word.
const (
	row0 = 0xff000000
	row1 = 0x00ff0000
	row2 = 0x0000ff00
	row3 = 0x000000ff
)

func loadState(src []byte) State {
	var s State
	for c := 0; c < 4; c++ {
		s[c] = getWord(src[4*c:])
	}
	return s
}

func (s State) store(dst []byte) {
	for c := 0; c < 4; c++ {
		putWord(dst[4*c:], s[c])
	}
}

func getWord(b []byte) uint32 {
	_ = b[3]
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func putWord(b []byte, w uint32) {
	_ = b[3]
	b[0], b[1], b[2], b[3] = byte(w>>24), byte(w>>16), byte(w>>8), byte(w)
}

func subw(w uint32) uint32 {
	return uint32(sbox0[w>>24])<<24 |
		uint32(sbox0[w>>16&0xff])<<16 |
		uint32(sbox0[w>>8&0xff])<<8 |
		uint32(sbox0[w&0xff])
}

func invSubw(w uint32) uint32 {
	return uint32(sbox1[w>>24])<<24 |
		uint32(sbox1[w>>16&0xff])<<16 |
		uint32(sbox1[w>>8&0xff])<<8 |
		uint32(sbox1[w&0xff])
}

// SubWord applies the S-box to each byte of w.
func SubWord(w uint32) uint32 {
	initTables()
	return subw(w)
}

// InvSubWord applies the inverse S-box to each byte of w.
func InvSubWord(w uint32) uint32 {
	initTables()
	return invSubw(w)
}

// RotWord turns [a0,a1,a2,a3] into [a1,a2,a3,a0].
func RotWord(w uint32) uint32 { return w<<8 | w>>24 }

// SubBytes is FIPS-197 5.1.1.
func SubBytes(s State) State {
	initTables()
	return State{subw(s[0]), subw(s[1]), subw(s[2]), subw(s[3])}
}

// InvSubBytes is FIPS-197 5.3.2.
func InvSubBytes(s State) State {
	initTables()
	return State{invSubw(s[0]), invSubw(s[1]), invSubw(s[2]), invSubw(s[3])}
}

// ShiftRows rotates row r left by r columns (FIPS-197 5.1.2).
//
//	s0[0] s1[0] s2[0] s3[0]     s0[0] s1[0] s2[0] s3[0]
//	s0[1] s1[1] s2[1] s3[1] --> s1[1] s2[1] s3[1] s0[1]
//	s0[2] s1[2] s2[2] s3[2]     s2[2] s3[2] s0[2] s1[2]
//	s0[3] s1[3] s2[3] s3[3]     s3[3] s0[3] s1[3] s2[3]
func ShiftRows(s State) State {
	var t State
	for c := 0; c < 4; c++ {
		t[c] = s[c]&row0 | s[(c+1)%4]&row1 | s[(c+2)%4]&row2 | s[(c+3)%4]&row3
	}
	return t
}

// InvShiftRows rotates row r right by r columns (FIPS-197 5.3.1).
//
//	s0[0] s1[0] s2[0] s3[0]     s0[0] s1[0] s2[0] s3[0]
//	s0[1] s1[1] s2[1] s3[1] --> s3[1] s0[1] s1[1] s2[1]
//	s0[2] s1[2] s2[2] s3[2]     s2[2] s3[2] s0[2] s1[2]
//	s0[3] s1[3] s2[3] s3[3]     s1[3] s2[3] s3[3] s0[3]
func InvShiftRows(s State) State {
	var t State
	for c := 0; c < 4; c++ {
		t[c] = s[c]&row0 | s[(c+3)%4]&row1 | s[(c+2)%4]&row2 | s[(c+1)%4]&row3
	}
	return t
}

// MixColumn multiplies the column polynomial by a(x) = {03}x³ + {01}x² + {01}x + {02}
// modulo x⁴ + 1 (FIPS-197 5.1.3).
func MixColumn(w uint32) uint32 {
	b0, b1, b2, b3 := byte(w>>24), byte(w>>16), byte(w>>8), byte(w)
	t0 := Mul(0x02, b0) ^ Mul(0x03, b1) ^ b2 ^ b3
	t1 := b0 ^ Mul(0x02, b1) ^ Mul(0x03, b2) ^ b3
	t2 := b0 ^ b1 ^ Mul(0x02, b2) ^ Mul(0x03, b3)
	t3 := Mul(0x03, b0) ^ b1 ^ b2 ^ Mul(0x02, b3)
	return uint32(t0)<<24 | uint32(t1)<<16 | uint32(t2)<<8 | uint32(t3)
}

// InvMixColumn multiplies by a⁻¹(x) = {0b}x³ + {0d}x² + {09}x + {0e} (FIPS-197 5.3.3).
func InvMixColumn(w uint32) uint32 {
	b0, b1, b2, b3 := byte(w>>24), byte(w>>16), byte(w>>8), byte(w)
	t0 := Mul(0x0e, b0) ^ Mul(0x0b, b1) ^ Mul(0x0d, b2) ^ Mul(0x09, b3)
	t1 := Mul(0x09, b0) ^ Mul(0x0e, b1) ^ Mul(0x0b, b2) ^ Mul(0x0d, b3)
	t2 := Mul(0x0d, b0) ^ Mul(0x09, b1) ^ Mul(0x0e, b2) ^ Mul(0x0b, b3)
	t3 := Mul(0x0b, b0) ^ Mul(0x0d, b1) ^ Mul(0x09, b2) ^ Mul(0x0e, b3)
	return uint32(t0)<<24 | uint32(t1)<<16 | uint32(t2)<<8 | uint32(t3)
}

func MixColumns(s State) State {
	return State{MixColumn(s[0]), MixColumn(s[1]), MixColumn(s[2]), MixColumn(s[3])}
}

func InvMixColumns(s State) State {
	return State{InvMixColumn(s[0]), InvMixColumn(s[1]), InvMixColumn(s[2]), InvMixColumn(s[3])}
}

// AddRoundKey XORs the four words of rk into the state. rk must hold at least 4 words.
func AddRoundKey(s State, rk []uint32) State {
	_ = rk[3]
	return State{s[0] ^ rk[0], s[1] ^ rk[1], s[2] ^ rk[2], s[3] ^ rk[3]}
}
