package aes

import (
	"math/bits"
	"sync"
)

// sbox0 is the forward substitution table and sbox1 its inverse.
// Both are filled exactly once by initTables and never written afterwards.
var (
	sbox0      [256]byte
	sbox1      [256]byte
	tablesOnce sync.Once
)

// affine applies the FIPS-197 5.1.1 affine transformation over GF(2).
func affine(b byte) byte {
	return b ^
		bits.RotateLeft8(b, 1) ^
		bits.RotateLeft8(b, 2) ^
		bits.RotateLeft8(b, 3) ^
		bits.RotateLeft8(b, 4) ^
		0x63
}

func initTables() {
	tablesOnce.Do(func() {
		for i := 0; i < 256; i++ {
			s := affine(inverse(byte(i)))
			sbox0[i] = s
			sbox1[s] = byte(i)
		}
	})
}

// SBox returns the forward S-box substitution of b.
func SBox(b byte) byte {
	initTables()
	return sbox0[b]
}

// InvSBox returns the inverse S-box substitution of b.
func InvSBox(b byte) byte {
	initTables()
	return sbox1[b]
}

// SBoxTable returns a copy of the forward table.
func SBoxTable() [256]byte {
	initTables()
	return sbox0
}

// InvSBoxTable returns a copy of the inverse table.
func InvSBoxTable() [256]byte {
	initTables()
	return sbox1
}
