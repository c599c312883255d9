// Package aes is a word-oriented AES (FIPS-197) implementation built from
// GF(2⁸) arithmetic up. Decryption uses the equivalent inverse cipher.
package aes

import "crypto/cipher"

// BlockSize is the AES block size in bytes.
const BlockSize = 16

// Cipher is AES keyed with one KeySchedule. It holds no other state and is
// safe for concurrent use.
type Cipher struct {
	ks *KeySchedule
}

var _ cipher.Block = (*Cipher)(nil)

// NewCipher expands key, which must be 16, 24 or 32 bytes to select
// AES-128, AES-192 or AES-256.
func NewCipher(key []byte) (*Cipher, error) {
	ks, err := ExpandKey(key)
	if err != nil {
		return nil, err
	}
	return &Cipher{ks: ks}, nil
}

func (c *Cipher) BlockSize() int { return BlockSize }

// Rounds returns Nr for the cipher's key.
func (c *Cipher) Rounds() int { return c.ks.nr }

// EncryptBlock encrypts exactly one block.
func (c *Cipher) EncryptBlock(plaintext []byte) ([]byte, error) {
	if len(plaintext) != BlockSize {
		return nil, BlockSizeError(len(plaintext))
	}
	out := make([]byte, BlockSize)
	c.encrypt(out, plaintext)
	return out, nil
}

// DecryptBlock decrypts exactly one block.
func (c *Cipher) DecryptBlock(ciphertext []byte) ([]byte, error) {
	if len(ciphertext) != BlockSize {
		return nil, BlockSizeError(len(ciphertext))
	}
	out := make([]byte, BlockSize)
	c.decrypt(out, ciphertext)
	return out, nil
}

// Encrypt satisfies cipher.Block. It panics on short buffers.
func (c *Cipher) Encrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aes: output not full block")
	}
	c.encrypt(dst, src)
}

// Decrypt satisfies cipher.Block. It panics on short buffers.
func (c *Cipher) Decrypt(dst, src []byte) {
	if len(src) < BlockSize {
		panic("aes: input not full block")
	}
	if len(dst) < BlockSize {
		panic("aes: output not full block")
	}
	c.decrypt(dst, src)
}

// encrypt is FIPS-197 Figure 5.
func (c *Cipher) encrypt(dst, src []byte) {
	ks := c.ks
	s := AddRoundKey(loadState(src), ks.encRound(0))
	for round := 1; round < ks.nr; round++ {
		s = SubBytes(s)
		s = ShiftRows(s)
		s = MixColumns(s)
		s = AddRoundKey(s, ks.encRound(round))
	}
	// Final round has no MixColumns.
	s = SubBytes(s)
	s = ShiftRows(s)
	s = AddRoundKey(s, ks.encRound(ks.nr))
	s.store(dst)
}

// decrypt is the equivalent inverse cipher, FIPS-197 Figure 15. The middle
// dec round keys already carry InvMixColumns, so InvMixColumns runs before
// AddRoundKey here.
func (c *Cipher) decrypt(dst, src []byte) {
	ks := c.ks
	s := AddRoundKey(loadState(src), ks.decRound(ks.nr))
	for round := ks.nr - 1; round > 0; round-- {
		s = InvShiftRows(s)
		s = InvSubBytes(s)
		s = InvMixColumns(s)
		s = AddRoundKey(s, ks.decRound(round))
	}
	s = InvShiftRows(s)
	s = InvSubBytes(s)
	s = AddRoundKey(s, ks.decRound(0))
	s.store(dst)
}

// decryptStraight is the inverse cipher of FIPS-197 Figure 12, run on the
// encryption schedule. It must agree with decrypt for every key and block.
func (c *Cipher) decryptStraight(dst, src []byte) {
	ks := c.ks
	s := AddRoundKey(loadState(src), ks.encRound(ks.nr))
	for round := ks.nr - 1; round > 0; round-- {
		s = InvShiftRows(s)
		s = InvSubBytes(s)
		s = AddRoundKey(s, ks.encRound(round))
		s = InvMixColumns(s)
	}
	s = InvShiftRows(s)
	s = InvSubBytes(s)
	s = AddRoundKey(s, ks.encRound(0))
	s.store(dst)
}
