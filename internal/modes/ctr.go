package modes

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// RFC 3686 counter block layout: nonce ‖ iv ‖ 32-bit big-endian counter.
const (
	NonceSize = 4
	CTRIVSize = 8
)

var ErrCounterOverflow = errors.New("modes: ctr counter would wrap")

// CTRXOR encrypts or decrypts src in RFC 3686 counter mode. The counter
// starts at 1 and the final keystream block is truncated to the input, so
// any length is accepted.
func CTRXOR(b Block, nonce, iv, src []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce is %d bytes, want %d", ErrInvalidIVSize, len(nonce), NonceSize)
	}
	if len(iv) != CTRIVSize {
		return nil, fmt.Errorf("%w: iv is %d bytes, want %d", ErrInvalidIVSize, len(iv), CTRIVSize)
	}
	if blocks := (uint64(len(src)) + BlockSize - 1) / BlockSize; blocks > math.MaxUint32 {
		return nil, ErrCounterOverflow
	}

	var ctr [BlockSize]byte
	copy(ctr[:NonceSize], nonce)
	copy(ctr[NonceSize:NonceSize+CTRIVSize], iv)
	counter := uint32(1)

	out := make([]byte, len(src))
	for off := 0; off < len(src); off += BlockSize {
		binary.BigEndian.PutUint32(ctr[12:], counter)
		ks, err := b.EncryptBlock(ctr[:])
		if err != nil {
			return nil, err
		}
		xorBytes(out[off:], src[off:], ks)
		counter++
	}
	return out, nil
}

// CTR128 is NIST SP 800-38A counter mode: the whole 16-byte counter block is
// a big-endian integer incremented once per block.
func CTR128(b Block, counter0, src []byte) ([]byte, error) {
	if err := checkIV(counter0, BlockSize); err != nil {
		return nil, err
	}
	var ctr [BlockSize]byte
	copy(ctr[:], counter0)

	out := make([]byte, len(src))
	for off := 0; off < len(src); off += BlockSize {
		ks, err := b.EncryptBlock(ctr[:])
		if err != nil {
			return nil, err
		}
		xorBytes(out[off:], src[off:], ks)
		incrementBigEndian(ctr[:])
	}
	return out, nil
}

func incrementBigEndian(buf []byte) {
	for i := len(buf) - 1; i >= 0; i-- {
		buf[i]++
		if buf[i] != 0 {
			break
		}
	}
}

// CounterBlock returns the RFC 3686 counter block for the given block index
// (counter = index + 1).
func CounterBlock(nonce, iv []byte, index uint32) ([]byte, error) {
	if len(nonce) != NonceSize || len(iv) != CTRIVSize {
		return nil, ErrInvalidIVSize
	}
	blk := make([]byte, BlockSize)
	copy(blk, nonce)
	copy(blk[NonceSize:], iv)
	binary.BigEndian.PutUint32(blk[12:], index+1)
	return blk, nil
}
