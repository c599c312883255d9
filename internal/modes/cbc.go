package modes

import "fmt"

func checkIV(iv []byte, n int) error {
	if len(iv) != n {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidIVSize, len(iv), n)
	}
	return nil
}

// CBCEncrypt chains each plaintext block with the previous ciphertext block,
// starting from iv.
func CBCEncrypt(b Block, iv, src []byte) ([]byte, error) {
	if err := checkIV(iv, BlockSize); err != nil {
		return nil, err
	}
	if err := checkAligned(src); err != nil {
		return nil, err
	}
	out := make([]byte, len(src))
	var chain, in [BlockSize]byte
	copy(chain[:], iv)
	for off := 0; off < len(src); off += BlockSize {
		xorBytes(in[:], src[off:off+BlockSize], chain[:])
		blk, err := b.EncryptBlock(in[:])
		if err != nil {
			return nil, err
		}
		copy(out[off:], blk)
		copy(chain[:], blk)
	}
	return out, nil
}

// CBCDecrypt reverses CBCEncrypt. The chaining vector is always the previous
// ciphertext block, never the decrypted output.
func CBCDecrypt(b Block, iv, src []byte) ([]byte, error) {
	if err := checkIV(iv, BlockSize); err != nil {
		return nil, err
	}
	if err := checkAligned(src); err != nil {
		return nil, err
	}
	out := make([]byte, len(src))
	var chain [BlockSize]byte
	copy(chain[:], iv)
	for off := 0; off < len(src); off += BlockSize {
		ct := src[off : off+BlockSize]
		blk, err := b.DecryptBlock(ct)
		if err != nil {
			return nil, err
		}
		xorBytes(out[off:off+BlockSize], blk, chain[:])
		copy(chain[:], ct)
	}
	return out, nil
}
