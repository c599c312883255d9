package modes

// ECBEncrypt encrypts each block of src independently.
func ECBEncrypt(b Block, src []byte) ([]byte, error) {
	return ecb(b.EncryptBlock, src)
}

// ECBDecrypt decrypts each block of src independently.
func ECBDecrypt(b Block, src []byte) ([]byte, error) {
	return ecb(b.DecryptBlock, src)
}

func ecb(f func([]byte) ([]byte, error), src []byte) ([]byte, error) {
	if err := checkAligned(src); err != nil {
		return nil, err
	}
	out := make([]byte, len(src))
	for off := 0; off < len(src); off += BlockSize {
		blk, err := f(src[off : off+BlockSize])
		if err != nil {
			return nil, err
		}
		copy(out[off:], blk)
	}
	return out, nil
}
