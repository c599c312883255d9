// Package padding implements PKCS#7 padding (RFC 2315 section 10.3).
package padding

import (
	"errors"
	"fmt"
)

var ErrInvalidPadding = errors.New("padding: invalid pkcs#7 padding")

// PKCS7Pad appends 1..blockSize bytes, each holding the pad length.
// blockSize must be in 1..255.
func PKCS7Pad(b []byte, blockSize int) []byte {
	if blockSize < 1 || blockSize > 255 {
		panic(fmt.Sprintf("padding: block size %d out of range", blockSize))
	}
	n := blockSize - len(b)%blockSize
	out := make([]byte, len(b), len(b)+n)
	copy(out, b)
	for i := 0; i < n; i++ {
		out = append(out, byte(n))
	}
	return out
}

// PKCS7Unpad strips and validates the padding added by PKCS7Pad.
func PKCS7Unpad(b []byte, blockSize int) ([]byte, error) {
	if blockSize < 1 || blockSize > 255 {
		return nil, fmt.Errorf("%w: block size %d out of range", ErrInvalidPadding, blockSize)
	}
	if len(b) == 0 || len(b)%blockSize != 0 {
		return nil, fmt.Errorf("%w: length %d", ErrInvalidPadding, len(b))
	}
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize {
		return nil, fmt.Errorf("%w: pad byte %#x", ErrInvalidPadding, n)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, ErrInvalidPadding
		}
	}
	return b[:len(b)-n], nil
}
