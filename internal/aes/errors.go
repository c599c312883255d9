package aes

import (
	"errors"
	"strconv"
)

var (
	ErrInvalidKeySize   = errors.New("aes: invalid key size")
	ErrInvalidBlockSize = errors.New("aes: invalid block size")
)

// KeySizeError reports a key whose length is not 16, 24 or 32 bytes.
type KeySizeError int

func (k KeySizeError) Error() string {
	return "aes: invalid key size " + strconv.Itoa(int(k))
}

func (k KeySizeError) Is(target error) bool { return target == ErrInvalidKeySize }

// BlockSizeError reports a block cipher input that is not exactly BlockSize bytes.
type BlockSizeError int

func (b BlockSizeError) Error() string {
	return "aes: invalid block size " + strconv.Itoa(int(b))
}

func (b BlockSizeError) Is(target error) bool { return target == ErrInvalidBlockSize }
