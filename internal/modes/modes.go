// Package modes runs ECB, CBC and CTR over a 16-byte block cipher.
package modes

import (
	"errors"
	"fmt"
	"strings"

	"trustaes/internal/aes"
)

const BlockSize = aes.BlockSize

var (
	ErrInvalidBlockSize = aes.ErrInvalidBlockSize
	ErrInvalidIVSize    = errors.New("modes: invalid iv/nonce size")
	ErrUnknownMode      = errors.New("modes: unknown mode")
)

// Block is the single-block contract the modes need.
type Block interface {
	BlockSize() int
	EncryptBlock(src []byte) ([]byte, error)
	DecryptBlock(src []byte) ([]byte, error)
}

var _ Block = (*aes.Cipher)(nil)

// Mode is one of the supported modes of operation. The set is closed.
type Mode int

const (
	ECB Mode = iota + 1
	CBC
	CTR
)

// Modes lists every Mode in declaration order.
var Modes = []Mode{ECB, CBC, CTR}

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	case CTR:
		return "CTR"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode accepts a mode name in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ECB":
		return ECB, nil
	case "CBC":
		return CBC, nil
	case "CTR":
		return CTR, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownMode, s)
}

// Aligned reports whether the mode needs block-aligned input.
func (m Mode) Aligned() bool { return m == ECB || m == CBC }

// Params carries the per-message inputs. IV is 16 bytes for CBC and 8 bytes
// for CTR; Nonce is 4 bytes and only used by CTR.
type Params struct {
	IV    []byte
	Nonce []byte
}

// Encrypt keys a cipher and encrypts src under mode.
func Encrypt(mode Mode, key, src []byte, p Params) ([]byte, error) {
	b, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return EncryptWith(mode, b, src, p)
}

// Decrypt keys a cipher and decrypts src under mode.
func Decrypt(mode Mode, key, src []byte, p Params) ([]byte, error) {
	b, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return DecryptWith(mode, b, src, p)
}

// EncryptWith encrypts src with an already keyed block cipher.
func EncryptWith(mode Mode, b Block, src []byte, p Params) ([]byte, error) {
	switch mode {
	case ECB:
		return ECBEncrypt(b, src)
	case CBC:
		return CBCEncrypt(b, p.IV, src)
	case CTR:
		return CTRXOR(b, p.Nonce, p.IV, src)
	}
	return nil, fmt.Errorf("%w %v", ErrUnknownMode, mode)
}

// DecryptWith decrypts src with an already keyed block cipher. CTR runs the
// forward cipher in both directions.
func DecryptWith(mode Mode, b Block, src []byte, p Params) ([]byte, error) {
	switch mode {
	case ECB:
		return ECBDecrypt(b, src)
	case CBC:
		return CBCDecrypt(b, p.IV, src)
	case CTR:
		return CTRXOR(b, p.Nonce, p.IV, src)
	}
	return nil, fmt.Errorf("%w %v", ErrUnknownMode, mode)
}

func checkAligned(src []byte) error {
	if len(src)%BlockSize != 0 {
		return fmt.Errorf("%w: input length %d is not a multiple of %d", ErrInvalidBlockSize, len(src), BlockSize)
	}
	return nil
}

func xorBytes(dst, a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		dst[i] = a[i] ^ b[i]
	}
	return n
}
