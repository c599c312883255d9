package vector

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"trustaes/internal/aes"
	"trustaes/internal/modes"
)

// AESCTRParams describes a single RFC 3686 counter mode vector. Empty hex
// fields are filled from Rand.
type AESCTRParams struct {
	KeyHex   string    `json:"key_hex,omitempty"`   // 16, 24 or 32 bytes
	NonceHex string    `json:"nonce_hex,omitempty"` // 4 bytes
	IVHex    string    `json:"iv_hex,omitempty"`    // 8 bytes
	InputHex string    `json:"input_hex,omitempty"` // plaintext; random if empty
	Size     int       `json:"size,omitempty"`      // bytes of random plaintext
	Rand     io.Reader `json:"-"`
}

type AESCTRVector struct {
	KeyHex       string `json:"key"`
	NonceHex     string `json:"nonce"`
	IVHex        string `json:"iv"`
	CounterBlock string `json:"counter_block"`
	InputHex     string `json:"input"`
	OutputHex    string `json:"output"`
}

func decodeOrRandom(r io.Reader, field, s string, n int, sizes ...int) ([]byte, error) {
	if s == "" {
		b := make([]byte, n)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, fmt.Errorf("%s: read random: %w", field, err)
		}
		return b, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	if len(sizes) == 0 {
		return b, nil
	}
	for _, want := range sizes {
		if len(b) == want {
			return b, nil
		}
	}
	return nil, fmt.Errorf("%s must be %v bytes, got %d", field, sizes, len(b))
}

// GenerateAESCTR encrypts one message in RFC 3686 counter mode.
func GenerateAESCTR(p AESCTRParams) (AESCTRVector, error) {
	r := p.Rand
	if r == nil {
		r = rand.Reader
	}
	key, err := decodeOrRandom(r, "key", p.KeyHex, 32, 16, 24, 32)
	if err != nil {
		return AESCTRVector{}, err
	}
	nonce, err := decodeOrRandom(r, "nonce", p.NonceHex, modes.NonceSize, modes.NonceSize)
	if err != nil {
		return AESCTRVector{}, err
	}
	iv, err := decodeOrRandom(r, "iv", p.IVHex, modes.CTRIVSize, modes.CTRIVSize)
	if err != nil {
		return AESCTRVector{}, err
	}
	if p.Size <= 0 {
		p.Size = 2 * aes.BlockSize
	}
	pt, err := decodeOrRandom(r, "input", p.InputHex, p.Size)
	if err != nil {
		return AESCTRVector{}, err
	}

	c, err := aes.NewCipher(key)
	if err != nil {
		return AESCTRVector{}, err
	}
	ct, err := modes.CTRXOR(c, nonce, iv, pt)
	if err != nil {
		return AESCTRVector{}, err
	}
	blk, err := modes.CounterBlock(nonce, iv, 0)
	if err != nil {
		return AESCTRVector{}, err
	}
	return AESCTRVector{
		KeyHex:       hex.EncodeToString(key),
		NonceHex:     hex.EncodeToString(nonce),
		IVHex:        hex.EncodeToString(iv),
		CounterBlock: hex.EncodeToString(blk),
		InputHex:     hex.EncodeToString(pt),
		OutputHex:    hex.EncodeToString(ct),
	}, nil
}
