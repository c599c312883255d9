package vector

import (
	"fmt"

	"trustaes/internal/aes"
	"trustaes/internal/modes"
)

// MCTIterations is the inner loop length of the AESAVS Monte Carlo test.
const MCTIterations = 1000

// Direction names the two sections of an .rsp file.
type Direction string

const (
	Encrypt Direction = "ENCRYPT"
	Decrypt Direction = "DECRYPT"
)

// monteCarlo runs one AESAVS-style Monte Carlo chain of MCTIterations blocks
// and returns the last output block.
//
// ECB feeds each output back as the next input. CBC follows AESAVS 6.4: the
// next input is the IV for j == 0 and the output of j-1 afterwards, with the
// CBC chaining state carried across iterations. CTR uses each output as both
// the next input and the next 128-bit counter block.
func monteCarlo(mode modes.Mode, dir Direction, c *aes.Cipher, iv, seed []byte) ([]byte, error) {
	if len(seed) != aes.BlockSize {
		return nil, fmt.Errorf("monte carlo seed: %w", aes.ErrInvalidBlockSize)
	}
	in := append([]byte(nil), seed...)
	switch mode {
	case modes.ECB:
		var err error
		for j := 0; j < MCTIterations; j++ {
			if dir == Encrypt {
				in, err = c.EncryptBlock(in)
			} else {
				in, err = c.DecryptBlock(in)
			}
			if err != nil {
				return nil, err
			}
		}
		return in, nil

	case modes.CBC:
		if len(iv) != aes.BlockSize {
			return nil, fmt.Errorf("monte carlo iv: %w", modes.ErrInvalidIVSize)
		}
		chain := append([]byte(nil), iv...)
		var out, prev []byte
		for j := 0; j < MCTIterations; j++ {
			var err error
			if dir == Encrypt {
				out, err = modes.CBCEncrypt(c, chain, in)
				chain = out
			} else {
				out, err = modes.CBCDecrypt(c, chain, in)
				chain = in
			}
			if err != nil {
				return nil, err
			}
			if j == 0 {
				in = append([]byte(nil), iv...)
			} else {
				in = prev
			}
			prev = out
		}
		return out, nil

	case modes.CTR:
		if len(iv) != aes.BlockSize {
			return nil, fmt.Errorf("monte carlo counter: %w", modes.ErrInvalidIVSize)
		}
		ctr := append([]byte(nil), iv...)
		for j := 0; j < MCTIterations; j++ {
			out, err := modes.CTR128(c, ctr, in)
			if err != nil {
				return nil, err
			}
			in, ctr = out, out
		}
		return in, nil
	}
	return nil, fmt.Errorf("%w %v", modes.ErrUnknownMode, mode)
}
