package vector

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"trustaes/internal/aes"
	"trustaes/internal/modes"
)

type AESTestMode string

const (
	KAT AESTestMode = "KAT"
	MMT AESTestMode = "MMT"
	MCT AESTestMode = "MCT"
)

// KAT sub-types, after the AESAVS known answer files.
const (
	KatGFSbox  = "GFSBOX"
	KatKeySbox = "KEYSBOX"
	KatVarKey  = "VARKEY"
	KatVarTxt  = "VARTXT"
)

var KatVariants = []string{KatGFSbox, KatKeySbox, KatVarKey, KatVarTxt}

type AESGenParams struct {
	KeyBits         int
	Count           int
	IncludeExpected bool
	KatVariant      string    // KAT only; defaults to GFSBOX
	Rand            io.Reader // defaults to crypto/rand.Reader
}

type EncRecord struct {
	Count      int    `json:"count"`
	KeyHex     string `json:"key"`
	IVHex      string `json:"iv,omitempty"` // CBC IV or CTR initial counter block; empty for ECB
	Plaintext  string `json:"plaintext"`
	Ciphertext string `json:"ciphertext,omitempty"`
}

type DecRecord struct {
	Count      int    `json:"count"`
	KeyHex     string `json:"key"`
	IVHex      string `json:"iv,omitempty"`
	Ciphertext string `json:"ciphertext"`
	Plaintext  string `json:"plaintext,omitempty"`
}

type AESTestVector struct {
	Algorithm  string      `json:"algorithm"`
	Mode       string      `json:"mode"`
	TestMode   string      `json:"test_mode"`
	KatVariant string      `json:"kat_variant,omitempty"`
	KeyBits    int         `json:"key_bits"`
	Encrypt    []EncRecord `json:"encrypt"`
	Decrypt    []DecRecord `json:"decrypt"`
}

func ParseTestMode(s string) (AESTestMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "KAT":
		return KAT, nil
	case "MMT":
		return MMT, nil
	case "MCT":
		return MCT, nil
	}
	return "", fmt.Errorf("unsupported test_mode %q", s)
}

// generator holds the per-request inputs shared by the KAT/MMT/MCT builders.
type generator struct {
	mode   modes.Mode
	keyLen int
	rnd    io.Reader
}

func (g generator) bytes(n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(g.rnd, b); err != nil {
		return nil, fmt.Errorf("read random: %w", err)
	}
	return b, nil
}

// ivFor returns the IV column for a record: the CBC IV, or for CTR the full
// RFC 3686 initial counter block nonce ‖ iv ‖ 00000001.
func (g generator) ivFor(zero bool) (p modes.Params, col []byte, err error) {
	switch g.mode {
	case modes.CBC:
		p.IV = make([]byte, aes.BlockSize)
		if !zero {
			if p.IV, err = g.bytes(aes.BlockSize); err != nil {
				return p, nil, err
			}
		}
		return p, p.IV, nil
	case modes.CTR:
		p.Nonce, p.IV = make([]byte, modes.NonceSize), make([]byte, modes.CTRIVSize)
		if !zero {
			if p.Nonce, err = g.bytes(modes.NonceSize); err != nil {
				return p, nil, err
			}
			if p.IV, err = g.bytes(modes.CTRIVSize); err != nil {
				return p, nil, err
			}
		}
		col, err = modes.CounterBlock(p.Nonce, p.IV, 0)
		return p, col, err
	}
	return p, nil, nil
}

// leadingOnes returns n bytes whose first k bits are set.
func leadingOnes(n, k int) []byte {
	b := make([]byte, n)
	for i := 0; i < k && i < 8*n; i++ {
		b[i/8] |= 0x80 >> uint(i%8)
	}
	return b
}

// GenerateAESTestVectors builds Count encrypt and decrypt records for
// mode (ECB, CBC or CTR) and test (KAT, MMT or MCT). Every output is
// computed by the in-tree cipher.
func GenerateAESTestVectors(mode string, test string, p AESGenParams) (AESTestVector, error) {
	if p.Count <= 0 {
		p.Count = 10
	}
	switch p.KeyBits {
	case 128, 192, 256:
	default:
		return AESTestVector{}, errors.New("key_bits must be 128/192/256")
	}
	m, err := modes.ParseMode(mode)
	if err != nil {
		return AESTestVector{}, fmt.Errorf("unsupported AES mode %q", mode)
	}
	tmode, err := ParseTestMode(test)
	if err != nil {
		return AESTestVector{}, err
	}
	if p.Rand == nil {
		p.Rand = rand.Reader
	}
	g := generator{mode: m, keyLen: p.KeyBits / 8, rnd: p.Rand}

	out := AESTestVector{Algorithm: "AES", Mode: m.String(), TestMode: string(tmode), KeyBits: p.KeyBits}

	for i := 0; i < p.Count; i++ {
		var enc EncRecord
		var dec DecRecord
		switch tmode {
		case KAT:
			variant := strings.ToUpper(strings.TrimSpace(p.KatVariant))
			if variant == "" {
				variant = KatGFSbox
			}
			out.KatVariant = variant
			enc, dec, err = g.kat(i, variant)
		case MMT:
			enc, dec, err = g.mmt(i)
		case MCT:
			enc, dec, err = g.mct(i)
		}
		if err != nil {
			return AESTestVector{}, err
		}
		out.Encrypt = append(out.Encrypt, enc)
		out.Decrypt = append(out.Decrypt, dec)
	}
	if !p.IncludeExpected {
		out = out.WithoutExpected()
	}
	return out, nil
}

// WithoutExpected returns a copy with every expected output cleared.
func (v AESTestVector) WithoutExpected() AESTestVector {
	v.Encrypt = append([]EncRecord(nil), v.Encrypt...)
	v.Decrypt = append([]DecRecord(nil), v.Decrypt...)
	for i := range v.Encrypt {
		v.Encrypt[i].Ciphertext = ""
	}
	for i := range v.Decrypt {
		v.Decrypt[i].Plaintext = ""
	}
	return v
}

// single builds one encrypt record for pt and one decrypt record for the
// resulting ciphertext, decrypting it back as the expected plaintext.
func (g generator) single(i int, key, pt []byte, zeroIV bool) (EncRecord, DecRecord, error) {
	c, err := aes.NewCipher(key)
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	params, ivCol, err := g.ivFor(zeroIV)
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	ct, err := modes.EncryptWith(g.mode, c, pt, params)
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	back, err := modes.DecryptWith(g.mode, c, ct, params)
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	enc := EncRecord{Count: i, KeyHex: hex.EncodeToString(key), IVHex: hex.EncodeToString(ivCol),
		Plaintext: hex.EncodeToString(pt), Ciphertext: hex.EncodeToString(ct)}
	dec := DecRecord{Count: i, KeyHex: enc.KeyHex, IVHex: enc.IVHex,
		Ciphertext: hex.EncodeToString(ct), Plaintext: hex.EncodeToString(back)}
	return enc, dec, nil
}

func (g generator) kat(i int, variant string) (EncRecord, DecRecord, error) {
	var key, pt []byte
	var err error
	switch variant {
	case KatGFSbox:
		key = make([]byte, g.keyLen)
		pt, err = g.bytes(aes.BlockSize)
	case KatKeySbox:
		key, err = g.bytes(g.keyLen)
		pt = make([]byte, aes.BlockSize)
	case KatVarKey:
		key = leadingOnes(g.keyLen, i+1)
		pt = make([]byte, aes.BlockSize)
	case KatVarTxt:
		key = make([]byte, g.keyLen)
		pt = leadingOnes(aes.BlockSize, i+1)
	default:
		return EncRecord{}, DecRecord{}, fmt.Errorf("unsupported KAT variant %q; want one of %v", variant, KatVariants)
	}
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	return g.single(i, key, pt, true)
}

// mmt encrypts an (i+1)-block message under a random key and IV.
func (g generator) mmt(i int) (EncRecord, DecRecord, error) {
	key, err := g.bytes(g.keyLen)
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	msg, err := g.bytes(aes.BlockSize * (i + 1))
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	return g.single(i, key, msg, false)
}

// mct runs the Monte Carlo chain in both directions from random seeds.
func (g generator) mct(i int) (EncRecord, DecRecord, error) {
	key, err := g.bytes(g.keyLen)
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	c, err := aes.NewCipher(key)
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	var iv []byte
	if g.mode != modes.ECB {
		if iv, err = g.bytes(aes.BlockSize); err != nil {
			return EncRecord{}, DecRecord{}, err
		}
	}
	seedPT, err := g.bytes(aes.BlockSize)
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	seedCT, err := g.bytes(aes.BlockSize)
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	finalCT, err := monteCarlo(g.mode, Encrypt, c, iv, seedPT)
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	finalPT, err := monteCarlo(g.mode, Decrypt, c, iv, seedCT)
	if err != nil {
		return EncRecord{}, DecRecord{}, err
	}
	enc := EncRecord{Count: i, KeyHex: hex.EncodeToString(key), IVHex: hex.EncodeToString(iv),
		Plaintext: hex.EncodeToString(seedPT), Ciphertext: hex.EncodeToString(finalCT)}
	dec := DecRecord{Count: i, KeyHex: enc.KeyHex, IVHex: enc.IVHex,
		Ciphertext: hex.EncodeToString(seedCT), Plaintext: hex.EncodeToString(finalPT)}
	return enc, dec, nil
}

// ToTXT renders the vector in NIST .rsp style. Expected outputs are written
// only when present.
func (v AESTestVector) ToTXT() string {
	var b strings.Builder
	fmt.Fprintf(&b, "# AES %s %s %d\n", v.Mode, v.TestMode, v.KeyBits)
	if v.KatVariant != "" {
		fmt.Fprintf(&b, "# %s\n", v.KatVariant)
	}
	b.WriteString("\n[ENCRYPT]\n\n")
	for _, r := range v.Encrypt {
		writeRecord(&b, r.Count, r.KeyHex, r.IVHex, "PLAINTEXT", r.Plaintext, "CIPHERTEXT", r.Ciphertext)
	}
	b.WriteString("[DECRYPT]\n\n")
	for _, r := range v.Decrypt {
		writeRecord(&b, r.Count, r.KeyHex, r.IVHex, "CIPHERTEXT", r.Ciphertext, "PLAINTEXT", r.Plaintext)
	}
	return b.String()
}

func writeRecord(b *strings.Builder, count int, key, iv, inName, in, outName, out string) {
	b.WriteString("COUNT = " + strconv.Itoa(count) + "\n")
	b.WriteString("KEY = " + strings.ToLower(key) + "\n")
	if strings.TrimSpace(iv) != "" {
		b.WriteString("IV = " + strings.ToLower(iv) + "\n")
	}
	b.WriteString(inName + " = " + strings.ToLower(in) + "\n")
	if strings.TrimSpace(out) != "" {
		b.WriteString(outName + " = " + strings.ToLower(out) + "\n")
	}
	b.WriteString("\n")
}
