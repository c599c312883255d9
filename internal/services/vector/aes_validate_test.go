package vector

import (
	"errors"
	"strings"
	"testing"

	"trustaes/internal/aes"
	"trustaes/internal/modes"
)

func TestGenerateThenValidate(t *testing.T) {
	for _, m := range modes.Modes {
		for _, test := range []AESTestMode{KAT, MMT, MCT} {
			count := 3
			if test == MCT {
				count = 2
			}
			v, err := GenerateAESTestVectors(m.String(), string(test), AESGenParams{
				KeyBits: 256, Count: count, IncludeExpected: true, KatVariant: KatKeySbox, Rand: seeded(11),
			})
			if err != nil {
				t.Fatalf("%v/%s: %v", m, test, err)
			}
			recs, err := ParseRSP(strings.NewReader(v.ToTXT()))
			if err != nil {
				t.Fatalf("%v/%s: ParseRSP: %v", m, test, err)
			}
			if len(recs) != 2*count {
				t.Fatalf("%v/%s: parsed %d records, want %d", m, test, len(recs), 2*count)
			}
			res, err := Validate(m, test, recs)
			if err != nil {
				t.Fatalf("%v/%s: Validate: %v", m, test, err)
			}
			if res.Passed != res.Total || res.Failed != 0 {
				t.Errorf("%v/%s: %+v", m, test, res)
			}
		}
	}
}

const cbcRSP = `# CAVS 11.1
# Config info for aes_values
[ENCRYPT]

COUNT = 0
KEY = 2b7e151628aed2a6abf7158809cf4f3c
IV = 000102030405060708090a0b0c0d0e0f
PLAINTEXT = 6bc1bee22e409f96e93d7e117393172a
CIPHERTEXT = 7649abac8119b246cee98e9b12e9197d

COUNT = 1
KEY = 2b7e151628aed2a6abf7158809cf4f3c
IV = 000102030405060708090a0b0c0d0e0f
PLAINTEXT = 6bc1bee22e409f96e93d7e117393172a
CIPHERTEXT = 00000000000000000000000000000000

[DECRYPT]

COUNT = 0
KEY = 2b7e151628aed2a6abf7158809cf4f3c
IV = 7649abac8119b246cee98e9b12e9197d
CIPHERTEXT = 5086cb9b507219ee95db113a917678b2
PLAINTEXT = ae2d8a571e03ac9c9eb76fac45af8e51
`

func TestValidateReportsMismatch(t *testing.T) {
	recs, err := ParseRSP(strings.NewReader(cbcRSP))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 3 || recs[2].Direction != Decrypt {
		t.Fatalf("parsed %+v", recs)
	}
	res, err := Validate(modes.CBC, MMT, recs)
	if err != nil {
		t.Fatal(err)
	}
	if res.Total != 3 || res.Passed != 2 || res.Failed != 1 {
		t.Fatalf("result = %+v", res)
	}
	f := res.Failures[0]
	if f.Count != 1 || f.Direction != "ENCRYPT" || f.Got != "7649abac8119b246cee98e9b12e9197d" {
		t.Errorf("failure = %+v", f)
	}
}

func TestParseRSPBadHex(t *testing.T) {
	_, err := ParseRSP(strings.NewReader("[ENCRYPT]\nCOUNT = 0\nKEY = zz\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("err = %v", err)
	}
}

func TestValidateMalformed(t *testing.T) {
	recs := []Record{{Count: 4, Key: make([]byte, 15), PT: make([]byte, 16), CT: make([]byte, 16), Direction: Encrypt}}
	if _, err := Validate(modes.ECB, KAT, recs); !errors.Is(err, aes.ErrInvalidKeySize) {
		t.Errorf("bad key: %v", err)
	}
	recs = []Record{{Count: 0, Key: make([]byte, 16), IV: make([]byte, 8), PT: make([]byte, 16), CT: make([]byte, 16), Direction: Encrypt}}
	if _, err := Validate(modes.CBC, MMT, recs); !errors.Is(err, modes.ErrInvalidIVSize) {
		t.Errorf("bad iv: %v", err)
	}
	recs = []Record{{Count: 0, Key: make([]byte, 16), Direction: "MONTE"}}
	if _, err := Validate(modes.ECB, KAT, recs); err == nil {
		t.Error("unknown section accepted")
	}
}
