package padding

import (
	"bytes"
	"errors"
	"testing"
)

func TestPKCS7Pad(t *testing.T) {
	tests := []struct {
		in   string
		size int
		want string
	}{
		{"YELLOW SUBMARINE", 20, "YELLOW SUBMARINE\x04\x04\x04\x04"},
		{"YELLOW SUBMARINE", 16, "YELLOW SUBMARINE" + string(bytes.Repeat([]byte{16}, 16))},
		{"", 8, string(bytes.Repeat([]byte{8}, 8))},
		{"abc", 4, "abc\x01"},
	}
	for _, tt := range tests {
		got := PKCS7Pad([]byte(tt.in), tt.size)
		if string(got) != tt.want {
			t.Errorf("PKCS7Pad(%q, %d) = %q, want %q", tt.in, tt.size, got, tt.want)
		}
		back, err := PKCS7Unpad(got, tt.size)
		if err != nil || string(back) != tt.in {
			t.Errorf("PKCS7Unpad(%q) = %q, %v", got, back, err)
		}
	}
}

func TestPKCS7PadDoesNotAlias(t *testing.T) {
	in := make([]byte, 3, 16)
	out := PKCS7Pad(in, 16)
	out[0] = 1
	if in[0] != 0 {
		t.Fatal("PKCS7Pad wrote into the caller's buffer")
	}
}

func TestPKCS7UnpadInvalid(t *testing.T) {
	tests := []string{
		"",
		"ICE ICE BABY\x04\x04\x04",
		"ICE ICE BABY\x05\x05\x05\x05",
		"ICE ICE BABY\x01\x02\x03\x04",
		"ICE ICE BABY\x00\x00\x00\x00",
		"ICE ICE BABY\x11\x11\x11\x11",
	}
	for _, in := range tests {
		if _, err := PKCS7Unpad([]byte(in), 16); !errors.Is(err, ErrInvalidPadding) {
			t.Errorf("PKCS7Unpad(%q) = %v, want ErrInvalidPadding", in, err)
		}
	}
}
