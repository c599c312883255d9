package util

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// NormalizeHex lowercases s and drops spaces, tabs, newlines and colons so
// pasted dumps like "2b 7e:15" decode.
func NormalizeHex(s string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, s))
}

// DecodeHex decodes a named request field. Empty input gives nil.
func DecodeHex(field, s string) ([]byte, error) {
	s = NormalizeHex(s)
	if s == "" {
		return nil, nil
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%s: not valid hex: %w", field, err)
	}
	return b, nil
}
