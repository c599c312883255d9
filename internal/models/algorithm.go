package models

import "time"

// Algorithm is a catalogue row: which modes, test modes and key lengths the
// service will generate vectors for.
type Algorithm struct {
	ID            string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"uniqueIndex;not null" json:"algorithm"`
	Category      string    `gorm:"not null" json:"category"`
	Modes         JSONB     `gorm:"type:jsonb;not null;default:'[]'::jsonb" json:"modes"`
	TestModes     JSONB     `gorm:"type:jsonb;not null;default:'[]'::jsonb" json:"test_modes"`
	KeyLengths    JSONB     `gorm:"type:jsonb;not null;default:'[]'::jsonb" json:"key_lengths"`
	BlockSizeBits int       `gorm:"not null" json:"block_size_bits"`
	StandardRef   string    `json:"standard_ref,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Supports reports whether mode, test mode and key length are all listed.
func (a Algorithm) Supports(mode, testMode string, keyBits int) bool {
	var ms, ts []string
	var ks []int
	if a.Modes.Decode(&ms) != nil || a.TestModes.Decode(&ts) != nil || a.KeyLengths.Decode(&ks) != nil {
		return false
	}
	return contains(ms, mode) && contains(ts, testMode) && contains(ks, keyBits)
}

func contains[T comparable](xs []T, v T) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// AESCatalogue is the seeded AES row.
func AESCatalogue() Algorithm {
	return Algorithm{
		Name:          "AES",
		Category:      "block_cipher",
		Modes:         MustJSONB([]string{"ECB", "CBC", "CTR"}),
		TestModes:     MustJSONB([]string{"KAT", "MMT", "MCT"}),
		KeyLengths:    MustJSONB([]int{128, 192, 256}),
		BlockSizeBits: 128,
		StandardRef:   "FIPS-197; SP 800-38A; RFC 3686",
	}
}
