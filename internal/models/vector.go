package models

import "time"

// Vector is one generated record, stored per direction.
type Vector struct {
	ID        string    `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientID  string    `gorm:"type:uuid;not null;index" json:"client_id"`
	Algorithm string    `gorm:"not null" json:"algorithm"`
	Mode      string    `gorm:"not null" json:"mode"`
	TestMode  string    `gorm:"not null" json:"test_mode"`
	Direction string    `gorm:"not null" json:"direction"`
	KeyBits   int       `gorm:"not null" json:"key_bits"`
	Count     int       `gorm:"not null" json:"count"`
	Params    JSONB     `gorm:"type:jsonb" json:"params"`
	InputHex  string    `gorm:"not null" json:"input_hex"`
	OutputHex *string   `json:"output_hex,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
