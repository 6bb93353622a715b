package entity

import "time"

// Setting is a platform configuration row. Values of keys flagged
// IsEncrypted are stored as secret-box envelopes.
type Setting struct {
	Key         string `gorm:"primaryKey"`
	Value       string `gorm:"type:text"`
	IsEncrypted bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
