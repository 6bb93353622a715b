package entity

import "time"

// UserServerProfile holds the target of the server-status verification for
// one user. ServerToken is stored encrypted and only ever decrypted inside
// the server-status verifier.
type UserServerProfile struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	ServerURL   string
	ServerToken string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
