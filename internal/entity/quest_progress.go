package entity

import (
	"database/sql"
	"time"

	"github.com/questhive/backend/pkg/enum"
)

type ProgressStatus string

var (
	ProgressLocked    = enum.New(ProgressStatus("locked"))
	ProgressAvailable = enum.New(ProgressStatus("available"))
	ProgressCompleted = enum.New(ProgressStatus("completed"))
)

// QuestProgress is the single progress row per (user, quest). CompletedAt is
// set exactly when Status is completed. Metadata holds the sanitized record
// of the successful claim and never contains secret material.
type QuestProgress struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	QuestID string `gorm:"primaryKey"`
	Quest   Quest  `gorm:"foreignKey:QuestID"`

	Status      ProgressStatus
	CompletedAt sql.NullTime
	Metadata    Map

	CreatedAt time.Time
	UpdatedAt time.Time
}
