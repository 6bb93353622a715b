package entity

import (
	"database/sql"

	"github.com/questhive/backend/pkg/enum"
)

// VerificationType decides which verifier a completion claim is routed to.
// It is always read from the stored quest record, never from the claim.
type VerificationType string

var (
	VerifyManual         = enum.New(VerificationType("manual"))
	VerifyPaymentKey     = enum.New(VerificationType("payment_key"))
	VerifyPaymentProduct = enum.New(VerificationType("payment_product"))
	VerifyWebhook        = enum.New(VerificationType("webhook"))
	VerifyServerStatus   = enum.New(VerificationType("server_status"))
)

type QuestStatusType string

var (
	QuestDraft    = enum.New(QuestStatusType("draft"))
	QuestActive   = enum.New(QuestStatusType("active"))
	QuestArchived = enum.New(QuestStatusType("archived"))
)

type Quest struct {
	Base

	ChapterID sql.NullString
	Chapter   Chapter `gorm:"foreignKey:ChapterID"`

	Slug        string `gorm:"uniqueIndex"`
	Title       string
	Description []byte `gorm:"type:longtext"`
	Index       int
	Status      QuestStatusType

	VerificationType   VerificationType
	VerificationConfig Map

	// Prerequisite quests form a DAG maintained by the authoring side.
	PrerequisiteQuestID sql.NullString
}
