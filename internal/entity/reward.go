package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/questhive/backend/pkg/enum"
)

type RewardConditionType string

var (
	QuestRewardCondition    = enum.New(RewardConditionType("quest"))
	ChapterRewardCondition  = enum.New(RewardConditionType("chapter"))
	BookRewardCondition     = enum.New(RewardConditionType("book"))
	QuestSetRewardCondition = enum.New(RewardConditionType("quest_set"))
)

type RewardConditionOp string

var (
	AllOf = enum.New(RewardConditionOp("all"))
	AnyOf = enum.New(RewardConditionOp("any"))
)

// RewardCondition is a tagged union stored as a JSON column. Data carries
// the type-specific payload (quest_id, chapter_id, book_id, or quest_ids
// plus op).
type RewardCondition struct {
	Type RewardConditionType `json:"type"`
	Data Map                 `json:"data"`
}

func (c *RewardCondition) Scan(value any) error {
	switch t := value.(type) {
	case string:
		return json.Unmarshal([]byte(t), c)
	case []byte:
		return json.Unmarshal(t, c)
	case nil:
		return nil
	default:
		return fmt.Errorf("cannot scan invalid data type %T", value)
	}
}

func (c RewardCondition) Value() (driver.Value, error) {
	return json.Marshal(c)
}

type Reward struct {
	Base

	Name        string
	Description string
	ImageURL    string
	IsActive    bool
	Condition   RewardCondition `gorm:"type:text"`
}

// UserReward rows are unique on (user_id, reward_id); the composite primary
// key is the only idempotence guarantee granting relies on.
type UserReward struct {
	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	RewardID string `gorm:"primaryKey"`
	Reward   Reward `gorm:"foreignKey:RewardID"`

	CreatedAt time.Time
}
