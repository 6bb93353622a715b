package model

// VerifyQuestRequest is a completion claim. The verification type is
// deliberately not part of the request; it is resolved server-side from the
// quest record.
type VerifyQuestRequest struct {
	QuestSlug string         `json:"quest_slug"`
	Data      map[string]any `json:"data"`
}

type VerifyQuestResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Rewards []Reward       `json:"rewards,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
}

type Reward struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}
