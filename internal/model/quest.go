package model

type GetQuestRequest struct {
	QuestSlug string `json:"quest_slug"`
}

type Quest struct {
	ID               string `json:"id"`
	Slug             string `json:"slug"`
	Title            string `json:"title"`
	ChapterID        string `json:"chapter_id,omitempty"`
	VerificationType string `json:"verification_type"`
	PrerequisiteID   string `json:"prerequisite_quest_id,omitempty"`
	ProgressStatus   string `json:"progress_status"`
}

type GetQuestResponse struct {
	Quest
}

type GetListQuestRequest struct {
	ChapterID string `json:"chapter_id"`
}

type GetListQuestResponse struct {
	Quests []Quest `json:"quests"`
}
