package model

type GetMyRewardsRequest struct{}

type GetMyRewardsResponse struct {
	Rewards []Reward `json:"rewards"`
}
