package model

type UpsertSettingRequest struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	IsEncrypted bool   `json:"is_encrypted"`
}

type UpsertSettingResponse struct{}

type GetSettingRequest struct {
	Key string `json:"key"`
}

type GetSettingResponse struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}
