package model

type UpdateServerProfileRequest struct {
	ServerURL string `json:"server_url"`
}

// UpdateServerProfileResponse returns the freshly issued shared token
// exactly once; only its ciphertext is kept at rest.
type UpdateServerProfileResponse struct {
	ServerURL   string `json:"server_url"`
	ServerToken string `json:"server_token"`
}

type GetServerProfileRequest struct{}

type GetServerProfileResponse struct {
	ServerURL      string `json:"server_url"`
	HasServerToken bool   `json:"has_server_token"`
}
