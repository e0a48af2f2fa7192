package dto

type MarkReadRequest struct {
	IDs []string `json:"ids"`
}

type UnreadCountResponse struct {
	Count int `json:"count"`
}
