package dto

import "time"

// ShareResponse carries the presigned link to a shared calendar export.
type ShareResponse struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}
