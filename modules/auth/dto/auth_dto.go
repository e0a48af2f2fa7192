package dto

// Provider constants
const (
	ProviderGitHub = "github"
	ProviderGoogle = "google"
)

// OAuthURLResponse carries the consent URL and the state nonce the client
// must echo back on the callback.
type OAuthURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt string       `json:"expires_at"` // RFC3339
	User      UserResponse `json:"user"`
}
