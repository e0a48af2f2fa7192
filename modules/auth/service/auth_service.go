package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-calendar-api/core/cache"
	"go-calendar-api/core/config"
	"go-calendar-api/core/errors"
	"go-calendar-api/core/logger"
	"go-calendar-api/core/utils"
	"go-calendar-api/modules/auth/dto"
	"go-calendar-api/modules/auth/entity"
	"go-calendar-api/modules/auth/repository"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
	"golang.org/x/oauth2/google"
)

const (
	githubUserAPI       = "https://api.github.com/user"
	githubUserEmailsAPI = "https://api.github.com/user/emails"
	googleUserInfoAPI   = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type AuthServiceInterface interface {
	GetOAuthURL(ctx context.Context, provider string) (*dto.OAuthURLResponse, *errors.AppError)
	HandleCallback(ctx context.Context, provider, code, state string) (*dto.LoginResponse, *errors.AppError)
	Logout(ctx context.Context, token string) *errors.AppError
	GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, *errors.AppError)
	IsTokenBlacklisted(ctx context.Context, token string) (bool, error)
}

type AuthService struct {
	repo  repository.AuthRepositoryInterface
	cache cache.Cache
}

func NewAuthService(repo repository.AuthRepositoryInterface, cache cache.Cache) *AuthService {
	return &AuthService{repo: repo, cache: cache}
}

func (s *AuthService) oauthConfig(provider string) (*oauth2.Config, *errors.AppError) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.New(errors.ErrInternalServer, "config not loaded")
	}

	switch provider {
	case dto.ProviderGitHub:
		if cfg.GitHubAPI.ClientID == "" {
			return nil, errors.New(errors.ErrInvalidInput, "github sign-in is not configured")
		}
		return &oauth2.Config{
			ClientID:     cfg.GitHubAPI.ClientID,
			ClientSecret: cfg.GitHubAPI.ClientSecret,
			RedirectURL:  cfg.GitHubAPI.RedirectURI,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		}, nil
	case dto.ProviderGoogle:
		if cfg.GoogleAPI.ClientID == "" {
			return nil, errors.New(errors.ErrInvalidInput, "google sign-in is not configured")
		}
		return &oauth2.Config{
			ClientID:     cfg.GoogleAPI.ClientID,
			ClientSecret: cfg.GoogleAPI.ClientSecret,
			RedirectURL:  cfg.GoogleAPI.RedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}, nil
	default:
		return nil, errors.New(errors.ErrInvalidInput, "unknown oauth provider")
	}
}

// GetOAuthURL builds the provider consent URL with a single-use state nonce.
func (s *AuthService) GetOAuthURL(ctx context.Context, provider string) (*dto.OAuthURLResponse, *errors.AppError) {
	conf, appErr := s.oauthConfig(provider)
	if appErr != nil {
		return nil, appErr
	}

	state := utils.GenerateRandomString(32)
	if err := s.cache.SetOAuthState(ctx, state); err != nil {
		logger.Error("AuthService:GetOAuthURL:SetOAuthState:Error:", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to store oauth state", err)
	}

	return &dto.OAuthURLResponse{
		URL:   conf.AuthCodeURL(state, oauth2.AccessTypeOffline),
		State: state,
	}, nil
}

// HandleCallback verifies the state nonce, exchanges the code, resolves the
// provider profile and returns a session token for the upserted user.
func (s *AuthService) HandleCallback(ctx context.Context, provider, code, state string) (*dto.LoginResponse, *errors.AppError) {
	conf, appErr := s.oauthConfig(provider)
	if appErr != nil {
		return nil, appErr
	}

	ok, err := s.cache.ConsumeOAuthState(ctx, state)
	if err != nil {
		logger.Error("AuthService:HandleCallback:ConsumeOAuthState:Error:", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to verify oauth state", err)
	}
	if !ok {
		return nil, errors.New(errors.ErrUnauthorized, "invalid or expired oauth state")
	}

	token, err := conf.Exchange(ctx, code)
	if err != nil {
		logger.Error("AuthService:HandleCallback:Exchange:Error:", "provider", provider, "error", err)
		return nil, errors.NewAppError(errors.ErrUnauthorized, "oauth code exchange failed", err)
	}

	profile, appErr := s.fetchProfile(ctx, conf, provider, token)
	if appErr != nil {
		return nil, appErr
	}
	if profile.Email == "" {
		return nil, errors.New(errors.ErrUnauthorized, "provider account has no verified email")
	}

	if blocked, err := s.cache.IsLoginBlocked(ctx, profile.Email); err == nil && blocked {
		return nil, errors.New(errors.ErrForbidden, "too many sign-in attempts, try again later")
	}
	if _, err := s.cache.IncrementLoginAttempt(ctx, profile.Email); err != nil {
		logger.Warn("AuthService:HandleCallback:IncrementLoginAttempt:Error:", "error", err)
	}

	user, err := s.repo.UpsertUserByEmail(ctx, &entity.User{
		Email:     profile.Email,
		Name:      profile.Name,
		Provider:  provider,
		AvatarURL: profile.AvatarURL,
	})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to save user", err)
	}

	sessionToken, expiresAt, err := utils.GenerateToken(user.ID, user.Email, user.Name)
	if err != nil {
		logger.Error("AuthService:HandleCallback:GenerateToken:Error:", "error", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue session token", err)
	}

	logger.Info("AuthService:HandleCallback:SignedIn", "user_id", user.ID, "provider", provider)
	return &dto.LoginResponse{
		Token:     sessionToken,
		ExpiresAt: expiresAt.Format(time.RFC3339),
		User: dto.UserResponse{
			ID:    user.ID.String(),
			Email: user.Email,
			Name:  user.Name,
		},
	}, nil
}

// Logout blacklists the presented token for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	if err := s.cache.AddToTokenBlacklist(ctx, token, utils.TokenTTL(token)); err != nil {
		logger.Error("AuthService:Logout:AddToTokenBlacklist:Error:", "error", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to revoke session", err)
	}
	return nil
}

func (s *AuthService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, *errors.AppError) {
	user, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to get user", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrNotFound, "user not found")
	}
	return user, nil
}

func (s *AuthService) IsTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	return s.cache.IsTokenBlacklisted(ctx, token)
}

type providerProfile struct {
	Email     string
	Name      string
	AvatarURL *string
}

func (s *AuthService) fetchProfile(ctx context.Context, conf *oauth2.Config, provider string, token *oauth2.Token) (*providerProfile, *errors.AppError) {
	client := conf.Client(ctx, token)

	switch provider {
	case dto.ProviderGitHub:
		return s.fetchGitHubProfile(ctx, client)
	case dto.ProviderGoogle:
		return s.fetchGoogleProfile(ctx, client)
	}
	return nil, errors.New(errors.ErrInvalidInput, "unknown oauth provider")
}

func (s *AuthService) fetchGitHubProfile(ctx context.Context, client *http.Client) (*providerProfile, *errors.AppError) {
	var user struct {
		Login     string  `json:"login"`
		Name      string  `json:"name"`
		Email     string  `json:"email"`
		AvatarURL *string `json:"avatar_url"`
	}
	if appErr := getJSON(ctx, client, githubUserAPI, &user); appErr != nil {
		return nil, appErr
	}

	profile := &providerProfile{Email: user.Email, Name: user.Name, AvatarURL: user.AvatarURL}
	if profile.Name == "" {
		profile.Name = user.Login
	}

	// The public profile email is often hidden; fall back to the primary
	// verified address from the emails endpoint.
	if profile.Email == "" {
		var emails []struct {
			Email    string `json:"email"`
			Primary  bool   `json:"primary"`
			Verified bool   `json:"verified"`
		}
		if appErr := getJSON(ctx, client, githubUserEmailsAPI, &emails); appErr != nil {
			return nil, appErr
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				profile.Email = e.Email
				break
			}
		}
	}
	return profile, nil
}

func (s *AuthService) fetchGoogleProfile(ctx context.Context, client *http.Client) (*providerProfile, *errors.AppError) {
	var user struct {
		Email         string  `json:"email"`
		VerifiedEmail bool    `json:"verified_email"`
		Name          string  `json:"name"`
		Picture       *string `json:"picture"`
	}
	if appErr := getJSON(ctx, client, googleUserInfoAPI, &user); appErr != nil {
		return nil, appErr
	}
	if !user.VerifiedEmail {
		return nil, errors.New(errors.ErrUnauthorized, "google account email is not verified")
	}
	return &providerProfile{Email: user.Email, Name: user.Name, AvatarURL: user.Picture}, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, dest any) *errors.AppError {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to build provider request", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "provider request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to read provider response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.NewAppError(errors.ErrUnauthorized,
			fmt.Sprintf("provider returned status %d", resp.StatusCode), nil)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return errors.NewAppError(errors.ErrInternalServer, "failed to decode provider response", err)
	}
	return nil
}
