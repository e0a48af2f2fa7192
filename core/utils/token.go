package utils

import (
	stderrors "errors"
	"time"

	"go-calendar-api/core/config"
	"go-calendar-api/core/constants"
	"go-calendar-api/core/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenData is the session payload carried in the JWT and stored in the echo
// context by the auth middleware.
type TokenData struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Scope  string    `json:"scope"`
}

type sessionClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// GenerateToken issues a signed session JWT for the given user.
func GenerateToken(userID uuid.UUID, email, name string) (string, time.Time, error) {
	cfg := config.Get()
	expiresAt := time.Now().Add(time.Duration(cfg.JWT.ExpirationHours) * time.Hour)

	claims := sessionClaims{
		Email: email,
		Name:  name,
		Scope: constants.ScopeTokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.JWT.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ValidateAndParseToken verifies the signature and expiry of a session token
// and returns its payload.
func ValidateAndParseToken(tokenString string) (*TokenData, error) {
	cfg, ok := config.GetSafe()
	if !ok {
		return nil, errors.New(errors.ErrInternalServer, "config not loaded")
	}

	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New(errors.ErrInvalidTokenFormat, "unexpected signing method")
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAppError(errors.ErrTokenExpired, "token expired", err)
		}
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid token", err)
	}
	if !token.Valid {
		return nil, errors.New(errors.ErrUnauthorized, "invalid token")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInvalidTokenFormat, "invalid subject", err)
	}

	return &TokenData{
		UserID: userID,
		Email:  claims.Email,
		Name:   claims.Name,
		Scope:  claims.Scope,
	}, nil
}

// TokenTTL returns the remaining lifetime of a token, used to bound the
// blacklist entry on logout.
func TokenTTL(tokenString string) time.Duration {
	claims := &sessionClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil || claims.ExpiresAt == nil {
		return time.Hour
	}
	return time.Until(claims.ExpiresAt.Time)
}
