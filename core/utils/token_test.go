package utils_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-calendar-api/core/config"
	"go-calendar-api/core/constants"
	"go-calendar-api/core/errors"
	"go-calendar-api/core/utils"
)

func setTestConfig(t *testing.T) {
	t.Helper()
	config.Set(&config.Config{
		JWT: config.JWTConfig{
			Secret:          "test-secret",
			ExpirationHours: 1,
		},
	})
	t.Cleanup(func() { config.Set(nil) })
}

func TestTokenRoundTrip(t *testing.T) {
	setTestConfig(t)
	userID := uuid.New()

	signed, expiresAt, err := utils.GenerateToken(userID, "ada@example.com", "Ada")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	data, err := utils.ValidateAndParseToken(signed)
	require.NoError(t, err)
	assert.Equal(t, userID, data.UserID)
	assert.Equal(t, "ada@example.com", data.Email)
	assert.Equal(t, "Ada", data.Name)
	assert.Equal(t, constants.ScopeTokenAccess, data.Scope)
}

func TestValidateAndParseToken_Garbage(t *testing.T) {
	setTestConfig(t)

	_, err := utils.ValidateAndParseToken("not-a-jwt")
	require.Error(t, err)

	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrInvalidTokenFormat, appErr.Code)
}

func TestValidateAndParseToken_WrongSecret(t *testing.T) {
	setTestConfig(t)
	signed, _, err := utils.GenerateToken(uuid.New(), "a@b.c", "A")
	require.NoError(t, err)

	config.Set(&config.Config{JWT: config.JWTConfig{Secret: "other-secret", ExpirationHours: 1}})

	_, err = utils.ValidateAndParseToken(signed)
	assert.Error(t, err)
}

func TestTokenTTL(t *testing.T) {
	setTestConfig(t)
	signed, _, err := utils.GenerateToken(uuid.New(), "a@b.c", "A")
	require.NoError(t, err)

	ttl := utils.TokenTTL(signed)
	assert.Greater(t, ttl, 50*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)

	// Unparseable tokens fall back to a bounded default.
	assert.Equal(t, time.Hour, utils.TokenTTL("junk"))
}
