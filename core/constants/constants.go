package constants

import "time"

// Database settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Timeouts
const (
	DefaultTimeout        = 30 * time.Second
	DefaultRequestTimeout = 15 * time.Second
	ShutdownTimeout       = 10 * time.Second
)

// Echo context keys
const (
	ContextTokenData = "token_data"
)

// Token scopes
const (
	ScopeTokenAccess  = "access"
	ScopeTokenRefresh = "refresh"
)

// Redis keys
const (
	RedisKeyOAuthState     = "oauth:state:"
	RedisKeyTokenBlacklist = "token:blacklist:"
	RedisKeyLoginAttempt   = "login:attempt:"
	RedisKeyUserNotes      = "notes:user:"
)

// Login throttling
const (
	MaxLoginAttempts = 5
	BlockDuration    = 15 * time.Minute
	OAuthStateTTL    = 10 * time.Minute
)

// Reminder scheduling
const (
	ReminderQueue    = "reminders"
	ReminderLeadTime = 15 * time.Minute
)
