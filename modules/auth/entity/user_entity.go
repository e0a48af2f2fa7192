package entity

import (
	"go-calendar-api/core/entity"
)

// User is the account row created on first OAuth sign-in and looked up by
// email on every subsequent one.
type User struct {
	entity.BaseEntity
	Email     string  `db:"email" json:"email"`
	Name      string  `db:"name" json:"name"`
	Provider  string  `db:"provider" json:"provider"`
	AvatarURL *string `db:"avatar_url" json:"avatar_url,omitempty"`
}

func (User) TableName() string {
	return "users"
}
