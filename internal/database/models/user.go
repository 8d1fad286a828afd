package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account that can authenticate and hold one API token.
// The password column always contains a bcrypt hash; hashing happens in the
// service layer before the row is handed to the repository, never in a
// persistence hook. ApiToken holds the one-way digest of the issued API
// token, or nil if none was issued yet.
type User struct {
	ID        string         `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	ApiToken  *string        `gorm:"column:api_token" json:"-"`
	LastLogin *time.Time     `json:"last_login,omitempty"`
	CreatedAt time.Time      `json:"-"`
	UpdatedAt time.Time      `json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (User) TableName() string {
	return "users"
}

// HasApiToken reports whether an API token was already issued for this user.
func (u *User) HasApiToken() bool {
	return u.ApiToken != nil && *u.ApiToken != ""
}
