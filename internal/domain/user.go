package domain

import (
	"time"
)

// Role type to distinguish registered members from guest sessions
type Role string

const (
	RoleMember Role = "member"
	RoleGuest  Role = "guest"
)

// User represents a registered account.
type User struct {
	ID           string    `bson:"_id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`    // Should be unique
	PasswordHash string    `bson:"passwordHash" json:"-"` // Never expose this via JSON
	Role         Role      `bson:"role" json:"role"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SessionUser is the slim user record kept in session storage.
type SessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}
