package auth

import "time"

const (
	MinPasswordLength = 6
	// bcrypt refuses longer input.
	MaxPasswordBytes = 72
)

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// Credentials is a user row including its password hash.
type Credentials struct {
	User
	PasswordHash string
}

type UserContext struct {
	UserID    string
	Email     string
	SessionID string
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      User      `json:"user"`
}
