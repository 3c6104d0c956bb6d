package domain

import (
	"strings"
	"time"
)

// Minimum lengths count characters, not bytes. MaxPasswordBytes is the
// bcrypt input limit.
const (
	MinUsernameLength = 3
	MinPasswordLength = 3
	MaxPasswordBytes  = 72
)

// NormalizeUsername is applied both when registering and when logging in.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// User models a registered blog author.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name,omitempty"`
	PasswordHash string    `json:"-"`
	PostIDs      []string  `json:"blogs"`
	CreatedAt    time.Time `json:"created_at"`
}

// Identity is what a verified bearer token says about its holder.
type Identity struct {
	UserID   string
	Username string
}
