package dto

import "github.com/alizia-edu/alizia-api/internal/models"

// LoginRequest selects the acting user. The backend exposes no credential
// check; identity is picked from the user roster.
type LoginRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

// LoginResponse returns the session token and resolved identity.
type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresIn int64       `json:"expires_in"`
	Session   SessionInfo `json:"session"`
}

// SessionInfo describes the current session state.
type SessionInfo struct {
	User User         `json:"user"`
	Role models.Role  `json:"role"`
	Area *models.Area `json:"area,omitempty"`
}

// User mirrors models.User with avatar initials for display.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Initials string `json:"initials"`
}

// NewUser converts a model user for responses.
func NewUser(u models.User) User {
	return User{ID: u.ID, Name: u.Name, Email: u.Email, Initials: u.Initials()}
}
