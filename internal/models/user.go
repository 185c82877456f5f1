package models

import "strings"

// Role is derived from the loaded collections, never stored.
type Role string

const (
	RoleCoordinator Role = "coordinator"
	RoleTeacher     Role = "teacher"
	RoleNone        Role = ""
)

// User represents an account known to the curriculum backend.
// Users are immutable once fetched.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Initials returns up to two uppercase initials for avatar rendering.
func (u User) Initials() string {
	var b strings.Builder
	for _, word := range strings.Fields(u.Name) {
		b.WriteString(string([]rune(word)[:1]))
		if b.Len() >= 2 {
			break
		}
	}
	return strings.ToUpper(b.String())
}
