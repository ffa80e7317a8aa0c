// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Role enumerates the account kinds the API knows about.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a raw claim or column value to a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser:
		return RoleUser, true
	case RoleAdmin:
		return RoleAdmin, true
	default:
		return "", false
	}
}

// Identity is the verified caller of a request, taken from its bearer token.
type Identity struct {
	ID   string
	Role Role
}

// User is a registered account. PasswordHash never leaves the service layer.
type User struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserView is the projection returned to clients after registration.
type UserView struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

// View strips credentials from a user.
func (u User) View() UserView {
	return UserView{ID: u.ID, Name: u.Name, Role: u.Role}
}

// Team is a league team owned by the admin that created it.
type Team struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	AdminID   string    `json:"admin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public drops the owner reference.
func (t Team) Public() Team {
	t.AdminID = ""
	return t
}

// TeamRef is the denormalized {_id, name} pair embedded in fixtures.
type TeamRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}

// Fixture is a scheduled match between two teams.
// Matchday is "dd-mm-yyyy" and Matchtime is "HH:MM", both stored as given.
type Fixture struct {
	ID        string    `json:"_id"`
	Home      TeamRef   `json:"home"`
	Away      TeamRef   `json:"away"`
	Matchday  string    `json:"matchday"`
	Matchtime string    `json:"matchtime"`
	AdminID   string    `json:"admin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Public drops the owner reference.
func (f Fixture) Public() Fixture {
	f.AdminID = ""
	return f
}

// SearchQuery is a sparse fixture search. A nil field is absent.
type SearchQuery struct {
	Home      *string
	Away      *string
	Matchday  *string
	Matchtime *string
}
