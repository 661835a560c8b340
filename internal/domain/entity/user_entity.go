package entity

import (
	"time"
)

// Roles assignable to a user account. New accounts always start as RoleUser.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User is the aggregate root for the account domain.
// PasswordHash holds a bcrypt digest and must never leave the service
// through any response payload.
type User struct {
	ID           string
	Username     string
	Email        string // login identity, unique, immutable after creation
	PasswordHash string
	FirstName    string
	LastName     string
	Role         string
	IsActive     bool
	AvatarURL    string
	CreatedAt    time.Time
	LastLogin    *time.Time // nil until the first successful login
}
