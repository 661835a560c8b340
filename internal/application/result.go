package application

import "time"

// Result is the structured outcome of every core operation. Operations
// never surface raw errors to callers; faults are folded into a failed
// Result with a stable message the transport layer can translate.
type Result[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

func success[T any](message string, data T) Result[T] {
	return Result[T]{Success: true, Message: message, Data: data}
}

func failure[T any](message string) Result[T] {
	return Result[T]{Message: message}
}

// RegisterData is returned by a successful registration.
type RegisterData struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// LoginData is returned by a successful login.
type LoginData struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// ProfileData is the full profile view; it never carries the password hash.
type ProfileData struct {
	UserID    string     `json:"userId"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Role      string     `json:"role"`
	IsActive  bool       `json:"isActive"`
	AvatarURL string     `json:"avatarUrl,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// UpdateProfileData is returned by a successful profile update.
type UpdateProfileData struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// AvatarData is returned by a successful avatar upload.
type AvatarData struct {
	AvatarURL string `json:"avatarUrl"`
}
