package application

import (
	"regexp"
	"strings"
)

// Credential validation rules. Checks run in a fixed order and the first
// failure wins; each rule maps to one stable, user-facing message. These
// messages are part of the API contract, which is why they live here
// rather than in binding-level validation.

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// validateRegistration returns the first rule violation, or "" when the
// input is acceptable.
func validateRegistration(in RegisterInput) string {
	if isBlank(in.Username) {
		return "Username is required"
	}
	if len(in.Username) < 3 || len(in.Username) > 50 {
		return "Username must be between 3 and 50 characters"
	}
	if isBlank(in.Email) {
		return "Email is required"
	}
	if !emailPattern.MatchString(in.Email) {
		return "Invalid email format"
	}
	if in.Password == "" {
		return "Password is required"
	}
	if len(in.Password) < 6 {
		return "Password must be at least 6 characters"
	}
	if isBlank(in.FirstName) {
		return "First name is required"
	}
	if isBlank(in.LastName) {
		return "Last name is required"
	}
	return ""
}

func validateLogin(email, password string) string {
	if isBlank(email) {
		return "Email is required"
	}
	if !emailPattern.MatchString(email) {
		return "Invalid email format"
	}
	if password == "" {
		return "Password is required"
	}
	return ""
}

// Per-field rules for profile updates. Each is applied only when the
// caller supplied the field.

func validateUpdatedFirstName(v string) string {
	if isBlank(v) {
		return "First name cannot be empty"
	}
	if len(v) > 50 {
		return "First name must not exceed 50 characters"
	}
	return ""
}

func validateUpdatedLastName(v string) string {
	if isBlank(v) {
		return "Last name cannot be empty"
	}
	if len(v) > 50 {
		return "Last name must not exceed 50 characters"
	}
	return ""
}

func validateUpdatedUsername(v string) string {
	if isBlank(v) {
		return "Username cannot be empty"
	}
	if len(v) < 3 || len(v) > 50 {
		return "Username must be between 3 and 50 characters"
	}
	return ""
}
