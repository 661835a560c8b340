package application

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username:  "alice01",
		Email:     "alice@example.com",
		Password:  "secret123",
		FirstName: "Alice",
		LastName:  "Smith",
	}
}

func TestValidateRegistration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*RegisterInput)
		want   string
	}{
		{"valid", func(in *RegisterInput) {}, ""},
		{"blank username", func(in *RegisterInput) { in.Username = "   " }, "Username is required"},
		{"short username", func(in *RegisterInput) { in.Username = "ab" }, "Username must be between 3 and 50 characters"},
		{"long username", func(in *RegisterInput) { in.Username = strings.Repeat("x", 51) }, "Username must be between 3 and 50 characters"},
		{"blank email", func(in *RegisterInput) { in.Email = "" }, "Email is required"},
		{"bad email no at", func(in *RegisterInput) { in.Email = "aliceexample.com" }, "Invalid email format"},
		{"bad email no tld", func(in *RegisterInput) { in.Email = "alice@example" }, "Invalid email format"},
		{"bad email one-char tld", func(in *RegisterInput) { in.Email = "alice@example.c" }, "Invalid email format"},
		{"empty password", func(in *RegisterInput) { in.Password = "" }, "Password is required"},
		{"short password", func(in *RegisterInput) { in.Password = "12345" }, "Password must be at least 6 characters"},
		{"blank first name", func(in *RegisterInput) { in.FirstName = " " }, "First name is required"},
		{"blank last name", func(in *RegisterInput) { in.LastName = "" }, "Last name is required"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			in := validRegisterInput()
			tc.mutate(&in)
			assert.Equal(t, tc.want, validateRegistration(in))
		})
	}
}

// The first violated rule wins even when several fields are bad at once.
func TestValidateRegistration_Ordering(t *testing.T) {
	t.Parallel()

	in := RegisterInput{Username: "", Email: "not-an-email", Password: "", FirstName: "", LastName: ""}
	assert.Equal(t, "Username is required", validateRegistration(in))

	in.Username = "alice01"
	assert.Equal(t, "Email is required", validateRegistration(RegisterInput{Username: "alice01"}))
	assert.Equal(t, "Invalid email format", validateRegistration(in))

	in.Email = "alice@example.com"
	assert.Equal(t, "Password is required", validateRegistration(in))

	in.Password = "secret123"
	assert.Equal(t, "First name is required", validateRegistration(in))

	in.FirstName = "Alice"
	assert.Equal(t, "Last name is required", validateRegistration(in))
}

func TestValidateLogin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
		want     string
	}{
		{"valid", "alice@example.com", "secret123", ""},
		{"blank email", "  ", "secret123", "Email is required"},
		{"bad email", "alice@", "secret123", "Invalid email format"},
		{"empty password", "alice@example.com", "", "Password is required"},
		{"both missing reports email first", "", "", "Email is required"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, validateLogin(tc.email, tc.password))
		})
	}
}

func TestEmailPattern(t *testing.T) {
	t.Parallel()

	valid := []string{
		"a@b.co",
		"first.last@example.com",
		"user+tag@sub.domain.org",
		"user_name-1@host.io",
	}
	invalid := []string{
		"@example.com",
		"user@",
		"user@host",
		"user@host.c",
		"user name@host.com",
	}
	for _, e := range valid {
		assert.True(t, emailPattern.MatchString(e), "expected %q to be valid", e)
	}
	for _, e := range invalid {
		assert.False(t, emailPattern.MatchString(e), "expected %q to be invalid", e)
	}
}

func TestValidateUpdatedFields(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 51)

	assert.Equal(t, "", validateUpdatedFirstName("Alice"))
	assert.Equal(t, "First name cannot be empty", validateUpdatedFirstName("  "))
	assert.Equal(t, "First name must not exceed 50 characters", validateUpdatedFirstName(long))

	assert.Equal(t, "", validateUpdatedLastName("Smith"))
	assert.Equal(t, "Last name cannot be empty", validateUpdatedLastName(""))
	assert.Equal(t, "Last name must not exceed 50 characters", validateUpdatedLastName(long))

	assert.Equal(t, "", validateUpdatedUsername("alice01"))
	assert.Equal(t, "Username cannot be empty", validateUpdatedUsername(" "))
	assert.Equal(t, "Username must be between 3 and 50 characters", validateUpdatedUsername("ab"))
	assert.Equal(t, "Username must be between 3 and 50 characters", validateUpdatedUsername(long))
}
