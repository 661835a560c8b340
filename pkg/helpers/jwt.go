package helpers

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTManager issues and verifies stateless HS256 session tokens. The
// subject claim carries the account email. Both fields are fixed at
// startup and safe for concurrent reads.
type JWTManager struct {
	secret   []byte
	lifetime time.Duration
}

func NewJWTManager(secret string, lifetime time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), lifetime: lifetime}
}

// Lifetime returns the configured token validity duration.
func (m *JWTManager) Lifetime() time.Duration { return m.lifetime }

// Generate issues a signed token for the given email, valid from now
// until now+lifetime.
func (m *JWTManager) Generate(email string) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(m.lifetime)
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := t.SignedString(m.secret)
	return s, exp, err
}

// Validate reports whether the token has a valid signature and has not
// expired. Any parse, signature, or expiry failure returns false.
func (m *JWTManager) Validate(token string) bool {
	_, err := m.parse(token)
	return err == nil
}

// EmailFromToken extracts the subject claim without re-checking expiry.
// Only meaningful after Validate has succeeded; callers own that ordering.
func (m *JWTManager) EmailFromToken(token string) (string, error) {
	claims, err := m.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (m *JWTManager) parse(token string, opts ...jwt.ParserOption) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return m.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
