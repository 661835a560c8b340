package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/abelgas/userauth/pkg/helpers"
	"github.com/abelgas/userauth/pkg/response"
)

// CtxUserEmailKey is where Auth stores the token subject for handlers.
const CtxUserEmailKey = "userEmail"

// TokenFromHeader extracts the bearer token from the Authorization header.
// Returns "" when the header is absent or not a bearer credential.
func TokenFromHeader(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, prefix))
}

// Auth validates the bearer session token and injects the subject email
// into the Gin context. Tokens are self-contained, so there is no session
// store lookup here.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := TokenFromHeader(c)
		if token == "" {
			response.AbortError(c, http.StatusUnauthorized, "Missing access token", nil)
			return
		}
		if !jwt.Validate(token) {
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}
		email, err := jwt.EmailFromToken(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "Invalid or expired token", nil)
			return
		}
		c.Set(CtxUserEmailKey, email)
		c.Next()
	}
}
