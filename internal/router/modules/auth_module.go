package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/abelgas/userauth/internal/interface/http"
)

// AuthModule wires the registration and session endpoints.
// Public: POST /api/auth/register, POST /api/auth/login
// POST /api/auth/logout takes the bearer token but needs no guard; the
// operation is a stateless acknowledgement either way.
type AuthModule struct {
	Handler *handlers.AuthHandler
}

func NewAuthModule(h *handlers.AuthHandler) *AuthModule {
	return &AuthModule{Handler: h}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)
	rg.POST("/auth/logout", m.Handler.Logout)
}
