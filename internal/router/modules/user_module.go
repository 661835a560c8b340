package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/abelgas/userauth/internal/interface/http"
	"github.com/abelgas/userauth/internal/interface/middleware"
	"github.com/abelgas/userauth/pkg/helpers"
)

// UserModule wires the profile endpoints. The /user/* routes verify the
// token inside the service (the token is the operation's input); the
// search route is guarded by the bearer middleware instead because the
// handler has no other use for the token.
type UserModule struct {
	Handler *handlers.UserHandler
	JWT     *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.GET("/user/me", m.Handler.Me)
	rg.GET("/user/profile", m.Handler.Me)
	rg.GET("/user/dashboard", m.Handler.Me)
	rg.PUT("/user/profile", m.Handler.UpdateProfile)
	rg.POST("/user/avatar", m.Handler.UploadAvatar)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.GET("/users/search", m.Handler.Search)
	}
}
