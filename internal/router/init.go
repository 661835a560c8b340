package router

import (
	"github.com/abelgas/userauth/internal/application"
	"github.com/abelgas/userauth/internal/container"
	pginfra "github.com/abelgas/userauth/internal/infrastructure/postgres"
	handlers "github.com/abelgas/userauth/internal/interface/http"
	"github.com/abelgas/userauth/internal/router/modules"
)

// InitModules builds the service graph from the container singletons and
// registers every feature module. Called once during startup.
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())

	authSvc := application.NewAuthService(
		repo,
		container.GetJWT(),
		container.GetRedis(),
		container.GetRabbitPub(),
		container.GetES(),
		cfg.ESUsersIndex,
		container.GetLogger(),
		cfg.ProfileCacheTTL,
		cfg.MailSendEnabled,
	)
	userSvc := application.NewUserService(
		repo,
		container.GetJWT(),
		container.GetRedis(),
		cfg.ProfileCacheTTL,
		container.GetGCS(),
		cfg.GCSBucket,
		container.GetES(),
		cfg.ESUsersIndex,
		container.GetRabbitPub(),
		cfg.MailSendEnabled,
		container.GetLogger(),
	)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, container.GetLogger())))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, container.GetLogger()), container.GetJWT()))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
