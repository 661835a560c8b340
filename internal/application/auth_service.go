package application

import (
	"context"
	"errors"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/abelgas/userauth/internal/domain/entity"
	"github.com/abelgas/userauth/internal/domain/repository"
	"github.com/abelgas/userauth/pkg/helpers"
	"github.com/abelgas/userauth/pkg/mailer"
)

// AuthService orchestrates registration, login, and logout. Redis, the
// publisher, and Elasticsearch are optional; a nil collaborator disables
// its side effect without affecting the core flow.
type AuthService struct {
	Repo         repository.UserRepository
	JWT          *helpers.JWTManager
	Redis        *redis.Client
	Pub          *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
	Logger       *logrus.Logger
	CacheTTL     time.Duration
	MailEnabled  bool
}

func NewAuthService(repo repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esUsersIndex string, logger *logrus.Logger, cacheTTL time.Duration, mailEnabled bool) *AuthService {
	return &AuthService{
		Repo:         repo,
		JWT:          jwt,
		Redis:        rdb,
		Pub:          pub,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		Logger:       logger,
		CacheTTL:     cacheTTL,
		MailEnabled:  mailEnabled,
	}
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register validates the input, rejects duplicate emails, and persists a
// new account with a bcrypt password hash, role USER, and active status.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) Result[RegisterData] {
	if msg := validateRegistration(in); msg != "" {
		return failure[RegisterData](msg)
	}

	exists, err := s.Repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		s.logError("register: email existence check failed", err, in.Email)
		return failure[RegisterData]("Registration failed: " + err.Error())
	}
	if exists {
		return failure[RegisterData]("Email already exists")
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		s.logError("register: password hashing failed", err, in.Email)
		return failure[RegisterData]("Registration failed: " + err.Error())
	}

	u := &entity.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Role:         entity.RoleUser,
		IsActive:     true,
	}
	if err := s.Repo.Save(ctx, u); err != nil {
		s.logError("register: save failed", err, in.Email)
		return failure[RegisterData]("Registration failed: " + err.Error())
	}

	indexProfile(ctx, s.ES, s.ESUsersIndex, u, s.Logger)
	publishEmail(ctx, s.Pub, s.MailEnabled, u, mailer.TemplateWelcome, s.Logger)

	return success("User registered successfully", RegisterData{
		UserID:   u.ID,
		Email:    u.Email,
		Username: u.Username,
	})
}

// Login verifies the credentials, stamps LastLogin, and issues a session
// token for the account email.
func (s *AuthService) Login(ctx context.Context, email, password string) Result[LoginData] {
	if msg := validateLogin(email, password); msg != "" {
		return failure[LoginData](msg)
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return failure[LoginData]("User not found")
	}
	if err != nil {
		s.logError("login: lookup failed", err, email)
		return failure[LoginData]("Login failed: " + err.Error())
	}

	if !helpers.CompareHashAndPassword(u.PasswordHash, password) {
		return failure[LoginData]("Invalid credentials")
	}

	now := time.Now()
	u.LastLogin = &now
	if err := s.Repo.Save(ctx, u); err != nil {
		s.logError("login: last-login update failed", err, email)
		return failure[LoginData]("Login failed: " + err.Error())
	}

	token, _, err := s.JWT.Generate(u.Email)
	if err != nil {
		s.logError("login: token generation failed", err, email)
		return failure[LoginData]("Login failed: " + err.Error())
	}

	cacheProfile(ctx, s.Redis, s.CacheTTL, u, s.Logger)
	publishEmail(ctx, s.Pub, s.MailEnabled, u, mailer.TemplateLoginNotification, s.Logger)

	return success("Login successful", LoginData{
		Token:     token,
		UserID:    u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	})
}

// Logout acknowledges the client discarding its token. Session tokens are
// self-contained and there is no revocation list, so nothing changes on
// the server; the token stays valid until its expiry elapses. This is the
// documented trade-off of the stateless token design.
func (s *AuthService) Logout(_ string) Result[struct{}] {
	return success("Logout successful", struct{}{})
}

// ValidateCredentials reports whether the email/password pair matches a
// stored account. Unknown accounts and storage faults both read as false.
func (s *AuthService) ValidateCredentials(ctx context.Context, email, password string) bool {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return false
	}
	return helpers.CompareHashAndPassword(u.PasswordHash, password)
}

func (s *AuthService) logError(msg string, err error, email string) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithField("email", email).Error(msg)
}
