package application

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/abelgas/userauth/internal/domain/repository"
	"github.com/abelgas/userauth/pkg/helpers"
	"github.com/abelgas/userauth/pkg/mailer"
)

// UserService serves and updates profiles for authenticated accounts.
// Tokens are verified first, then the subject email is extracted; the
// two-step order matters because subject extraction alone does not
// re-check expiry.
type UserService struct {
	Repo         repository.UserRepository
	JWT          *helpers.JWTManager
	Redis        *redis.Client
	CacheTTL     time.Duration
	GCS          *storage.Client
	GCSBucket    string
	ES           *elasticsearch.Client
	ESUsersIndex string
	Pub          *helpers.RabbitPublisher
	MailEnabled  bool
	Logger       *logrus.Logger
}

func NewUserService(repo repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, cacheTTL time.Duration, gcs *storage.Client, gcsBucket string, es *elasticsearch.Client, esUsersIndex string, pub *helpers.RabbitPublisher, mailEnabled bool, logger *logrus.Logger) *UserService {
	return &UserService{
		Repo:         repo,
		JWT:          jwt,
		Redis:        rdb,
		CacheTTL:     cacheTTL,
		GCS:          gcs,
		GCSBucket:    gcsBucket,
		ES:           es,
		ESUsersIndex: esUsersIndex,
		Pub:          pub,
		MailEnabled:  mailEnabled,
		Logger:       logger,
	}
}

// FetchProfile resolves the token subject to a full profile view.
func (s *UserService) FetchProfile(ctx context.Context, token string) Result[ProfileData] {
	if !s.JWT.Validate(token) {
		return failure[ProfileData]("Invalid or expired token")
	}
	email, err := s.JWT.EmailFromToken(token)
	if err != nil {
		return failure[ProfileData]("Invalid or expired token")
	}

	if s.Redis != nil {
		var cached ProfileData
		if hit, cerr := helpers.RedisGetJSON(ctx, s.Redis, profileCacheKey(email), &cached); cerr == nil && hit {
			return success("Profile fetched successfully", cached)
		}
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return failure[ProfileData]("User not found")
	}
	if err != nil {
		s.logError("fetch profile: lookup failed", err, email)
		return failure[ProfileData]("Failed to fetch profile: " + err.Error())
	}

	cacheProfile(ctx, s.Redis, s.CacheTTL, u, s.Logger)
	return success("Profile fetched successfully", profileDataFrom(u))
}

// UpdateProfileInput carries the update form. Nil pointers mean the field
// was omitted and the stored value stays untouched. Email is deliberately
// absent: it is the immutable login identity.
type UpdateProfileInput struct {
	UserID    string
	Username  *string
	FirstName *string
	LastName  *string
}

// UpdateProfile applies the provided fields onto the stored account after
// per-field validation. The first violation aborts the update with no
// partial effect.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) Result[UpdateProfileData] {
	if in.UserID == "" {
		return failure[UpdateProfileData]("User ID is required")
	}

	u, err := s.Repo.GetByID(ctx, in.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return failure[UpdateProfileData]("User not found")
	}
	if err != nil {
		s.logError("update profile: lookup failed", err, in.UserID)
		return failure[UpdateProfileData]("Failed to update profile: " + err.Error())
	}

	if in.FirstName != nil {
		if msg := validateUpdatedFirstName(*in.FirstName); msg != "" {
			return failure[UpdateProfileData](msg)
		}
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		if msg := validateUpdatedLastName(*in.LastName); msg != "" {
			return failure[UpdateProfileData](msg)
		}
		u.LastName = *in.LastName
	}
	if in.Username != nil {
		if msg := validateUpdatedUsername(*in.Username); msg != "" {
			return failure[UpdateProfileData](msg)
		}
		u.Username = *in.Username
	}

	if err := s.Repo.Save(ctx, u); err != nil {
		s.logError("update profile: save failed", err, in.UserID)
		return failure[UpdateProfileData]("Failed to update profile: " + err.Error())
	}

	dropCachedProfile(ctx, s.Redis, u.Email, s.Logger)
	indexProfile(ctx, s.ES, s.ESUsersIndex, u, s.Logger)
	publishEmail(ctx, s.Pub, s.MailEnabled, u, mailer.TemplateProfileUpdated, s.Logger)

	return success("Profile updated successfully", UpdateProfileData{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	})
}

// UploadAvatar stores the uploaded image in GCS under the account's
// avatar prefix and records the public URL on the profile.
func (s *UserService) UploadAvatar(ctx context.Context, token string, r io.Reader, filename, contentType string) Result[AvatarData] {
	if !s.JWT.Validate(token) {
		return failure[AvatarData]("Invalid or expired token")
	}
	email, err := s.JWT.EmailFromToken(token)
	if err != nil {
		return failure[AvatarData]("Invalid or expired token")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return failure[AvatarData]("User not found")
	}
	if err != nil {
		s.logError("upload avatar: lookup failed", err, email)
		return failure[AvatarData]("Avatar upload failed: " + err.Error())
	}

	if s.GCS == nil || s.GCSBucket == "" {
		return failure[AvatarData]("Avatar upload failed: storage not configured")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("avatars", u.ID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		s.logError("upload avatar: object write failed", err, email)
		return failure[AvatarData]("Avatar upload failed: " + err.Error())
	}

	u.AvatarURL = url
	if err := s.Repo.Save(ctx, u); err != nil {
		s.logError("upload avatar: save failed", err, email)
		return failure[AvatarData]("Avatar upload failed: " + err.Error())
	}

	dropCachedProfile(ctx, s.Redis, u.Email, s.Logger)
	indexProfile(ctx, s.ES, s.ESUsersIndex, u, s.Logger)

	return success("Avatar uploaded successfully", AvatarData{AvatarURL: url})
}

// SearchUsers performs a multi_match query over the indexed profile
// fields. Results come straight from the Elasticsearch documents.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "email^2", "first_name", "last_name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *UserService) logError(msg string, err error, subject string) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithError(err).WithField("subject", subject).Error(msg)
}
