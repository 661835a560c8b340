package application

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/abelgas/userauth/internal/domain/entity"
	"github.com/abelgas/userauth/pkg/helpers"
	"github.com/abelgas/userauth/pkg/mailer"
)

// Best-effort collaborator calls shared by both services. None of these
// may fail the operation that triggered them; problems are logged and
// swallowed.

func profileCacheKey(email string) string {
	return "user:profile:" + email
}

func profileDataFrom(u *entity.User) ProfileData {
	return ProfileData{
		UserID:    u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
		IsActive:  u.IsActive,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLogin,
	}
}

func cacheProfile(ctx context.Context, rdb *redis.Client, ttl time.Duration, u *entity.User, logger *logrus.Logger) {
	if rdb == nil || ttl <= 0 {
		return
	}
	if err := helpers.RedisSetJSON(ctx, rdb, profileCacheKey(u.Email), profileDataFrom(u), ttl); err != nil && logger != nil {
		logger.WithError(err).WithField("email", u.Email).Warn("profile cache write failed")
	}
}

func dropCachedProfile(ctx context.Context, rdb *redis.Client, email string, logger *logrus.Logger) {
	if rdb == nil {
		return
	}
	if err := helpers.RedisDel(ctx, rdb, profileCacheKey(email)); err != nil && logger != nil {
		logger.WithError(err).WithField("email", email).Warn("profile cache invalidation failed")
	}
}

// indexProfile mirrors the public profile fields into Elasticsearch for
// the search endpoint. The password hash is never part of the document.
func indexProfile(ctx context.Context, es *elasticsearch.Client, index string, u *entity.User, logger *logrus.Logger) {
	if es == nil || index == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"role":       u.Role,
		"is_active":  u.IsActive,
		"avatar_url": u.AvatarURL,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: index, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, es)
	if err != nil {
		if logger != nil {
			logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && logger != nil {
		logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

func publishEmail(ctx context.Context, pub *helpers.RabbitPublisher, enabled bool, u *entity.User, template string, logger *logrus.Logger) {
	if pub == nil || !enabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: template,
		Data: map[string]any{
			"Name":     u.FirstName + " " + u.LastName,
			"Username": u.Username,
			"Email":    u.Email,
			"Time":     time.Now().UTC().Format(time.RFC3339),
		},
	}
	if err := pub.PublishJSON(ctx, job); err != nil && logger != nil {
		logger.WithError(err).WithField("template", template).Warn("email job publish failed")
	}
}
