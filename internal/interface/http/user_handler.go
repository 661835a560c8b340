package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abelgas/userauth/internal/application"
	"github.com/abelgas/userauth/internal/interface/middleware"
	"github.com/abelgas/userauth/pkg/response"
	"github.com/abelgas/userauth/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	UserID    string  `json:"userId"`
	Username  *string `json:"username"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

type searchRequest struct {
	Q    string `form:"q" binding:"required"`
	Size int    `form:"size"`
}

// Me handles GET /api/user/me (and its /profile and /dashboard aliases).
func (h *UserHandler) Me(c *gin.Context) {
	res := h.Svc.FetchProfile(c.Request.Context(), middleware.TokenFromHeader(c))
	if !res.Success {
		response.Error(c, http.StatusUnauthorized, res.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, res.Data, res.Message)
}

// UpdateProfile handles PUT /api/user/profile. The caller must present a
// valid token; the update itself targets the userId in the body.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	token := middleware.TokenFromHeader(c)
	if prof := h.Svc.FetchProfile(c.Request.Context(), token); !prof.Success {
		response.Error(c, http.StatusUnauthorized, prof.Message, nil)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res := h.Svc.UpdateProfile(c.Request.Context(), application.UpdateProfileInput{
		UserID:    req.UserID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if !res.Success {
		response.Error(c, http.StatusBadRequest, res.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, res.Data, res.Message)
}

// UploadAvatar handles POST /api/user/avatar (multipart, field "avatar").
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	fh, err := c.FormFile("avatar")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "avatar file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "avatar file is unreadable", nil)
		return
	}
	defer func() { _ = f.Close() }()

	res := h.Svc.UploadAvatar(c.Request.Context(), middleware.TokenFromHeader(c),
		f, fh.Filename, fh.Header.Get("Content-Type"))
	if !res.Success {
		response.Error(c, http.StatusBadRequest, res.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, res.Data, res.Message)
}

// Search handles GET /api/users/search?q=...&size=...
func (h *UserHandler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid query", validation.ToDetails(err))
		return
	}
	hits, err := h.Svc.SearchUsers(c.Request.Context(), req.Q, req.Size)
	if err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("user search failed")
		}
		response.Error(c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, hits, "search results")
}
