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

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

// Field-level rules (required, lengths, email format) are enforced by the
// service with its own message contract, so the request structs carry no
// binding tags beyond the JSON names.
type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if !res.Success {
		response.Error(c, http.StatusBadRequest, res.Message, nil)
		return
	}
	response.Success(c, http.StatusCreated, res.Data, res.Message)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	res := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if !res.Success {
		response.Error(c, http.StatusUnauthorized, res.Message, nil)
		return
	}
	response.Success(c, http.StatusOK, res.Data, res.Message)
}

// Logout handles POST /api/auth/logout. The server keeps no session
// state, so this only acknowledges the client discarding its token.
func (h *AuthHandler) Logout(c *gin.Context) {
	res := h.Svc.Logout(middleware.TokenFromHeader(c))
	response.Success(c, http.StatusOK, res.Data, res.Message)
}
