package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type Authenticator interface {
	Authenticate(username, password string) (auth.Identity, error)
}

type TokenIssuer interface {
	Issue(id auth.Identity) (string, time.Time, error)
}

type AuthHandler struct {
	dir    Authenticator
	tokens TokenIssuer
}

func NewAuthHandler(dir Authenticator, tokens TokenIssuer) *AuthHandler {
	return &AuthHandler{dir: dir, tokens: tokens}
}

// --------- Requests ---------

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      auth.Identity `json:"user"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	id, err := h.dir.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			httperr.Unauthorized(c, "invalid_credentials", "username or password is incorrect")
			return
		}
		httperr.Internal(c, "internal_error", "could not verify credentials")
		return
	}

	token, exp, err := h.tokens.Issue(id)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "could not issue token")
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: exp,
		User:      id,
	})
}
