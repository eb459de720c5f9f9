package handler

import (
	"net/http"

	"media-report/internal/logger"
	"media-report/internal/middleware"
	"media-report/internal/model"
	"media-report/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth   *service.AuthService
	tokens *middleware.Tokens
	deny   middleware.Denylist
}

func NewAuthHandler(auth *service.AuthService, tokens *middleware.Tokens, deny middleware.Denylist) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, deny: deny}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request")
		return
	}

	u, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("login.failed", "username", req.Username)
		fail(c, err)
		return
	}

	token, err := h.tokens.Issue(u)
	if err != nil {
		fail(c, err)
		return
	}
	logger.Info("login.ok", "uid", u.ID, "name", u.Username)

	c.JSON(http.StatusOK, model.LoginResponse{
		Token: token,
		User:  model.SessionUser{ID: u.ID, Username: u.Username, Team: u.Team, IsStaff: u.IsStaff},
	})
}

// Logout revokes the presented token when a denylist is configured; without
// one the client simply drops the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.CurrentClaims(c)
	if h.deny != nil && claims != nil && claims.ExpiresAt != nil {
		if err := h.deny.Revoke(c.Request.Context(), claims.ID, claims.ExpiresAt.Time); err != nil {
			fail(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
