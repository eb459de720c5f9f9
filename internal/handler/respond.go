package handler

import (
	"errors"
	"net/http"

	"media-report/internal/logger"
	"media-report/internal/middleware"
	"media-report/internal/model"
	"media-report/internal/service"

	"github.com/gin-gonic/gin"
)

// fail writes the JSON error response for err.
func fail(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "validation failed", "errors": verr.Fields})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		logger.FromContext(c.Request.Context()).Error("request.failed", "path", c.FullPath(), "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// notFound points the client back at a page that always exists.
func notFound(c *gin.Context, err error, redirect string) {
	c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "redirect": redirect})
}

func isNotFound(err error) bool { return errors.Is(err, service.ErrNotFound) }

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func queryDate(c *gin.Context, key string) (*model.Date, bool) {
	raw := c.Query(key)
	if raw == "" {
		return nil, true
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		badRequest(c, key+": "+err.Error())
		return nil, false
	}
	return &d, true
}

// currentUser returns the account JWTAuth loaded for this request.
func currentUser(c *gin.Context) (*model.User, bool) {
	u := middleware.CurrentUser(c)
	if u == nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}
	return u, true
}
