package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobhunt/internal/services"
	"go.uber.org/zap"
)

// respondError maps service error kinds onto HTTP statuses. Unknown errors
// are logged and reported without detail.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "internal server error"

	switch {
	case errors.Is(err, services.ErrValidation):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidScope):
		status, msg = http.StatusUnauthorized, err.Error()
		c.Header("WWW-Authenticate", "Bearer")
	case errors.Is(err, services.ErrNotFound):
		status, msg = http.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrConflict):
		status, msg = http.StatusConflict, err.Error()
	case errors.Is(err, services.ErrUpstreamUnavailable):
		status, msg = http.StatusBadGateway, err.Error()
	default:
		zap.S().Named("http").Errorw("request failed", "path", c.FullPath(), "error", err)
	}

	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}
