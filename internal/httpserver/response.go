package httpserver

import (
	"errors"
	"net/http"

	"casecraft/internal/domain"
	"casecraft/internal/render"
	checkoutsvc "casecraft/internal/service/checkout"
	configsvc "casecraft/internal/service/configuration"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps service-layer failures onto HTTP statuses. Bad
// input is the caller's fault, missing rows are 404, and provider
// failures surface as 502 so the client can retry.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, configsvc.ErrInvalidOption),
		errors.Is(err, render.ErrUnmeasured),
		errors.Is(err, render.ErrUnsupportedImage),
		errors.Is(err, checkoutsvc.ErrNotConfigured):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, configsvc.ErrUpstream), errors.Is(err, checkoutsvc.ErrUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream service unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
