package httpserver

import (
	"net/http"

	"casecraft/internal/catalog"

	"github.com/gin-gonic/gin"
)

// catalogHandler exposes the option lists and pricing so the configurator
// renders from the same data checkout prices against.
func catalogHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"basePriceCents": catalog.BasePriceCents,
		"colors":         catalog.Colors,
		"models":         catalog.Models,
		"materials":      catalog.Materials,
		"finishes":       catalog.Finishes,
	})
}
