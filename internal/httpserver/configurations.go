package httpserver

import (
	"net/http"

	"casecraft/internal/render"
	configsvc "casecraft/internal/service/configuration"

	"github.com/gin-gonic/gin"
)

// uploadHandler accepts a multipart image upload and mints (or updates)
// a configuration sized to the image's natural dimensions. Passing
// configId re-points an existing configuration at a new image.
func uploadHandler(svc ConfigurationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
			return
		}
		defer f.Close()

		cfg, err := svc.CreateFromUpload(c.Request.Context(), f, c.PostForm("configId"))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusCreated, cfg)
	}
}

func getConfigurationHandler(svc ConfigurationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		cfg, err := svc.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, cfg)
	}
}

type finalizeRequest struct {
	CaseBox      render.Rect      `json:"caseBox" binding:"required"`
	ContainerBox render.Rect      `json:"containerBox" binding:"required"`
	Transform    render.Transform `json:"transform" binding:"required"`
	Color        string           `json:"color" binding:"required"`
	Model        string           `json:"model" binding:"required"`
	Material     string           `json:"material" binding:"required"`
	Finish       string           `json:"finish" binding:"required"`
}

// finalizeHandler rasterizes the positioned image and saves the chosen
// options, returning the updated configuration.
func finalizeHandler(svc ConfigurationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req finalizeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		cfg, err := svc.Finalize(c.Request.Context(), c.Param("id"), configsvc.FinalizeInput{
			CaseBox:      req.CaseBox,
			ContainerBox: req.ContainerBox,
			Transform:    req.Transform,
			Color:        req.Color,
			Model:        req.Model,
			Material:     req.Material,
			Finish:       req.Finish,
		})
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, cfg)
	}
}
