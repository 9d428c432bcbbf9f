package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/askbook/askbook-api/internal/artifacts"
	"github.com/askbook/askbook-api/pkg/logger"
	"github.com/askbook/askbook-api/pkg/metrics"
	"github.com/gin-gonic/gin"
)

// ModelHandler serves model-artifact downloads from blob storage to local disk.
type ModelHandler struct {
	fetcher *artifacts.Fetcher
}

func NewModelHandler(f *artifacts.Fetcher) *ModelHandler {
	return &ModelHandler{fetcher: f}
}

func (h *ModelHandler) Register(rg gin.IRoutes) {
	rg.GET("/download-model/:modelName", h.Download)
}

func (h *ModelHandler) Download(c *gin.Context) {
	name := c.Param("modelName")
	if h.fetcher == nil {
		metrics.ModelDownloads.WithLabelValues("error").Inc()
		c.String(http.StatusInternalServerError, "blob storage is not configured")
		return
	}
	// A client disconnect must not abort a download half way through the local write.
	if err := h.fetcher.Fetch(context.WithoutCancel(c.Request.Context()), name); err != nil {
		if errors.Is(err, artifacts.ErrInvalidName) {
			metrics.ModelDownloads.WithLabelValues("rejected").Inc()
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		logger.Errorf("model download %q failed: %v", name, err)
		metrics.ModelDownloads.WithLabelValues("error").Inc()
		c.String(http.StatusInternalServerError, err.Error())
		return
	}
	metrics.ModelDownloads.WithLabelValues("ok").Inc()
	c.String(http.StatusOK, fmt.Sprintf("Model %s downloaded successfully", name))
}
