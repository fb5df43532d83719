package staff

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"gatepass-portal-svc/src/internal/config"
	"gatepass-portal-svc/src/internal/httpx"
)

type Handler interface {
	GetDirectory(c *gin.Context)
}

type handler struct {
	config  *config.Configuration
	service Service
}

func NewHandler(cfg *config.Configuration, service Service) Handler {
	return &handler{
		config:  cfg,
		service: service,
	}
}

func (h *handler) GetDirectory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
	defer cancel()

	directory, err := h.service.Directory(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch staff directory")
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    directory,
		"message": "Staff directory retrieved successfully",
	})
}
