package visitor

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
	ListForAdmin(c *gin.Context)
	ListForGatekeeper(c *gin.Context)
	CheckIn(c *gin.Context)
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

func (h *handler) ListForAdmin(c *gin.Context) {
	h.list(c, h.service.ListForAdmin)
}

func (h *handler) ListForGatekeeper(c *gin.Context) {
	h.list(c, h.service.ListForGatekeeper)
}

func (h *handler) list(c *gin.Context, fetch func(ctx context.Context, search string) ([]Visitor, error)) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	visitors, err := fetch(ctx, c.Query("search"))
	if err != nil {
		logrus.WithError(err).Error("Failed to list visitors")
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    visitors,
		"message": "Visitors retrieved successfully",
	})
}

func (h *handler) CheckIn(c *gin.Context) {
	var form Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "All visitor fields are required"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	created, err := h.service.CheckIn(ctx, &form)
	if err != nil {
		logrus.WithError(err).Error("Failed to register visitor")
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    created,
		"message": "Visitor registered successfully",
	})
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}
