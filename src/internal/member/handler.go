package member

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
	ListMembers(c *gin.Context)
	CreateMember(c *gin.Context)
	UpdateMember(c *gin.Context)
	DeleteMember(c *gin.Context)
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

func (h *handler) ListMembers(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	search := c.Query("search")

	members, err := h.service.List(ctx, search)
	if err != nil {
		logrus.WithError(err).Error("Failed to list members")
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    members,
		"message": "Members retrieved successfully",
	})
}

func (h *handler) CreateMember(c *gin.Context) {
	var form Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "All member fields are required"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.service.Create(ctx, &form); err != nil {
		logrus.WithError(err).Error("Failed to create member")
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Member added successfully",
	})
}

func (h *handler) UpdateMember(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Member ID is required"})
		return
	}

	var form Form
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "All member fields are required"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.service.Update(ctx, id, &form); err != nil {
		logrus.WithError(err).WithField("id", id).Error("Failed to update member")
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Member updated successfully",
	})
}

func (h *handler) DeleteMember(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Member ID is required"})
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.service.Delete(ctx, id); err != nil {
		logrus.WithError(err).WithField("id", id).Error("Failed to delete member")
		httpx.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Member deleted successfully",
	})
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), time.Duration(h.config.App.Timeout)*time.Second)
}
