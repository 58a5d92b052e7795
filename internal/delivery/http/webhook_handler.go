package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/usecase"
)

// WebhookHandler receives repository events and enqueues sync jobs.
type WebhookHandler struct {
	enqueueUC *usecase.EnqueueSyncUsecase
	logger    *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(enqueueUC *usecase.EnqueueSyncUsecase, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{enqueueUC: enqueueUC, logger: logger}
}

// Receive handles POST /api/v1/webhooks/:tenant
//
// The handler returns quickly: one settings lookup, one page fetch, one
// enqueue. Generation and the page update happen in the worker.
func (h *WebhookHandler) Receive(c *gin.Context) {
	tenant := c.Param("tenant")

	var event domain.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid event body: " + err.Error(),
		})
		return
	}

	resp, err := h.enqueueUC.Execute(c.Request.Context(), tenant, &event)
	if err != nil {
		var upstream *domain.UpstreamError
		switch {
		case errors.Is(err, domain.ErrMissingConfig):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrInvalidReference):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrPublishFailed):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable"})
		case errors.As(err, &upstream):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Enqueue sync failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
