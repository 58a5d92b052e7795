package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/repository"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryHandler serves the per-repository sync history.
type HistoryHandler struct {
	history repository.SyncHistory
	logger  *zap.Logger
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(history repository.SyncHistory, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{history: history, logger: logger}
}

// List handles GET /api/v1/repos/:tenant/:repository/syncs
func (h *HistoryHandler) List(c *gin.Context) {
	tenant := c.Param("tenant")
	repo := c.Param("repository")

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		if n > maxHistoryLimit {
			n = maxHistoryLimit
		}
		limit = n
	}

	recs, err := h.history.ListByRepository(c.Request.Context(), tenant, repo, limit)
	if err != nil {
		h.logger.Error("Failed to list sync history",
			zap.Error(err),
			zap.String("tenant", tenant),
			zap.String("repository", repo),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load sync history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"syncs": recs})
}
