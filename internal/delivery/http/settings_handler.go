package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Manoranjanmaharana1/SherlockSync/internal/configstore"
	"github.com/Manoranjanmaharana1/SherlockSync/internal/domain"
)

// SettingsHandler backs the per-repository settings form.
type SettingsHandler struct {
	store  configstore.Store
	logger *zap.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(store configstore.Store, logger *zap.Logger) *SettingsHandler {
	return &SettingsHandler{store: store, logger: logger}
}

// Save handles PUT /api/v1/repos/:tenant/:repository/settings
func (h *SettingsHandler) Save(c *gin.Context) {
	tenant := c.Param("tenant")
	repository := c.Param("repository")

	var cfg domain.RepositoryConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid settings body: " + err.Error(),
		})
		return
	}

	if err := cfg.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.store.Save(c.Request.Context(), tenant, repository, &cfg); err != nil {
		h.logger.Error("Failed to save settings",
			zap.Error(err),
			zap.String("tenant", tenant),
			zap.String("repository", repository),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

// Get handles GET /api/v1/repos/:tenant/:repository/settings
// Stored credentials come back masked.
func (h *SettingsHandler) Get(c *gin.Context) {
	tenant := c.Param("tenant")
	repository := c.Param("repository")

	cfg, err := h.store.Resolve(c.Request.Context(), tenant, repository)
	if err != nil {
		h.logger.Error("Failed to resolve settings",
			zap.Error(err),
			zap.String("tenant", tenant),
			zap.String("repository", repository),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load settings"})
		return
	}

	if errors.Is(cfg.Validate(), domain.ErrMissingConfig) && *cfg == (domain.RepositoryConfig{}) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No settings stored for repository"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page_url":    cfg.PageURL,
		"repo_token":  maskSecret(cfg.RepoToken),
		"doc_token":   maskSecret(cfg.DocToken),
		"admin_email": cfg.AdminEmail,
		"notify_url":  cfg.NotifyURL,
	})
}

// maskSecret keeps the last four characters of a credential visible.
func maskSecret(s string) string {
	if len(s) <= 4 {
		if s == "" {
			return ""
		}
		return "****"
	}
	return "****" + s[len(s)-4:]
}
