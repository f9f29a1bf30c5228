// internal/interfaces/http/handlers/admin_theme.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/collectibles-storefront/internal/domain/theme"
	"github.com/your-org/collectibles-storefront/internal/interfaces/http/middleware"
)

// AdminThemeHandler handles the theme administration endpoints
type AdminThemeHandler struct {
	themeService *theme.Service
	logger       logrus.FieldLogger
}

// NewAdminThemeHandler creates a new admin theme handler
func NewAdminThemeHandler(themeService *theme.Service, logger logrus.FieldLogger) *AdminThemeHandler {
	return &AdminThemeHandler{
		themeService: themeService,
		logger:       logger,
	}
}

// CreateThemeRequest clones an existing theme under a new name
type CreateThemeRequest struct {
	BaseID string `json:"base_id" binding:"required"`
	Name   string `json:"name" binding:"required"`
}

// PatchThemeRequest carries single-field edits applied together
type PatchThemeRequest struct {
	Patches []theme.Patch `json:"patches" binding:"required,min=1,dive"`
}

// AssignPageRequest binds a page to a theme. A null or empty theme_id restores inheritance.
type AssignPageRequest struct {
	Page    string  `json:"page" binding:"required"`
	ThemeID *string `json:"theme_id"`
}

// ListThemes handles GET /admin/themes
func (h *AdminThemeHandler) ListThemes(c *gin.Context) {
	themes, err := h.themeService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve themes")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":  themes,
		"total": len(themes),
	})
}

// GetTheme handles GET /admin/themes/:id
func (h *AdminThemeHandler) GetTheme(c *gin.Context) {
	t, err := h.themeService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to retrieve theme")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": t,
	})
}

// CreateTheme handles POST /admin/themes
func (h *AdminThemeHandler) CreateTheme(c *gin.Context) {
	var req CreateThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.themeService.CreateFrom(c.Request.Context(), req.BaseID, req.Name)
	if err != nil {
		respondError(c, err, "Failed to create theme")
		return
	}

	h.audit(c, "create", created.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Theme created successfully",
		"data":    created,
	})
}

// CloneThemeRequest names the copy made by CloneTheme
type CloneThemeRequest struct {
	Name string `json:"name" binding:"required"`
}

// CloneTheme handles POST /admin/themes/:id/clone
func (h *AdminThemeHandler) CloneTheme(c *gin.Context) {
	var req CloneThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	created, err := h.themeService.CreateFrom(c.Request.Context(), c.Param("id"), req.Name)
	if err != nil {
		respondError(c, err, "Failed to clone theme")
		return
	}

	h.audit(c, "clone", created.ID)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Theme cloned successfully",
		"data":    created,
	})
}

// UpdateTheme handles PUT /admin/themes/:id
func (h *AdminThemeHandler) UpdateTheme(c *gin.Context) {
	var req theme.ThemeConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.themeService.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err, "Failed to update theme")
		return
	}

	h.audit(c, "update", updated.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Theme updated successfully",
		"data":    updated,
	})
}

// PatchTheme handles PATCH /admin/themes/:id
func (h *AdminThemeHandler) PatchTheme(c *gin.Context) {
	var req PatchThemeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.themeService.ApplyPatches(c.Request.Context(), c.Param("id"), req.Patches)
	if err != nil {
		respondError(c, err, "Failed to update theme")
		return
	}

	h.audit(c, "patch", updated.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "Theme updated successfully",
		"data":    updated,
	})
}

// ActivateTheme handles POST /admin/themes/:id/activate
func (h *AdminThemeHandler) ActivateTheme(c *gin.Context) {
	id := c.Param("id")
	if err := h.themeService.Activate(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to activate theme")
		return
	}

	h.audit(c, "activate", id)
	c.JSON(http.StatusOK, gin.H{
		"message": "Theme activated successfully",
	})
}

// DeactivateTheme handles POST /admin/themes/:id/deactivate
func (h *AdminThemeHandler) DeactivateTheme(c *gin.Context) {
	id := c.Param("id")
	if err := h.themeService.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to deactivate theme")
		return
	}

	h.audit(c, "deactivate", id)
	c.JSON(http.StatusOK, gin.H{
		"message": "Theme deactivated successfully",
	})
}

// DeleteTheme handles DELETE /admin/themes/:id
func (h *AdminThemeHandler) DeleteTheme(c *gin.Context) {
	id := c.Param("id")
	if err := h.themeService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete theme")
		return
	}

	h.audit(c, "delete", id)
	c.JSON(http.StatusOK, gin.H{
		"message": "Theme deleted successfully",
	})
}

// ListPageAssignments handles GET /admin/pages
func (h *AdminThemeHandler) ListPageAssignments(c *gin.Context) {
	assignments, err := h.themeService.Assignments(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve page assignments")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": assignments,
	})
}

// AssignPageTheme handles PUT /admin/pages/theme
func (h *AdminThemeHandler) AssignPageTheme(c *gin.Context) {
	var req AssignPageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.themeService.AssignPage(c.Request.Context(), req.Page, req.ThemeID); err != nil {
		respondError(c, err, "Failed to assign page theme")
		return
	}

	h.audit(c, "assign", req.Page)
	c.JSON(http.StatusOK, gin.H{
		"message": "Page theme updated successfully",
	})
}

func (h *AdminThemeHandler) audit(c *gin.Context, action, target string) {
	h.logger.WithFields(logrus.Fields{
		"admin":      middleware.AdminEmailFromContext(c),
		"action":     action,
		"target":     target,
		"request_id": c.GetString(middleware.RequestIDKey),
	}).Info("Admin theme change")
}
