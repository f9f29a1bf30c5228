// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/collectibles-storefront/internal/config"
	"github.com/your-org/collectibles-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/collectibles-storefront/internal/pkg/auth"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	authenticator *auth.AdminAuthenticator
	config        *config.Config
	logger        logrus.FieldLogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.Config, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{
		authenticator: auth.NewAdminAuthenticator(cfg),
		config:        cfg,
		logger:        logger,
	}
}

// LoginRequest represents the admin login payload
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /admin/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	token, err := h.authenticator.Login(req.Email, req.Password)
	if err != nil {
		h.logger.WithField("client_ip", c.ClientIP()).Warn("Failed admin login attempt")
		respondError(c, err, "Login failed")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data": gin.H{
			"access_token": token,
			"token_type":   "Bearer",
			"expires_in":   int(h.config.JWT.AccessTokenExpiry.Seconds()),
		},
	})
}

// Me handles GET /admin/me
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"email":    middleware.AdminEmailFromContext(c),
			"is_admin": middleware.IsAdminFromContext(c),
		},
	})
}
