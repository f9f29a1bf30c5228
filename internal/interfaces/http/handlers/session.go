// internal/interfaces/http/handlers/session.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/your-org/collectibles-storefront/internal/config"
	"github.com/your-org/collectibles-storefront/internal/domain/carousel"
	"github.com/your-org/collectibles-storefront/internal/domain/cart"
	"github.com/your-org/collectibles-storefront/internal/domain/catalog"
	"github.com/your-org/collectibles-storefront/internal/domain/theme"
	"github.com/your-org/collectibles-storefront/internal/pkg/auth"
)

// getOrCreateSessionID gets session ID from cookie or creates a new one.
// The cookie lives as long as the cart document it points at.
func getOrCreateSessionID(c *gin.Context, cfg *config.Config) string {
	sessionID, err := c.Cookie(cfg.Cart.CookieName)
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie(cfg.Cart.CookieName, sessionID, int(cfg.Cart.SessionTTL.Seconds()), "/", "", cfg.App.Environment == "production", true)
	}

	return sessionID
}

// errorStatus maps domain errors to HTTP status codes
func errorStatus(err error) int {
	switch {
	case errors.Is(err, catalog.ErrProductNotFound),
		errors.Is(err, theme.ErrThemeNotFound):
		return http.StatusNotFound
	case errors.Is(err, cart.ErrOutOfStock),
		errors.Is(err, theme.ErrDefaultThemeProtected),
		errors.Is(err, theme.ErrActiveThemeProtected):
		return http.StatusConflict
	case errors.Is(err, catalog.ErrInvalidFilter),
		errors.Is(err, theme.ErrUnknownPage),
		errors.Is(err, theme.ErrInvalidPatch),
		errors.Is(err, theme.ErrEmptyThemeName),
		errors.Is(err, cart.ErrSessionRequired),
		errors.Is(err, carousel.ErrInvalidSection),
		errors.Is(err, carousel.ErrInvalidConfig):
		return http.StatusUnprocessableEntity
	case errors.Is(err, auth.ErrInvalidCredentials):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Server errors hide the cause.
func respondError(c *gin.Context, err error, fallback string) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		c.JSON(status, gin.H{
			"error": fallback,
		})
		return
	}

	c.JSON(status, gin.H{
		"error": err.Error(),
	})
}
