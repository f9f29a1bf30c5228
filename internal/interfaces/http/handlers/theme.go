// internal/interfaces/http/handlers/theme.go
package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/collectibles-storefront/internal/domain/theme"
)

// ThemeHandler serves the effective theme of storefront pages
type ThemeHandler struct {
	resolver   *theme.Resolver
	subscriber theme.Subscriber
	opts       theme.WatcherOptions
	logger     logrus.FieldLogger
}

// NewThemeHandler creates a new theme handler. subscriber may be nil.
func NewThemeHandler(resolver *theme.Resolver, subscriber theme.Subscriber, opts theme.WatcherOptions, logger logrus.FieldLogger) *ThemeHandler {
	return &ThemeHandler{
		resolver:   resolver,
		subscriber: subscriber,
		opts:       opts,
		logger:     logger,
	}
}

// GetTheme handles GET /theme?page=/path. Resolution never fails; the
// emergency theme is served when the store is unreachable.
func (h *ThemeHandler) GetTheme(c *gin.Context) {
	eff := h.resolver.Resolve(c.Request.Context(), c.DefaultQuery("page", theme.PageHome))

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{
		"data": eff,
	})
}

// StreamTheme handles GET /theme/stream?page=/path as server-sent events.
// A "theme" event is sent on connect and after every refresh.
func (h *ThemeHandler) StreamTheme(c *gin.Context) {
	ctx := c.Request.Context()
	page := c.DefaultQuery("page", theme.PageHome)

	watcher := theme.NewWatcher(h.resolver, h.subscriber, h.opts, h.logger)
	watcher.Start(ctx, page)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	// drop the start resolution from the queue, it is sent below
	select {
	case <-watcher.Updates():
	default:
	}
	c.SSEvent("theme", watcher.Current())
	c.Writer.Flush()

	h.logger.WithField("page", page).Debug("Theme stream opened")

	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case eff, ok := <-watcher.Updates():
			if !ok {
				return false
			}
			c.SSEvent("theme", eff)
			return true
		}
	})

	h.logger.WithField("page", page).Debug("Theme stream closed")
}
