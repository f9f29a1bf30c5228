// internal/interfaces/http/handlers/carousel.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/collectibles-storefront/internal/domain/carousel"
	"github.com/your-org/collectibles-storefront/internal/domain/theme"
)

// CarouselHandler handles carousel configuration endpoints
type CarouselHandler struct {
	carouselService *carousel.Service
}

// NewCarouselHandler creates a new carousel handler
func NewCarouselHandler(carouselService *carousel.Service) *CarouselHandler {
	return &CarouselHandler{
		carouselService: carouselService,
	}
}

// GetCarousel handles GET /carousels/:section?page=/path
func (h *CarouselHandler) GetCarousel(c *gin.Context) {
	section := carousel.Section(c.Param("section"))

	cfg, err := h.carouselService.Get(c.Request.Context(), c.DefaultQuery("page", theme.PageHome), section)
	if err != nil {
		respondError(c, err, "Failed to retrieve carousel")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": cfg,
	})
}

// UpdateCarousel handles PUT /admin/carousels/:section?page=/path
func (h *CarouselHandler) UpdateCarousel(c *gin.Context) {
	section := carousel.Section(c.Param("section"))

	var req carousel.CarouselConfig
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cfg, err := h.carouselService.Upsert(c.Request.Context(), c.DefaultQuery("page", theme.PageHome), section, &req)
	if err != nil {
		respondError(c, err, "Failed to update carousel")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Carousel updated successfully",
		"data":    cfg,
	})
}
