// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/collectibles-storefront/internal/config"
	"github.com/your-org/collectibles-storefront/internal/domain/cart"
	"github.com/your-org/collectibles-storefront/internal/domain/catalog"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		config:      cfg,
	}
}

// AddToCartRequest carries the product to add. product_id may be a number or a string.
type AddToCartRequest struct {
	ProductID catalog.ProductID `json:"product_id" binding:"required"`
}

// UpdateQuantityRequest sets a line quantity. Zero or less removes the line.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	current, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err, "Failed to retrieve cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartResponse(current),
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.cartService.AddToCart(c.Request.Context(), sessionID, req.ProductID)
	if err != nil {
		respondError(c, err, "Failed to add item to cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartResponse(updated),
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)
	productID := catalog.ParseProductID(c.Param("id"))

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	updated, err := h.cartService.UpdateQuantity(c.Request.Context(), sessionID, productID, *req.Quantity)
	if err != nil {
		respondError(c, err, "Failed to update cart item")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    cartResponse(updated),
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)
	productID := catalog.ParseProductID(c.Param("id"))

	updated, err := h.cartService.RemoveFromCart(c.Request.Context(), sessionID, productID)
	if err != nil {
		respondError(c, err, "Failed to remove item from cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartResponse(updated),
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := getOrCreateSessionID(c, h.config)

	updated, err := h.cartService.ClearCart(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err, "Failed to clear cart")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
		"data":    cartResponse(updated),
	})
}

func cartResponse(c *cart.Cart) gin.H {
	return gin.H{
		"session_id": c.SessionID,
		"lines":      c.Lines,
		"totals":     c.Totals(),
		"updated_at": c.UpdatedAt,
	}
}
