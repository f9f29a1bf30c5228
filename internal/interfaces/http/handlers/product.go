// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/collectibles-storefront/internal/config"
	"github.com/your-org/collectibles-storefront/internal/domain/cart"
	"github.com/your-org/collectibles-storefront/internal/domain/catalog"
)

// ProductHandler handles product endpoints
type ProductHandler struct {
	catalogService *catalog.Service
	cartService    *cart.Service
	config         *config.Config
}

// NewProductHandler creates a new product handler
func NewProductHandler(catalogService *catalog.Service, cartService *cart.Service, cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		cartService:    cartService,
		config:         cfg,
	}
}

// GetProducts handles GET /products.
// Stock in the response is what the caller can still add given their cart.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	filters, err := catalog.NewFilterSetFromQuery(c.Request.URL.Query())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	category := c.Query("category")
	products, err := h.catalogService.Filter(c.Request.Context(), category, filters)
	if err != nil {
		respondError(c, err, "Failed to retrieve products")
		return
	}

	sessionID := getOrCreateSessionID(c, h.config)
	products, err = h.cartService.Reconcile(c.Request.Context(), sessionID, products)
	if err != nil {
		respondError(c, err, "Failed to retrieve products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
		"filters": gin.H{
			"type":       filters.Keys(catalog.FilterType),
			"collection": filters.Keys(catalog.FilterCollection),
			"price":      filters.Keys(catalog.FilterPrice),
		},
		"total": len(products),
	})
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id := catalog.ParseProductID(c.Param("id"))

	product, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}

	sessionID := getOrCreateSessionID(c, h.config)
	reconciled, err := h.cartService.Reconcile(c.Request.Context(), sessionID, []catalog.Product{*product})
	if err != nil {
		respondError(c, err, "Failed to retrieve product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product retrieved successfully",
		"data":    reconciled[0],
	})
}
