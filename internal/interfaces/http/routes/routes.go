// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/collectibles-storefront/internal/config"
	"github.com/your-org/collectibles-storefront/internal/interfaces/http/handlers"
	"github.com/your-org/collectibles-storefront/internal/interfaces/http/middleware"
)

// Handlers groups every handler the API exposes
type Handlers struct {
	Auth       *handlers.AuthHandler
	Product    *handlers.ProductHandler
	Cart       *handlers.CartHandler
	Theme      *handlers.ThemeHandler
	Carousel   *handlers.CarouselHandler
	AdminTheme *handlers.AdminThemeHandler
}

// SetupProductRoutes sets up product related routes
func SetupProductRoutes(rg *gin.RouterGroup, h *Handlers) {
	products := rg.Group("/products")
	{
		products.GET("", h.Product.GetProducts)
		products.GET("/:id", h.Product.GetProduct)
	}
}

// SetupCartRoutes sets up cart related routes. The cart is keyed by the session cookie.
func SetupCartRoutes(rg *gin.RouterGroup, h *Handlers) {
	cart := rg.Group("/cart")
	{
		cart.GET("", h.Cart.GetCart)
		cart.DELETE("", h.Cart.ClearCart)
		cart.POST("/items", h.Cart.AddToCart)
		cart.PUT("/items/:id", h.Cart.UpdateCartItem)
		cart.DELETE("/items/:id", h.Cart.RemoveFromCart)
	}
}

// SetupThemeRoutes sets up storefront theme and carousel routes
func SetupThemeRoutes(rg *gin.RouterGroup, h *Handlers) {
	rg.GET("/theme", h.Theme.GetTheme)
	rg.GET("/theme/stream", h.Theme.StreamTheme)
	rg.GET("/carousels/:section", h.Carousel.GetCarousel)
}

// SetupAdminRoutes sets up admin panel routes
func SetupAdminRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	admin := rg.Group("/admin")
	admin.POST("/login", h.Auth.Login)

	protected := admin.Group("")
	protected.Use(middleware.AuthMiddleware(cfg))
	protected.Use(middleware.AdminMiddleware())
	{
		protected.GET("/me", h.Auth.Me)

		themes := protected.Group("/themes")
		{
			themes.GET("", h.AdminTheme.ListThemes)
			themes.POST("", h.AdminTheme.CreateTheme)
			themes.GET("/:id", h.AdminTheme.GetTheme)
			themes.PUT("/:id", h.AdminTheme.UpdateTheme)
			themes.PATCH("/:id", h.AdminTheme.PatchTheme)
			themes.DELETE("/:id", h.AdminTheme.DeleteTheme)
			themes.POST("/:id/activate", h.AdminTheme.ActivateTheme)
			themes.POST("/:id/deactivate", h.AdminTheme.DeactivateTheme)
			themes.POST("/:id/clone", h.AdminTheme.CloneTheme)
		}

		protected.GET("/pages", h.AdminTheme.ListPageAssignments)
		protected.PUT("/pages/theme", h.AdminTheme.AssignPageTheme)

		protected.PUT("/carousels/:section", h.Carousel.UpdateCarousel)
	}
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, h *Handlers, cfg *config.Config) {
	SetupProductRoutes(rg, h)
	SetupCartRoutes(rg, h)
	SetupThemeRoutes(rg, h)
	SetupAdminRoutes(rg, h, cfg)
}
