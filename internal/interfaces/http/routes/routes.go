// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/petstore-backend/internal/config"
	"github.com/your-org/petstore-backend/internal/interfaces/http/handlers"
	"github.com/your-org/petstore-backend/internal/interfaces/http/middleware"
)

// SetupRoutes wires every API route group
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	SetupAuthRoutes(rg, db, cfg)
	SetupProductRoutes(rg, cfg)
	SetupShopRoutes(rg, db, redisClient, cfg, logger)
	SetupCheckoutRoutes(rg, db, redisClient, cfg, logger)
	SetupOrderRoutes(rg, db, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/me", authHandler.Me)
		}
	}
}

// SetupProductRoutes sets up catalog routes
func SetupProductRoutes(rg *gin.RouterGroup, cfg *config.Config) {
	productHandler := handlers.NewProductHandler(cfg)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.ListProducts)
	}
}

// SetupShopRoutes sets up wishlist and cart routes. All routes use
// optional auth: anonymous requests operate on device-local state only.
func SetupShopRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	shopHandler := handlers.NewShopHandler(db, redisClient, cfg, logger)

	wishlist := rg.Group("/wishlist")
	wishlist.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		wishlist.GET("", shopHandler.GetWishlist)
		wishlist.POST("/items", shopHandler.AddToWishlist)
		wishlist.DELETE("/items/:id", shopHandler.RemoveFromWishlist)
	}

	wishlistSync := rg.Group("/wishlist")
	wishlistSync.Use(middleware.AuthMiddleware(cfg))
	{
		wishlistSync.POST("/sync", shopHandler.SyncWishlist)
	}

	cart := rg.Group("/cart")
	cart.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		cart.GET("", shopHandler.GetCart)
		cart.GET("/details", shopHandler.GetCartDetails)
		cart.POST("/items", shopHandler.AddToCart)
		cart.DELETE("/items/:id", shopHandler.RemoveFromCart)
		cart.PUT("/items/:id/quantity", shopHandler.UpdateCartQuantity)
	}

	cartSync := rg.Group("/cart")
	cartSync.Use(middleware.AuthMiddleware(cfg))
	{
		cartSync.POST("/sync", shopHandler.SyncCart)
	}
}

// SetupCheckoutRoutes sets up Stripe checkout routes
func SetupCheckoutRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) {
	checkoutHandler := handlers.NewCheckoutHandler(db, redisClient, cfg, logger)

	checkout := rg.Group("/checkout")
	checkout.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		checkout.POST("", checkoutHandler.CreateSession)
		checkout.GET("/session/:id", checkoutHandler.GetSession)
		checkout.GET("/session/:id/items", checkoutHandler.GetSessionLineItems)
		checkout.GET("/products/:id/metadata", checkoutHandler.GetProductMetadata)
		checkout.GET("/payment-methods/:id", checkoutHandler.GetPaymentMethod)
	}

	checkoutComplete := rg.Group("/checkout")
	checkoutComplete.Use(middleware.AuthMiddleware(cfg))
	{
		checkoutComplete.POST("/complete", checkoutHandler.Complete)
	}
}

// SetupOrderRoutes sets up order history routes
func SetupOrderRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(db, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.GET("/:id", orderHandler.GetOrder)
		orders.GET("/:id/receipt", orderHandler.DownloadReceipt)
	}
}
