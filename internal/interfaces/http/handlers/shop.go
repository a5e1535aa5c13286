// internal/interfaces/http/handlers/shop.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/petstore-backend/internal/config"
	"github.com/your-org/petstore-backend/internal/domain/cart"
	"github.com/your-org/petstore-backend/internal/domain/wishlist"
	"github.com/your-org/petstore-backend/internal/interfaces/http/middleware"
	"github.com/your-org/petstore-backend/internal/shop"
	"github.com/your-org/petstore-backend/internal/shop/localstore"
)

const deviceCookieName = "device_id"

// ShopHandler handles wishlist and cart endpoints. Device-local state is
// keyed by a device id cookie so anonymous browsing survives restarts.
type ShopHandler struct {
	cartService     *cart.Service
	wishlistService *wishlist.Service
	redisClient     *redis.Client
	config          *config.Config
	logger          *logrus.Logger
}

// NewShopHandler creates a new shop handler
func NewShopHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *ShopHandler {
	return &ShopHandler{
		cartService:     cart.NewService(db),
		wishlistService: wishlist.NewService(db),
		redisClient:     redisClient,
		config:          cfg,
		logger:          logger,
	}
}

// resolveDeviceStore resolves the request's device id and returns its local
// store. The id comes from the X-Device-ID header or the device cookie; a
// new one is minted and set as a cookie when neither is present.
func resolveDeviceStore(c *gin.Context, redisClient *redis.Client, cfg *config.Config) localstore.Store {
	deviceID := c.GetHeader("X-Device-ID")
	if deviceID == "" {
		if cookie, err := c.Cookie(deviceCookieName); err == nil {
			deviceID = cookie
		}
	}
	if deviceID == "" {
		deviceID = uuid.New().String()
		maxAge := int(cfg.Shop.LocalStoreTTL.Seconds())
		c.SetCookie(deviceCookieName, deviceID, maxAge, "/", "", false, true)
	}

	return localstore.NewRedisStore(redisClient, deviceID, cfg.Shop.LocalStoreTTL)
}

func (h *ShopHandler) deviceStore(c *gin.Context) localstore.Store {
	return resolveDeviceStore(c, h.redisClient, h.config)
}

func (h *ShopHandler) session(c *gin.Context) shop.Session {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return shop.AuthenticatedSession(userID)
	}
	return shop.AnonymousSession()
}

func (h *ShopHandler) pricing() shop.Pricing {
	return shop.Pricing{
		FreeShippingOver: h.config.Shop.FreeShippingOver,
		FlatShippingRate: h.config.Shop.FlatShippingRate,
		TaxRate:          h.config.Shop.TaxRate,
	}
}

func (h *ShopHandler) cartFor(c *gin.Context) *shop.Cart {
	reconciler := shop.NewCart(h.deviceStore(c), h.cartService, h.pricing(), h.logger)
	reconciler.Resume(h.session(c))
	return reconciler
}

func (h *ShopHandler) wishlistFor(c *gin.Context) *shop.Wishlist {
	reconciler := shop.NewWishlist(h.deviceStore(c), h.wishlistService, h.logger)
	reconciler.Resume(h.session(c))
	return reconciler
}

// addWishlistItemRequest is the body for wishlist additions
type addWishlistItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

// GetWishlist handles GET /wishlist
func (h *ShopHandler) GetWishlist(c *gin.Context) {
	ids := h.wishlistFor(c).IDs(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data": gin.H{
			"productIds": ids,
		},
	})
}

// AddToWishlist handles POST /wishlist/items
func (h *ShopHandler) AddToWishlist(c *gin.Context) {
	var req addWishlistItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	reconciler := h.wishlistFor(c)
	reconciler.Add(c.Request.Context(), req.ProductID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to wishlist successfully",
		"data": gin.H{
			"productIds": reconciler.IDs(c.Request.Context()),
		},
	})
}

// RemoveFromWishlist handles DELETE /wishlist/items/:id
func (h *ShopHandler) RemoveFromWishlist(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	reconciler := h.wishlistFor(c)
	reconciler.Remove(c.Request.Context(), productID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from wishlist successfully",
		"data": gin.H{
			"productIds": reconciler.IDs(c.Request.Context()),
		},
	})
}

// SyncWishlist handles POST /wishlist/sync - called after login
func (h *ShopHandler) SyncWishlist(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	reconciler := shop.NewWishlist(h.deviceStore(c), h.wishlistService, h.logger)
	reconciler.Transition(c.Request.Context(), shop.AuthenticatedSession(userID))

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist synchronized successfully",
		"data": gin.H{
			"productIds": reconciler.IDs(c.Request.Context()),
		},
	})
}

// addCartItemRequest is the body for cart additions
type addCartItemRequest struct {
	ProductID   string          `json:"productId" binding:"required"`
	ProductName string          `json:"productName" binding:"required"`
	Image       string          `json:"image"`
	Slug        string          `json:"slug"`
	SizeOption  shop.SizeOption `json:"sizeOption" binding:"required"`
	Flavor      string          `json:"flavor"`
}

// updateQuantityRequest is the body for quantity changes
type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=8"`
}

// GetCart handles GET /cart
func (h *ShopHandler) GetCart(c *gin.Context) {
	reconciler := h.cartFor(c)
	items := reconciler.Items(c.Request.Context())
	totals := reconciler.Details(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data": gin.H{
			"items":         items,
			"totals":        totals,
			"totalQuantity": reconciler.TotalQuantity(),
		},
	})
}

// AddToCart handles POST /cart/items
func (h *ShopHandler) AddToCart(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	reconciler := h.cartFor(c)
	results := reconciler.AddToCart(c.Request.Context(), shop.CartProduct{
		ProductID:   req.ProductID,
		ProductName: req.ProductName,
		Image:       req.Image,
		Slug:        req.Slug,
		SizeOption:  req.SizeOption,
		Flavor:      req.Flavor,
	})

	failed := []string{}
	for _, result := range results {
		if result.Err != nil {
			failed = append(failed, result.Name)
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Item added to cart",
		"failed_branches": failed,
		"data": gin.H{
			"items": reconciler.Items(c.Request.Context()),
		},
	})
}

// RemoveFromCart handles DELETE /cart/items/:id
func (h *ShopHandler) RemoveFromCart(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	reconciler := h.cartFor(c)
	reconciler.RemoveFromCart(c.Request.Context(), productID)

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data": gin.H{
			"items": reconciler.Items(c.Request.Context()),
		},
	})
}

// UpdateCartQuantity handles PUT /cart/items/:id/quantity
func (h *ShopHandler) UpdateCartQuantity(c *gin.Context) {
	productID := c.Param("id")
	if productID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return
	}

	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	reconciler := h.cartFor(c)
	quantity := reconciler.QuantityChange(c.Request.Context(), productID, req.Quantity)

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart quantity updated successfully",
		"data": gin.H{
			"quantity":      quantity,
			"totalQuantity": reconciler.TotalQuantity(),
		},
	})
}

// SyncCart handles POST /cart/sync - called after login
func (h *ShopHandler) SyncCart(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	reconciler := shop.NewCart(h.deviceStore(c), h.cartService, h.pricing(), h.logger)
	reconciler.Transition(c.Request.Context(), shop.AuthenticatedSession(userID))

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart synchronized successfully",
		"data": gin.H{
			"items": reconciler.Items(c.Request.Context()),
		},
	})
}

// GetCartDetails handles GET /cart/details - recomputes totals and saves
// the order snapshot checkout reads from
func (h *ShopHandler) GetCartDetails(c *gin.Context) {
	reconciler := h.cartFor(c)
	totals := reconciler.Details(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart details retrieved successfully",
		"data": gin.H{
			"totals":        totals,
			"totalQuantity": reconciler.TotalQuantity(),
		},
	})
}
