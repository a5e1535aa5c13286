// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/petstore-backend/internal/config"
	"github.com/your-org/petstore-backend/internal/domain/checkout"
	"github.com/your-org/petstore-backend/internal/domain/payment"
	"github.com/your-org/petstore-backend/internal/interfaces/http/middleware"
	"github.com/your-org/petstore-backend/internal/shop"
	"github.com/your-org/petstore-backend/internal/shop/localstore"
)

// CheckoutHandler handles Stripe checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	paymentService  *payment.Service
	redisClient     *redis.Client
	config          *config.Config
	logger          *logrus.Logger
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *CheckoutHandler {
	paymentService := payment.NewService(cfg)
	return &CheckoutHandler{
		checkoutService: checkout.NewService(db, cfg, paymentService, logger),
		paymentService:  paymentService,
		redisClient:     redisClient,
		config:          cfg,
		logger:          logger,
	}
}

func (h *CheckoutHandler) session(c *gin.Context) shop.Session {
	if userID, ok := middleware.GetUserIDFromContext(c); ok {
		return shop.AuthenticatedSession(userID)
	}
	return shop.AnonymousSession()
}

// CreateSession handles POST /checkout - builds a Stripe checkout session
// from the saved order snapshot
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	store := resolveDeviceStore(c, h.redisClient, h.config)

	checkoutSession, err := h.checkoutService.CreateSession(c.Request.Context(), store, h.session(c))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout session created successfully",
		"data": gin.H{
			"id":  checkoutSession.ID,
			"url": checkoutSession.URL,
		},
	})
}

// completeCheckoutRequest is the body for checkout completion
type completeCheckoutRequest struct {
	SessionID string `json:"sessionId" binding:"required"`
}

// Complete handles POST /checkout/complete - records the order and clears
// both carts once Stripe redirects back
func (h *CheckoutHandler) Complete(c *gin.Context) {
	userID, exists := middleware.GetUserIDFromContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "User not authenticated",
		})
		return
	}

	var req completeCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ord, err := h.checkoutService.CompleteOrder(userID, req.SessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to complete order",
		})
		return
	}

	store := resolveDeviceStore(c, h.redisClient, h.config)
	if err := store.Del(c.Request.Context(), localstore.KeyCart, localstore.KeyOrder); err != nil {
		h.logger.WithError(err).Warn("failed to clear device cart after checkout")
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order completed successfully",
		"data":    ord,
	})
}

// GetSession handles GET /checkout/session/:id
func (h *CheckoutHandler) GetSession(c *gin.Context) {
	checkoutSession, err := h.paymentService.GetCheckoutSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": checkoutSession,
	})
}

// GetSessionLineItems handles GET /checkout/session/:id/items
func (h *CheckoutHandler) GetSessionLineItems(c *gin.Context) {
	items, err := h.paymentService.GetSessionLineItems(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": items,
	})
}

// GetProductMetadata handles GET /checkout/products/:id/metadata
func (h *CheckoutHandler) GetProductMetadata(c *gin.Context) {
	metadata, err := h.paymentService.GetProductMetadata(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": metadata,
	})
}

// GetPaymentMethod handles GET /checkout/payment-methods/:id
func (h *CheckoutHandler) GetPaymentMethod(c *gin.Context) {
	method, err := h.paymentService.GetPaymentMethod(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": method,
	})
}
