// internal/interfaces/http/handlers/product.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/your-org/petstore-backend/internal/config"
	"github.com/your-org/petstore-backend/internal/pkg/content"
)

// ProductHandler serves the published catalog from the content store
type ProductHandler struct {
	contentClient *content.Client
}

// NewProductHandler creates a new product handler
func NewProductHandler(cfg *config.Config) *ProductHandler {
	return &ProductHandler{
		contentClient: content.NewClient(cfg),
	}
}

// ListProducts handles GET /products. An optional comma-separated ids
// query narrows the result, which is how the wishlist page resolves its
// saved product ids.
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var (
		products []content.Product
		err      error
	)

	if idsParam := c.Query("ids"); idsParam != "" {
		ids := strings.Split(idsParam, ",")
		products, err = h.contentClient.FetchByIDs(c.Request.Context(), ids)
	} else {
		products, err = h.contentClient.FetchAll(c.Request.Context())
	}

	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": "Failed to retrieve products",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Products retrieved successfully",
		"data":    products,
	})
}
