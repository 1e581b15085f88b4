package handlers

import (
	"errors"
	"net/http"

	"patitas/models"
	"patitas/services/catalog"
	"patitas/services/checkout"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StoreHandler exposes the product catalog and checkout endpoints.
type StoreHandler struct {
	Catalog  catalog.CatalogService
	Checkout checkout.CheckoutService
}

// ListProducts handles GET /api/store/products.
func (h *StoreHandler) ListProducts(c *gin.Context) {
	logger := getLogger(c)

	products, err := h.Catalog.ListProducts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, products)
}

// FeaturedProducts handles GET /api/store/products/featured.
func (h *StoreHandler) FeaturedProducts(c *gin.Context) {
	logger := getLogger(c)

	products, err := h.Catalog.FeaturedProducts(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list featured products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load catalog"})
		return
	}
	if products == nil {
		products = []models.Product{}
	}

	c.JSON(http.StatusOK, products)
}

// ConfirmPurchase handles POST /api/store/checkout.
func (h *StoreHandler) ConfirmPurchase(c *gin.Context) {
	logger := getLogger(c)

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req struct {
		Items []models.CartLine `json:"items" binding:"required,dive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	purchase, err := h.Checkout.ConfirmPurchase(c.Request.Context(), userID.(string), req.Items)
	if err != nil {
		switch {
		case errors.Is(err, checkout.ErrEmptyCart), errors.Is(err, checkout.ErrUnknownProduct):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, checkout.ErrUnauthenticated):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to confirm purchase", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to confirm purchase"})
		}
		return
	}

	c.JSON(http.StatusCreated, purchase)
}
