package checkout

import (
	"context"
	"errors"
	"time"

	productRepo "patitas/database/repository/product"
	purchaseRepo "patitas/database/repository/purchase"
	"patitas/models"
	"patitas/utils"

	"go.uber.org/zap"
)

// TaxRate is the IVA applied on every purchase.
const TaxRate = 0.21

var (
	// ErrEmptyCart rejects a checkout without any lines.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrUnknownProduct rejects a cart line referencing a product that is
	// not in the catalog.
	ErrUnknownProduct = errors.New("cart references an unknown product")
	// ErrUnauthenticated rejects a checkout without a user identity.
	ErrUnauthenticated = errors.New("no authenticated user")
)

// CheckoutService turns a cart into a stored purchase record.
type CheckoutService interface {
	// ConfirmPurchase groups the cart lines, prices them from the catalog,
	// applies tax and appends the purchase to the user's history.
	ConfirmPurchase(ctx context.Context, userID string, lines []models.CartLine) (*models.Purchase, error)
}

// DefaultCheckoutService is the production CheckoutService.
type DefaultCheckoutService struct {
	Products  productRepo.ProductRepository
	Purchases purchaseRepo.PurchaseRepository
}

// ConfirmPurchase prices the cart server-side; client-supplied prices are
// never trusted.
func (s *DefaultCheckoutService) ConfirmPurchase(ctx context.Context, userID string, lines []models.CartLine) (*models.Purchase, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	// Group repeated product references into single lines.
	quantities := make(map[string]int)
	order := make([]string, 0, len(lines))
	for _, line := range lines {
		if _, seen := quantities[line.ProductID]; !seen {
			order = append(order, line.ProductID)
		}
		quantities[line.ProductID] += line.Quantity
	}

	products, err := s.Products.GetByIDs(ctx, order)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	var subtotal float64
	items := make([]models.PurchaseItem, 0, len(order))
	for _, id := range order {
		product, ok := byID[id]
		if !ok {
			return nil, ErrUnknownProduct
		}
		qty := quantities[id]
		subtotal += product.Price * float64(qty)
		items = append(items, models.PurchaseItem{
			ProductID: product.ID,
			Name:      product.Name,
			Quantity:  qty,
			Price:     product.Price,
		})
	}

	tax := subtotal * TaxRate
	purchase := models.Purchase{
		UserID:   userID,
		Date:     time.Now(),
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal + tax,
		Items:    items,
	}

	id, err := s.Purchases.Append(ctx, purchase)
	if err != nil {
		utils.GetLogger().Error("ConfirmPurchase: purchase append failed",
			zap.String("userId", userID), zap.Error(err))
		return nil, err
	}
	purchase.ID = id
	return &purchase, nil
}
