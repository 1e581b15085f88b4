package purchaseRepo

import (
	"context"

	"patitas/models"
)

// PurchaseRepository stores the append-only per-user purchase history.
type PurchaseRepository interface {
	// Append adds one purchase record and returns its ID.
	Append(ctx context.Context, purchase models.Purchase) (string, error)
	// GetByUserID fetches a user's purchase history, newest first.
	GetByUserID(ctx context.Context, userID string) ([]models.Purchase, error)
}
