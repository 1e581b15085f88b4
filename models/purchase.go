package models

import "time"

// CartLine is one product reference in a checkout request. Repeated product
// IDs are grouped server-side before totals are computed.
type CartLine struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,min=1"`
}

// PurchaseItem is a priced line inside a stored purchase record.
type PurchaseItem struct {
	ProductID string  `bson:"productId" json:"productId"`
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	Price     float64 `bson:"price" json:"price"`
}

// Purchase is one entry in a user's append-only purchase history.
type Purchase struct {
	ID       string         `bson:"id" json:"id"`
	UserID   string         `bson:"userId" json:"userId"`
	Date     time.Time      `bson:"date" json:"date"`
	Subtotal float64        `bson:"subtotal" json:"subtotal"`
	Tax      float64        `bson:"tax" json:"tax"`
	Total    float64        `bson:"total" json:"total"`
	Items    []PurchaseItem `bson:"items" json:"items"`
}
