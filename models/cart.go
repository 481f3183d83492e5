package models

import (
	"time"

	"github.com/google/uuid"
)

// CartEntry is one (product, quantity) row in a user's cart. Entry IDs are
// minted on first add and stay stable across quantity updates, so clients can
// address a line without knowing the product ID.
type CartEntry struct {
	EntryID   uuid.UUID `json:"entry_id"`
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

// Cart is the per-user ledger document stored as JSON in redis under
// cart:user:<id>. Entries keep insertion order. At most one entry exists per
// product.
type Cart struct {
	UserID    uuid.UUID   `json:"user_id"`
	Entries   []CartEntry `json:"entries"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// FindByProduct returns the index of the entry for productID, or -1.
func (c *Cart) FindByProduct(productID uuid.UUID) int {
	for i, e := range c.Entries {
		if e.ProductID == productID {
			return i
		}
	}
	return -1
}

// FindByEntry returns the index of the entry with entryID, or -1.
func (c *Cart) FindByEntry(entryID uuid.UUID) int {
	for i, e := range c.Entries {
		if e.EntryID == entryID {
			return i
		}
	}
	return -1
}

// SnapshotItem is one resolved line of a cart snapshot: catalog attributes
// joined with the ledger quantity and entry reference.
type SnapshotItem struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	Image      string    `json:"image"`
	Quantity   int       `json:"quantity"`
	CartItemID uuid.UUID `json:"cartItemId"`
}

// CartSnapshot is the derived view returned by every cart operation. It is
// recomputed from the ledger on each call and never persisted.
type CartSnapshot struct {
	Items []SnapshotItem `json:"items"`
	Total float64        `json:"total"`
}
