package models

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog record. The cart never mutates products; it only
// resolves them by ID when building snapshots and receipts.
type Product struct {
	ID          uuid.UUID `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name"`
	Price       float64   `json:"price" bson:"price"`
	Image       string    `json:"image" bson:"image"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
