package models

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptStatusConfirmed is the only terminal status a checkout produces.
const ReceiptStatusConfirmed = "confirmed"

// ReceiptItem is an immutable line of a receipt, priced at checkout time.
type ReceiptItem struct {
	ID       uuid.UUID `json:"id" bson:"product_id"`
	Name     string    `json:"name" bson:"name"`
	Price    float64   `json:"price" bson:"price"`
	Quantity int       `json:"quantity" bson:"quantity"`
}

// Receipt is the artifact of a checkout. Once issued, the cart entries it was
// built from no longer exist. Customer info is passed through opaquely.
type Receipt struct {
	OrderID   string                 `json:"orderId" bson:"_id"`
	UserID    uuid.UUID              `json:"-" bson:"user_id"`
	Customer  map[string]interface{} `json:"customer" bson:"customer"`
	Items     []ReceiptItem          `json:"items" bson:"items"`
	Total     float64                `json:"total" bson:"total"`
	Timestamp time.Time              `json:"timestamp" bson:"timestamp"`
	Status    string                 `json:"status" bson:"status"`
}
