package repository

import (
	"context"
	"errors"

	"ecom-backend/models"

	"github.com/google/uuid"
)

// Sentinel errors returned by ledger operations.
var (
	// ErrInvalidQuantity is returned when a mutation would leave an entry
	// with a quantity below 1.
	ErrInvalidQuantity = errors.New("quantity must be at least 1")
	// ErrEntryNotFound is returned when an entry ID does not belong to the
	// given user's cart.
	ErrEntryNotFound = errors.New("cart entry not found")
)

// CartStore is the ledger of cart entries, partitioned by user. All mutations
// on a user's cart are atomic with respect to each other.
type CartStore interface {
	// UpsertAdd merges delta into the entry for (userID, productID),
	// creating the entry on first add. The resulting quantity must be >= 1.
	UpsertAdd(ctx context.Context, userID, productID uuid.UUID, delta int) (*models.CartEntry, error)
	// SetQuantity replaces the quantity of an existing entry. Quantity 0 is
	// rejected, not treated as removal.
	SetQuantity(ctx context.Context, userID, entryID uuid.UUID, quantity int) error
	// Remove deletes the entry if present. Removing a missing entry is a
	// no-op; the bool reports whether anything was deleted.
	Remove(ctx context.Context, userID, entryID uuid.UUID) (bool, error)
	// Entries returns the user's entries in insertion order.
	Entries(ctx context.Context, userID uuid.UUID) ([]models.CartEntry, error)
	// ClearFor deletes all entries for the user and returns how many.
	ClearFor(ctx context.Context, userID uuid.UUID) (int, error)
	// Settle passes the current entries to fn and, if fn succeeds, clears
	// the cart in the same atomic step. A concurrent cart mutation restarts
	// the whole sequence with fresh entries, so a racing add either appears
	// in the settled entries or survives in the cart.
	Settle(ctx context.Context, userID uuid.UUID, fn func(entries []models.CartEntry) error) error
}

// ProductStore is the read-mostly catalog lookup used by the cart and
// checkout flows.
type ProductStore interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error)
}

// UserStore persists accounts.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

// OrderStore persists checkout receipts for order history.
type OrderStore interface {
	Create(ctx context.Context, receipt *models.Receipt) error
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]models.Receipt, error)
}
