package services

import (
	"context"
	"errors"
	"math"

	"ecom-backend/models"
	"ecom-backend/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// CartService orchestrates the cart ledger and the catalog into snapshot
// views. Every operation, read or write, returns the whole recomputed
// snapshot so callers never need a follow-up read.
type CartService interface {
	ViewCart(ctx context.Context, userID uuid.UUID) (*models.CartSnapshot, *ServiceError)
	AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartSnapshot, *ServiceError)
	UpdateQuantity(ctx context.Context, userID, entryID uuid.UUID, quantity int) (*models.CartSnapshot, *ServiceError)
	RemoveFromCart(ctx context.Context, userID, entryID uuid.UUID) (*models.CartSnapshot, *ServiceError)
	ClearCart(ctx context.Context, userID uuid.UUID) (*models.CartSnapshot, *ServiceError)
}

type cartServiceImpl struct {
	carts    repository.CartStore
	products repository.ProductStore
	logger   *zap.Logger
}

func NewCartService(carts repository.CartStore, products repository.ProductStore, logger *zap.Logger) CartService {
	return &cartServiceImpl{
		carts:    carts,
		products: products,
		logger:   logger,
	}
}

// round2 rounds to 2 decimals at the boundary; intermediate sums stay
// unrounded so per-line rounding error cannot compound.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *cartServiceImpl) ViewCart(ctx context.Context, userID uuid.UUID) (*models.CartSnapshot, *ServiceError) {
	entries, err := s.carts.Entries(ctx, userID)
	if err != nil {
		s.logger.Error("ViewCart: failed to read ledger", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Failed to fetch cart")
	}
	return s.buildSnapshot(ctx, userID, entries)
}

// AddToCart merges quantity into the user's entry for the product, creating
// it on first add, and returns the fresh snapshot.
func (s *cartServiceImpl) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartSnapshot, *ServiceError) {
	if quantity < 1 {
		return nil, ErrQuantityTooLow
	}

	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		s.logger.Error("AddToCart: product lookup failed", zap.Error(err), zap.String("product_id", productID.String()))
		return nil, internalError("Failed to add to cart")
	}

	if _, err := s.carts.UpsertAdd(ctx, userID, productID, quantity); err != nil {
		if errors.Is(err, repository.ErrInvalidQuantity) {
			return nil, ErrQuantityTooLow
		}
		s.logger.Error("AddToCart: upsert failed", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Failed to add to cart")
	}

	return s.snapshotAfterWrite(ctx, userID)
}

// UpdateQuantity sets an existing entry to an absolute quantity. Zero is
// rejected, not treated as removal.
func (s *cartServiceImpl) UpdateQuantity(ctx context.Context, userID, entryID uuid.UUID, quantity int) (*models.CartSnapshot, *ServiceError) {
	if quantity < 1 {
		return nil, ErrQuantityTooLow
	}

	if err := s.carts.SetQuantity(ctx, userID, entryID, quantity); err != nil {
		switch {
		case errors.Is(err, repository.ErrEntryNotFound):
			return nil, ErrCartEntryNotFound
		case errors.Is(err, repository.ErrInvalidQuantity):
			return nil, ErrQuantityTooLow
		}
		s.logger.Error("UpdateQuantity: failed", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Failed to update cart")
	}

	return s.snapshotAfterWrite(ctx, userID)
}

// RemoveFromCart deletes the entry if present and always returns the current
// snapshot; removing a missing entry succeeds.
func (s *cartServiceImpl) RemoveFromCart(ctx context.Context, userID, entryID uuid.UUID) (*models.CartSnapshot, *ServiceError) {
	if _, err := s.carts.Remove(ctx, userID, entryID); err != nil {
		s.logger.Error("RemoveFromCart: failed", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Failed to update cart")
	}

	return s.snapshotAfterWrite(ctx, userID)
}

// ClearCart empties the whole cart and returns the (empty) snapshot.
func (s *cartServiceImpl) ClearCart(ctx context.Context, userID uuid.UUID) (*models.CartSnapshot, *ServiceError) {
	deleted, err := s.carts.ClearFor(ctx, userID)
	if err != nil {
		s.logger.Error("ClearCart: failed", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Failed to clear cart")
	}
	s.logger.Info("Cart cleared", zap.String("user_id", userID.String()), zap.Int("entries", deleted))

	return &models.CartSnapshot{Items: []models.SnapshotItem{}, Total: 0}, nil
}

func (s *cartServiceImpl) snapshotAfterWrite(ctx context.Context, userID uuid.UUID) (*models.CartSnapshot, *ServiceError) {
	entries, err := s.carts.Entries(ctx, userID)
	if err != nil {
		s.logger.Error("snapshot: failed to read ledger", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Failed to fetch cart")
	}
	return s.buildSnapshot(ctx, userID, entries)
}

// buildSnapshot resolves entries against the catalog and computes the total.
// An entry whose product has vanished from the catalog is an integrity error,
// not something to drop quietly.
func (s *cartServiceImpl) buildSnapshot(ctx context.Context, userID uuid.UUID, entries []models.CartEntry) (*models.CartSnapshot, *ServiceError) {
	items, total, serr := resolveEntries(ctx, s.products, entries)
	if serr != nil {
		if serr == ErrCartIntegrity {
			s.logger.Warn("snapshot: ledger references missing product", zap.String("user_id", userID.String()))
		}
		return nil, serr
	}

	snapshotItems := make([]models.SnapshotItem, len(items))
	for i, it := range items {
		snapshotItems[i] = models.SnapshotItem{
			ID:         it.product.ID,
			Name:       it.product.Name,
			Price:      it.product.Price,
			Image:      it.product.Image,
			Quantity:   it.entry.Quantity,
			CartItemID: it.entry.EntryID,
		}
	}

	return &models.CartSnapshot{
		Items: snapshotItems,
		Total: round2(total),
	}, nil
}

// resolvedLine pairs a ledger entry with its catalog record.
type resolvedLine struct {
	entry   models.CartEntry
	product models.Product
}

// resolveEntries joins entries with their products and sums the unrounded
// total. Shared between snapshots and checkout so both apply the same
// integrity policy and price formula.
func resolveEntries(ctx context.Context, products repository.ProductStore, entries []models.CartEntry) ([]resolvedLine, float64, *ServiceError) {
	if len(entries) == 0 {
		return nil, 0, nil
	}

	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.ProductID
	}

	found, err := products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, 0, internalError("Failed to resolve cart products")
	}
	byID := make(map[uuid.UUID]models.Product, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	lines := make([]resolvedLine, 0, len(entries))
	var total float64
	for _, e := range entries {
		p, ok := byID[e.ProductID]
		if !ok {
			return nil, 0, ErrCartIntegrity
		}
		lines = append(lines, resolvedLine{entry: e, product: p})
		total += p.Price * float64(e.Quantity)
	}
	return lines, total, nil
}
