package services

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"ecom-backend/models"
	"ecom-backend/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CheckoutService turns the current cart into an immutable receipt and clears
// the ledger in the same atomic step.
type CheckoutService interface {
	Checkout(ctx context.Context, userID uuid.UUID, customer map[string]interface{}) (*models.Receipt, *ServiceError)
	Orders(ctx context.Context, userID uuid.UUID) ([]models.Receipt, *ServiceError)
}

type checkoutServiceImpl struct {
	carts    repository.CartStore
	products repository.ProductStore
	orders   repository.OrderStore
	logger   *zap.Logger
	seq      atomic.Uint64
}

func NewCheckoutService(carts repository.CartStore, products repository.ProductStore, orders repository.OrderStore, logger *zap.Logger) CheckoutService {
	return &checkoutServiceImpl{
		carts:    carts,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// nextOrderID mints a time-derived order ID. The counter suffix keeps two
// checkouts in the same millisecond distinct for the process lifetime.
func (s *checkoutServiceImpl) nextOrderID() string {
	return fmt.Sprintf("ORD%d-%04d", time.Now().UnixMilli(), s.seq.Add(1))
}

// Checkout builds the receipt from the entries read inside the ledger's
// settle transaction; the clear only commits when the receipt was built, so a
// failed checkout leaves the cart intact and a successful one always empties
// it. An empty cart is not an error: it settles into a zero-total receipt.
func (s *checkoutServiceImpl) Checkout(ctx context.Context, userID uuid.UUID, customer map[string]interface{}) (*models.Receipt, *ServiceError) {
	var receipt *models.Receipt

	err := s.carts.Settle(ctx, userID, func(entries []models.CartEntry) error {
		lines, total, serr := resolveEntries(ctx, s.products, entries)
		if serr != nil {
			return serr
		}

		items := make([]models.ReceiptItem, len(lines))
		for i, l := range lines {
			items[i] = models.ReceiptItem{
				ID:       l.product.ID,
				Name:     l.product.Name,
				Price:    l.product.Price,
				Quantity: l.entry.Quantity,
			}
		}

		receipt = &models.Receipt{
			OrderID:   s.nextOrderID(),
			UserID:    userID,
			Customer:  customer,
			Items:     items,
			Total:     round2(total),
			Timestamp: time.Now().UTC(),
			Status:    models.ReceiptStatusConfirmed,
		}
		return nil
	})
	if err != nil {
		var serr *ServiceError
		if errors.As(err, &serr) {
			return nil, serr
		}
		s.logger.Error("Checkout: settle failed", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Failed to check out")
	}

	// Order history is secondary to the receipt itself: the cart is already
	// settled, so a persistence failure is logged, not returned.
	if err := s.orders.Create(ctx, receipt); err != nil {
		s.logger.Error("Checkout: failed to persist receipt",
			zap.Error(err),
			zap.String("order_id", receipt.OrderID),
		)
	}

	s.logger.Info("Checkout settled",
		zap.String("order_id", receipt.OrderID),
		zap.String("user_id", userID.String()),
		zap.Int("items", len(receipt.Items)),
		zap.Float64("total", receipt.Total),
	)
	return receipt, nil
}

func (s *checkoutServiceImpl) Orders(ctx context.Context, userID uuid.UUID) ([]models.Receipt, *ServiceError) {
	receipts, err := s.orders.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("Orders: lookup failed", zap.Error(err), zap.String("user_id", userID.String()))
		return nil, internalError("Failed to fetch orders")
	}
	return receipts, nil
}
