package services

import (
	"context"
	"testing"
	"time"

	"ecom-backend/models"
	"ecom-backend/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// --- Mocks for Dependencies ---

type MockProductStore struct{ mock.Mock }

func (m *MockProductStore) FindAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductStore) FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductStore) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

// --- Helpers ---

// newTestLedger builds a real cart repository over miniredis so service tests
// exercise the actual CAS ledger.
func newTestLedger(t *testing.T) *repository.CartRepository {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return repository.NewCartRepository(client, time.Hour)
}

// --- Tests ---

func TestAddToCart_MergeScenario(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	products := new(MockProductStore)
	svc := NewCartService(ledger, products, zap.NewNop())

	userID := uuid.New()
	headphones := models.Product{ID: uuid.New(), Name: "Wireless Headphones", Price: 99.99, Image: "img"}

	products.On("FindByID", ctx, headphones.ID).Return(&headphones, nil)
	products.On("FindByIDs", ctx, mock.Anything).Return([]models.Product{headphones}, nil)

	snap, serr := svc.AddToCart(ctx, userID, headphones.ID, 1)
	require.Nil(t, serr)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 1, snap.Items[0].Quantity)
	assert.Equal(t, 99.99, snap.Total)

	snap, serr = svc.AddToCart(ctx, userID, headphones.ID, 2)
	require.Nil(t, serr)

	// Still one line, merged to quantity 3, total exact to the cent.
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 3, snap.Items[0].Quantity)
	assert.Equal(t, headphones.ID, snap.Items[0].ID)
	assert.Equal(t, 299.97, snap.Total)
}

func TestAddToCart_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	products := new(MockProductStore)
	svc := NewCartService(ledger, products, zap.NewNop())

	userID := uuid.New()
	missing := uuid.New()
	products.On("FindByID", ctx, missing).Return(nil, mongo.ErrNoDocuments)

	snap, serr := svc.AddToCart(ctx, userID, missing, 1)
	assert.Nil(t, snap)
	require.NotNil(t, serr)
	assert.Equal(t, ErrProductNotFound, serr)

	// Ledger unchanged.
	entries, err := ledger.Entries(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAddToCart_QuantityBelowOne(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	products := new(MockProductStore)
	svc := NewCartService(ledger, products, zap.NewNop())

	snap, serr := svc.AddToCart(ctx, uuid.New(), uuid.New(), 0)
	assert.Nil(t, snap)
	assert.Equal(t, ErrQuantityTooLow, serr)
	assert.Empty(t, products.Calls)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	products := new(MockProductStore)
	svc := NewCartService(ledger, products, zap.NewNop())

	userID := uuid.New()
	product := models.Product{ID: uuid.New(), Name: "Phone Case", Price: 19.99}
	entry, err := ledger.UpsertAdd(ctx, userID, product.ID, 2)
	require.NoError(t, err)

	products.On("FindByIDs", ctx, mock.Anything).Return([]models.Product{product}, nil)

	t.Run("Success", func(t *testing.T) {
		snap, serr := svc.UpdateQuantity(ctx, userID, entry.EntryID, 5)
		require.Nil(t, serr)
		require.Len(t, snap.Items, 1)
		assert.Equal(t, 5, snap.Items[0].Quantity)
		assert.Equal(t, 99.95, snap.Total)
	})

	t.Run("RejectsZeroAndKeepsQuantity", func(t *testing.T) {
		snap, serr := svc.UpdateQuantity(ctx, userID, entry.EntryID, 0)
		assert.Nil(t, snap)
		assert.Equal(t, ErrQuantityTooLow, serr)

		entries, err := ledger.Entries(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, 5, entries[0].Quantity)
	})

	t.Run("UnknownEntry", func(t *testing.T) {
		snap, serr := svc.UpdateQuantity(ctx, userID, uuid.New(), 2)
		assert.Nil(t, snap)
		assert.Equal(t, ErrCartEntryNotFound, serr)
	})
}

func TestRemoveFromCart_MissingEntryStillReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	products := new(MockProductStore)
	svc := NewCartService(ledger, products, zap.NewNop())

	userID := uuid.New()
	product := models.Product{ID: uuid.New(), Name: "USB-C Cable", Price: 15.99}
	_, err := ledger.UpsertAdd(ctx, userID, product.ID, 1)
	require.NoError(t, err)

	products.On("FindByIDs", ctx, mock.Anything).Return([]models.Product{product}, nil)

	snap, serr := svc.RemoveFromCart(ctx, userID, uuid.New())
	require.Nil(t, serr)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, 15.99, snap.Total)
}

func TestClearCart(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	products := new(MockProductStore)
	svc := NewCartService(ledger, products, zap.NewNop())

	userID := uuid.New()
	_, err := ledger.UpsertAdd(ctx, userID, uuid.New(), 2)
	require.NoError(t, err)
	_, err = ledger.UpsertAdd(ctx, userID, uuid.New(), 1)
	require.NoError(t, err)

	snap, serr := svc.ClearCart(ctx, userID)
	require.Nil(t, serr)
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0.0, snap.Total)

	entries, err := ledger.Entries(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestViewCart_Empty(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	products := new(MockProductStore)
	svc := NewCartService(ledger, products, zap.NewNop())

	snap, serr := svc.ViewCart(ctx, uuid.New())
	require.Nil(t, serr)
	assert.Empty(t, snap.Items)
	assert.Equal(t, 0.0, snap.Total)
}

func TestViewCart_SurfacesIntegrityError(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	products := new(MockProductStore)
	svc := NewCartService(ledger, products, zap.NewNop())

	userID := uuid.New()
	_, err := ledger.UpsertAdd(ctx, userID, uuid.New(), 1)
	require.NoError(t, err)

	// The referenced product has vanished from the catalog.
	products.On("FindByIDs", ctx, mock.Anything).Return([]models.Product{}, nil)

	snap, serr := svc.ViewCart(ctx, userID)
	assert.Nil(t, snap)
	assert.Equal(t, ErrCartIntegrity, serr)
}

func TestSnapshotTotal_RoundsAtBoundaryOnly(t *testing.T) {
	ctx := context.Background()
	ledger := newTestLedger(t)
	products := new(MockProductStore)
	svc := NewCartService(ledger, products, zap.NewNop())

	userID := uuid.New()
	// Three lines at 0.10 each would accumulate float noise if rounded per
	// line; the total must still come out exact.
	a := models.Product{ID: uuid.New(), Price: 0.10}
	b := models.Product{ID: uuid.New(), Price: 0.10}
	c := models.Product{ID: uuid.New(), Price: 0.10}

	for _, p := range []models.Product{a, b, c} {
		_, err := ledger.UpsertAdd(ctx, userID, p.ID, 1)
		require.NoError(t, err)
	}
	products.On("FindByIDs", ctx, mock.Anything).Return([]models.Product{a, b, c}, nil)

	snap, serr := svc.ViewCart(ctx, userID)
	require.Nil(t, serr)
	assert.Equal(t, 0.30, snap.Total)
}
