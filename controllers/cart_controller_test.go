package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ecom-backend/controllers"
	"ecom-backend/models"
	"ecom-backend/routes"
	"ecom-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- concrete mocks implementing the service interfaces ----

type concreteMockCart struct {
	snapshot *models.CartSnapshot
	err      *services.ServiceError

	gotUserID    uuid.UUID
	gotProductID uuid.UUID
	gotEntryID   uuid.UUID
	gotQuantity  int
}

func (m *concreteMockCart) ViewCart(ctx context.Context, userID uuid.UUID) (*models.CartSnapshot, *services.ServiceError) {
	m.gotUserID = userID
	return m.snapshot, m.err
}

func (m *concreteMockCart) AddToCart(ctx context.Context, userID, productID uuid.UUID, quantity int) (*models.CartSnapshot, *services.ServiceError) {
	m.gotUserID, m.gotProductID, m.gotQuantity = userID, productID, quantity
	return m.snapshot, m.err
}

func (m *concreteMockCart) UpdateQuantity(ctx context.Context, userID, entryID uuid.UUID, quantity int) (*models.CartSnapshot, *services.ServiceError) {
	m.gotUserID, m.gotEntryID, m.gotQuantity = userID, entryID, quantity
	return m.snapshot, m.err
}

func (m *concreteMockCart) RemoveFromCart(ctx context.Context, userID, entryID uuid.UUID) (*models.CartSnapshot, *services.ServiceError) {
	m.gotUserID, m.gotEntryID = userID, entryID
	return m.snapshot, m.err
}

func (m *concreteMockCart) ClearCart(ctx context.Context, userID uuid.UUID) (*models.CartSnapshot, *services.ServiceError) {
	m.gotUserID = userID
	return m.snapshot, m.err
}

type concreteMockCheckout struct {
	receipt  *models.Receipt
	receipts []models.Receipt
	err      *services.ServiceError

	gotCustomer map[string]interface{}
}

func (m *concreteMockCheckout) Checkout(ctx context.Context, userID uuid.UUID, customer map[string]interface{}) (*models.Receipt, *services.ServiceError) {
	m.gotCustomer = customer
	return m.receipt, m.err
}

func (m *concreteMockCheckout) Orders(ctx context.Context, userID uuid.UUID) ([]models.Receipt, *services.ServiceError) {
	return m.receipts, m.err
}

// ---- helpers ----

type emptyAuth struct{}

func (emptyAuth) Register(ctx context.Context, name, email, password string) (*models.User, string, *services.ServiceError) {
	return nil, "", &services.ServiceError{StatusCode: http.StatusNotImplemented, Message: "not implemented"}
}
func (emptyAuth) Login(ctx context.Context, email, password string) (*models.User, string, *services.ServiceError) {
	return nil, "", &services.ServiceError{StatusCode: http.StatusNotImplemented, Message: "not implemented"}
}
func (emptyAuth) Profile(ctx context.Context, userID uuid.UUID) (*models.User, *services.ServiceError) {
	return nil, &services.ServiceError{StatusCode: http.StatusNotImplemented, Message: "not implemented"}
}

func setupRouter(t *testing.T, cart services.CartService, checkout services.CheckoutService) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	tokens := services.NewTokenService("test-secret", time.Hour)
	routes.Register(
		r,
		controllers.NewAuthController(emptyAuth{}),
		controllers.NewProductController(nil, nil),
		controllers.NewCartController(cart),
		controllers.NewCheckoutController(checkout),
		tokens,
	)

	token, err := tokens.Generate(uuid.New(), "tester@example.com")
	require.NoError(t, err)
	return r, "Bearer " + token
}

func doJSON(r *gin.Engine, method, path, auth string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ---- tests ----

func TestAddItem_ReturnsSnapshot(t *testing.T) {
	productID := uuid.New()
	entryID := uuid.New()
	mockCart := &concreteMockCart{
		snapshot: &models.CartSnapshot{
			Items: []models.SnapshotItem{
				{ID: productID, Name: "Smart Watch", Price: 199.99, Quantity: 2, CartItemID: entryID},
			},
			Total: 399.98,
		},
	}
	r, auth := setupRouter(t, mockCart, &concreteMockCheckout{})

	w := doJSON(r, http.MethodPost, "/api/cart", auth, gin.H{"productId": productID.String(), "quantity": 2})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, productID, mockCart.gotProductID)
	assert.Equal(t, 2, mockCart.gotQuantity)

	var snap models.CartSnapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Items, 1)
	assert.Equal(t, entryID, snap.Items[0].CartItemID)
	assert.Equal(t, 399.98, snap.Total)
}

func TestAddItem_DefaultsQuantityToOne(t *testing.T) {
	mockCart := &concreteMockCart{snapshot: &models.CartSnapshot{Items: []models.SnapshotItem{}}}
	r, auth := setupRouter(t, mockCart, &concreteMockCheckout{})

	w := doJSON(r, http.MethodPost, "/api/cart", auth, gin.H{"productId": uuid.New().String()})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, mockCart.gotQuantity)
}

func TestAddItem_InvalidProductID(t *testing.T) {
	mockCart := &concreteMockCart{}
	r, auth := setupRouter(t, mockCart, &concreteMockCheckout{})

	w := doJSON(r, http.MethodPost, "/api/cart", auth, gin.H{"productId": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateQuantity_ServiceErrorPassesThrough(t *testing.T) {
	mockCart := &concreteMockCart{err: services.ErrQuantityTooLow}
	r, auth := setupRouter(t, mockCart, &concreteMockCheckout{})

	w := doJSON(r, http.MethodPut, "/api/cart/"+uuid.New().String(), auth, gin.H{"quantity": 0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Quantity must be at least 1")
}

func TestRemoveItem_MissingEntryStillOK(t *testing.T) {
	mockCart := &concreteMockCart{snapshot: &models.CartSnapshot{Items: []models.SnapshotItem{}, Total: 0}}
	r, auth := setupRouter(t, mockCart, &concreteMockCheckout{})

	w := doJSON(r, http.MethodDelete, "/api/cart/"+uuid.New().String(), auth, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCartRoutes_RequireAuth(t *testing.T) {
	r, _ := setupRouter(t, &concreteMockCart{}, &concreteMockCheckout{})

	w := doJSON(r, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/checkout", "Bearer bogus", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckout_EmptyBodyStillSettles(t *testing.T) {
	mockCheckout := &concreteMockCheckout{
		receipt: &models.Receipt{
			OrderID: "ORD1700000000000-0002",
			Items:   []models.ReceiptItem{},
			Status:  models.ReceiptStatusConfirmed,
		},
	}
	r, auth := setupRouter(t, &concreteMockCart{}, mockCheckout)

	w := doJSON(r, http.MethodPost, "/api/checkout", auth, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mockCheckout.gotCustomer)

	var receipt models.Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.Equal(t, "confirmed", receipt.Status)
}

func TestCheckout_ReturnsReceipt(t *testing.T) {
	mockCheckout := &concreteMockCheckout{
		receipt: &models.Receipt{
			OrderID:   "ORD1700000000000-0001",
			Customer:  map[string]interface{}{"name": "Alice"},
			Items:     []models.ReceiptItem{{ID: uuid.New(), Name: "Smart Watch", Price: 199.99, Quantity: 1}},
			Total:     199.99,
			Timestamp: time.Now().UTC(),
			Status:    models.ReceiptStatusConfirmed,
		},
	}
	r, auth := setupRouter(t, &concreteMockCart{}, mockCheckout)

	w := doJSON(r, http.MethodPost, "/api/checkout", auth, gin.H{"customerInfo": gin.H{"name": "Alice"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Alice", mockCheckout.gotCustomer["name"])

	var receipt models.Receipt
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &receipt))
	assert.Equal(t, "confirmed", receipt.Status)
	assert.Equal(t, 199.99, receipt.Total)
}
