package services

import "net/http"

// ServiceError is a typed error with an HTTP status code.
type ServiceError struct {
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string { return e.Message }

// Errors shared by the cart and checkout flows.
var (
	// ErrProductNotFound: the product being added is absent from the catalog.
	ErrProductNotFound = &ServiceError{StatusCode: http.StatusNotFound, Message: "Product not found"}
	// ErrCartEntryNotFound: the entry ID does not belong to the caller's cart.
	ErrCartEntryNotFound = &ServiceError{StatusCode: http.StatusNotFound, Message: "Cart item not found"}
	// ErrQuantityTooLow: quantity below 1 on add or update. Quantity 0 is not
	// removal; removal is its own operation.
	ErrQuantityTooLow = &ServiceError{StatusCode: http.StatusBadRequest, Message: "Quantity must be at least 1"}
	// ErrCartIntegrity: a ledger entry references a product that has since
	// vanished from the catalog. Surfaced rather than silently dropped, so the
	// displayed total never diverges from what the user added.
	ErrCartIntegrity = &ServiceError{StatusCode: http.StatusConflict, Message: "Cart references a product that no longer exists"}
)

func internalError(msg string) *ServiceError {
	return &ServiceError{StatusCode: http.StatusInternalServerError, Message: msg}
}
