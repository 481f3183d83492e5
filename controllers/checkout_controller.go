package controllers

import (
	"errors"
	"io"
	"net/http"

	"ecom-backend/middleware"
	"ecom-backend/models"
	"ecom-backend/services"

	"github.com/gin-gonic/gin"
)

type CheckoutRequest struct {
	CustomerInfo map[string]interface{} `json:"customerInfo"`
}

type CheckoutController struct {
	checkout services.CheckoutService
}

func NewCheckoutController(checkout services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

// Checkout settles the cart into a receipt. Customer info is passed through
// to the receipt untouched.
func (cc *CheckoutController) Checkout(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	// A bodyless request is a checkout without customer info, not an error.
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	receipt, serr := cc.checkout.Checkout(c.Request.Context(), userID, req.CustomerInfo)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}

	c.JSON(http.StatusOK, receipt)
}

// ListOrders returns the caller's past receipts, newest first.
func (cc *CheckoutController) ListOrders(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receipts, serr := cc.checkout.Orders(c.Request.Context(), userID)
	if serr != nil {
		c.JSON(serr.StatusCode, gin.H{"error": serr.Message})
		return
	}
	if receipts == nil {
		receipts = []models.Receipt{}
	}

	c.JSON(http.StatusOK, receipts)
}
