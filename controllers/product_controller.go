package controllers

import (
	"net/http"

	"ecom-backend/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductController struct {
	products repository.ProductStore
	logger   *zap.Logger
}

func NewProductController(products repository.ProductStore, logger *zap.Logger) *ProductController {
	return &ProductController{products: products, logger: logger}
}

// List returns the whole catalog.
func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.products.FindAll(c.Request.Context())
	if err != nil {
		pc.logger.Error("Error finding products", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}
