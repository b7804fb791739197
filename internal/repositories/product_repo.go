package repositories

import (
	"catalog/internal/models"
)

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// GetAll returns one page of products plus the total product count.
	GetAll(offset, limit int) ([]models.Product, int64, error)
	GetByID(id uint) (*models.Product, error)
	// CreateWithSales persists the product and every sale it carries as one
	// atomic unit: if any sale fails to persist, nothing is written.
	CreateWithSales(product *models.Product) error
	Update(product *models.Product) error
	// Delete removes the product and every sale it owns. Deleting an ID that
	// does not exist is a no-op, not an error.
	Delete(id uint) error
}

// SaleRepository defines the interface for sale data access.
type SaleRepository interface {
	// GetAll returns every sale in the store with its owning product loaded.
	GetAll() ([]models.Sale, error)
}
