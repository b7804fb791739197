package repositories

import (
	"fmt"

	"catalog/internal/models"

	"gorm.io/gorm"
)

// GORMSaleRepository is a GORM implementation of SaleRepository.
type GORMSaleRepository struct {
	db *gorm.DB
}

// NewGORMSaleRepository creates a new instance of GORMSaleRepository.
func NewGORMSaleRepository(db *gorm.DB) *GORMSaleRepository {
	return &GORMSaleRepository{
		db: db,
	}
}

// GetAll retrieves every sale in the database with its owning product loaded,
// so revenue can be computed from the product's current price.
func (r *GORMSaleRepository) GetAll() ([]models.Sale, error) {
	var sales []models.Sale
	if err := r.db.Preload("Product").Find(&sales).Error; err != nil {
		return nil, fmt.Errorf("failed to get sales: %w", err)
	}
	return sales, nil
}
