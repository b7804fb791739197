package repositories

import (
	"errors"
	"fmt"

	"catalog/internal/apperrors"
	"catalog/internal/models"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves one page of products from the database along with the
// total count. Ordering is the store default (primary key).
func (r *GORMProductRepository) GetAll(offset, limit int) ([]models.Product, int64, error) {
	var total int64
	if err := r.db.Model(&models.Product{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var products []models.Product
	if err := r.db.Preload("Sales").Order("id").Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get products: %w", err)
	}
	return products, total, nil
}

// GetByID retrieves a single product with its sales from the database.
func (r *GORMProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Sales").First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewProductNotFound(id)
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// CreateWithSales inserts the product row and then each of its sales with the
// owning-product reference set, inside a single transaction. A failure on any
// row rolls back everything, including the product itself.
func (r *GORMProductRepository) CreateWithSales(product *models.Product) error {
	sales := product.Sales
	product.Sales = nil

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		for i := range sales {
			sales[i].ProductID = product.ID
			if err := tx.Create(&sales[i]).Error; err != nil {
				return fmt.Errorf("failed to create sale for product %d: %w", product.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	product.Sales = sales
	return nil
}

// Update persists the product's core fields. The sales collection is omitted
// so that an update can never touch a product's sale rows.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Omit("Sales").Save(product) // Save updates all columns, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// GORM's Save doesn't return ErrRecordNotFound when no rows matched,
		// so we check RowsAffected.
		return fmt.Errorf("product with ID %d not found for update", product.ID)
	}
	return nil
}

// Delete removes the product's sales and then the product row itself, inside
// a single transaction. A missing ID deletes nothing and is not an error.
func (r *GORMProductRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Sale{}, "product_id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete sales for product %d: %w", id, err)
		}
		if err := tx.Delete(&models.Product{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete product %d: %w", id, err)
		}
		return nil
	})
}
