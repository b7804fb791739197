package repositories

import (
	"sort"
	"sync"

	"catalog/internal/apperrors"
	"catalog/internal/models"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
type MockProductRepository struct {
	products   map[uint]models.Product
	nextProdID uint
	nextSaleID uint
	mu         sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		products:   make(map[uint]models.Product),
		nextProdID: 1,
		nextSaleID: 1,
	}
}

// GetAll returns one page of products in ID order plus the total count.
func (r *MockProductRepository) GetAll(offset, limit int) ([]models.Product, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return []models.Product{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, apperrors.NewProductNotFound(id)
	}
	return &product, nil
}

// CreateWithSales adds a new product and its sales, assigning IDs.
func (r *MockProductRepository) CreateWithSales(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextProdID
		r.nextProdID++
	}
	for i := range product.Sales {
		if product.Sales[i].ID == 0 {
			product.Sales[i].ID = r.nextSaleID
			r.nextSaleID++
		}
		product.Sales[i].ProductID = product.ID
	}
	r.products[product.ID] = *product
	return nil
}

// Update overwrites an existing product's core fields, leaving sales intact.
func (r *MockProductRepository) Update(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return apperrors.NewProductNotFound(product.ID)
	}
	existing.Name = product.Name
	existing.Description = product.Description
	existing.Price = product.Price
	existing.Quantity = product.Quantity
	r.products[product.ID] = existing
	return nil
}

// Delete removes a product and its sales. Unknown IDs are a no-op.
func (r *MockProductRepository) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}

// MockSaleRepository is an in-memory implementation of SaleRepository backed
// by the product mock, since every sale lives inside its owning product.
type MockSaleRepository struct {
	products *MockProductRepository
}

// NewMockSaleRepository creates a new instance of MockSaleRepository.
func NewMockSaleRepository(products *MockProductRepository) *MockSaleRepository {
	return &MockSaleRepository{
		products: products,
	}
}

// GetAll returns every sale across all products with the owner filled in.
func (r *MockSaleRepository) GetAll() ([]models.Sale, error) {
	r.products.mu.RLock()
	defer r.products.mu.RUnlock()

	var sales []models.Sale
	for id := range r.products.products {
		product := r.products.products[id]
		for _, sale := range product.Sales {
			owner := product
			sale.Product = &owner
			sales = append(sales, sale)
		}
	}
	return sales, nil
}
