package services

import (
	"fmt"
	"log"
	"time"

	"catalog/internal/apperrors"
	"catalog/internal/repositories"
	"catalog/pkg/rabbitmq"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// ProductService owns the catalog business rules: creation with cascaded
// sales, updates, deletion, lookup, and revenue aggregation.
type ProductService struct {
	productRepo repositories.ProductRepository
	saleRepo    repositories.SaleRepository
	mqClient    *rabbitmq.Client // nil disables event publishing
	validate    *validator.Validate
}

// NewProductService creates a new ProductService.
func NewProductService(productRepo repositories.ProductRepository, saleRepo repositories.SaleRepository, mqClient *rabbitmq.Client) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		mqClient:    mqClient,
		validate:    validator.New(),
	}
}

// ListProducts retrieves one page of products. Pages are 1-based; page sizes
// are clamped to [1, 100] with a default of 10.
func (s *ProductService) ListProducts(page, pageSize int) (*ProductPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	products, total, err := s.productRepo.GetAll((page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]ProductResponse, 0, len(products))
	for i := range products {
		items = append(items, mapProductToResponse(&products[i]))
	}
	return &ProductPage{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetProduct retrieves a single product, including its sales.
func (s *ProductService) GetProduct(id uint) (*ProductResponse, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	resp := mapProductToResponse(product)
	return &resp, nil
}

// AddProduct validates the payload, persists the product together with every
// supplied sale as one atomic write, and returns the saved representation.
// If any sale fails to persist, the whole operation rolls back and is
// reported as an OperationError.
func (s *ProductService) AddProduct(req ProductRequest) (*ProductResponse, error) {
	product, err := validateAndMapProduct(s.validate, req)
	if err != nil {
		return nil, err
	}

	if err := s.productRepo.CreateWithSales(product); err != nil {
		return nil, &apperrors.OperationError{Op: "adding product", Err: err}
	}

	s.publishEvent("product.created", product.ID)

	resp := mapProductToResponse(product)
	return &resp, nil
}

// UpdateProduct overwrites the name, description, price, and quantity of an
// existing product. The sales collection is never touched by an update, even
// when the payload carries one: sales are immutable once created.
func (s *ProductService) UpdateProduct(id uint, req ProductRequest) (*ProductResponse, error) {
	req.Sales = nil // core fields only; inbound sales are ignored
	data, err := validateAndMapProduct(s.validate, req)
	if err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	existing.Name = data.Name
	existing.Description = data.Description
	existing.Price = data.Price
	existing.Quantity = data.Quantity

	if err := s.productRepo.Update(existing); err != nil {
		return nil, &apperrors.OperationError{Op: "updating product", Err: err}
	}

	s.publishEvent("product.updated", existing.ID)

	resp := mapProductToResponse(existing)
	return &resp, nil
}

// DeleteProduct removes a product and, through the owning relationship, every
// sale it has. Deleting an ID that does not exist still succeeds; callers
// needing an existence guarantee should call GetProduct first.
func (s *ProductService) DeleteProduct(id uint) (string, error) {
	if err := s.productRepo.Delete(id); err != nil {
		return "", &apperrors.OperationError{Op: "deleting product", Err: err}
	}

	s.publishEvent("product.deleted", id)

	return fmt.Sprintf("Product removed: %d", id), nil
}

// TotalRevenue sums quantity times the owning product's current price over
// every sale in the store. An empty store yields 0.
func (s *ProductService) TotalRevenue() (float64, error) {
	sales, err := s.saleRepo.GetAll()
	if err != nil {
		return 0, err
	}

	var total float64
	for _, sale := range sales {
		if sale.Product == nil {
			continue
		}
		total += float64(sale.Quantity) * sale.Product.Price
	}
	return total, nil
}

// RevenueByProduct sums quantity times current price over exactly one
// product's sales, returning 0 when it has none.
func (s *ProductService) RevenueByProduct(id uint) (float64, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, sale := range product.Sales {
		total += float64(sale.Quantity) * product.Price
	}
	return total, nil
}

// publishEvent emits a catalog change event. Publishing is best effort and
// never fails the operation that triggered it.
func (s *ProductService) publishEvent(action string, productID uint) {
	if s.mqClient == nil {
		return
	}

	event := rabbitmq.ProductEvent{
		EventID:    uuid.New().String(),
		Action:     action,
		ProductID:  productID,
		OccurredAt: time.Now(),
	}
	if err := s.mqClient.PublishProductEvent(event); err != nil {
		log.Printf("Warning: Failed to publish %s event for product %d: %v", action, productID, err)
	}
}
