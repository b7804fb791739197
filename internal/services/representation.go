package services

import (
	"fmt"
	"time"

	"catalog/internal/apperrors"
	"catalog/internal/models"

	"github.com/go-playground/validator/v10"
)

// saleDateLayout is the wire format for sale dates.
const saleDateLayout = "2006-01-02"

// SaleRequest is the inbound payload for one sale event.
type SaleRequest struct {
	Quantity int    `json:"quantity" validate:"gt=0"`
	SaleDate string `json:"sale_date" validate:"required"`
}

// ProductRequest is the inbound payload for creating or updating a product.
type ProductRequest struct {
	Name        string        `json:"name" validate:"required"`
	Description string        `json:"description"`
	Price       float64       `json:"price" validate:"gte=0"`
	Quantity    int           `json:"quantity" validate:"gte=0"`
	Sales       []SaleRequest `json:"sales" validate:"dive"`
}

// SaleResponse is the caller-facing shape of a sale. It carries the owning
// product's ID but never the product itself, to avoid cyclic payloads.
type SaleResponse struct {
	ID        uint   `json:"id"`
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	SaleDate  string `json:"sale_date"`
}

// ProductResponse is the caller-facing shape of a product.
type ProductResponse struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       float64        `json:"price"`
	Quantity    int            `json:"quantity"`
	Sales       []SaleResponse `json:"sales,omitempty"`
}

// ProductPage is one page of products plus pagination metadata.
type ProductPage struct {
	Items    []ProductResponse `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// validationMessage translates a validator failure into the human-readable
// message reported to callers.
func validationMessage(e validator.FieldError) string {
	switch {
	case e.StructField() == "Name":
		return "Name cannot be blank"
	case e.StructField() == "Price":
		return "Price must be positive or zero"
	case e.StructField() == "SaleDate":
		return "Sale date cannot be blank"
	case e.StructField() == "Quantity" && e.Tag() == "gt":
		return "Sale quantity must be positive"
	case e.StructField() == "Quantity":
		return "Quantity must be positive or zero"
	default:
		return fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
}

// validateAndMapProduct checks every constraint on the inbound payload and,
// only when all pass, builds the product record with its sales. Violations
// are collected into a single aggregated ValidationError, one message per
// violated field, never fail-fast.
func validateAndMapProduct(validate *validator.Validate, req ProductRequest) (*models.Product, error) {
	var messages []string

	if err := validate.Struct(req); err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return nil, err
		}
		for _, e := range validationErrors {
			messages = append(messages, validationMessage(e))
		}
	}

	saleDates := make([]time.Time, len(req.Sales))
	for i, sale := range req.Sales {
		if sale.SaleDate == "" {
			continue // already reported as blank above
		}
		parsed, err := time.Parse(saleDateLayout, sale.SaleDate)
		if err != nil {
			messages = append(messages, fmt.Sprintf("Sale date '%s' must be a valid date in YYYY-MM-DD format", sale.SaleDate))
			continue
		}
		saleDates[i] = parsed
	}

	if len(messages) > 0 {
		return nil, &apperrors.ValidationError{Messages: messages}
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
	}
	for i, sale := range req.Sales {
		product.Sales = append(product.Sales, models.Sale{
			Quantity: sale.Quantity,
			SaleDate: saleDates[i],
		})
	}
	return product, nil
}

// mapProductToResponse converts a product record into its representation,
// recursively mapping the sales it owns. A nil sales collection simply maps
// to an absent sales field.
func mapProductToResponse(product *models.Product) ProductResponse {
	resp := ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
	}
	for i := range product.Sales {
		resp.Sales = append(resp.Sales, mapSaleToResponse(&product.Sales[i]))
	}
	return resp
}

// mapSaleToResponse converts a sale record into its representation.
func mapSaleToResponse(sale *models.Sale) SaleResponse {
	return SaleResponse{
		ID:        sale.ID,
		ProductID: sale.ProductID,
		Quantity:  sale.Quantity,
		SaleDate:  sale.SaleDate.Format(saleDateLayout),
	}
}
