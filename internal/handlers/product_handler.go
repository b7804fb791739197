package handlers

import (
	"errors"
	"log"
	"strconv"

	"catalog/internal/apperrors"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the product catalog.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	// The revenue route must be registered before the :id routes so that
	// "revenue" is not captured as a product ID.
	productRoutes.Get("/revenue", h.HandleTotalRevenue)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Get("/:id/revenue", h.HandleRevenueByProduct)
	productRoutes.Post("/", h.HandleAddProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleListProducts returns one page of products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", 10)

	result, err := h.service.ListProducts(page, pageSize)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return respondError(c, err)
	}
	return c.JSON(result)
}

// HandleGetProduct returns a single product with its sales.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	product, err := h.service.GetProduct(id)
	if err != nil {
		log.Printf("Error getting product %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleAddProduct creates a new product together with any supplied sales.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	var req services.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.AddProduct(req)
	if err != nil {
		log.Printf("Error adding product: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct overwrites a product's core fields.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	var req services.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	product, err := h.service.UpdateProduct(id, req)
	if err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product and its sales.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	message, err := h.service.DeleteProduct(id)
	if err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": message,
	})
}

// HandleTotalRevenue returns the revenue summed over every sale in the store.
func (h *ProductHandler) HandleTotalRevenue(c *fiber.Ctx) error {
	total, err := h.service.TotalRevenue()
	if err != nil {
		log.Printf("Error computing total revenue: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"total_revenue": total,
	})
}

// HandleRevenueByProduct returns the revenue of a single product's sales.
func (h *ProductHandler) HandleRevenueByProduct(c *fiber.Ctx) error {
	id, ok := parseID(c)
	if !ok {
		return nil
	}

	revenue, err := h.service.RevenueByProduct(id)
	if err != nil {
		log.Printf("Error computing revenue for product %d: %v", id, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"product_id": id,
		"revenue":    revenue,
	})
}

// parseID reads the :id route parameter. A non-numeric ID answers the
// request with 400 and reports ok=false.
func parseID(c *fiber.Ctx) (uint, bool) {
	raw := c.Params("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Product ID must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

// respondError translates the service error taxonomy into HTTP responses:
// validation failures become 400 with the aggregated messages, missing
// products become 404, and failed writes become 500.
func respondError(c *fiber.Ctx, err error) error {
	var ve *apperrors.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"messages": ve.Messages,
		})
	}

	var nf *apperrors.NotFoundError
	if errors.As(err, &nf) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": nf.Error(),
		})
	}

	var oe *apperrors.OperationError
	if errors.As(err, &oe) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": oe.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal Server Error.",
	})
}
