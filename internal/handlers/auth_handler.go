package handlers

import (
	"errors"
	"log"

	"catalog/internal/apperrors"
	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles user registration and login for the catalog API.
type AuthHandler struct {
	service  *services.AuthService
	validate *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the public auth routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// HandleRegister creates a new catalog user. Validation failures come back
// as an aggregated message list, the same shape the product routes use, and
// a taken username or email answers with 409.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if messages := h.validateUser(&user); len(messages) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"messages": messages,
		})
	}

	if err := h.service.RegisterUser(&user); err != nil {
		var conflict *apperrors.ConflictError
		if errors.As(err, &conflict) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": conflict.Error(),
			})
		}
		log.Printf("Error registering user %s: %v", user.Username, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Internal Server Error.",
		})
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(user)
}

// HandleLogin checks credentials and returns a signed token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	token, err := h.service.LoginUser(req.Username, req.Password)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"message": "Authentication failed",
		})
	}
	return c.JSON(fiber.Map{
		"token": token,
	})
}

// validateUser collects every field failure of a registration request into
// one message list.
func (h *AuthHandler) validateUser(user *models.User) []string {
	err := h.validate.Struct(user)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch {
		case fe.Field() == "Username" && fe.Tag() == "required":
			messages = append(messages, "Username cannot be blank")
		case fe.Field() == "Username":
			messages = append(messages, "Username must be between 3 and 100 characters")
		case fe.Field() == "Email" && fe.Tag() == "required":
			messages = append(messages, "Email cannot be blank")
		case fe.Field() == "Email":
			messages = append(messages, "Email must be a valid email address")
		case fe.Field() == "Password" && fe.Tag() == "required":
			messages = append(messages, "Password cannot be blank")
		case fe.Field() == "Password":
			messages = append(messages, "Password must be at least 6 characters")
		default:
			messages = append(messages, "Field '"+fe.Field()+"' failed on the '"+fe.Tag()+"' tag")
		}
	}
	return messages
}
