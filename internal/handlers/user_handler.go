package handlers

import (
	"errors"
	"fmt"
	"log"

	"garage/internal/middleware"
	"garage/internal/models"
	"garage/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for user accounts.
type UserHandler struct {
	userService *services.UserService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService, authService *services.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the user routes with the Fiber app. Creation is
// public; the rest sit behind the auth gates.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	userRoutes := router.Group("/users")
	userRoutes.Post("/create", h.HandleCreateUser)
	userRoutes.Get("/me", middleware.AuthRequired(h.authService), h.HandleMe)
	userRoutes.Get("/", middleware.AuthRequired(h.authService), middleware.AdminRequired(), h.HandleListUsers)
	userRoutes.Delete("/:id", middleware.AuthRequired(h.authService), h.HandleDeleteUser)
}

// CreateUserRequest represents the request body for user creation.
type CreateUserRequest struct {
	Firstname string `json:"firstname" validate:"required,min=1,max=100"`
	Lastname  string `json:"lastname" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	PhotoName string `json:"photo_name"`
	IsAdmin   bool   `json:"is_admin"`
}

// HandleCreateUser registers a new user with a hashed password.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create user request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	user := &models.User{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Email:     req.Email,
		PhotoName: req.PhotoName,
		IsAdmin:   req.IsAdmin,
	}

	if err := h.userService.CreateUser(user, req.Password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{
				"message": "Email already registered.",
			})
		}
		log.Printf("Error creating user: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create user due to a server error.",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "User created successfully!",
		"id":         user.ID,
		"firstname":  user.Firstname,
		"lastname":   user.Lastname,
		"email":      user.Email,
		"is_admin":   user.IsAdmin,
		"photo_name": user.PhotoName,
	})
}

// HandleMe returns the authenticated user's own record.
func (h *UserHandler) HandleMe(c *fiber.Ctx) error {
	return c.JSON(middleware.CurrentUser(c))
}

// HandleListUsers returns all users. Admin only.
func (h *UserHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.userService.GetAllUsers()
	if err != nil {
		log.Printf("Error getting all users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve users",
		})
	}
	return c.JSON(users)
}

// HandleDeleteUser removes a user account. Only the user themself or an
// admin may delete it; a missing target is reported before permissions are
// checked.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid user ID",
		})
	}

	if _, err := h.userService.GetUserByID(uint(id)); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "User not found",
			})
		}
		log.Printf("Error looking up user %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve user",
		})
	}

	currentUser := middleware.CurrentUser(c)
	if currentUser.ID != uint(id) && !currentUser.IsAdmin {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"message": "Not enough permissions to delete this user",
		})
	}

	if err := h.userService.DeleteUser(uint(id)); err != nil {
		log.Printf("Error deleting user %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete user",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("User %d deleted successfully", id),
	})
}
