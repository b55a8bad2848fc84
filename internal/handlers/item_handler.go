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

// ItemHandler handles HTTP requests for catalog items.
type ItemHandler struct {
	itemService *services.ItemService
	authService *services.AuthService
	validate    *validator.Validate
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService *services.ItemService, authService *services.AuthService) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the item routes with the Fiber app. Reads are
// public; writes require authentication, deletion an admin.
func (h *ItemHandler) RegisterRoutes(router fiber.Router) {
	itemRoutes := router.Group("/items")
	itemRoutes.Post("/create", middleware.AuthRequired(h.authService), h.HandleCreateItem)
	itemRoutes.Put("/:id", middleware.AuthRequired(h.authService), h.HandleUpdateItem)
	itemRoutes.Get("/", h.HandleListItems)
	itemRoutes.Get("/:id", h.HandleGetItem)
	itemRoutes.Delete("/:id", middleware.AuthRequired(h.authService), middleware.AdminRequired(), h.HandleDeleteItem)
}

// listItemsQuery holds the pagination query parameters.
type listItemsQuery struct {
	Offset int `query:"offset" validate:"gte=0"`
	Limit  int `query:"limit" validate:"gte=1,lte=100"`
}

// HandleListItems returns a page of items. Public.
func (h *ItemHandler) HandleListItems(c *fiber.Ctx) error {
	query := listItemsQuery{Limit: services.MaxPageSize}
	if err := c.QueryParser(&query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid pagination parameters",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(query); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": fmt.Sprintf("offset must be >= 0 and limit between 1 and %d", services.MaxPageSize),
		})
	}

	items, err := h.itemService.ListItems(query.Offset, query.Limit)
	if err != nil {
		log.Printf("Error listing items: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve items",
		})
	}

	return c.JSON(items)
}

// HandleGetItem returns a single item by its ID. Public.
func (h *ItemHandler) HandleGetItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item ID",
		})
	}

	item, err := h.itemService.GetItemByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Item not found",
			})
		}
		log.Printf("Error getting item %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve item",
		})
	}

	return c.JSON(item)
}

// HandleCreateItem creates a new item. Requires authentication.
func (h *ItemHandler) HandleCreateItem(c *fiber.Ctx) error {
	var item models.Item
	if err := c.BodyParser(&item); err != nil {
		log.Printf("Error parsing create item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(item); err != nil {
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

	if err := h.itemService.CreateItem(&item); err != nil {
		log.Printf("Error creating item: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create item",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem updates an existing item. Fields absent from the body
// keep their stored values. Requires authentication.
func (h *ItemHandler) HandleUpdateItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item ID",
		})
	}

	item, err := h.itemService.GetItemByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Item not found",
			})
		}
		log.Printf("Error getting item %d for update: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve item",
		})
	}

	// Parsing into the stored record overlays only the provided fields.
	if err := c.BodyParser(item); err != nil {
		log.Printf("Error parsing update item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	item.ID = uint(id)

	if err := h.validate.Struct(item); err != nil {
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

	if err := h.itemService.UpdateItem(item); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Item not found",
			})
		}
		log.Printf("Error updating item %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update item",
		})
	}

	return c.JSON(item)
}

// HandleDeleteItem deletes an item. Admin only.
func (h *ItemHandler) HandleDeleteItem(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid item ID",
		})
	}

	if err := h.itemService.DeleteItem(uint(id)); err != nil {
		if errors.Is(err, services.ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Item not found",
			})
		}
		log.Printf("Error deleting item %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete item",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Item %d deleted successfully", id),
	})
}
