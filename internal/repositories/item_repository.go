package repositories

import "garage/internal/models"

// ItemRepository defines the interface for item data access.
type ItemRepository interface {
	List(offset, limit int) ([]models.Item, error)
	GetByID(id uint) (*models.Item, error)
	Create(item *models.Item) error
	Update(item *models.Item) error
	Delete(id uint) error
}
