package services

import (
	"errors"
	"fmt"

	"garage/internal/models"
	"garage/internal/repositories"
	"garage/pkg/rabbitmq"
)

// MaxPageSize caps how many items a single list call can return.
const MaxPageSize = 100

// ItemService handles business logic for catalog items.
type ItemService struct {
	itemRepo repositories.ItemRepository
	mqClient *rabbitmq.Client
}

// NewItemService creates a new ItemService. mqClient may be nil, in which
// case no events are published.
func NewItemService(itemRepo repositories.ItemRepository, mqClient *rabbitmq.Client) *ItemService {
	return &ItemService{
		itemRepo: itemRepo,
		mqClient: mqClient,
	}
}

// ListItems retrieves a page of items. A non-positive or oversized limit is
// clamped to MaxPageSize, a negative offset to zero.
func (s *ItemService) ListItems(offset, limit int) ([]models.Item, error) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 || limit > MaxPageSize {
		limit = MaxPageSize
	}
	return s.itemRepo.List(offset, limit)
}

// GetItemByID retrieves a single item by its ID.
func (s *ItemService) GetItemByID(id uint) (*models.Item, error) {
	item, err := s.itemRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// CreateItem creates a new item.
func (s *ItemService) CreateItem(item *models.Item) error {
	if err := s.itemRepo.Create(item); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	publishEvent(s.mqClient, "item.created", map[string]interface{}{
		"id":    item.ID,
		"name":  item.Name,
		"price": item.Price,
	})

	return nil
}

// UpdateItem updates an existing item. The write is last-write-wins; two
// concurrent updates leave the later one in place.
func (s *ItemService) UpdateItem(item *models.Item) error {
	if err := s.itemRepo.Update(item); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to update item: %w", err)
	}

	publishEvent(s.mqClient, "item.updated", map[string]interface{}{
		"id":    item.ID,
		"name":  item.Name,
		"price": item.Price,
	})

	return nil
}

// DeleteItem deletes an item by its ID.
func (s *ItemService) DeleteItem(id uint) error {
	if err := s.itemRepo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrItemNotFound
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	publishEvent(s.mqClient, "item.deleted", map[string]interface{}{
		"id": id,
	})

	return nil
}
