package services_test

import (
	"fmt"
	"testing"

	"garage/internal/models"
	"garage/internal/repositories"
	"garage/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockItemRepository is a mock implementation of repositories.ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) List(offset, limit int) ([]models.Item, error) {
	args := m.Called(offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByID(id uint) (*models.Item, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) Create(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Update(item *models.Item) error {
	args := m.Called(item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestItemService_ListItems(t *testing.T) {
	mockRepo := new(MockItemRepository)
	itemService := services.NewItemService(mockRepo, nil)

	expected := []models.Item{
		{ID: 1, Name: "Wrench", Price: 9.5},
		{ID: 2, Name: "Jack", Price: 120.0},
	}

	// Plain page
	mockRepo.On("List", 0, 2).Return(expected, nil).Once()
	items, err := itemService.ListItems(0, 2)
	assert.NoError(t, err)
	assert.Equal(t, expected, items)
	mockRepo.AssertExpectations(t)

	// Negative offset and oversized limit are clamped
	mockRepo.On("List", 0, services.MaxPageSize).Return([]models.Item{}, nil).Once()
	_, err = itemService.ListItems(-5, 500)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Zero limit falls back to the maximum page size
	mockRepo.On("List", 10, services.MaxPageSize).Return([]models.Item{}, nil).Once()
	_, err = itemService.ListItems(10, 0)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestItemService_GetItemByID(t *testing.T) {
	mockRepo := new(MockItemRepository)
	itemService := services.NewItemService(mockRepo, nil)

	expected := &models.Item{ID: 1, Name: "Wrench", Price: 9.5}
	mockRepo.On("GetByID", uint(1)).Return(expected, nil).Once()
	item, err := itemService.GetItemByID(1)
	assert.NoError(t, err)
	assert.Equal(t, expected, item)
	mockRepo.AssertExpectations(t)

	mockRepo.On("GetByID", uint(99)).Return(nil, repositories.ErrNotFound).Once()
	item, err = itemService.GetItemByID(99)
	assert.ErrorIs(t, err, services.ErrItemNotFound)
	assert.Nil(t, item)
	mockRepo.AssertExpectations(t)
}

func TestItemService_CreateItem(t *testing.T) {
	mockRepo := new(MockItemRepository)
	itemService := services.NewItemService(mockRepo, nil)

	newItem := &models.Item{Name: "Wrench", Price: 9.5}

	mockRepo.On("Create", newItem).Return(nil).Once()
	assert.NoError(t, itemService.CreateItem(newItem))
	mockRepo.AssertExpectations(t)

	mockRepo.On("Create", newItem).Return(fmt.Errorf("database error")).Once()
	err := itemService.CreateItem(newItem)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestItemService_UpdateItem(t *testing.T) {
	mockRepo := new(MockItemRepository)
	itemService := services.NewItemService(mockRepo, nil)

	updated := &models.Item{ID: 1, Name: "Torque Wrench", Price: 19.5}

	mockRepo.On("Update", updated).Return(nil).Once()
	assert.NoError(t, itemService.UpdateItem(updated))
	mockRepo.AssertExpectations(t)

	missing := &models.Item{ID: 99, Name: "Ghost", Price: 1.0}
	mockRepo.On("Update", missing).Return(repositories.ErrNotFound).Once()
	assert.ErrorIs(t, itemService.UpdateItem(missing), services.ErrItemNotFound)
	mockRepo.AssertExpectations(t)
}

func TestItemService_DeleteItem(t *testing.T) {
	mockRepo := new(MockItemRepository)
	itemService := services.NewItemService(mockRepo, nil)

	mockRepo.On("Delete", uint(1)).Return(nil).Once()
	assert.NoError(t, itemService.DeleteItem(1))
	mockRepo.AssertExpectations(t)

	mockRepo.On("Delete", uint(99)).Return(repositories.ErrNotFound).Once()
	assert.ErrorIs(t, itemService.DeleteItem(99), services.ErrItemNotFound)
	mockRepo.AssertExpectations(t)
}
